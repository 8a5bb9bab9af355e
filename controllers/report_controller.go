package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/validly/validator_server/database"
	"github.com/validly/validator_server/models"
	"github.com/validly/validator_server/services"
	"gorm.io/gorm"
)

const ideaTitleLimit = 100

func CreateReport(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input struct {
		BusinessIdea  string                `json:"businessIdea"`
		SelectedTools []string              `json:"selectedTools"`
		Results       []services.ToolResult `json:"results"`
		AverageScore  float64               `json:"averageScore"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if input.BusinessIdea == "" || len(input.Results) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Business idea and results are required"})
		return
	}

	toolsJSON, err := json.Marshal(input.SelectedTools)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid selected tools"})
		return
	}
	resultsJSON, err := json.Marshal(input.Results)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid results"})
		return
	}

	idea := models.BusinessIdea{
		UserID:        userID.(uint),
		Title:         truncateTitle(input.BusinessIdea),
		Description:   input.BusinessIdea,
		SelectedTools: toolsJSON,
	}

	if err := database.DB.Create(&idea).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save business idea"})
		return
	}

	report := models.ValidationReport{
		UserID:         userID.(uint),
		BusinessIdeaID: idea.ID,
		ReportData:     resultsJSON,
		AverageScore:   input.AverageScore,
	}

	if err := database.DB.Create(&report).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save report"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":               report.ID,
		"business_idea_id": idea.ID,
	})
}

func GetReports(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var reports []models.ValidationReport

	if err := database.DB.
		Preload("BusinessIdea").
		Where("user_id = ?", userID.(uint)).
		Order("created_at desc").
		Find(&reports).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reports"})
		return
	}

	c.JSON(http.StatusOK, reports)
}

func GetReport(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var report models.ValidationReport
	if err := database.DB.
		Preload("BusinessIdea").
		Where("id = ? AND user_id = ?", c.Param("id"), userID.(uint)).
		First(&report).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch report"})
		return
	}

	c.JSON(http.StatusOK, report)
}

func DeleteReport(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result := database.DB.
		Where("id = ? AND user_id = ?", c.Param("id"), userID.(uint)).
		Delete(&models.ValidationReport{})

	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete report"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func truncateTitle(idea string) string {
	runes := []rune(idea)
	if len(runes) <= ideaTitleLimit {
		return idea
	}
	return string(runes[:ideaTitleLimit]) + "..."
}
