package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/validly/validator_server/services"
)

func ExportReport(c *gin.Context) {
	var input struct {
		ValidationResults []services.ToolResult `json:"validationResults"`
		AverageScore      float64               `json:"averageScore"`
		BusinessIdea      string                `json:"businessIdea"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if len(input.ValidationResults) == 0 || input.BusinessIdea == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Validation results and business idea are required",
			"details": "Submit the results of a completed validation run.",
		})
		return
	}

	data, mimeType, err := services.ExportReport(
		c.Request.Context(),
		input.ValidationResults,
		input.AverageScore,
		input.BusinessIdea,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   err.Error(),
			"details": "Please try again. If the problem persists, check the export configuration.",
		})
		return
	}

	ext := "pdf"
	if mimeType == services.MimeHTML {
		ext = "html"
	}
	filename := fmt.Sprintf("validation-report-%s.%s", uuid.New().String(), ext)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, mimeType, data)
}
