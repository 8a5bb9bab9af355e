package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/validly/validator_server/services"
)

func ValidateIdea(c *gin.Context) {
	var input struct {
		BusinessIdea  string   `json:"businessIdea"`
		SelectedTools []string `json:"selectedTools"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	run, err := services.ValidateIdea(c.Request.Context(), input.BusinessIdea, input.SelectedTools)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyIdea), errors.Is(err, services.ErrNoTools):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Business idea and selected tools are required",
				"details": err.Error(),
			})
		case errors.Is(err, services.ErrUnknownTool):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Unknown validation tool",
				"details": err.Error(),
			})
		case errors.Is(err, services.ErrAllToolsFailed):
			c.JSON(http.StatusBadGateway, gin.H{
				"error":   "All validation tools failed",
				"details": "Please try again. If the problem persists, check your API configuration.",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   err.Error(),
				"details": "Please try again. If the problem persists, check your API configuration.",
			})
		}
		return
	}

	resp := gin.H{
		"results":        run.Results,
		"averageScore":   run.AverageScore,
		"completedTools": run.CompletedTools(),
		"totalTools":     run.TotalTools,
	}
	if len(run.Failures) > 0 {
		failed := make([]string, len(run.Failures))
		for i, f := range run.Failures {
			failed[i] = f.Tool
		}
		resp["failedTools"] = run.Failures
		resp["warning"] = fmt.Sprintf("Some tools could not be completed: %s", strings.Join(failed, ", "))
	}

	c.JSON(http.StatusOK, resp)
}
