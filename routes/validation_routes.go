package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/validly/validator_server/controllers"
)

func ValidationRoutes(r *gin.Engine) {
	r.POST("/validate", controllers.ValidateIdea)
	r.POST("/export", controllers.ExportReport)
}
