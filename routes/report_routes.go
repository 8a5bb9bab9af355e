package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/validly/validator_server/controllers"
	"github.com/validly/validator_server/middleware"
)

func ReportRoutes(r *gin.Engine) {
	auth := r.Group("/reports")
	auth.Use(middleware.RequireAuth())
	{
		auth.POST("/", controllers.CreateReport)
		auth.GET("/", controllers.GetReports)
		auth.GET("/:id", controllers.GetReport)
		auth.DELETE("/:id", controllers.DeleteReport)
	}
}
