package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/validly/validator_server/controllers"
	"github.com/validly/validator_server/middleware"
)

func UserRoutes(r *gin.Engine) {
	r.POST("/users", controllers.CreateUser)
	r.POST("/login", controllers.LoginUser)

	auth := r.Group("/users")
	auth.Use(middleware.RequireAuth())
	{
		auth.GET("/me", controllers.GetCurrentUser)
	}
}
