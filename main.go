package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/validly/validator_server/database"
	"github.com/validly/validator_server/logging"
	"github.com/validly/validator_server/models"
	"github.com/validly/validator_server/routes"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logger := logging.Init()
	defer logger.Sync()

	database.Connect()
	if err := database.DB.AutoMigrate(
		&models.User{},
		&models.BusinessIdea{},
		&models.ValidationReport{},
	); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	r := gin.Default()
	routes.UserRoutes(r)
	routes.ValidationRoutes(r)
	routes.ReportRoutes(r)

	r.Run()
}
