package main

import (
	"fmt"

	"jewelbill-backend/config"
	"jewelbill-backend/models"
	"jewelbill-backend/routes"
	"jewelbill-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found")
	}
	config.SetupLogger()
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.Rate{},
		&models.InvoiceSequence{},
		&models.NotificationLog{},
	)
}

func main() {
	cfg := config.Get()

	services.NewRateService(config.DB).StartScheduler()

	r := routes.SetupRouter()
	printRoutes(r)

	log.Info().Str("port", cfg.Port).Msg("starting server")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func printRoutes(r *gin.Engine) {
	for _, route := range r.Routes() {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
