// Bootstrap script: creates (or resets) the admin login.
//
//	go run ./scripts -username admin -password <password>
package main

import (
	"flag"

	"jewelbill-backend/config"
	"jewelbill-backend/models"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	username := flag.String("username", "admin", "admin username")
	password := flag.String("password", "", "admin password (required)")
	flag.Parse()

	if *password == "" {
		log.Fatal().Msg("-password is required")
	}

	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found")
	}
	config.SetupLogger()
	config.ConnectDB()

	if err := config.DB.AutoMigrate(&models.User{}); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	// Replace any existing user with this username
	if err := config.DB.Unscoped().Where("username = ?", *username).Delete(&models.User{}).Error; err != nil {
		log.Fatal().Err(err).Msg("failed to remove existing user")
	}

	admin := models.User{
		Username: *username,
		Password: *password, // hashed in BeforeCreate hook
		Role:     "admin",
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		log.Fatal().Err(err).Msg("failed to create admin user")
	}

	log.Info().Str("username", *username).Msg("admin user created")
}
