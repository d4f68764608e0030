package main

import (
	"log"

	"github.com/athera-ai/athera/db"
	"github.com/athera-ai/athera/internal/config"
	"github.com/athera-ai/athera/internal/router"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()

	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if err := db.ConnectDatabase(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	r, err := router.NewRouter(cfg, db.DB)

	if err != nil {
		log.Fatalf("Failed to build router: %v", err)
	}

	log.Printf("Athera listening on :%s", cfg.Port)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
