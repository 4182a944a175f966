package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/pena-club/pena-api/internal/config"
	"github.com/pena-club/pena-api/internal/database"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadConfig()
	db := database.Connect(cfg)

	if err := database.Seed(db, cfg); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Printf("Database %s seeded", cfg.DatabasePath)
}
