package database

import (
	"log"

	"github.com/pena-club/pena-api/internal/config"
	"github.com/pena-club/pena-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto Migrate
	err = db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.DateOption{},
		&models.DateVote{},
		&models.Reservation{},
		&models.Expense{},
		&models.Message{},
		&models.PushSubscription{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	return db
}
