package handlers

import (
	"testing"

	"github.com/pena-club/pena-api/internal/auth"
	"github.com/pena-club/pena-api/internal/config"
	"github.com/pena-club/pena-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.DateOption{},
		&models.DateVote{},
		&models.Reservation{},
		&models.Expense{},
		&models.Message{},
		&models.PushSubscription{},
	)
	return db
}

func newTestAuth(db *gorm.DB) *auth.AuthHandler {
	cfg := &config.Config{JWTSecret: "test-secret", AdminUsername: "admin"}
	return auth.NewAuthHandler(cfg, db)
}

func cookieFor(t *testing.T, a *auth.AuthHandler, userID string) string {
	t.Helper()
	token, err := a.GenerateToken(userID)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return auth.CookieName + "=" + token
}
