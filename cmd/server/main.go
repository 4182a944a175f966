package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/pena-club/pena-api/internal/auth"
	"github.com/pena-club/pena-api/internal/config"
	"github.com/pena-club/pena-api/internal/database"
	"github.com/pena-club/pena-api/internal/handlers"
	"github.com/pena-club/pena-api/internal/notifier"
)

func main() {
	// Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadConfig()

	// Connect to Database
	db := database.Connect(cfg)

	// Initialize Handlers
	var pushNotifier notifier.Notifier
	if n, err := notifier.NewWebPushNotifier(cfg, db); err != nil {
		log.Printf("Web push notifier not initialized: %v", err)
	} else {
		pushNotifier = n
	}

	authHandler := auth.NewAuthHandler(cfg, db)
	h := handlers.Handlers{
		Auth:        authHandler,
		Event:       handlers.NewEventHandler(db, authHandler),
		Expense:     handlers.NewExpenseHandler(db, authHandler),
		Reservation: handlers.NewReservationHandler(db, authHandler),
		Message:     handlers.NewMessageHandler(db, authHandler),
		DateVote:    handlers.NewDateVoteHandler(db, authHandler),
		Push:        handlers.NewPushHandler(db, cfg, pushNotifier, authHandler),
	}

	// Initialize Router
	r := chi.NewRouter()

	// Register Routes
	handlers.RegisterRoutes(r, cfg, h)

	// Start Server
	log.Printf("Starting server on port %s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
