package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pena-club/pena-api/internal/auth"
	"github.com/pena-club/pena-api/internal/config"
	penamw "github.com/pena-club/pena-api/internal/middleware"
	"github.com/rs/cors"
)

type Handlers struct {
	Auth        *auth.AuthHandler
	Event       *EventHandler
	Expense     *ExpenseHandler
	Reservation *ReservationHandler
	Message     *MessageHandler
	DateVote    *DateVoteHandler
	Push        *PushHandler
}

func RegisterRoutes(r *chi.Mux, cfg *config.Config, h Handlers) {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(penamw.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Handler)

	if cfg.EnableCORS {
		r.Use(cors.New(cors.Options{
			AllowedOrigins:   []string{cfg.FrontendURL},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type", "Cache-Control", "Pragma"},
			AllowCredentials: true,
		}).Handler)
	}

	// Clients poll aggressively; nothing here may be cached by intermediaries.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "no-store")
			next.ServeHTTP(w, r)
		})
	})

	// Initialize Huma API
	humaConfig := huma.DefaultConfig("Peña API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"cookieAuth": {
			Type: "apiKey",
			In:   "cookie",
			Name: auth.CookieName,
		},
	}
	api := humachi.New(r, humaConfig)

	secured := func(o *huma.Operation) {
		o.Security = []map[string][]string{{"cookieAuth": {}}}
	}

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Auth routes
	huma.Post(api, "/auth/login", h.Auth.HandleLogin)
	huma.Post(api, "/auth/logout", h.Auth.HandleLogout)
	huma.Get(api, "/me", h.Auth.HandleMe, secured)

	// Event
	huma.Get(api, "/event", h.Event.HandleGetEvent, secured)
	huma.Put(api, "/event/{eventId}", h.Event.HandleUpdateEvent, secured)

	// Expenses
	huma.Get(api, "/event/{eventId}/expenses", h.Expense.HandleListExpenses, secured)
	huma.Post(api, "/expenses", h.Expense.HandleCreateExpense, secured)
	huma.Delete(api, "/expenses/{expenseId}", h.Expense.HandleDeleteExpense, secured)

	// Reservations
	huma.Get(api, "/event/{eventId}/reservations", h.Reservation.HandleListReservations, secured)
	huma.Post(api, "/reservations", h.Reservation.HandleCreateReservation, secured)
	huma.Put(api, "/reservations/{reservationId}", h.Reservation.HandleUpdateReservation, secured)

	// Messages
	huma.Get(api, "/messages/{eventId}", h.Message.HandleListMessages, secured)
	huma.Post(api, "/messages", h.Message.HandleSendMessage, secured)

	// Date votes
	huma.Get(api, "/event/{eventId}/datevotes", h.DateVote.HandleListDateVotes, secured)
	huma.Post(api, "/datevotes", h.DateVote.HandleCastDateVote, secured)

	// Push notifications
	huma.Get(api, "/push/public-key", h.Push.HandlePublicKey)
	huma.Post(api, "/push/subscribe", h.Push.HandleSubscribe, secured)
	huma.Post(api, "/push/test", h.Push.HandlePushTest, secured)
}
