package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/pena-club/pena-api/internal/auth"
	"github.com/pena-club/pena-api/internal/models"
	"gorm.io/gorm"
)

type EventHandler struct {
	db          *gorm.DB
	authHandler *auth.AuthHandler
}

func NewEventHandler(db *gorm.DB, authHandler *auth.AuthHandler) *EventHandler {
	return &EventHandler{db: db, authHandler: authHandler}
}

type GetEventInput struct {
	auth.AuthInput
}

type GetEventOutput struct {
	Body models.Event
}

// HandleGetEvent returns the most recently created event together with its
// owner, buyer, reservations and candidate dates.
func (h *EventHandler) HandleGetEvent(ctx context.Context, input *GetEventInput) (*GetEventOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}

	var event models.Event
	err := h.db.
		Preload("Owner").
		Preload("Buyer").
		Preload("Reservations.User").
		Preload("DateOptions").
		Order("created_at DESC").
		First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, huma.Error404NotFound("No event found")
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load event: " + err.Error())
	}

	return &GetEventOutput{Body: event}, nil
}

type UpdateEventInput struct {
	auth.AuthInput
	EventID string `path:"eventId"`
	Body    struct {
		Date time.Time `json:"date" required:"true" doc:"New confirmed event date"`
	}
}

type UpdateEventOutput struct {
	Body models.Event
}

func (h *EventHandler) HandleUpdateEvent(ctx context.Context, input *UpdateEventInput) (*UpdateEventOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}

	var event models.Event
	if err := h.db.First(&event, "id = ?", input.EventID).Error; err != nil {
		return nil, huma.Error404NotFound("Event not found")
	}

	event.Date = input.Body.Date
	if err := h.db.Save(&event).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to update event: " + err.Error())
	}

	return &UpdateEventOutput{Body: event}, nil
}
