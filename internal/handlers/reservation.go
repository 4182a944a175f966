package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/pena-club/pena-api/internal/auth"
	"github.com/pena-club/pena-api/internal/models"
	"gorm.io/gorm"
)

type ReservationHandler struct {
	db          *gorm.DB
	authHandler *auth.AuthHandler
}

func NewReservationHandler(db *gorm.DB, authHandler *auth.AuthHandler) *ReservationHandler {
	return &ReservationHandler{db: db, authHandler: authHandler}
}

type ListReservationsInput struct {
	auth.AuthInput
	EventID string `path:"eventId"`
}

type ListReservationsOutput struct {
	Body []models.Reservation
}

func (h *ReservationHandler) HandleListReservations(ctx context.Context, input *ListReservationsInput) (*ListReservationsOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}

	var reservations []models.Reservation
	if err := h.db.Preload("User").Where("event_id = ?", input.EventID).Find(&reservations).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list reservations: " + err.Error())
	}

	return &ListReservationsOutput{Body: reservations}, nil
}

type CreateReservationInput struct {
	auth.AuthInput
	Body struct {
		EventID string `json:"eventId" required:"true"`
		Status  string `json:"status" required:"true" enum:"PENDING,CONFIRMED,DECLINED"`
	}
}

type CreateReservationOutput struct {
	Body models.Reservation
}

func (h *ReservationHandler) HandleCreateReservation(ctx context.Context, input *CreateReservationInput) (*CreateReservationOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	if !models.ValidReservationStatus(input.Body.Status) {
		return nil, huma.Error400BadRequest("Invalid reservation status")
	}

	reservation := models.Reservation{
		EventID: input.Body.EventID,
		UserID:  userID,
		Status:  input.Body.Status,
	}
	if err := h.db.Create(&reservation).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to create reservation: " + err.Error())
	}
	if err := h.db.Preload("User").First(&reservation, "id = ?", reservation.ID).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to load reservation: " + err.Error())
	}

	return &CreateReservationOutput{Body: reservation}, nil
}

type UpdateReservationInput struct {
	auth.AuthInput
	ReservationID string `path:"reservationId"`
	Body          struct {
		Status string `json:"status" required:"true" enum:"PENDING,CONFIRMED,DECLINED"`
	}
}

type UpdateReservationOutput struct {
	Body models.Reservation
}

func (h *ReservationHandler) HandleUpdateReservation(ctx context.Context, input *UpdateReservationInput) (*UpdateReservationOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}

	if !models.ValidReservationStatus(input.Body.Status) {
		return nil, huma.Error400BadRequest("Invalid reservation status")
	}

	var reservation models.Reservation
	if err := h.db.First(&reservation, "id = ?", input.ReservationID).Error; err != nil {
		return nil, huma.Error404NotFound("Reservation not found")
	}

	reservation.Status = input.Body.Status
	if err := h.db.Save(&reservation).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to update reservation: " + err.Error())
	}

	return &UpdateReservationOutput{Body: reservation}, nil
}
