package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ReservationPending   = "PENDING"
	ReservationConfirmed = "CONFIRMED"
	ReservationDeclined  = "DECLINED"
)

func ValidReservationStatus(s string) bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationDeclined:
		return true
	}
	return false
}

// Reservation is a user's RSVP for an event. One per (event, user).
type Reservation struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	EventID   string    `gorm:"uniqueIndex:idx_event_guest" json:"eventId"`
	UserID    string    `gorm:"uniqueIndex:idx_event_guest" json:"userId"`
	Status    string    `json:"status"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
