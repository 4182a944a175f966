package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Event is the single gathering everyone coordinates around. The
// application always operates on the most recently created one.
type Event struct {
	ID           string        `gorm:"primaryKey" json:"id"`
	OwnerID      string        `json:"ownerId"`
	BuyerID      *string       `json:"buyerId"`
	Date         time.Time     `json:"date"`
	Owner        *User         `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Buyer        *User         `gorm:"foreignKey:BuyerID" json:"buyer,omitempty"`
	Reservations []Reservation `gorm:"foreignKey:EventID" json:"reservations,omitempty"`
	DateOptions  []DateOption  `gorm:"foreignKey:EventID" json:"dateOptions,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// DateOption is a candidate date users can vote on. Immutable once created.
type DateOption struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	EventID   string    `gorm:"uniqueIndex:idx_event_date" json:"eventId"`
	Date      time.Time `gorm:"uniqueIndex:idx_event_date" json:"date"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (o *DateOption) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
