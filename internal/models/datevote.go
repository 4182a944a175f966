package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DateVote records which candidate date a user prefers. At most one vote
// per (event, user); casting again replaces the previous one.
type DateVote struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	EventID      string    `gorm:"uniqueIndex:idx_event_voter" json:"eventId"`
	UserID       string    `gorm:"uniqueIndex:idx_event_voter" json:"userId"`
	DateOptionID string    `json:"dateOptionId"`
	User         *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (v *DateVote) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}
