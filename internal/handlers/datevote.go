package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/pena-club/pena-api/internal/auth"
	"github.com/pena-club/pena-api/internal/models"
	"gorm.io/gorm"
)

type DateVoteHandler struct {
	db          *gorm.DB
	authHandler *auth.AuthHandler
}

func NewDateVoteHandler(db *gorm.DB, authHandler *auth.AuthHandler) *DateVoteHandler {
	return &DateVoteHandler{db: db, authHandler: authHandler}
}

type ListDateVotesInput struct {
	auth.AuthInput
	EventID string `path:"eventId"`
}

type ListDateVotesOutput struct {
	Body []models.DateVote
}

func (h *DateVoteHandler) HandleListDateVotes(ctx context.Context, input *ListDateVotesInput) (*ListDateVotesOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}

	var votes []models.DateVote
	if err := h.db.Preload("User").Where("event_id = ?", input.EventID).Find(&votes).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list date votes: " + err.Error())
	}

	return &ListDateVotesOutput{Body: votes}, nil
}

type CastDateVoteInput struct {
	auth.AuthInput
	Body struct {
		EventID      string `json:"eventId" required:"true"`
		DateOptionID string `json:"dateOptionId" required:"true"`
	}
}

type CastDateVoteOutput struct {
	Body models.DateVote
}

// HandleCastDateVote upserts the caller's vote: one vote per (event, user),
// a second vote replaces the first.
func (h *DateVoteHandler) HandleCastDateVote(ctx context.Context, input *CastDateVoteInput) (*CastDateVoteOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	var option models.DateOption
	if err := h.db.Where("id = ? AND event_id = ?", input.Body.DateOptionID, input.Body.EventID).First(&option).Error; err != nil {
		return nil, huma.Error400BadRequest("Date option does not belong to this event")
	}

	var vote models.DateVote
	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.FirstOrInit(&vote, models.DateVote{EventID: input.Body.EventID, UserID: userID}).Error; err != nil {
			return err
		}
		vote.DateOptionID = input.Body.DateOptionID
		return tx.Save(&vote).Error
	})
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to cast vote: " + err.Error())
	}

	if err := h.db.Preload("User").First(&vote, "id = ?", vote.ID).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to load vote: " + err.Error())
	}

	return &CastDateVoteOutput{Body: vote}, nil
}
