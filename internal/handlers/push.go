package handlers

import (
	"context"
	"fmt"

	"github.com/danielgtaylor/huma/v2"
	"github.com/pena-club/pena-api/internal/auth"
	"github.com/pena-club/pena-api/internal/config"
	"github.com/pena-club/pena-api/internal/models"
	"github.com/pena-club/pena-api/internal/notifier"
	"gorm.io/gorm"
)

type PushHandler struct {
	db          *gorm.DB
	cfg         *config.Config
	notifier    notifier.Notifier
	authHandler *auth.AuthHandler
}

func NewPushHandler(db *gorm.DB, cfg *config.Config, n notifier.Notifier, authHandler *auth.AuthHandler) *PushHandler {
	return &PushHandler{db: db, cfg: cfg, notifier: n, authHandler: authHandler}
}

type PublicKeyOutput struct {
	Body struct {
		PublicKey string `json:"publicKey"`
	}
}

func (h *PushHandler) HandlePublicKey(ctx context.Context, input *struct{}) (*PublicKeyOutput, error) {
	res := &PublicKeyOutput{}
	res.Body.PublicKey = h.cfg.VAPIDPublicKey
	return res, nil
}

type SubscribeInput struct {
	auth.AuthInput
	Body struct {
		Endpoint string `json:"endpoint" required:"true"`
		Keys     struct {
			P256dh string `json:"p256dh" required:"true"`
			Auth   string `json:"auth" required:"true"`
		} `json:"keys" required:"true"`
	}
}

type SubscribeOutput struct {
	Body struct {
		OK bool `json:"ok"`
	}
}

// HandleSubscribe upserts a push subscription keyed by its endpoint; the
// same device re-subscribing just refreshes the keys and owner.
func (h *PushHandler) HandleSubscribe(ctx context.Context, input *SubscribeInput) (*SubscribeOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		var sub models.PushSubscription
		if err := tx.FirstOrInit(&sub, models.PushSubscription{Endpoint: input.Body.Endpoint}).Error; err != nil {
			return err
		}
		sub.P256dh = input.Body.Keys.P256dh
		sub.Auth = input.Body.Keys.Auth
		sub.UserID = userID
		return tx.Save(&sub).Error
	})
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to save subscription: " + err.Error())
	}

	res := &SubscribeOutput{}
	res.Body.OK = true
	return res, nil
}

type PushTestInput struct {
	auth.AuthInput
}

type PushTestOutput struct {
	Body struct {
		Sent    int `json:"sent"`
		Removed int `json:"removed"`
	}
}

// HandlePushTest sends the caller a reminder about the upcoming event.
func (h *PushHandler) HandlePushTest(ctx context.Context, input *PushTestInput) (*PushTestOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	if h.notifier == nil {
		return nil, huma.Error503ServiceUnavailable("Push notifications are not configured")
	}

	var event models.Event
	host := "desconocido"
	if err := h.db.Preload("Owner").Order("created_at DESC").First(&event).Error; err == nil && event.Owner != nil {
		host = event.Owner.Username
	}

	sent, removed, err := h.notifier.PushToUser(userID, notifier.Payload{
		Title: "Para que no se olviden 🔔",
		Body:  fmt.Sprintf("Mañana es la peña en la casa de %s! 🎉", host),
		Data:  map[string]string{"url": "/evento/actual"},
	})
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to send push: " + err.Error())
	}

	res := &PushTestOutput{}
	res.Body.Sent = sent
	res.Body.Removed = removed
	return res, nil
}
