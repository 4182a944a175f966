package notifier

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/pena-club/pena-api/internal/config"
	"github.com/pena-club/pena-api/internal/models"
	"gorm.io/gorm"
)

// Payload is the JSON the service worker receives.
type Payload struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

type Notifier interface {
	// PushToUser sends payload to every subscription of the user and
	// prunes the expired ones. Returns how many were sent and removed.
	PushToUser(userID string, payload Payload) (sent int, removed int, err error)
}

type WebPushNotifier struct {
	db   *gorm.DB
	opts *webpush.Options
}

func NewWebPushNotifier(cfg *config.Config, db *gorm.DB) (*WebPushNotifier, error) {
	if cfg.VAPIDPublicKey == "" || cfg.VAPIDPrivateKey == "" {
		return nil, fmt.Errorf("VAPID keys are not configured")
	}
	return &WebPushNotifier{
		db: db,
		opts: &webpush.Options{
			Subscriber:      cfg.VAPIDSubject,
			VAPIDPublicKey:  cfg.VAPIDPublicKey,
			VAPIDPrivateKey: cfg.VAPIDPrivateKey,
			TTL:             60,
		},
	}, nil
}

func (n *WebPushNotifier) PushToUser(userID string, payload Payload) (int, int, error) {
	var subs []models.PushSubscription
	if err := n.db.Where("user_id = ?", userID).Find(&subs).Error; err != nil {
		return 0, 0, err
	}
	if len(subs) == 0 {
		return 0, 0, nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return 0, 0, err
	}

	var gone []string
	for _, s := range subs {
		resp, err := webpush.SendNotification(body, &webpush.Subscription{
			Endpoint: s.Endpoint,
			Keys:     webpush.Keys{P256dh: s.P256dh, Auth: s.Auth},
		}, n.opts)
		if err != nil {
			log.Printf("Failed to send push to %s: %v", s.Endpoint, err)
			continue
		}
		// 404/410 means the browser dropped the subscription.
		if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
			gone = append(gone, s.Endpoint)
		}
		resp.Body.Close()
	}

	if len(gone) > 0 {
		if err := n.db.Where("endpoint IN ?", gone).Delete(&models.PushSubscription{}).Error; err != nil {
			return len(subs) - len(gone), len(gone), err
		}
	}
	return len(subs) - len(gone), len(gone), nil
}
