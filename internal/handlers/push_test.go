package handlers

import (
	"context"
	"testing"

	"github.com/pena-club/pena-api/internal/config"
	"github.com/pena-club/pena-api/internal/models"
	"github.com/pena-club/pena-api/internal/notifier"
)

func TestHandlePublicKey(t *testing.T) {
	cfg := &config.Config{VAPIDPublicKey: "test-public-key"}
	handler := NewPushHandler(nil, cfg, nil, nil)

	resp, err := handler.HandlePublicKey(context.Background(), &struct{}{})
	if err != nil {
		t.Fatalf("HandlePublicKey returned error: %v", err)
	}
	if resp.Body.PublicKey != "test-public-key" {
		t.Errorf("expected configured key, got %q", resp.Body.PublicKey)
	}
}

func TestHandleSubscribeUpsertsByEndpoint(t *testing.T) {
	db := newTestDB(t)
	authHandler := newTestAuth(db)

	user := models.User{Username: "cacho", Name: "Cacho"}
	db.Create(&user)

	cfg := &config.Config{}
	handler := NewPushHandler(db, cfg, nil, authHandler)
	cookie := cookieFor(t, authHandler, user.ID)

	input := &SubscribeInput{}
	input.Cookie = cookie
	input.Body.Endpoint = "https://push.example.com/sub/abc"
	input.Body.Keys.P256dh = "key-one"
	input.Body.Keys.Auth = "auth-one"

	if _, err := handler.HandleSubscribe(context.Background(), input); err != nil {
		t.Fatalf("first HandleSubscribe returned error: %v", err)
	}

	// Re-subscribing from the same device refreshes the keys, not a new row.
	input.Body.Keys.P256dh = "key-two"
	input.Body.Keys.Auth = "auth-two"
	if _, err := handler.HandleSubscribe(context.Background(), input); err != nil {
		t.Fatalf("second HandleSubscribe (upsert) returned error: %v", err)
	}

	var count int64
	db.Model(&models.PushSubscription{}).Count(&count)
	if count != 1 {
		t.Errorf("expected 1 subscription in DB, got %d", count)
	}

	var sub models.PushSubscription
	if err := db.First(&sub, "endpoint = ?", input.Body.Endpoint).Error; err != nil {
		t.Fatalf("failed to find subscription: %v", err)
	}
	if sub.P256dh != "key-two" || sub.Auth != "auth-two" {
		t.Errorf("keys not refreshed: %s/%s", sub.P256dh, sub.Auth)
	}
	if sub.UserID != user.ID {
		t.Errorf("expected subscription owned by %s, got %s", user.ID, sub.UserID)
	}
}

func TestHandlePushTest(t *testing.T) {
	db := newTestDB(t)
	authHandler := newTestAuth(db)

	user := models.User{Username: "cacho", Name: "Cacho"}
	db.Create(&user)
	cookie := cookieFor(t, authHandler, user.ID)

	t.Run("without notifier", func(t *testing.T) {
		handler := NewPushHandler(db, &config.Config{}, nil, authHandler)
		input := &PushTestInput{}
		input.Cookie = cookie

		if _, err := handler.HandlePushTest(context.Background(), input); err == nil {
			t.Fatal("expected error when push is not configured, got nil")
		}
	})

	t.Run("reports sent and removed", func(t *testing.T) {
		handler := NewPushHandler(db, &config.Config{}, stubNotifier{sent: 2, removed: 1}, authHandler)
		input := &PushTestInput{}
		input.Cookie = cookie

		resp, err := handler.HandlePushTest(context.Background(), input)
		if err != nil {
			t.Fatalf("HandlePushTest returned error: %v", err)
		}
		if resp.Body.Sent != 2 || resp.Body.Removed != 1 {
			t.Errorf("expected 2 sent / 1 removed, got %d/%d", resp.Body.Sent, resp.Body.Removed)
		}
	})
}

type stubNotifier struct {
	sent    int
	removed int
}

func (s stubNotifier) PushToUser(userID string, payload notifier.Payload) (int, int, error) {
	return s.sent, s.removed, nil
}
