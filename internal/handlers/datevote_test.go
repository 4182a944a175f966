package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/pena-club/pena-api/internal/models"
)

func TestHandleCastDateVote(t *testing.T) {
	db := newTestDB(t)
	authHandler := newTestAuth(db)

	user := models.User{Username: "mondi", Name: "Mondi"}
	db.Create(&user)
	event := models.Event{OwnerID: user.ID, Date: time.Now().Add(7 * 24 * time.Hour)}
	db.Create(&event)
	optionA := models.DateOption{EventID: event.ID, Date: time.Now().Add(8 * 24 * time.Hour)}
	optionB := models.DateOption{EventID: event.ID, Date: time.Now().Add(9 * 24 * time.Hour)}
	db.Create(&optionA)
	db.Create(&optionB)

	handler := NewDateVoteHandler(db, authHandler)
	cookie := cookieFor(t, authHandler, user.ID)

	input := &CastDateVoteInput{}
	input.Cookie = cookie
	input.Body.EventID = event.ID
	input.Body.DateOptionID = optionA.ID

	resp, err := handler.HandleCastDateVote(context.Background(), input)
	if err != nil {
		t.Fatalf("first HandleCastDateVote returned error: %v", err)
	}
	if resp.Body.DateOptionID != optionA.ID {
		t.Errorf("expected vote for %s, got %s", optionA.ID, resp.Body.DateOptionID)
	}

	// Voting again replaces the previous vote instead of adding one.
	input.Body.DateOptionID = optionB.ID
	resp, err = handler.HandleCastDateVote(context.Background(), input)
	if err != nil {
		t.Fatalf("second HandleCastDateVote (upsert) returned error: %v", err)
	}
	if resp.Body.DateOptionID != optionB.ID {
		t.Errorf("expected replaced vote for %s, got %s", optionB.ID, resp.Body.DateOptionID)
	}

	var count int64
	db.Model(&models.DateVote{}).Where("event_id = ? AND user_id = ?", event.ID, user.ID).Count(&count)
	if count != 1 {
		t.Errorf("expected 1 vote in DB, got %d", count)
	}
}

func TestHandleCastDateVoteRejectsForeignOption(t *testing.T) {
	db := newTestDB(t)
	authHandler := newTestAuth(db)

	user := models.User{Username: "mondi", Name: "Mondi"}
	db.Create(&user)
	event := models.Event{OwnerID: user.ID, Date: time.Now()}
	otherEvent := models.Event{OwnerID: user.ID, Date: time.Now()}
	db.Create(&event)
	db.Create(&otherEvent)
	foreignOption := models.DateOption{EventID: otherEvent.ID, Date: time.Now().Add(24 * time.Hour)}
	db.Create(&foreignOption)

	handler := NewDateVoteHandler(db, authHandler)

	input := &CastDateVoteInput{}
	input.Cookie = cookieFor(t, authHandler, user.ID)
	input.Body.EventID = event.ID
	input.Body.DateOptionID = foreignOption.ID

	if _, err := handler.HandleCastDateVote(context.Background(), input); err == nil {
		t.Fatal("expected error for option from another event, got nil")
	}

	var count int64
	db.Model(&models.DateVote{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no votes in DB, got %d", count)
	}
}

func TestHandleListDateVotes(t *testing.T) {
	db := newTestDB(t)
	authHandler := newTestAuth(db)

	user := models.User{Username: "mondi", Name: "Mondi"}
	db.Create(&user)
	db.Create(&models.DateVote{EventID: "ev1", UserID: user.ID, DateOptionID: "opt1"})
	db.Create(&models.DateVote{EventID: "ev2", UserID: user.ID, DateOptionID: "opt9"})

	handler := NewDateVoteHandler(db, authHandler)

	input := &ListDateVotesInput{EventID: "ev1"}
	input.Cookie = cookieFor(t, authHandler, user.ID)

	resp, err := handler.HandleListDateVotes(context.Background(), input)
	if err != nil {
		t.Fatalf("HandleListDateVotes returned error: %v", err)
	}
	if len(resp.Body) != 1 {
		t.Fatalf("expected 1 vote for ev1, got %d", len(resp.Body))
	}
	if resp.Body[0].User == nil || resp.Body[0].User.Name != "Mondi" {
		t.Errorf("expected preloaded voter, got %+v", resp.Body[0].User)
	}
}
