// Package client implements the synchronization engine behind the Peña
// view: a cookie-authenticated gateway client, a per-session Core that
// keeps the event collections fresh by polling, and optimistic mutations
// that roll back when the gateway rejects them.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"time"

	"github.com/pena-club/pena-api/internal/models"
)

var (
	// ErrUnauthorized means the gateway answered 401: there is no session.
	ErrUnauthorized = errors.New("gateway: unauthorized")
	// ErrNotFound means the requested resource does not exist.
	ErrNotFound = errors.New("gateway: not found")
)

// Gateway is the HTTP client for the Peña API. It keeps the session cookie
// in a jar and defeats intermediary caches on every read.
type Gateway struct {
	baseURL string
	http    *http.Client
}

func NewGateway(baseURL string) (*Gateway, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Gateway{
		baseURL: baseURL,
		http:    &http.Client{Jar: jar},
	}, nil
}

// Login authenticates and stores the session cookie in the jar.
func (g *Gateway) Login(ctx context.Context, username, password string) (models.User, error) {
	var out struct {
		Success bool        `json:"success"`
		User    models.User `json:"user"`
	}
	body := map[string]string{"username": username, "password": password}
	if err := g.send(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return models.User{}, err
	}
	return out.User, nil
}

func (g *Gateway) Logout(ctx context.Context) error {
	return g.send(ctx, http.MethodPost, "/auth/logout", map[string]string{}, nil)
}

// Event fetches the current (most recently created) event.
func (g *Gateway) Event(ctx context.Context) (*models.Event, error) {
	var event models.Event
	if err := g.get(ctx, "/event", &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (g *Gateway) Expenses(ctx context.Context, eventID string) ([]models.Expense, error) {
	var out []models.Expense
	err := g.get(ctx, "/event/"+url.PathEscape(eventID)+"/expenses", &out)
	return out, err
}

func (g *Gateway) Reservations(ctx context.Context, eventID string) ([]models.Reservation, error) {
	var out []models.Reservation
	err := g.get(ctx, "/event/"+url.PathEscape(eventID)+"/reservations", &out)
	return out, err
}

func (g *Gateway) Messages(ctx context.Context, eventID string) ([]models.Message, error) {
	var out []models.Message
	err := g.get(ctx, "/messages/"+url.PathEscape(eventID), &out)
	return out, err
}

func (g *Gateway) DateVotes(ctx context.Context, eventID string) ([]models.DateVote, error) {
	var out []models.DateVote
	err := g.get(ctx, "/event/"+url.PathEscape(eventID)+"/datevotes", &out)
	return out, err
}

func (g *Gateway) CreateExpense(ctx context.Context, eventID, description string, amount float64) (models.Expense, error) {
	var out models.Expense
	body := map[string]any{"eventId": eventID, "description": description, "amount": amount}
	err := g.send(ctx, http.MethodPost, "/expenses", body, &out)
	return out, err
}

func (g *Gateway) DeleteExpense(ctx context.Context, expenseID string) error {
	return g.send(ctx, http.MethodDelete, "/expenses/"+url.PathEscape(expenseID), nil, nil)
}

func (g *Gateway) CreateReservation(ctx context.Context, eventID, status string) (models.Reservation, error) {
	var out models.Reservation
	body := map[string]string{"eventId": eventID, "status": status}
	err := g.send(ctx, http.MethodPost, "/reservations", body, &out)
	return out, err
}

func (g *Gateway) UpdateReservation(ctx context.Context, reservationID, status string) (models.Reservation, error) {
	var out models.Reservation
	body := map[string]string{"status": status}
	err := g.send(ctx, http.MethodPut, "/reservations/"+url.PathEscape(reservationID), body, &out)
	return out, err
}

func (g *Gateway) SendMessage(ctx context.Context, eventID, content string) (models.Message, error) {
	var out models.Message
	body := map[string]string{"eventId": eventID, "content": content}
	err := g.send(ctx, http.MethodPost, "/messages", body, &out)
	return out, err
}

func (g *Gateway) CastVote(ctx context.Context, eventID, dateOptionID string) (models.DateVote, error) {
	var out models.DateVote
	body := map[string]string{"eventId": eventID, "dateOptionId": dateOptionID}
	err := g.send(ctx, http.MethodPost, "/datevotes", body, &out)
	return out, err
}

func (g *Gateway) UpdateEventDate(ctx context.Context, eventID string, date time.Time) (models.Event, error) {
	var out models.Event
	body := map[string]any{"date": date}
	err := g.send(ctx, http.MethodPut, "/event/"+url.PathEscape(eventID), body, &out)
	return out, err
}

// get issues a GET with a cache-busting timestamp parameter and no-cache
// headers, regardless of what the server advertises.
func (g *Gateway) get(ctx context.Context, path string, out any) error {
	u := g.baseURL + path + "?_=" + strconv.FormatInt(time.Now().UnixNano(), 10)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	return g.do(req, out)
}

func (g *Gateway) send(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return g.do(req, out)
}

func (g *Gateway) do(req *http.Request, out any) error {
	resp, err := g.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("gateway: %s %s: %s", req.Method, req.URL.Path, resp.Status)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
