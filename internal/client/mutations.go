package client

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pena-club/pena-api/internal/models"
	"github.com/pena-club/pena-api/internal/voting"
	"go.uber.org/zap"
)

// ErrNotAllowed is returned when the session user may not perform the
// mutation (e.g. deleting someone else's expense without being admin).
var ErrNotAllowed = errors.New("not allowed")

// tempID marks a record as optimistic-only. Temporary records are never
// reconciled in place; the post-write re-fetch replaces them wholesale.
func tempID() string {
	return "temp-" + uuid.NewString()
}

func expensesOf(s *State) *[]models.Expense         { return &s.Expenses }
func reservationsOf(s *State) *[]models.Reservation { return &s.Reservations }
func messagesOf(s *State) *[]models.Message         { return &s.Messages }
func dateVotesOf(s *State) *[]models.DateVote       { return &s.DateVotes }

// AddExpense inserts the expense optimistically and posts it to the
// gateway. Missing description or a non-positive amount is ignored, the
// same way the entry form ignores an empty submit.
func (c *Core) AddExpense(ctx context.Context, description string, amount float64) error {
	description = strings.TrimSpace(description)
	if description == "" || amount <= 0 {
		return nil
	}
	event := c.currentEvent()
	if event == nil {
		return nil
	}

	now := time.Now()
	temp := models.Expense{
		ID:          tempID(),
		EventID:     event.ID,
		UserID:      c.user.ID,
		Description: description,
		Amount:      amount,
		User:        &models.User{Name: c.user.Name},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := optimistic(ctx, c, expensesOf,
		func(expenses []models.Expense) []models.Expense {
			return append(expenses, temp)
		},
		func(ctx context.Context) error {
			_, err := c.gw.CreateExpense(ctx, event.ID, description, amount)
			return err
		},
		func(ctx context.Context) {
			c.fetchExpenses(ctx, event.ID)
		},
	)
	if err != nil {
		c.log.Warn("add expense failed", zap.Error(err))
		c.notify("No se pudo agregar el gasto")
	}
	return err
}

// DeleteExpense removes an expense owned by the session user (or anyone's,
// when the user is admin). On gateway failure the whole pre-delete
// collection is restored, not just the removed record.
func (c *Core) DeleteExpense(ctx context.Context, expenseID string) error {
	c.mu.Lock()
	idx := slices.IndexFunc(c.state.Expenses, func(e models.Expense) bool { return e.ID == expenseID })
	if idx < 0 {
		c.mu.Unlock()
		return nil
	}
	owner := c.state.Expenses[idx].UserID
	c.mu.Unlock()

	if owner != c.user.ID && !c.isAdmin() {
		return ErrNotAllowed
	}
	event := c.currentEvent()
	if event == nil {
		return nil
	}

	err := optimistic(ctx, c, expensesOf,
		func(expenses []models.Expense) []models.Expense {
			return slices.DeleteFunc(expenses, func(e models.Expense) bool { return e.ID == expenseID })
		},
		func(ctx context.Context) error {
			return c.gw.DeleteExpense(ctx, expenseID)
		},
		func(ctx context.Context) {
			c.fetchExpenses(ctx, event.ID)
		},
	)
	if err != nil {
		c.log.Warn("delete expense failed", zap.Error(err))
		c.notify("No se pudo borrar el gasto")
	}
	return err
}

// SendMessage appends the message optimistically and posts it. Blank
// content is ignored.
func (c *Core) SendMessage(ctx context.Context, content string) error {
	if strings.TrimSpace(content) == "" {
		return nil
	}
	event := c.currentEvent()
	if event == nil {
		return nil
	}

	now := time.Now()
	temp := models.Message{
		ID:        tempID(),
		EventID:   event.ID,
		UserID:    c.user.ID,
		Content:   content,
		User:      &models.User{Name: c.user.Name},
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := optimistic(ctx, c, messagesOf,
		func(messages []models.Message) []models.Message {
			return append(messages, temp)
		},
		func(ctx context.Context) error {
			_, err := c.gw.SendMessage(ctx, event.ID, content)
			return err
		},
		func(ctx context.Context) {
			c.fetchMessages(ctx, event.ID)
		},
	)
	if err != nil {
		c.log.Warn("send message failed", zap.Error(err))
		c.notify("No se pudo enviar el mensaje")
	}
	return err
}

// SetReservationStatus updates the session user's RSVP, creating the
// reservation when they have none yet.
func (c *Core) SetReservationStatus(ctx context.Context, status string) error {
	if !models.ValidReservationStatus(status) {
		return nil
	}
	event := c.currentEvent()
	if event == nil {
		return nil
	}

	c.mu.Lock()
	idx := slices.IndexFunc(c.state.Reservations, func(r models.Reservation) bool { return r.UserID == c.user.ID })
	var reservationID string
	if idx >= 0 {
		reservationID = c.state.Reservations[idx].ID
	}
	c.mu.Unlock()

	var err error
	if reservationID != "" {
		err = optimistic(ctx, c, reservationsOf,
			func(reservations []models.Reservation) []models.Reservation {
				for i := range reservations {
					if reservations[i].ID == reservationID {
						reservations[i].Status = status
						reservations[i].UpdatedAt = time.Now()
					}
				}
				return reservations
			},
			func(ctx context.Context) error {
				_, err := c.gw.UpdateReservation(ctx, reservationID, status)
				return err
			},
			func(ctx context.Context) {
				c.fetchReservations(ctx, event.ID)
			},
		)
	} else {
		now := time.Now()
		temp := models.Reservation{
			ID:        tempID(),
			EventID:   event.ID,
			UserID:    c.user.ID,
			Status:    status,
			User:      &models.User{Name: c.user.Name},
			CreatedAt: now,
			UpdatedAt: now,
		}
		err = optimistic(ctx, c, reservationsOf,
			func(reservations []models.Reservation) []models.Reservation {
				return append(reservations, temp)
			},
			func(ctx context.Context) error {
				_, err := c.gw.CreateReservation(ctx, event.ID, status)
				return err
			},
			func(ctx context.Context) {
				c.fetchReservations(ctx, event.ID)
			},
		)
	}
	if err != nil {
		c.log.Warn("reservation update failed", zap.Error(err))
		c.notify("No se pudo actualizar la reserva")
	}
	return err
}

// CastVote replaces the session user's vote with one for the given option,
// mirroring the server's one-vote-per-user upsert. After a successful
// write, the winner is resolved from the optimistic local vote set; when
// the just-voted option is the unique strict winner, the event date is
// confirmed to that option's date. Votes are then re-fetched for display.
func (c *Core) CastVote(ctx context.Context, dateOptionID string) error {
	event := c.currentEvent()
	if event == nil {
		return nil
	}
	optIdx := slices.IndexFunc(event.DateOptions, func(o models.DateOption) bool { return o.ID == dateOptionID })
	if optIdx < 0 {
		return nil
	}
	optionDate := event.DateOptions[optIdx].Date

	now := time.Now()
	temp := models.DateVote{
		ID:           tempID(),
		EventID:      event.ID,
		UserID:       c.user.ID,
		DateOptionID: dateOptionID,
		User:         &models.User{Name: c.user.Name},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := optimistic(ctx, c, dateVotesOf,
		func(votes []models.DateVote) []models.DateVote {
			votes = slices.DeleteFunc(votes, func(v models.DateVote) bool { return v.UserID == c.user.ID })
			return append(votes, temp)
		},
		func(ctx context.Context) error {
			_, err := c.gw.CastVote(ctx, event.ID, dateOptionID)
			return err
		},
		func(ctx context.Context) {
			// Decide auto-confirmation from the optimistic local set, not
			// the refetched one.
			if winner, ok := voting.Winner(c.Snapshot().VoteOptionIDs()); ok && winner == dateOptionID {
				c.confirmEventDate(ctx, event.ID, optionDate)
			}
			c.fetchDateVotes(ctx, event.ID)
		},
	)
	if err != nil {
		c.log.Warn("cast vote failed", zap.Error(err))
		c.notify("No se pudo registrar el voto")
	}
	return err
}

func (c *Core) confirmEventDate(ctx context.Context, eventID string, date time.Time) {
	updated, err := c.gw.UpdateEventDate(ctx, eventID, date)
	if err != nil {
		c.log.Warn("event date confirmation failed", zap.Error(err))
		return
	}
	c.mu.Lock()
	if c.state.Event != nil && c.state.Event.ID == eventID {
		c.state.Event.Date = updated.Date
		c.state.Event.UpdatedAt = updated.UpdatedAt
	}
	c.mu.Unlock()
}
