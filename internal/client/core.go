package client

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/pena-club/pena-api/internal/models"
	"go.uber.org/zap"
)

// DefaultPollInterval is how often the two high-churn collections
// (messages and date votes) are re-fetched.
const DefaultPollInterval = 2 * time.Second

// State holds the event record and the five independently fetched
// collections. Every successful fetch replaces a collection wholesale;
// there is no incremental merge.
type State struct {
	Event        *models.Event
	NoEvent      bool
	Expenses     []models.Expense
	Reservations []models.Reservation
	Messages     []models.Message
	DateVotes    []models.DateVote
}

// VoteOptionIDs returns the option id of every vote, in list order. This is
// the input shape voting.Tally and voting.Winner expect.
func (s State) VoteOptionIDs() []string {
	ids := make([]string, 0, len(s.DateVotes))
	for _, v := range s.DateVotes {
		ids = append(ids, v.DateOptionID)
	}
	return ids
}

// Core is the per-session synchronization engine. One instance per active
// session; Start begins the initial load and the poll loop, Stop tears both
// down deterministically. All collection state lives behind the mutex, so a
// mutation racing the poller can never interleave half-applied.
type Core struct {
	gw           *Gateway
	log          *zap.Logger
	pollInterval time.Duration
	adminUser    string
	sessionPath  string
	notify       func(string)

	user models.User

	mu    sync.Mutex
	state State

	stop chan struct{}
	wg   sync.WaitGroup
}

type Option func(*Core)

func WithLogger(l *zap.Logger) Option {
	return func(c *Core) { c.log = l }
}

func WithPollInterval(d time.Duration) Option {
	return func(c *Core) { c.pollInterval = d }
}

// WithAdminUser sets the distinguished username that may delete anyone's
// expenses.
func WithAdminUser(username string) Option {
	return func(c *Core) { c.adminUser = username }
}

func WithSessionPath(path string) Option {
	return func(c *Core) { c.sessionPath = path }
}

// WithNotify installs the user-facing failure notice callback. Failed
// mutations report through it after rolling back.
func WithNotify(fn func(msg string)) Option {
	return func(c *Core) { c.notify = fn }
}

// WithUser sets the session identity directly, skipping the cached-session
// read on Start.
func WithUser(u models.User) Option {
	return func(c *Core) { c.user = u }
}

func New(gw *Gateway, opts ...Option) *Core {
	c := &Core{
		gw:           gw,
		log:          zap.NewNop(),
		pollInterval: DefaultPollInterval,
		adminUser:    "admin",
		sessionPath:  DefaultSessionPath(),
		notify:       func(string) {},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// User returns the session identity the core acts as.
func (c *Core) User() models.User { return c.user }

// Start runs the initial load sequence: cached identity from disk (a parse
// failure is logged, not fatal), then the event, then all four collections
// concurrently, then the poll loop. When the event cannot be loaded the
// core parks in the terminal NoEvent state and no poller is started.
func (c *Core) Start(ctx context.Context) {
	if c.user.ID == "" {
		if s, err := LoadSession(c.sessionPath); err != nil {
			c.log.Warn("cached session unreadable", zap.Error(err))
		} else {
			c.user = s.User
		}
	}

	event, err := c.gw.Event(ctx)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.log.Info("no event exists yet")
		} else {
			c.log.Warn("event load failed", zap.Error(err))
		}
		c.mu.Lock()
		c.state.NoEvent = true
		c.mu.Unlock()
		return
	}
	c.mu.Lock()
	c.state.Event = event
	c.mu.Unlock()

	c.RefreshAll(ctx, event.ID)

	c.stop = make(chan struct{})
	c.wg.Add(1)
	go c.poll(ctx, event.ID)
}

// Stop cancels the poll loop and waits for in-flight fetches it spawned, so
// no state update can land after teardown.
func (c *Core) Stop() {
	if c.stop == nil {
		return
	}
	close(c.stop)
	c.wg.Wait()
	c.stop = nil
}

// Snapshot returns a copy of the current state, safe to read while the core
// keeps running.
func (c *Core) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := State{
		NoEvent:      c.state.NoEvent,
		Expenses:     slices.Clone(c.state.Expenses),
		Reservations: slices.Clone(c.state.Reservations),
		Messages:     slices.Clone(c.state.Messages),
		DateVotes:    slices.Clone(c.state.DateVotes),
	}
	if c.state.Event != nil {
		event := *c.state.Event
		s.Event = &event
	}
	return s
}

// RefreshAll re-fetches expenses, reservations, messages and date votes
// concurrently and waits for all four to settle. Each fetcher no-ops on
// failure, so one broken endpoint never blocks the others.
func (c *Core) RefreshAll(ctx context.Context, eventID string) {
	fetchers := []func(context.Context, string){
		c.fetchExpenses,
		c.fetchReservations,
		c.fetchMessages,
		c.fetchDateVotes,
	}
	var wg sync.WaitGroup
	for _, fetch := range fetchers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fetch(ctx, eventID)
		}()
	}
	wg.Wait()
}

func (c *Core) poll(ctx context.Context, eventID string) {
	defer c.wg.Done()
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Only the two high-churn collections are polled.
			var wg sync.WaitGroup
			wg.Add(2)
			go func() {
				defer wg.Done()
				c.fetchMessages(ctx, eventID)
			}()
			go func() {
				defer wg.Done()
				c.fetchDateVotes(ctx, eventID)
			}()
			wg.Wait()
		}
	}
}

// The fetchers replace their collection wholesale on success and keep the
// previous data on failure (stale-but-available).

func (c *Core) fetchExpenses(ctx context.Context, eventID string) {
	expenses, err := c.gw.Expenses(ctx, eventID)
	if err != nil {
		c.log.Warn("expenses fetch failed", zap.Error(err))
		return
	}
	c.mu.Lock()
	c.state.Expenses = expenses
	c.mu.Unlock()
}

func (c *Core) fetchReservations(ctx context.Context, eventID string) {
	reservations, err := c.gw.Reservations(ctx, eventID)
	if err != nil {
		c.log.Warn("reservations fetch failed", zap.Error(err))
		return
	}
	c.mu.Lock()
	c.state.Reservations = reservations
	c.mu.Unlock()
}

func (c *Core) fetchMessages(ctx context.Context, eventID string) {
	messages, err := c.gw.Messages(ctx, eventID)
	if err != nil {
		c.log.Warn("messages fetch failed", zap.Error(err))
		return
	}
	c.mu.Lock()
	c.state.Messages = messages
	c.mu.Unlock()
}

func (c *Core) fetchDateVotes(ctx context.Context, eventID string) {
	votes, err := c.gw.DateVotes(ctx, eventID)
	if err != nil {
		c.log.Warn("date votes fetch failed", zap.Error(err))
		return
	}
	c.mu.Lock()
	c.state.DateVotes = votes
	c.mu.Unlock()
}

func (c *Core) currentEvent() *models.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Event
}

func (c *Core) isAdmin() bool {
	return c.user.Username == c.adminUser
}
