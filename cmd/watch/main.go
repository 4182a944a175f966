// Command watch logs into a Peña server, runs the synchronization core and
// the voting-window clock, and prints the shared state as it changes. It is
// the terminal stand-in for the web view.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/pena-club/pena-api/internal/client"
	"github.com/pena-club/pena-api/internal/voting"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	server := flag.String("server", "http://127.0.0.1:8080", "Peña server base URL")
	username := flag.String("user", "", "username to log in with")
	password := flag.String("pass", "", "password to log in with")
	admin := flag.String("admin", "admin", "distinguished admin username")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	gw, err := client.NewGateway(*server)
	if err != nil {
		logger.Fatal("gateway init failed", zap.Error(err))
	}

	ctx := context.Background()
	sessionPath := client.DefaultSessionPath()

	opts := []client.Option{
		client.WithLogger(logger),
		client.WithAdminUser(*admin),
		client.WithSessionPath(sessionPath),
		client.WithNotify(func(msg string) { logger.Warn(msg) }),
	}
	if *username != "" {
		user, err := gw.Login(ctx, *username, *password)
		if err != nil {
			logger.Fatal("login failed", zap.Error(err))
		}
		if err := client.SaveSession(sessionPath, client.Session{User: user}); err != nil {
			logger.Warn("could not cache session", zap.Error(err))
		}
		opts = append(opts, client.WithUser(user))
	}

	core := client.New(gw, opts...)
	core.Start(ctx)
	defer core.Stop()

	if core.Snapshot().NoEvent {
		logger.Fatal("no event available; seed the server first")
	}

	clock := voting.NewClock()
	var lastOpen *bool
	clock.Start(func(t voting.Tick) {
		if lastOpen == nil || *lastOpen != t.Open {
			open := t.Open
			lastOpen = &open
			logger.Info("voting window",
				zap.Bool("open", t.Open),
				zap.Duration("remaining", t.Remaining.Truncate(time.Second)))
		}
	})
	defer clock.Stop()

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-sig:
			logger.Info("shutting down")
			return
		case <-ticker.C:
			printState(core)
		}
	}
}

func printState(core *client.Core) {
	s := core.Snapshot()
	if s.Event == nil {
		fmt.Println("no event")
		return
	}

	var total float64
	for _, e := range s.Expenses {
		total += e.Amount
	}
	confirmed := 0
	for _, r := range s.Reservations {
		if r.Status == "CONFIRMED" {
			confirmed++
		}
	}

	fmt.Printf("event %s on %s | %d expenses ($%.2f) | %d/%d confirmed | %d messages\n",
		s.Event.ID, s.Event.Date.Format("2006-01-02"),
		len(s.Expenses), total, confirmed, len(s.Reservations), len(s.Messages))

	counts, order := voting.Tally(s.VoteOptionIDs())
	for _, id := range order {
		fmt.Printf("  option %s: %d votes\n", id, counts[id])
	}
	if winner, ok := voting.Winner(s.VoteOptionIDs()); ok {
		fmt.Printf("  leading option: %s\n", winner)
	}
}
