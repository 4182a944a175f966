package voting

import (
	"testing"
	"time"
)

// 2025-11-17 is a Monday.
var monday = time.Date(2025, time.November, 17, 0, 0, 0, 0, time.UTC)

func TestWindowOpensMondayMidnight(t *testing.T) {
	open, remaining := Window(monday)
	if !open {
		t.Fatal("expected window to be open at Monday 00:00")
	}
	if remaining != 24*time.Hour {
		t.Errorf("remaining = %v, want 24h", remaining)
	}
}

func TestWindowLastSecond(t *testing.T) {
	open, remaining := Window(monday.Add(24*time.Hour - time.Second))
	if !open {
		t.Fatal("expected window to still be open one second before close")
	}
	if remaining != time.Second {
		t.Errorf("remaining = %v, want 1s", remaining)
	}
}

func TestWindowClosesAfter24Hours(t *testing.T) {
	open, remaining := Window(monday.Add(24 * time.Hour))
	if open {
		t.Fatal("expected window to be closed at Monday 00:00 + 24h")
	}
	// Counts down to the following Monday.
	if want := 6 * 24 * time.Hour; remaining != want {
		t.Errorf("remaining = %v, want %v", remaining, want)
	}
}

func TestWindowClosedMidweek(t *testing.T) {
	wednesdayNoon := time.Date(2025, time.November, 19, 12, 0, 0, 0, time.UTC)
	open, remaining := Window(wednesdayNoon)
	if open {
		t.Fatal("expected window to be closed on Wednesday noon")
	}
	nextMonday := time.Date(2025, time.November, 24, 0, 0, 0, 0, time.UTC)
	if want := nextMonday.Sub(wednesdayNoon); remaining != want {
		t.Errorf("remaining = %v, want %v", remaining, want)
	}
}

func TestWindowClosedSundayNight(t *testing.T) {
	sunday := time.Date(2025, time.November, 23, 23, 59, 59, 0, time.UTC)
	open, remaining := Window(sunday)
	if open {
		t.Fatal("expected window to be closed on Sunday night")
	}
	if remaining != time.Second {
		t.Errorf("remaining = %v, want 1s", remaining)
	}
}

func TestWindowNeverNegative(t *testing.T) {
	for hours := 0; hours < 7*24; hours++ {
		_, remaining := Window(monday.Add(time.Duration(hours) * time.Hour))
		if remaining < 0 {
			t.Fatalf("remaining negative at +%dh: %v", hours, remaining)
		}
	}
}
