package voting

import "time"

// WindowLength is how long the weekly voting window stays open, starting at
// Monday 00:00 local time.
const WindowLength = 24 * time.Hour

// Window reports whether voting is open at t, and how long remains: until
// the window closes when open, or until the next window opens when closed.
// Remaining never goes negative.
func Window(t time.Time) (open bool, remaining time.Duration) {
	// Weekday is Sunday=0..Saturday=6; back up (day+6)%7 days to Monday.
	day := int(t.Weekday())
	offset := (day + 6) % 7
	monday := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()).AddDate(0, 0, -offset)
	closeAt := monday.Add(WindowLength)

	if !t.Before(monday) && t.Before(closeAt) {
		return true, closeAt.Sub(t)
	}

	next := monday
	if !t.Before(monday) {
		next = monday.AddDate(0, 0, 7)
	}
	remaining = next.Sub(t)
	if remaining < 0 {
		remaining = 0
	}
	return false, remaining
}
