package analytics

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ViewEvent is published once per successfully rendered page load.
type ViewEvent struct {
	EventID   uuid.UUID `json:"event_id"`
	Path      string    `json:"path"`
	ViewedAt  time.Time `json:"viewed_at"`
	UserAgent string    `json:"user_agent,omitempty"`
}

var ErrInvalidViewEvent = errors.New("view event needs an id, a path and a timestamp")

func (e ViewEvent) Validate() error {
	if e.EventID == uuid.Nil || strings.TrimSpace(e.Path) == "" || e.ViewedAt.IsZero() {
		return ErrInvalidViewEvent
	}
	return nil
}

// Day truncates the view time to its UTC calendar day.
func (e ViewEvent) Day() time.Time {
	return DayOf(e.ViewedAt)
}

func DayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type Totals struct {
	Total  int64            `json:"total"`
	Today  int64            `json:"today"`
	ByPath map[string]int64 `json:"by_path"`
}

type DailyViews struct {
	Day   time.Time `json:"day"`
	Path  string    `json:"path"`
	Views int64     `json:"views"`
}

// Counter keeps live counters. Increment marks the event seen and counts it as one unit,
// and reports false, without counting, for an event id it has already seen.
type Counter interface {
	Increment(ctx context.Context, event ViewEvent) (bool, error)
	Totals(ctx context.Context, day time.Time) (*Totals, error)
}

// Repository keeps the per-day rollup. AddView records the event id in the same
// transaction as the rollup and reports false for an id it already holds.
type Repository interface {
	AddView(ctx context.Context, event ViewEvent) (bool, error)
	ListRange(ctx context.Context, from, to time.Time) ([]DailyViews, error)
}
