package domain

import (
	"context"
	"errors"
	"fmt"
)

var ErrHabitNotFound = errors.New("habit not found")

// TransportError wraps a network or server-side failure reaching the remote
// record-keeping API. It is never recovered locally; callers roll back any
// optimistic state and surface it.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("gateway %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransportError reports whether err is (or wraps) a TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// Gateway is the remote persistence boundary. The client core owns no
// durable storage; every durable read and write goes through here.
//
// Error contract: habit operations on an unknown id fail with
// ErrHabitNotFound, GetEntry on a date with no record fails with
// ErrEntryNotFound, and any network or server failure surfaces as a
// *TransportError. Transport policy (timeouts, retries) belongs to the
// implementation, not to callers.
type Gateway interface {
	ListHabits(ctx context.Context) ([]*Habit, error)
	CreateHabit(ctx context.Context, habit *Habit) (*Habit, error)
	UpsertHabit(ctx context.Context, id string, habit *Habit) (*Habit, error)
	DeleteHabit(ctx context.Context, id string) error

	GetEntry(ctx context.Context, date string) (*Entry, error)
	UpsertEntry(ctx context.Context, date string, entry *Entry) (*Entry, error)
	ListEntriesForMonth(ctx context.Context, year, month int) ([]*Entry, error)

	// GetMonthlyStats returns the gateway's pre-aggregated dashboard stats.
	// The client treats the payload as opaque and never recomputes it.
	GetMonthlyStats(ctx context.Context, year, month int) (*MonthlyStats, error)
}
