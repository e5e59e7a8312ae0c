package domain

import "context"

// HabitRepository is the server-side persistence contract for habits.
type HabitRepository interface {
	Create(ctx context.Context, habit *Habit) error
	GetByID(ctx context.Context, id string) (*Habit, error)
	List(ctx context.Context) ([]*Habit, error)
	Update(ctx context.Context, habit *Habit) error
	Delete(ctx context.Context, id string) error
}

// EntryRepository is the server-side persistence contract for completion
// entries. Entries are keyed by date; Upsert creates or replaces the
// record for entry.Date.
type EntryRepository interface {
	GetByDate(ctx context.Context, date string) (*Entry, error)
	Upsert(ctx context.Context, entry *Entry) error
	ListByMonth(ctx context.Context, year, month int) ([]*Entry, error)
}
