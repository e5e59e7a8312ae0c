package domain

import (
	"errors"
	"time"
)

var (
	ErrEntryNotFound         = errors.New("entry not found")
	ErrCompletedNotScheduled = errors.New("completed habit is not in the scheduled set")
)

// ScheduledHabit is a reference to a habit due on a given date.
type ScheduledHabit struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CompletedHabit is a reference to a habit completed on a given date,
// carrying the completion timestamp and the streak at completion.
type CompletedHabit struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	CompletedAt time.Time `json:"completedAt"`
	Streak      int       `json:"streak"`
}

type EntryStats struct {
	CompletionRate float64 `json:"completionRate"`
}

// Entry is the per-calendar-date completion record. The date is the unique
// key: at most one entry exists per date. CompletedHabits is always a subset
// of ScheduledHabits by id, and the completion rate is derived from the two
// sets, never tracked independently.
type Entry struct {
	ID              string           `json:"id,omitempty"`
	Date            string           `json:"date"`
	ScheduledHabits []ScheduledHabit `json:"scheduledHabits"`
	CompletedHabits []CompletedHabit `json:"completedHabits"`
	Stats           EntryStats       `json:"stats"`
}

// NewEntryForDate synthesizes a fresh entry for a date with no record yet.
// The scheduled set is every habit due on that date's weekday.
func NewEntryForDate(date string, habits []*Habit) (*Entry, error) {
	day, err := ParseISODate(date)
	if err != nil {
		return nil, err
	}

	e := &Entry{
		Date:            date,
		ScheduledHabits: []ScheduledHabit{},
		CompletedHabits: []CompletedHabit{},
	}

	key := WeekdayKeyOf(day)
	for _, h := range habits {
		if h.ScheduledOn(key) {
			e.ScheduledHabits = append(e.ScheduledHabits, ScheduledHabit{ID: h.ID, Name: h.Name})
		}
	}

	e.Recalculate()
	return e, nil
}

// Recalculate rederives the completion rate from the two sets.
func (e *Entry) Recalculate() {
	if len(e.ScheduledHabits) == 0 {
		e.Stats.CompletionRate = 0
		return
	}
	e.Stats.CompletionRate = float64(len(e.CompletedHabits)) / float64(len(e.ScheduledHabits)) * 100
}

// IsScheduled reports whether the habit id is in the scheduled set.
func (e *Entry) IsScheduled(id string) bool {
	for _, s := range e.ScheduledHabits {
		if s.ID == id {
			return true
		}
	}
	return false
}

// IsCompleted reports whether the habit id is in the completed set.
func (e *Entry) IsCompleted(id string) bool {
	for _, c := range e.CompletedHabits {
		if c.ID == id {
			return true
		}
	}
	return false
}

// AddCompleted records a completion. Idempotent by id: a habit already in
// the completed set is not duplicated. The habit is added to the scheduled
// set if missing so the subset invariant holds.
func (e *Entry) AddCompleted(id, name string, at time.Time, streak int) {
	if !e.IsScheduled(id) {
		e.ScheduledHabits = append(e.ScheduledHabits, ScheduledHabit{ID: id, Name: name})
	}
	if !e.IsCompleted(id) {
		e.CompletedHabits = append(e.CompletedHabits, CompletedHabit{
			ID:          id,
			Name:        name,
			CompletedAt: at,
			Streak:      streak,
		})
	}
	e.Recalculate()
}

// RemoveCompleted drops the habit id from the completed set. Removing an
// absent id is a no-op.
func (e *Entry) RemoveCompleted(id string) {
	kept := e.CompletedHabits[:0]
	for _, c := range e.CompletedHabits {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	e.CompletedHabits = kept
	e.Recalculate()
}

func (e *Entry) Validate() error {
	if !IsValidDateString(e.Date) {
		return ErrInvalidDate
	}
	for _, c := range e.CompletedHabits {
		if !e.IsScheduled(c.ID) {
			return ErrCompletedNotScheduled
		}
	}
	return nil
}

// Clone returns an independent copy of the entry.
func (e *Entry) Clone() *Entry {
	c := *e
	c.ScheduledHabits = append([]ScheduledHabit(nil), e.ScheduledHabits...)
	c.CompletedHabits = append([]CompletedHabit(nil), e.CompletedHabits...)
	return &c
}
