package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrHabitNameEmpty   = errors.New("habit name cannot be empty")
	ErrHabitNameTooLong = errors.New("habit name is too long (max 100 chars)")
	ErrHabitDescTooLong = errors.New("habit description is too long (max 500 chars)")
	ErrInvalidWeekday   = errors.New("invalid weekday key (must be sun..sat)")
)

const (
	MaxNameLen = 100
	MaxDescLen = 500
)

// HabitStats is the running completion statistics carried on every habit.
// LastCompletedDate is an ISO date; nil means the habit was never completed
// (or its latest completion was reverted).
type HabitStats struct {
	TotalCompleted    int     `json:"totalCompleted"`
	LastCompletedDate *string `json:"lastCompletedDate,omitempty"`
	Streak            int     `json:"streak"`
}

type Habit struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Days        []Weekday  `json:"days"`
	Done        bool       `json:"done"`
	Stats       HabitStats `json:"stats"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func validateAndNormalize(name, desc string, days []Weekday) (string, []Weekday, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", nil, ErrHabitNameEmpty
	}
	if len(trimmed) > MaxNameLen {
		return "", nil, ErrHabitNameTooLong
	}
	if len(strings.TrimSpace(desc)) > MaxDescLen {
		return "", nil, ErrHabitDescTooLong
	}

	for _, d := range days {
		if _, err := ParseWeekday(string(d)); err != nil {
			return "", nil, err
		}
	}

	return trimmed, normalizeDays(days), nil
}

// normalizeDays removes duplicates and orders the schedule Sunday first.
func normalizeDays(days []Weekday) []Weekday {
	if len(days) == 0 {
		return nil
	}

	seen := make(map[Weekday]bool, len(days))
	for _, d := range days {
		seen[d] = true
	}

	var normalized []Weekday
	for _, d := range AllWeekdays {
		if seen[d] {
			normalized = append(normalized, d)
		}
	}
	return normalized
}

func NewHabit(name, description string, days []Weekday) (*Habit, error) {
	cleanName, cleanDays, err := validateAndNormalize(name, description, days)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	return &Habit{
		ID:          uuid.New().String(),
		Name:        cleanName,
		Description: strings.TrimSpace(description),
		Days:        cleanDays,
		Done:        false,
		Stats:       HabitStats{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (h *Habit) Update(name, description string, days []Weekday) error {
	cleanName, cleanDays, err := validateAndNormalize(name, description, days)
	if err != nil {
		return err
	}

	h.Name = cleanName
	h.Description = strings.TrimSpace(description)
	h.Days = cleanDays
	h.UpdatedAt = time.Now().UTC()

	return nil
}

// ScheduledOn reports whether the habit recurs on the given weekday.
func (h *Habit) ScheduledOn(day Weekday) bool {
	for _, d := range h.Days {
		if d == day {
			return true
		}
	}
	return false
}

// ApplyCompletion records a completion for the given ISO date: marks the
// habit done, bumps the all-time count and the streak.
func (h *Habit) ApplyCompletion(date string) {
	h.Done = true
	h.Stats.TotalCompleted++
	h.Stats.LastCompletedDate = &date
	h.Stats.Streak++
	h.UpdatedAt = time.Now().UTC()
}

// RevertCompletion undoes a completion. The all-time count never goes below
// zero; the streak always resets.
func (h *Habit) RevertCompletion() {
	h.Done = false
	if h.Stats.TotalCompleted > 0 {
		h.Stats.TotalCompleted--
	}
	h.Stats.LastCompletedDate = nil
	h.Stats.Streak = 0
	h.UpdatedAt = time.Now().UTC()
}

// Clone returns an independent copy of the habit.
func (h *Habit) Clone() *Habit {
	c := *h
	if h.Days != nil {
		c.Days = append([]Weekday(nil), h.Days...)
	}
	if h.Stats.LastCompletedDate != nil {
		d := *h.Stats.LastCompletedDate
		c.Stats.LastCompletedDate = &d
	}
	return &c
}
