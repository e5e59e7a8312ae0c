package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vaneapp/vane/internal/core/domain"
)

func mustHabit(t *testing.T, name string, days ...domain.Weekday) *domain.Habit {
	t.Helper()
	h, err := domain.NewHabit(name, "", days)
	assert.NoError(t, err)
	return h
}

func TestNewEntryForDate(t *testing.T) {
	t.Run("Success: schedules only habits due on that weekday", func(t *testing.T) {
		gym := mustHabit(t, "Gym", domain.Monday)
		read := mustHabit(t, "Read", domain.Monday, domain.Friday)
		rest := mustHabit(t, "Rest", domain.Sunday)

		// 2024-01-08 is a Monday.
		e, err := domain.NewEntryForDate("2024-01-08", []*domain.Habit{gym, read, rest})
		assert.NoError(t, err)

		assert.Equal(t, "2024-01-08", e.Date)
		assert.Len(t, e.ScheduledHabits, 2)
		assert.True(t, e.IsScheduled(gym.ID))
		assert.True(t, e.IsScheduled(read.ID))
		assert.False(t, e.IsScheduled(rest.ID))
		assert.Empty(t, e.CompletedHabits)
		assert.Equal(t, 0.0, e.Stats.CompletionRate)
	})

	t.Run("Success: empty habit list gives empty sets, not nil", func(t *testing.T) {
		e, err := domain.NewEntryForDate("2024-01-08", nil)
		assert.NoError(t, err)
		assert.NotNil(t, e.ScheduledHabits)
		assert.NotNil(t, e.CompletedHabits)
	})

	t.Run("Error: invalid date", func(t *testing.T) {
		_, err := domain.NewEntryForDate("not-a-date", nil)
		assert.ErrorIs(t, err, domain.ErrInvalidDate)
	})
}

func TestEntry_AddCompleted(t *testing.T) {
	at := time.Date(2024, 1, 8, 9, 30, 0, 0, time.UTC)

	t.Run("Success: adds to completed set and recomputes rate", func(t *testing.T) {
		gym := mustHabit(t, "Gym", domain.Monday)
		read := mustHabit(t, "Read", domain.Monday)
		e, err := domain.NewEntryForDate("2024-01-08", []*domain.Habit{gym, read})
		assert.NoError(t, err)

		e.AddCompleted(gym.ID, gym.Name, at, 3)

		assert.True(t, e.IsCompleted(gym.ID))
		assert.Equal(t, 50.0, e.Stats.CompletionRate)
		assert.Equal(t, 3, e.CompletedHabits[0].Streak)
		assert.Equal(t, at, e.CompletedHabits[0].CompletedAt)
	})

	t.Run("Idempotent: a second add does not duplicate", func(t *testing.T) {
		gym := mustHabit(t, "Gym", domain.Monday)
		e, err := domain.NewEntryForDate("2024-01-08", []*domain.Habit{gym})
		assert.NoError(t, err)

		e.AddCompleted(gym.ID, gym.Name, at, 1)
		e.AddCompleted(gym.ID, gym.Name, at, 1)

		assert.Len(t, e.CompletedHabits, 1)
		assert.Equal(t, 100.0, e.Stats.CompletionRate)
	})

	t.Run("Unscheduled habit joins the scheduled set too", func(t *testing.T) {
		e, err := domain.NewEntryForDate("2024-01-08", nil)
		assert.NoError(t, err)

		e.AddCompleted("h1", "Gym", at, 1)

		assert.True(t, e.IsScheduled("h1"))
		assert.True(t, e.IsCompleted("h1"))
		assert.NoError(t, e.Validate())
	})
}

func TestEntry_RemoveCompleted(t *testing.T) {
	at := time.Date(2024, 1, 8, 9, 30, 0, 0, time.UTC)

	t.Run("Success: removes and recomputes rate", func(t *testing.T) {
		gym := mustHabit(t, "Gym", domain.Monday)
		e, err := domain.NewEntryForDate("2024-01-08", []*domain.Habit{gym})
		assert.NoError(t, err)
		e.AddCompleted(gym.ID, gym.Name, at, 1)

		e.RemoveCompleted(gym.ID)

		assert.False(t, e.IsCompleted(gym.ID))
		assert.True(t, e.IsScheduled(gym.ID), "removal leaves the scheduled set alone")
		assert.Equal(t, 0.0, e.Stats.CompletionRate)
	})

	t.Run("Removing an absent id is a no-op", func(t *testing.T) {
		gym := mustHabit(t, "Gym", domain.Monday)
		e, err := domain.NewEntryForDate("2024-01-08", []*domain.Habit{gym})
		assert.NoError(t, err)

		e.RemoveCompleted("nope")

		assert.Len(t, e.ScheduledHabits, 1)
		assert.Empty(t, e.CompletedHabits)
	})
}

func TestEntry_Validate(t *testing.T) {
	t.Run("Error: completed habit outside the scheduled set", func(t *testing.T) {
		e := &domain.Entry{
			Date:            "2024-01-08",
			ScheduledHabits: []domain.ScheduledHabit{{ID: "h1", Name: "Gym"}},
			CompletedHabits: []domain.CompletedHabit{{ID: "h2", Name: "Read"}},
		}
		assert.ErrorIs(t, e.Validate(), domain.ErrCompletedNotScheduled)
	})

	t.Run("Error: invalid date", func(t *testing.T) {
		e := &domain.Entry{Date: "2024-13-01"}
		assert.ErrorIs(t, e.Validate(), domain.ErrInvalidDate)
	})
}

func TestEntry_Recalculate(t *testing.T) {
	t.Run("Zero scheduled gives zero rate", func(t *testing.T) {
		e := &domain.Entry{Date: "2024-01-08"}
		e.Recalculate()
		assert.Equal(t, 0.0, e.Stats.CompletionRate)
	})

	t.Run("Rate is completed over scheduled", func(t *testing.T) {
		e := &domain.Entry{
			Date: "2024-01-08",
			ScheduledHabits: []domain.ScheduledHabit{
				{ID: "h1"}, {ID: "h2"}, {ID: "h3"}, {ID: "h4"},
			},
			CompletedHabits: []domain.CompletedHabit{{ID: "h1"}, {ID: "h2"}, {ID: "h3"}},
		}
		e.Recalculate()
		assert.Equal(t, 75.0, e.Stats.CompletionRate)
	})
}

func TestEntry_Clone(t *testing.T) {
	gym := mustHabit(t, "Gym", domain.Monday)
	e, err := domain.NewEntryForDate("2024-01-08", []*domain.Habit{gym})
	assert.NoError(t, err)

	c := e.Clone()
	c.ScheduledHabits[0].Name = "Changed"
	c.AddCompleted(gym.ID, gym.Name, time.Now(), 1)

	assert.Equal(t, "Gym", e.ScheduledHabits[0].Name)
	assert.Empty(t, e.CompletedHabits)
}
