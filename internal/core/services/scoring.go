package services

import (
	"sort"
	"time"

	"github.com/vaneapp/vane/internal/core/domain"
)

// neverCompletedDays stands in for "infinite days since last completion",
// so never-completed habits sort above everything else. Large enough to
// dominate, small enough to keep the arithmetic exact.
const neverCompletedDays = 1 << 20

// ScoredHabit is a habit annotated with its display priority for today.
// It is derived and ephemeral, never persisted.
type ScoredHabit struct {
	*domain.Habit
	Score int
}

// ScoreHabit computes the priority score for ordering today's checklist:
// +100 when the habit is scheduled for today, minus its all-time completion
// count (frequently-completed habits yield to neglected ones), plus whole
// days since the last completion.
func ScoreHabit(h *domain.Habit, today domain.Weekday, now time.Time) int {
	score := 0
	if h.ScheduledOn(today) {
		score += 100
	}
	score -= h.Stats.TotalCompleted
	score += daysSinceLastCompleted(h, now)
	return score
}

func daysSinceLastCompleted(h *domain.Habit, now time.Time) int {
	if h.Stats.LastCompletedDate == nil {
		return neverCompletedDays
	}
	last, err := domain.ParseISODate(*h.Stats.LastCompletedDate)
	if err != nil {
		return neverCompletedDays
	}
	return int(now.Sub(last).Hours() / 24)
}

// SelectTodayHabits filters to habits scheduled for now's weekday, attaches
// scores, and sorts descending by score. The sort is stable: ties keep the
// habits' original relative order.
func SelectTodayHabits(habits []*domain.Habit, now time.Time) []ScoredHabit {
	today := domain.WeekdayKeyOf(now)

	scored := make([]ScoredHabit, 0, len(habits))
	for _, h := range habits {
		if !h.ScheduledOn(today) {
			continue
		}
		scored = append(scored, ScoredHabit{Habit: h, Score: ScoreHabit(h, today, now)})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}
