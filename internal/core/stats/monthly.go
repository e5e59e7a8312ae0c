// Package stats aggregates completion entries into the monthly dashboard
// payload served by the API.
package stats

import (
	"sort"
	"time"

	"github.com/vaneapp/vane/internal/core/domain"
)

// ComputeMonthly derives the dashboard aggregates for one month of entries.
// now anchors the trailing seven-day trend.
func ComputeMonthly(entries []*domain.Entry, now time.Time) *domain.MonthlyStats {
	out := &domain.MonthlyStats{
		WeeklyTrend: weeklyTrend(entries, now),
	}

	totalScheduled := 0
	totalCompleted := 0

	type habitTally struct {
		name      string
		scheduled int
		completed int
		dates     []time.Time
	}
	tallies := make(map[string]*habitTally)
	var habitOrder []string

	for _, e := range entries {
		totalScheduled += len(e.ScheduledHabits)
		totalCompleted += len(e.CompletedHabits)

		if len(e.ScheduledHabits) > 0 && len(e.CompletedHabits) == len(e.ScheduledHabits) {
			out.PerfectDays++
		}

		day, err := domain.ParseISODate(e.Date)
		if err != nil {
			continue
		}

		for _, s := range e.ScheduledHabits {
			t, ok := tallies[s.ID]
			if !ok {
				t = &habitTally{name: s.Name}
				tallies[s.ID] = t
				habitOrder = append(habitOrder, s.ID)
			}
			t.scheduled++
		}
		for _, c := range e.CompletedHabits {
			t, ok := tallies[c.ID]
			if !ok {
				t = &habitTally{name: c.Name}
				tallies[c.ID] = t
				habitOrder = append(habitOrder, c.ID)
			}
			t.completed++
			t.dates = append(t.dates, day)
		}
	}

	if totalScheduled > 0 {
		out.MonthlyCompletion = float64(totalCompleted) / float64(totalScheduled) * 100
	}

	for _, id := range habitOrder {
		t := tallies[id]
		if t.scheduled == 0 {
			continue
		}
		pct := float64(t.completed) / float64(t.scheduled) * 100
		if out.MostConsistent == nil || pct > out.MostConsistent.Percentage {
			out.MostConsistent = &domain.ConsistentHabit{ID: id, Name: t.name, Percentage: pct}
		}

		if streak := longestRun(t.dates); streak > out.LongestStreak {
			out.LongestStreak = streak
		}
	}

	return out
}

// longestRun finds the longest stretch of consecutive calendar days.
func longestRun(dates []time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	longest := 1
	run := 1
	for i := 1; i < len(dates); i++ {
		gap := dates[i].Sub(dates[i-1]).Hours() / 24
		switch {
		case gap == 0:
			continue
		case gap == 1:
			run++
		default:
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// weeklyTrend returns one point per day for the seven days ending at now.
func weeklyTrend(entries []*domain.Entry, now time.Time) []domain.TrendPoint {
	byDate := make(map[string]*domain.Entry, len(entries))
	for _, e := range entries {
		byDate[e.Date] = e
	}

	trend := make([]domain.TrendPoint, 0, 7)
	for offset := 6; offset >= 0; offset-- {
		day := now.AddDate(0, 0, -offset)
		date, err := domain.ISODateOf(day)
		if err != nil {
			continue
		}
		point := domain.TrendPoint{Date: date}
		if e, ok := byDate[date]; ok {
			point.Percentage = e.Stats.CompletionRate
		}
		trend = append(trend, point)
	}
	return trend
}
