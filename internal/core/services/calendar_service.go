package services

import (
	"context"
	"fmt"
	"time"

	"github.com/vaneapp/vane/internal/core/domain"
)

// CompletionLevel buckets a day's completion percentage for display.
type CompletionLevel string

const (
	LevelPerfect CompletionLevel = "perfect" // 100%
	LevelHigh    CompletionLevel = "high"    // 75-99%
	LevelMedium  CompletionLevel = "medium"  // 50-74%
	LevelLow     CompletionLevel = "low"     // 1-49%
	LevelNone    CompletionLevel = "none"    // 0% or nothing scheduled
)

type DaySummary struct {
	Date       string
	Day        int
	Completed  int
	Total      int
	Percentage float64
	Level      CompletionLevel
}

type MonthView struct {
	Year  int
	Month time.Month
	Days  []DaySummary
}

// CalendarService builds the month view model from the gateway's entries.
type CalendarService struct {
	gateway domain.Gateway
}

func NewCalendarService(gw domain.Gateway) *CalendarService {
	return &CalendarService{gateway: gw}
}

// MonthView fetches the month's entries and produces one summary per
// calendar day. Days without an entry summarize to zero.
func (s *CalendarService) MonthView(ctx context.Context, year int, month time.Month) (*MonthView, error) {
	entries, err := s.gateway.ListEntriesForMonth(ctx, year, int(month))
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]*domain.Entry, len(entries))
	for _, e := range entries {
		byDate[e.Date] = e
	}

	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	view := &MonthView{
		Year:  year,
		Month: month,
		Days:  make([]DaySummary, 0, daysInMonth),
	}

	for day := 1; day <= daysInMonth; day++ {
		date := fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
		summary := DaySummary{Date: date, Day: day, Level: LevelNone}

		if e, ok := byDate[date]; ok {
			summary.Completed = len(e.CompletedHabits)
			summary.Total = len(e.ScheduledHabits)
			summary.Percentage = e.Stats.CompletionRate
			summary.Level = levelFor(summary.Total, summary.Percentage)
		}

		view.Days = append(view.Days, summary)
	}

	return view, nil
}

func levelFor(total int, percentage float64) CompletionLevel {
	if total == 0 {
		return LevelNone
	}
	switch {
	case percentage == 100:
		return LevelPerfect
	case percentage >= 75:
		return LevelHigh
	case percentage >= 50:
		return LevelMedium
	case percentage > 0:
		return LevelLow
	default:
		return LevelNone
	}
}
