package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaneapp/vane/internal/core/domain"
	"github.com/vaneapp/vane/internal/core/services"
)

func entryWithRate(date string, scheduled, completed int) *domain.Entry {
	e := &domain.Entry{Date: date}
	for i := 0; i < scheduled; i++ {
		id := fmt.Sprintf("h%d", i)
		e.ScheduledHabits = append(e.ScheduledHabits, domain.ScheduledHabit{ID: id})
		if i < completed {
			e.CompletedHabits = append(e.CompletedHabits, domain.CompletedHabit{ID: id})
		}
	}
	e.Recalculate()
	return e
}

func TestCalendarService_MonthView(t *testing.T) {
	gw := NewMockGateway()
	gw.entries["2024-01-05"] = entryWithRate("2024-01-05", 4, 4) // 100%
	gw.entries["2024-01-08"] = entryWithRate("2024-01-08", 4, 3) // 75%
	gw.entries["2024-01-09"] = entryWithRate("2024-01-09", 4, 2) // 50%
	gw.entries["2024-01-10"] = entryWithRate("2024-01-10", 4, 1) // 25%
	gw.entries["2024-01-11"] = entryWithRate("2024-01-11", 4, 0) // 0%

	svc := services.NewCalendarService(gw)

	view, err := svc.MonthView(context.Background(), 2024, time.January)
	require.NoError(t, err)

	assert.Equal(t, 2024, view.Year)
	assert.Equal(t, time.January, view.Month)
	require.Len(t, view.Days, 31)

	tests := []struct {
		day   int
		level services.CompletionLevel
	}{
		{5, services.LevelPerfect},
		{8, services.LevelHigh},
		{9, services.LevelMedium},
		{10, services.LevelLow},
		{11, services.LevelNone},
		{1, services.LevelNone}, // no entry at all
	}
	for _, tt := range tests {
		d := view.Days[tt.day-1]
		assert.Equal(t, tt.day, d.Day)
		assert.Equal(t, tt.level, d.Level, "day %d", tt.day)
	}

	assert.Equal(t, "2024-01-05", view.Days[4].Date)
	assert.Equal(t, 4, view.Days[4].Completed)
	assert.Equal(t, 4, view.Days[4].Total)
	assert.Equal(t, 100.0, view.Days[4].Percentage)

	assert.Equal(t, 0, view.Days[0].Total, "days without an entry summarize to zero")
}

func TestCalendarService_MonthLengths(t *testing.T) {
	gw := NewMockGateway()
	svc := services.NewCalendarService(gw)

	tests := []struct {
		year  int
		month time.Month
		days  int
	}{
		{2024, time.February, 29},
		{2023, time.February, 28},
		{2024, time.April, 30},
		{2024, time.December, 31},
	}
	for _, tt := range tests {
		view, err := svc.MonthView(context.Background(), tt.year, tt.month)
		require.NoError(t, err)
		assert.Len(t, view.Days, tt.days, "%d-%02d", tt.year, tt.month)
	}
}

func TestCalendarService_ZeroScheduledIsNone(t *testing.T) {
	gw := NewMockGateway()
	gw.entries["2024-01-15"] = &domain.Entry{
		Date:            "2024-01-15",
		ScheduledHabits: []domain.ScheduledHabit{},
		CompletedHabits: []domain.CompletedHabit{},
	}

	svc := services.NewCalendarService(gw)
	view, err := svc.MonthView(context.Background(), 2024, time.January)
	require.NoError(t, err)

	assert.Equal(t, services.LevelNone, view.Days[14].Level)
}
