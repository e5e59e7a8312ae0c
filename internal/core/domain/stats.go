package domain

// MonthlyStats is the aggregate dashboard payload for one calendar month.
type MonthlyStats struct {
	LongestStreak     int              `json:"longestStreak"`
	PerfectDays       int              `json:"perfectDays"`
	MostConsistent    *ConsistentHabit `json:"mostConsistent,omitempty"`
	MonthlyCompletion float64          `json:"monthlyCompletion"`
	WeeklyTrend       []TrendPoint     `json:"weeklyTrend"`
}

// ConsistentHabit names the habit with the highest completion ratio over
// its scheduled occurrences in the month.
type ConsistentHabit struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
}

// TrendPoint is one day of the trailing seven-day trend.
type TrendPoint struct {
	Date       string  `json:"date"`
	Percentage float64 `json:"percentage"`
}
