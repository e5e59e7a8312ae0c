package domain

import (
	"errors"
	"time"
)

var ErrInvalidDate = errors.New("invalid date")

// Weekday is one of the seven fixed schedule keys (sun..sat).
type Weekday string

const (
	Sunday    Weekday = "sun"
	Monday    Weekday = "mon"
	Tuesday   Weekday = "tue"
	Wednesday Weekday = "wed"
	Thursday  Weekday = "thu"
	Friday    Weekday = "fri"
	Saturday  Weekday = "sat"
)

const ISODateLayout = "2006-01-02"

// AllWeekdays lists the schedule keys in calendar order, Sunday first.
var AllWeekdays = [7]Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// WeekdayKeyOf maps a point in time to its schedule key.
func WeekdayKeyOf(t time.Time) Weekday {
	return AllWeekdays[int(t.Weekday())]
}

// ParseWeekday converts a raw string into a Weekday key.
func ParseWeekday(s string) (Weekday, error) {
	for _, w := range AllWeekdays {
		if string(w) == s {
			return w, nil
		}
	}
	return "", ErrInvalidWeekday
}

// ISODateOf formats a time as YYYY-MM-DD.
func ISODateOf(t time.Time) (string, error) {
	if t.IsZero() {
		return "", ErrInvalidDate
	}
	return t.Format(ISODateLayout), nil
}

// ParseISODate parses a YYYY-MM-DD string into a UTC midnight time.
func ParseISODate(s string) (time.Time, error) {
	t, err := time.Parse(ISODateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// IsValidDateString reports whether s is a real calendar date in YYYY-MM-DD form.
func IsValidDateString(s string) bool {
	_, err := time.Parse(ISODateLayout, s)
	return err == nil
}
