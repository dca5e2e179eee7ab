// Package datetime provides calendar-accurate date stepping for payment
// schedules.
package datetime

import (
	"time"

	"github.com/88scooper/propcalc/pkg/constants"
)

const (
	// DateLayout is the format expected in config files and is also the output
	// date format.
	DateLayout = constants.DateLayout
)

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// DaysInMonth returns the number of days in the month containing year/month.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddMonthsClamped returns the date the given number of months after start,
// keeping start's day-of-month and clamping to the last valid day when the
// target month is shorter. Unlike time.Time.AddDate, Jan 31 + 1 month yields
// Feb 28 (or 29), not Mar 2/3, and the anchor day is preserved so
// Jan 31 + 2 months yields Mar 31.
func AddMonthsClamped(start time.Time, months int) time.Time {
	anchor := time.Date(start.Year(), start.Month()+time.Month(months), 1,
		0, 0, 0, 0, start.Location())
	day := start.Day()
	if max := DaysInMonth(anchor.Year(), anchor.Month()); day > max {
		day = max
	}
	return time.Date(anchor.Year(), anchor.Month(), day, 0, 0, 0, 0, start.Location())
}

// AddDays returns the date the given number of days after start.
func AddDays(start time.Time, days int) time.Time {
	return start.AddDate(0, 0, days)
}

// NextSemiMonthly returns the next 1st or 15th of the month strictly after
// the given date.
func NextSemiMonthly(date time.Time) time.Time {
	switch {
	case date.Day() < 15:
		return time.Date(date.Year(), date.Month(), 15, 0, 0, 0, 0, date.Location())
	default:
		return time.Date(date.Year(), date.Month()+1, 1, 0, 0, 0, 0, date.Location())
	}
}

// SemiMonthlyDate returns the n-th semi-monthly payment date after start,
// stepping through the alternating 1st/15th sequence.
func SemiMonthlyDate(start time.Time, n int) time.Time {
	date := start
	for i := 0; i < n; i++ {
		date = NextSemiMonthly(date)
	}
	return date
}

// Truncate strips the time-of-day component, leaving a calendar date.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
