package domain

import (
	"time"
)

// DayLayout is the calendar-day format used for every date field.
const DayLayout = "2006-01-02"

// ParseDay parses a YYYY-MM-DD string as midnight UTC.
func ParseDay(day string) (time.Time, error) {
	return time.ParseInLocation(DayLayout, day, time.UTC)
}

// IsValidDay reports whether day is a well-formed calendar day.
func IsValidDay(day string) bool {
	t, err := ParseDay(day)
	return err == nil && t.Format(DayLayout) == day
}

// AddDays shifts a calendar day by n days (negative n walks backwards).
// It returns false when day cannot be parsed.
func AddDays(day string, n int) (string, bool) {
	t, err := ParseDay(day)
	if err != nil {
		return "", false
	}
	return t.AddDate(0, 0, n).Format(DayLayout), true
}

// DayOf renders the calendar day of t as seen in loc.
func DayOf(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DayLayout)
}
