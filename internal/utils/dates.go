package utils

import (
	"fmt"
	"time"

	"github.com/yukikurage/task-analytics-api/internal/constants"
)

// TruncateToDay returns midnight UTC of t's calendar day.
func TruncateToDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DayRange returns the half-open interval [start, end) covering t's calendar day.
func DayRange(t time.Time) (time.Time, time.Time) {
	start := TruncateToDay(t)
	return start, start.AddDate(0, 0, 1)
}

// ParseDate accepts either YYYY-MM-DD or an RFC3339 timestamp and returns the
// calendar day it names.
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse(constants.DateLayout, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC3339", value)
	}
	return TruncateToDay(t), nil
}

// ParseTimestamp accepts an RFC3339 timestamp or a bare YYYY-MM-DD date.
func ParseTimestamp(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(constants.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: expected RFC3339 or YYYY-MM-DD", value)
	}
	return t, nil
}
