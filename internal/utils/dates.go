package utils

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate parses an ISO 8601 calendar date (YYYY-MM-DD). Dates are naive
// calendar days; no timezone handling.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: must be YYYY-MM-DD", s)
	}
	return t, nil
}

// FormatDate formats a time as an ISO 8601 calendar date (YYYY-MM-DD)
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// FormatTimestamp formats a time as RFC3339 in UTC
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ExpandRange returns every calendar date from start to end inclusive,
// formatted YYYY-MM-DD. Start must not be after end.
func ExpandRange(start, end time.Time) []string {
	days := make([]string, 0, int(end.Sub(start).Hours()/24)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, FormatDate(d))
	}
	return days
}
