package handler

import (
	"time"
)

const dateLayout = "2006-01-02"

// calendarDate keeps the calendar date t has in its own offset and returns
// it as UTC midnight, the form dates are stored in.
func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// parseDate accepts "2006-01-02" or RFC 3339. Empty input yields the zero
// time.
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}

	if t, err := time.Parse(dateLayout, value); err == nil {
		return t, nil
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	return calendarDate(t), nil
}

func formatDates(dates []time.Time) []string {
	res := make([]string, 0, len(dates))
	for _, d := range dates {
		res = append(res, d.Format(dateLayout))
	}
	return res
}
