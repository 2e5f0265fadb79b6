// Package booking derives reservation state shown on a listing page: the
// calendar days that can no longer be selected and the price of a stay.
package booking

import (
	"errors"
	"time"

	"github.com/jinzhu/now"
)

// ErrInvalidRange is returned when an interval starts after it ends.
var ErrInvalidRange = errors.New("invalid interval: start is after end")

// Span is a closed interval of calendar days.
type Span struct {
	Start time.Time `json:"start_date"`
	End   time.Time `json:"end_date"`
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return now.With(t).BeginningOfDay()
}

// EachDayOfInterval returns every calendar day from start to end, both
// included, as midnight values in start's location.
func EachDayOfInterval(start, end time.Time) ([]time.Time, error) {
	first := StartOfDay(start)
	last := StartOfDay(end.In(start.Location()))
	if first.After(last) {
		return nil, ErrInvalidRange
	}

	days := []time.Time{}
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days, nil
}

// DisabledDates concatenates the days of every reservation's span, in input
// order. Days shared by several reservations appear once per reservation;
// callers only test membership.
func DisabledDates[R any](reservations []R, span func(R) Span) ([]time.Time, error) {
	dates := []time.Time{}
	for _, r := range reservations {
		s := span(r)
		days, err := EachDayOfInterval(s.Start, s.End)
		if err != nil {
			return nil, err
		}
		dates = append(dates, days...)
	}
	return dates, nil
}

// IsDisabled reports whether day falls on one of the disabled dates.
func IsDisabled(disabled []time.Time, day time.Time) bool {
	y, m, d := day.Date()
	for _, v := range disabled {
		vy, vm, vd := v.Date()
		if vy == y && vm == m && vd == d {
			return true
		}
	}
	return false
}

// Overlaps reports whether two closed day intervals share at least one day.
func Overlaps(a, b Span) bool {
	aStart, aEnd := calendarDay(a.Start), calendarDay(a.End)
	bStart, bEnd := calendarDay(b.Start), calendarDay(b.End)
	return !aStart.After(bEnd) && !bStart.After(aEnd)
}

// DifferenceInCalendarDays counts calendar days from right to left, ignoring
// the time of day. It is negative when left is before right.
func DifferenceInCalendarDays(left, right time.Time) int {
	return int(calendarDay(left).Sub(calendarDay(right)).Hours() / 24)
}

// DifferenceInDays counts full days from right to left. A day is full once
// left's wall clock reaches right's, so a day shortened by a DST switch
// still counts.
func DifferenceInDays(left, right time.Time) int {
	days := DifferenceInCalendarDays(left, right)
	if days == 0 {
		return 0
	}

	sign := 1
	if days < 0 {
		sign = -1
	}
	if compareClock(left, right)*sign < 0 {
		days -= sign
	}
	return days
}

// compareClock orders the wall-clock times of day of a and b, each read in
// its own location.
func compareClock(a, b time.Time) int {
	ad, bd := clockOf(a), clockOf(b)
	switch {
	case ad < bd:
		return -1
	case ad > bd:
		return 1
	}
	return 0
}

func clockOf(t time.Time) time.Duration {
	h, m, sec := t.Clock()
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute +
		time.Duration(sec)*time.Second + time.Duration(t.Nanosecond())
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
