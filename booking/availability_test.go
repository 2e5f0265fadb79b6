package booking

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEachDayOfInterval(t *testing.T) {
	days, err := EachDayOfInterval(day(2024, 2, 27), day(2024, 3, 2).Add(15*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, []time.Time{
		day(2024, 2, 27),
		day(2024, 2, 28),
		day(2024, 2, 29),
		day(2024, 3, 1),
		day(2024, 3, 2),
	}, days)
}

func TestEachDayOfIntervalSameDay(t *testing.T) {
	days, err := EachDayOfInterval(day(2024, 5, 1).Add(9*time.Hour), day(2024, 5, 1).Add(18*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []time.Time{day(2024, 5, 1)}, days)
}

func TestEachDayOfIntervalReversed(t *testing.T) {
	_, err := EachDayOfInterval(day(2024, 5, 3), day(2024, 5, 1))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestDisabledDates(t *testing.T) {
	spans := []Span{
		{Start: day(2024, 6, 1), End: day(2024, 6, 3)},
		{Start: day(2024, 6, 3), End: day(2024, 6, 4)},
		{Start: day(2024, 7, 10), End: day(2024, 7, 10)},
	}

	dates, err := DisabledDates(spans, func(s Span) Span { return s })
	require.NoError(t, err)

	// Overlapping days are kept once per reservation.
	assert.Equal(t, []time.Time{
		day(2024, 6, 1), day(2024, 6, 2), day(2024, 6, 3),
		day(2024, 6, 3), day(2024, 6, 4),
		day(2024, 7, 10),
	}, dates)

	for _, s := range spans {
		for d := s.Start; !d.After(s.End); d = d.AddDate(0, 0, 1) {
			assert.True(t, IsDisabled(dates, d), d)
		}
	}
	assert.False(t, IsDisabled(dates, day(2024, 5, 31)))
	assert.False(t, IsDisabled(dates, day(2024, 6, 5)))
	assert.False(t, IsDisabled(dates, day(2024, 7, 9)))
}

func TestDisabledDatesEmpty(t *testing.T) {
	dates, err := DisabledDates([]Span(nil), func(s Span) Span { return s })
	require.NoError(t, err)
	assert.Empty(t, dates)
}

func TestDisabledDatesInvalidReservation(t *testing.T) {
	spans := []Span{{Start: day(2024, 6, 5), End: day(2024, 6, 1)}}

	_, err := DisabledDates(spans, func(s Span) Span { return s })
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestOverlaps(t *testing.T) {
	base := Span{Start: day(2024, 6, 10), End: day(2024, 6, 15)}

	tests := []struct {
		name  string
		other Span
		want  bool
	}{
		{"before", Span{Start: day(2024, 6, 1), End: day(2024, 6, 9)}, false},
		{"touching start", Span{Start: day(2024, 6, 5), End: day(2024, 6, 10)}, true},
		{"inside", Span{Start: day(2024, 6, 11), End: day(2024, 6, 12)}, true},
		{"touching end", Span{Start: day(2024, 6, 15), End: day(2024, 6, 20)}, true},
		{"after", Span{Start: day(2024, 6, 16), End: day(2024, 6, 20)}, false},
		{"covering", Span{Start: day(2024, 6, 1), End: day(2024, 6, 30)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(base, tt.other))
			assert.Equal(t, tt.want, Overlaps(tt.other, base))
		})
	}
}

func TestDifferenceInCalendarDays(t *testing.T) {
	late := day(2024, 3, 4).Add(23 * time.Hour)
	early := day(2024, 3, 1).Add(1 * time.Hour)

	assert.Equal(t, 3, DifferenceInCalendarDays(late, early))
	assert.Equal(t, -3, DifferenceInCalendarDays(early, late))
	assert.Equal(t, 0, DifferenceInCalendarDays(early, early.Add(20*time.Hour)))
}

func TestDifferenceInDays(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 3, DifferenceInDays(start.AddDate(0, 0, 3), start))
	assert.Equal(t, -3, DifferenceInDays(start, start.AddDate(0, 0, 3)))
	assert.Equal(t, 2, DifferenceInDays(start.AddDate(0, 0, 3).Add(-time.Hour), start))
	assert.Equal(t, -2, DifferenceInDays(start, start.AddDate(0, 0, 3).Add(-time.Hour)))
	assert.Equal(t, 0, DifferenceInDays(start.Add(20*time.Hour), start))
}

func TestDifferenceInDaysAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// Clocks spring forward on Mar 10, 2024, so these are 23 hours apart
	before := time.Date(2024, 3, 9, 12, 0, 0, 0, ny)
	after := time.Date(2024, 3, 10, 12, 0, 0, 0, ny)
	require.Equal(t, 23*time.Hour, after.Sub(before))

	assert.Equal(t, 1, DifferenceInDays(after, before))
	assert.Equal(t, -1, DifferenceInDays(before, after))
	assert.Equal(t, "1 Days", DurationLabel(before, after))

	weekLater := time.Date(2024, 3, 16, 0, 0, 0, 0, ny)
	assert.Equal(t, "7 Days", DurationLabel(time.Date(2024, 3, 9, 0, 0, 0, 0, ny), weekLater))
}
