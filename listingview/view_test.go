package listingview

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staybook/booking"
	"staybook/model"
)

type fakeReserver struct {
	mu      sync.Mutex
	calls   []model.SubmitReservation
	err     error
	started chan struct{}
	block   chan struct{}
}

func (f *fakeReserver) CreateReservation(ctx context.Context, r model.SubmitReservation) (model.Reservation, error) {
	f.mu.Lock()
	f.calls = append(f.calls, r)
	f.mu.Unlock()

	if f.started != nil {
		close(f.started)
	}
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return model.Reservation{}, f.err
	}
	return model.Reservation{ID: "r1", ListingID: r.ListingID, TotalPrice: r.TotalPrice}, nil
}

func (f *fakeReserver) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type recorder struct {
	logins    int
	paths     []string
	successes []string
	errors    []string
}

func (r *recorder) OpenLogin()             { r.logins++ }
func (r *recorder) Navigate(path string)   { r.paths = append(r.paths, path) }
func (r *recorder) Success(message string) { r.successes = append(r.successes, message) }
func (r *recorder) Error(message string)   { r.errors = append(r.errors, message) }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var clock = func() time.Time { return time.Date(2024, 3, 1, 15, 30, 0, 0, time.UTC) }

func newView(t *testing.T, user *model.PrivateUser, reserver Reserver) (*View, *recorder) {
	t.Helper()

	rec := &recorder{}
	listing := model.PublicListing{ID: "b3b0f7a4-7a43-4d55-9b39-4e5b9d1b4b6a", Price: 100, Category: "Beach"}
	v := New(listing, nil, user, Deps{
		Reserver: reserver,
		Login:    rec,
		Router:   rec,
		Notify:   rec,
		Clock:    clock,
	})
	return v, rec
}

func TestNewDefaultsToToday(t *testing.T) {
	v, _ := newView(t, nil, &fakeReserver{})

	r := v.DateRange()
	assert.Equal(t, day(2024, 3, 1), r.StartDate)
	assert.Equal(t, day(2024, 3, 1), r.EndDate)
	assert.Equal(t, 100, v.TotalPrice())
	assert.False(t, v.Busy())

	category, ok := v.Category()
	require.True(t, ok)
	assert.Equal(t, "Beach", category.Label)
}

func TestSetDateRangeReprices(t *testing.T) {
	v, _ := newView(t, nil, &fakeReserver{})

	require.NoError(t, v.SetDateRange(booking.DateRange{StartDate: day(2024, 3, 1), EndDate: day(2024, 3, 4)}))
	assert.Equal(t, 300, v.TotalPrice())

	require.NoError(t, v.SetDateRange(booking.DateRange{StartDate: day(2024, 3, 5), EndDate: day(2024, 3, 5)}))
	assert.Equal(t, 100, v.TotalPrice())
}

func TestSetDateRangeReversedKeepsTotal(t *testing.T) {
	v, _ := newView(t, nil, &fakeReserver{})

	require.NoError(t, v.SetDateRange(booking.DateRange{StartDate: day(2024, 3, 1), EndDate: day(2024, 3, 3)}))
	err := v.SetDateRange(booking.DateRange{StartDate: day(2024, 3, 9), EndDate: day(2024, 3, 3)})

	assert.ErrorIs(t, err, booking.ErrInvalidRange)
	assert.ErrorIs(t, v.RangeError(), booking.ErrInvalidRange)
	assert.Equal(t, 200, v.TotalPrice())
}

func TestSetListingFollowsPrice(t *testing.T) {
	v, _ := newView(t, nil, &fakeReserver{})
	require.NoError(t, v.SetDateRange(booking.DateRange{StartDate: day(2024, 3, 1), EndDate: day(2024, 3, 3)}))

	v.SetListing(model.PublicListing{ID: "other", Price: 80}, nil)

	assert.Equal(t, 160, v.TotalPrice())
	assert.Equal(t, "other", v.Listing().ID)

	// Without a full selection the quote is the bare nightly price
	require.NoError(t, v.SetDateRange(booking.DateRange{}))
	v.SetListing(model.PublicListing{ID: "third", Price: 250}, nil)
	assert.Equal(t, 250, v.TotalPrice())

	require.NoError(t, v.SetDateRange(booking.DateRange{StartDate: day(2024, 3, 1)}))
	assert.Equal(t, 250, v.TotalPrice())
}

func TestDisabledDatesRecomputedAfterReservationsChange(t *testing.T) {
	v, _ := newView(t, nil, &fakeReserver{})

	disabled, err := v.DisabledDates()
	require.NoError(t, err)
	assert.Empty(t, disabled)

	v.SetReservations([]model.PublicReservation{
		{StartDate: day(2024, 3, 10), EndDate: day(2024, 3, 12)},
		{StartDate: day(2024, 3, 12), EndDate: day(2024, 3, 13)},
	})

	disabled, err = v.DisabledDates()
	require.NoError(t, err)
	assert.Equal(t, []time.Time{
		day(2024, 3, 10), day(2024, 3, 11), day(2024, 3, 12),
		day(2024, 3, 12), day(2024, 3, 13),
	}, disabled)
}

func TestSubmitWithoutUserOpensLogin(t *testing.T) {
	reserver := &fakeReserver{}
	v, rec := newView(t, nil, reserver)

	require.NoError(t, v.Submit(context.Background()))

	assert.Equal(t, 1, rec.logins)
	assert.Equal(t, 0, reserver.count())
	assert.Empty(t, rec.paths)
	assert.False(t, v.Busy())
}

func TestSubmitSuccess(t *testing.T) {
	reserver := &fakeReserver{}
	v, rec := newView(t, &model.PrivateUser{ID: "u1"}, reserver)
	require.NoError(t, v.SetDateRange(booking.DateRange{StartDate: day(2024, 3, 10), EndDate: day(2024, 3, 13)}))

	require.NoError(t, v.Submit(context.Background()))

	require.Equal(t, 1, reserver.count())
	sent := reserver.calls[0]
	assert.Equal(t, 300, sent.TotalPrice)
	assert.Equal(t, day(2024, 3, 10), sent.StartDate)
	assert.Equal(t, day(2024, 3, 13), sent.EndDate)
	assert.Equal(t, v.Listing().ID, sent.ListingID)

	assert.Equal(t, []string{ReservedMessage}, rec.successes)
	assert.Equal(t, []string{TripsPath}, rec.paths)
	assert.Equal(t, booking.Today(clock()), v.DateRange())
	assert.Equal(t, 100, v.TotalPrice())
	assert.False(t, v.Busy())
}

func TestSubmitFailureKeepsSelection(t *testing.T) {
	reserver := &fakeReserver{err: errors.New("409 Conflict")}
	v, rec := newView(t, &model.PrivateUser{ID: "u1"}, reserver)
	selection := booking.DateRange{StartDate: day(2024, 3, 10), EndDate: day(2024, 3, 12)}
	require.NoError(t, v.SetDateRange(selection))

	err := v.Submit(context.Background())

	assert.Error(t, err)
	assert.Equal(t, []string{FailedMessage}, rec.errors)
	assert.Empty(t, rec.successes)
	assert.Empty(t, rec.paths)
	assert.Equal(t, selection, v.DateRange())
	assert.Equal(t, 200, v.TotalPrice())
	assert.False(t, v.Busy())
}

func TestSubmitWhileBusy(t *testing.T) {
	reserver := &fakeReserver{started: make(chan struct{}), block: make(chan struct{})}
	v, _ := newView(t, &model.PrivateUser{ID: "u1"}, reserver)

	done := make(chan error)
	go func() { done <- v.Submit(context.Background()) }()

	<-reserver.started
	assert.True(t, v.Busy())
	assert.ErrorIs(t, v.Submit(context.Background()), ErrBusy)

	close(reserver.block)
	require.NoError(t, <-done)
	assert.Equal(t, 1, reserver.count())
	assert.False(t, v.Busy())
}
