// Package listingview holds the state behind a listing page: the selected
// stay, its price, the days other guests already booked and the reservation
// submission flow.
package listingview

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/labstack/gommon/log"

	"staybook/booking"
	"staybook/model"
)

// ErrBusy is returned by Submit while an earlier submission is in flight.
var ErrBusy = errors.New("listingview: reservation already in progress")

const (
	ReservedMessage = "Listing reserved!"
	FailedMessage   = "Something went wrong!"
	TripsPath       = "/trips"
)

// Reserver sends a reservation to the server.
type Reserver interface {
	CreateReservation(ctx context.Context, r model.SubmitReservation) (model.Reservation, error)
}

type LoginPrompter interface {
	OpenLogin()
}

type Navigator interface {
	Navigate(path string)
}

type Notifier interface {
	Success(message string)
	Error(message string)
}

type Deps struct {
	Reserver Reserver
	Login    LoginPrompter
	Router   Navigator
	Notify   Notifier
	// Clock defaults to time.Now
	Clock func() time.Time
}

type View struct {
	mu   sync.Mutex
	deps Deps

	listing      model.PublicListing
	user         *model.PrivateUser
	reservations []model.PublicReservation

	dateRange  booking.DateRange
	totalPrice int
	rangeErr   error

	disabled      []time.Time
	disabledErr   error
	disabledStale bool

	busy bool
}

// New starts with a same-day selection on today's date, priced at one night.
func New(listing model.PublicListing, reservations []model.PublicReservation, user *model.PrivateUser, deps Deps) *View {
	if deps.Clock == nil {
		deps.Clock = time.Now
	}

	v := &View{
		deps:          deps,
		listing:       listing,
		user:          user,
		reservations:  reservations,
		totalPrice:    listing.Price,
		disabledStale: true,
	}
	v.dateRange = booking.Today(deps.Clock())
	v.reprice()

	return v
}

func (v *View) Listing() model.PublicListing {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.listing
}

// Category is the listing's category, if its label is a known one.
func (v *View) Category() (model.Category, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return model.CategoryByLabel(v.listing.Category)
}

func (v *View) SetUser(user *model.PrivateUser) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.user = user
}

// SetListing swaps the listing; the price follows the new nightly rate and
// the disabled days are recomputed on the next read.
func (v *View) SetListing(listing model.PublicListing, reservations []model.PublicReservation) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.listing = listing
	v.reservations = reservations
	v.disabledStale = true
	v.reprice()
}

func (v *View) SetReservations(reservations []model.PublicReservation) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.reservations = reservations
	v.disabledStale = true
}

// DisabledDates lists every booked day, one entry per reservation day.
func (v *View) DisabledDates() ([]time.Time, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.disabledStale {
		v.disabled, v.disabledErr = booking.DisabledDates(v.reservations, model.PublicReservation.Span)
		v.disabledStale = false
	}

	return v.disabled, v.disabledErr
}

func (v *View) DateRange() booking.DateRange {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.dateRange
}

// SetDateRange stores the selection and reprices it. A range ending before
// it starts keeps the previous total and returns booking.ErrInvalidRange.
func (v *View) SetDateRange(r booking.DateRange) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.dateRange = r
	v.reprice()
	return v.rangeErr
}

func (v *View) TotalPrice() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.totalPrice
}

// RangeError is the error of the last repricing, if any.
func (v *View) RangeError() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.rangeErr
}

func (v *View) Busy() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.busy
}

// Must hold v.mu
func (v *View) reprice() {
	if !v.dateRange.Complete() {
		v.rangeErr = nil
		v.totalPrice = v.listing.Price
		return
	}

	quote, err := booking.CalculatePrice(v.dateRange, v.listing.Price)
	v.rangeErr = err
	if err != nil {
		return
	}
	v.totalPrice = quote.TotalPrice
}

// Submit reserves the selected stay. Without a user it only opens the login
// prompt. On success the selection goes back to today and the guest is sent
// to their trips; failures are reported through the notifier and returned.
func (v *View) Submit(ctx context.Context) error {
	v.mu.Lock()
	if v.busy {
		v.mu.Unlock()
		return ErrBusy
	}

	if v.user == nil {
		v.mu.Unlock()
		if v.deps.Login != nil {
			v.deps.Login.OpenLogin()
		}
		return nil
	}

	req := model.SubmitReservation{
		TotalPrice: v.totalPrice,
		StartDate:  v.dateRange.StartDate,
		EndDate:    v.dateRange.EndDate,
		ListingID:  v.listing.ID,
	}
	v.busy = true
	v.mu.Unlock()

	_, err := v.deps.Reserver.CreateReservation(ctx, req)

	v.mu.Lock()
	v.busy = false
	if err == nil {
		v.dateRange = booking.Today(v.deps.Clock())
		v.reprice()
	}
	v.mu.Unlock()

	if err != nil {
		log.Errorf("reserve listing %s: %v", req.ListingID, err)
		if v.deps.Notify != nil {
			v.deps.Notify.Error(FailedMessage)
		}
		return err
	}

	if v.deps.Notify != nil {
		v.deps.Notify.Success(ReservedMessage)
	}
	if v.deps.Router != nil {
		v.deps.Router.Navigate(TripsPath)
	}

	return nil
}
