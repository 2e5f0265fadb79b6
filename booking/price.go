package booking

import (
	"time"
)

// DateRange is the stay a guest is selecting. A zero time means the bound
// has not been picked yet.
type DateRange struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// Today is the default selection: a same-day range on t's date.
func Today(t time.Time) DateRange {
	day := StartOfDay(t)
	return DateRange{StartDate: day, EndDate: day}
}

func (r DateRange) Complete() bool {
	return !r.StartDate.IsZero() && !r.EndDate.IsZero()
}

func (r DateRange) Span() Span {
	return Span{Start: r.StartDate, End: r.EndDate}
}

// Quote is the price of a selected stay.
type Quote struct {
	Nights       int `json:"nights"`
	NightlyPrice int `json:"nightly_price"`
	TotalPrice   int `json:"total_price"`
}

// TotalPrice charges dayCount nights, or a single night when either the
// count or the price is zero.
func TotalPrice(dayCount, nightlyPrice int) int {
	if dayCount != 0 && nightlyPrice != 0 {
		return dayCount * nightlyPrice
	}
	return nightlyPrice
}

// CalculatePrice quotes r at nightlyPrice. An incomplete range is quoted at
// one night. A range ending before it starts fails with ErrInvalidRange.
func CalculatePrice(r DateRange, nightlyPrice int) (Quote, error) {
	q := Quote{NightlyPrice: nightlyPrice, TotalPrice: nightlyPrice}
	if !r.Complete() {
		return q, nil
	}

	dayCount := DifferenceInCalendarDays(r.EndDate, r.StartDate)
	if dayCount < 0 {
		return q, ErrInvalidRange
	}

	q.Nights = dayCount
	q.TotalPrice = TotalPrice(dayCount, nightlyPrice)
	return q, nil
}
