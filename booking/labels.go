package booking

import (
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const dateLabelLayout = "Jan 2, 2006"

var pricePrinter = message.NewPrinter(language.English)

// FormatPrice groups thousands, e.g. 1200 -> "1,200".
func FormatPrice(price int) string {
	return pricePrinter.Sprintf("%d", price)
}

// DateRangeLabel renders a reservation's dates the way listing cards show
// them: "Jan 2, 2006 - Jan 5, 2006".
func DateRangeLabel(start, end time.Time) string {
	return start.Format(dateLabelLayout) + " - " + end.Format(dateLabelLayout)
}

// DurationLabel describes a searched stay. Same-day searches count as one
// day; a search without dates reads "Any week".
func DurationLabel(start, end time.Time) string {
	if start.IsZero() || end.IsZero() {
		return "Any week"
	}

	diff := DifferenceInDays(end, start)
	if diff == 0 {
		diff = 1
	}
	return strconv.Itoa(diff) + " Days"
}

func GuestLabel(guestCount int) string {
	if guestCount <= 0 {
		return "Add Guests"
	}
	return strconv.Itoa(guestCount) + " Guests"
}
