package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"staybook/booking"
	"staybook/model"
	"staybook/store"
)

// TripCard carries the labels a reservation card shows
type TripCard struct {
	ReservationID string    `json:"reservation_id"`
	ListingID     string    `json:"listing_id"`
	Title         string    `json:"title"`
	ImageSrc      string    `json:"image_src"`
	Location      string    `json:"location"`
	DateLabel     string    `json:"date_label"`
	PriceLabel    string    `json:"price_label"`
	TotalPrice    int       `json:"total_price"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
}

func tripCard(t store.Trip) TripCard {
	listing := model.Listing{Country: t.Country, Region: t.Region}

	return TripCard{
		ReservationID: t.ReservationID,
		ListingID:     t.ListingID,
		Title:         t.Title,
		ImageSrc:      t.ImageSrc,
		Location:      listing.Location(),
		DateLabel:     booking.DateRangeLabel(t.StartDate, t.EndDate),
		PriceLabel:    "$ " + booking.FormatPrice(t.TotalPrice),
		TotalPrice:    t.TotalPrice,
		StartDate:     t.StartDate,
		EndDate:       t.EndDate,
	}
}

func tripCards(trips []store.Trip) []TripCard {
	cards := make([]TripCard, 0, len(trips))
	for _, t := range trips {
		cards = append(cards, tripCard(t))
	}
	return cards
}

// FetchTrips lists the stays the current user booked.
func (h *Handler) FetchTrips(c echo.Context) error {
	u := authUser(c)

	trips, err := h.Trips.TripsByGuest(c.Request().Context(), u.ID)
	if err != nil {
		log.Errorf("fetch trips: %v", err)
		return &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Failed to fetch trips."}
	}

	return c.JSON(http.StatusOK, ListResponse{Total: int64(len(trips)), Items: tripCards(trips)})
}

// FetchHostedTrips lists reservations guests made on the user's listings.
func (h *Handler) FetchHostedTrips(c echo.Context) error {
	u := authUser(c)

	trips, err := h.Trips.TripsByHost(c.Request().Context(), u.ID)
	if err != nil {
		log.Errorf("fetch hosted trips: %v", err)
		return &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Failed to fetch reservations."}
	}

	return c.JSON(http.StatusOK, ListResponse{Total: int64(len(trips)), Items: tripCards(trips)})
}
