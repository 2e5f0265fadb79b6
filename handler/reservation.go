package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/datatypes"

	"staybook/booking"
	"staybook/model"
	"staybook/store"
)

func (h *Handler) CreateReservation(c echo.Context) error {
	u := authUser(c)
	if u == nil {
		return &echo.HTTPError{Code: http.StatusUnauthorized, Message: "Login required."}
	}

	s := model.SubmitReservation{}
	if err := c.Bind(&s); err != nil {
		return err
	}
	if err := c.Validate(&s); err != nil {
		return err
	}

	if s.StartDate.IsZero() || s.EndDate.IsZero() {
		return &echo.HTTPError{Code: http.StatusBadRequest, Message: "Start and end date are required."}
	}

	selection := booking.DateRange{
		StartDate: calendarDate(s.StartDate),
		EndDate:   calendarDate(s.EndDate),
	}
	// "Today" is the guest's today, in the offset they sent
	if selection.StartDate.Before(h.todayIn(s.StartDate.Location())) {
		return &echo.HTTPError{Code: http.StatusBadRequest, Message: "Start date must not be in the past."}
	}

	listing, err := h.findListing(s.ListingID)
	if err != nil {
		return err
	}

	quote, err := booking.CalculatePrice(selection, listing.Price)
	if err != nil {
		return &echo.HTTPError{Code: http.StatusBadRequest, Message: "End date must not be before start date."}
	}

	if s.TotalPrice != 0 && s.TotalPrice != quote.TotalPrice {
		return &echo.HTTPError{Code: http.StatusBadRequest, Message: "Total price does not match the selected dates."}
	}

	// Overlap check and insert must not interleave for one listing
	release, err := h.Locker.Acquire(c.Request().Context(), "listing:"+listing.ID, h.lockTTL())
	if err != nil {
		if errors.Is(err, store.ErrLocked) {
			return &echo.HTTPError{Code: http.StatusConflict, Message: "Another reservation for this listing is in progress."}
		}
		log.Errorf("lock listing %s: %v", listing.ID, err)
		return &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Failed to create reservation."}
	}
	defer release()

	existing, err := h.listingReservations(listing.ID)
	if err != nil {
		return err
	}
	if conflicts(existing, selection.Span()) {
		return &echo.HTTPError{Code: http.StatusConflict, Message: "The selected dates are no longer available."}
	}

	r := model.Reservation{
		ID:         uuid.NewString(),
		UserID:     u.ID,
		ListingID:  listing.ID,
		StartDate:  selection.StartDate,
		EndDate:    selection.EndDate,
		TotalPrice: quote.TotalPrice,
	}

	if err := h.attachReceipt(&r, quote); err != nil {
		log.Errorf("receipt for reservation %s: %v", r.ID, err)
		return &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Failed to create reservation."}
	}

	if err := h.DB.Create(&r).Error; err != nil {
		log.Errorf("create reservation: %v", err)
		return &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Failed to create reservation."}
	}

	log.Infof("reservation %s: listing %s, %s to %s, total %d",
		r.ID, listing.ID, r.StartDate.Format(dateLayout), r.EndDate.Format(dateLayout), r.TotalPrice)

	return c.JSON(http.StatusCreated, r)
}

// attachReceipt records the booked terms and, when a signer is configured,
// a detached signature over them.
func (h *Handler) attachReceipt(r *model.Reservation, quote booking.Quote) error {
	receipt := model.ReservationReceipt{
		ReservationID: r.ID,
		ListingID:     r.ListingID,
		GuestID:       r.UserID,
		StartDate:     r.StartDate.Format(dateLayout),
		EndDate:       r.EndDate.Format(dateLayout),
		Nights:        quote.Nights,
		NightlyPrice:  quote.NightlyPrice,
		TotalPrice:    quote.TotalPrice,
		Issuer:        h.Domain,
		IssuedAt:      h.now().UTC(),
	}

	data, err := json.Marshal(receipt)
	if err != nil {
		return err
	}
	r.Receipt = datatypes.JSON(data)

	if h.Signer == nil {
		return nil
	}

	signature, err := h.Signer.Sign(string(data))
	if err != nil {
		return err
	}
	r.ReceiptSignature = signature
	return nil
}

// FetchReservations filters by listing, by guest (userId) or by host
// (authorId). Guests and hosts only see their own side unless admin.
func (h *Handler) FetchReservations(c echo.Context) error {
	u := authUser(c)

	q := model.ReservationQueryParams{}
	if err := c.Bind(&q); err != nil {
		return err
	}

	if q.ListingID == "" && q.UserID == "" && q.AuthorID == "" {
		return &echo.HTTPError{Code: http.StatusBadRequest, Message: "Filter by listingId, userId or authorId."}
	}
	if !u.IsAdmin && ((q.UserID != "" && q.UserID != u.ID) || (q.AuthorID != "" && q.AuthorID != u.ID)) {
		return &echo.HTTPError{Code: http.StatusForbidden, Message: "You can only list your own reservations."}
	}

	query := h.DB.Model(&model.Reservation{}).Preload("Listing")
	if q.ListingID != "" {
		query = query.Where("listing_id = ?", q.ListingID)
	}
	if q.UserID != "" {
		query = query.Where("user_id = ?", q.UserID)
	}
	if q.AuthorID != "" {
		query = query.Where("listing_id IN (?)", h.DB.Model(&model.Listing{}).Select("id").Where("user_id = ?", q.AuthorID))
	}

	reservations := []model.Reservation{}
	if err := query.Order("created_at desc").Find(&reservations).Error; err != nil {
		log.Errorf("fetch reservations: %v", err)
		return &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Failed to fetch reservations."}
	}

	return c.JSON(http.StatusOK, ListResponse{
		Total: int64(len(reservations)),
		Items: responseArrFormatter(reservations, u.Roles),
	})
}

func (h *Handler) DeleteReservation(c echo.Context) error {
	_, err := h.isOwnerOrAdmin(c, c.Param("id"), "reservation")
	if err != nil {
		return err
	}

	r := h.DB.Delete(&model.Reservation{}, "id = ?", c.Param("id"))
	if r.Error != nil {
		log.Errorf("delete reservation %s: %v", c.Param("id"), r.Error)
		return &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Failed to cancel reservation."}
	}

	if r.RowsAffected == 0 {
		return &echo.HTTPError{Code: http.StatusNotFound, Message: "Reservation not found."}
	}

	return c.JSON(http.StatusOK, DeleteResponse{Deleted: r.RowsAffected})
}
