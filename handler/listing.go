package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/gorm"

	"staybook/booking"
	"staybook/model"
)

// Everything the listing page needs to render and price a stay
type ListingDetails struct {
	Listing       any                       `json:"listing"`
	Category      *model.Category           `json:"category,omitempty"`
	Reservations  []model.PublicReservation `json:"reservations"`
	DisabledDates []string                  `json:"disabled_dates"`
}

type AvailabilityResponse struct {
	ListingID     string   `json:"listing_id"`
	DisabledDates []string `json:"disabled_dates"`
}

type QuoteResponse struct {
	booking.Quote
	ListingID string `json:"listing_id"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	Available bool   `json:"available"`
}

func (h *Handler) FetchCategories(c echo.Context) error {
	return c.JSON(http.StatusOK, model.Categories)
}

func (h *Handler) CreateListing(c echo.Context) (err error) {
	u := authUser(c)

	s := model.SubmitListing{}
	if err = c.Bind(&s); err != nil {
		return
	}

	if err = c.Validate(&s); err != nil {
		return err
	}

	category, ok := model.CategoryByLabel(s.Category)
	if !ok {
		return &echo.HTTPError{Code: http.StatusBadRequest, Message: "Category is not supported."}
	}

	country, ok := model.CountryCode(s.Country)
	if !ok {
		return &echo.HTTPError{Code: http.StatusBadRequest, Message: "Country is not recognized."}
	}

	l := model.Listing{
		Title:         s.Title,
		Description:   s.Description,
		ImageSrc:      s.ImageSrc,
		Category:      category.Label,
		RoomCount:     s.RoomCount,
		BathroomCount: s.BathroomCount,
		GuestCount:    s.GuestCount,
		Country:       country,
		Region:        s.Region,
		Latlng:        s.Latlng,
		Price:         s.Price,
		UserID:        u.ID,
	}

	// An uploaded image must exist and belong to the author
	var image *model.File
	if s.ImageFileID != "" {
		image = &model.File{}
		if err := h.DB.First(image, "id = ?", s.ImageFileID).Error; err != nil {
			return &echo.HTTPError{Code: http.StatusBadRequest, Message: "Image file does not exist."}
		}
		if image.CreatedByID != u.ID {
			return &echo.HTTPError{Code: http.StatusForbidden, Message: "You do not have permission to use this file."}
		}
		l.ImageSrc = image.DownloadURL()
	}

	if err := h.DB.Create(&l).Error; err != nil {
		log.Errorf("create listing: %v", err)
		return &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Failed to create listing."}
	}

	if image != nil {
		if err := h.markFilesAsProvisioned([]model.File{*image}); err != nil {
			log.Errorf("mark file %s provisioned: %v", image.ID, err)
		}
	}

	return c.JSON(http.StatusCreated, l)
}

func (h *Handler) FetchListings(c echo.Context) error {
	q := model.ListingQueryParams{}
	if err := c.Bind(&q); err != nil {
		return err
	}
	if err := c.Validate(&q); err != nil {
		return err
	}

	// Defaults
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Limit == 0 {
		q.Limit = 100
	}

	start, err := parseDate(q.StartDate)
	if err != nil {
		return &echo.HTTPError{Code: http.StatusBadRequest, Message: "Invalid start date."}
	}
	end, err := parseDate(q.EndDate)
	if err != nil {
		return &echo.HTTPError{Code: http.StatusBadRequest, Message: "Invalid end date."}
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return &echo.HTTPError{Code: http.StatusBadRequest, Message: "End date must not be before start date."}
	}

	query := h.DB.Model(&model.Listing{})
	if q.UserID != "" {
		query = query.Where("user_id = ?", q.UserID)
	}
	if q.Category != "" {
		if category, ok := model.CategoryByLabel(q.Category); ok {
			query = query.Where("category = ?", category.Label)
		} else {
			query = query.Where("category = ?", q.Category)
		}
	}
	if q.Country != "" {
		code, ok := model.CountryCode(q.Country)
		if !ok {
			return c.JSON(http.StatusOK, ListResponse{Total: 0, Items: []any{}})
		}
		query = query.Where("country = ?", code)
	}
	if q.GuestCount > 0 {
		query = query.Where("guest_count >= ?", q.GuestCount)
	}
	if q.RoomCount > 0 {
		query = query.Where("room_count >= ?", q.RoomCount)
	}
	if q.BathroomCount > 0 {
		query = query.Where("bathroom_count >= ?", q.BathroomCount)
	}

	query = query.Session(&gorm.Session{})
	listings := []model.Listing{}
	offset := (q.Page - 1) * q.Limit

	// Without a stay to check, paginate in the database
	if start.IsZero() || end.IsZero() {
		var count int64
		if err := query.Count(&count).Error; err != nil {
			log.Errorf("count listings: %v", err)
			return &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Failed to fetch listings."}
		}

		err := query.Preload("User").
			Order("created_at desc").
			Offset(offset).
			Limit(q.Limit).
			Find(&listings).Error
		if err != nil {
			log.Errorf("fetch listings: %v", err)
			return &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Failed to fetch listings."}
		}

		return c.JSON(http.StatusOK, ListResponse{Total: count, Items: responseArrFormatter(listings, roles(c))})
	}

	err = query.Preload("User").Preload("Reservations").Order("created_at desc").Find(&listings).Error
	if err != nil {
		log.Errorf("fetch listings: %v", err)
		return &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Failed to fetch listings."}
	}

	stay := booking.Span{Start: start, End: end}
	available := []model.Listing{}
	for _, l := range listings {
		if !conflicts(l.Reservations, stay) {
			available = append(available, l)
		}
	}

	total := int64(len(available))
	if offset >= len(available) {
		available = nil
	} else {
		available = available[offset:min(offset+q.Limit, len(available))]
	}

	return c.JSON(http.StatusOK, ListResponse{Total: total, Items: responseArrFormatter(available, roles(c))})
}

func (h *Handler) FetchListing(c echo.Context) error {
	listing, err := h.findListing(c.Param("id"), "User")
	if err != nil {
		return err
	}

	reservations, err := h.listingReservations(listing.ID)
	if err != nil {
		return err
	}

	disabled, err := booking.DisabledDates(reservations, model.Reservation.Span)
	if err != nil {
		log.Errorf("disabled dates of listing %s: %v", listing.ID, err)
		return &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Failed to compute availability."}
	}

	details := ListingDetails{
		Listing:       responseFormatter(*listing, roles(c)),
		Reservations:  make([]model.PublicReservation, 0, len(reservations)),
		DisabledDates: formatDates(disabled),
	}
	if category, ok := model.CategoryByLabel(listing.Category); ok {
		details.Category = &category
	}
	for _, r := range reservations {
		details.Reservations = append(details.Reservations, r.ToPublicFormat().(model.PublicReservation))
	}

	return c.JSON(http.StatusOK, details)
}

func (h *Handler) ListingAvailability(c echo.Context) error {
	listing, err := h.findListing(c.Param("id"))
	if err != nil {
		return err
	}

	reservations, err := h.listingReservations(listing.ID)
	if err != nil {
		return err
	}

	disabled, err := booking.DisabledDates(reservations, model.Reservation.Span)
	if err != nil {
		log.Errorf("disabled dates of listing %s: %v", listing.ID, err)
		return &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Failed to compute availability."}
	}

	return c.JSON(http.StatusOK, AvailabilityResponse{ListingID: listing.ID, DisabledDates: formatDates(disabled)})
}

// ListingQuote prices a stay the way the reservation card does and tells
// whether the dates are still free.
func (h *Handler) ListingQuote(c echo.Context) error {
	listing, err := h.findListing(c.Param("id"))
	if err != nil {
		return err
	}

	start, err := parseDate(c.QueryParam("startDate"))
	if err != nil {
		return &echo.HTTPError{Code: http.StatusBadRequest, Message: "Invalid start date."}
	}
	end, err := parseDate(c.QueryParam("endDate"))
	if err != nil {
		return &echo.HTTPError{Code: http.StatusBadRequest, Message: "Invalid end date."}
	}

	selection := booking.DateRange{StartDate: start, EndDate: end}
	quote, err := booking.CalculatePrice(selection, listing.Price)
	if err != nil {
		return &echo.HTTPError{Code: http.StatusBadRequest, Message: "End date must not be before start date."}
	}

	res := QuoteResponse{Quote: quote, ListingID: listing.ID, Available: true}
	if selection.Complete() {
		res.StartDate = start.Format(dateLayout)
		res.EndDate = end.Format(dateLayout)

		reservations, err := h.listingReservations(listing.ID)
		if err != nil {
			return err
		}
		res.Available = !conflicts(reservations, selection.Span())
	}

	return c.JSON(http.StatusOK, res)
}

func (h *Handler) DeleteListing(c echo.Context) error {
	dbListing, err := h.isOwnerOrAdmin(c, c.Param("id"), "listing")
	if err != nil {
		return err
	}

	listing := dbListing.(*model.Listing)

	var deleted int64
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("listing_id = ?", listing.ID).Delete(&model.Reservation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("listing_id = ?", listing.ID).Delete(&model.Favorite{}).Error; err != nil {
			return err
		}
		r := tx.Delete(&model.Listing{}, "id = ?", listing.ID)
		deleted = r.RowsAffected
		return r.Error
	})
	if err != nil {
		log.Errorf("delete listing %s: %v", listing.ID, err)
		return &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Failed to delete listing."}
	}

	return c.JSON(http.StatusOK, DeleteResponse{Deleted: deleted})
}

func (h *Handler) findListing(id string, preload ...string) (*model.Listing, error) {
	query := h.DB.Model(&model.Listing{})
	for _, p := range preload {
		query = query.Preload(p)
	}

	listing := model.Listing{}
	if err := query.First(&listing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &echo.HTTPError{Code: http.StatusNotFound, Message: "Listing not found."}
		}
		log.Errorf("fetch listing %s: %v", id, err)
		return nil, &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Failed to fetch listing."}
	}

	return &listing, nil
}

func (h *Handler) listingReservations(listingID string) ([]model.Reservation, error) {
	reservations := []model.Reservation{}
	err := h.DB.Where("listing_id = ?", listingID).Order("start_date asc").Find(&reservations).Error
	if err != nil {
		log.Errorf("fetch reservations of listing %s: %v", listingID, err)
		return nil, &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Failed to fetch reservations."}
	}
	return reservations, nil
}

func conflicts(reservations []model.Reservation, stay booking.Span) bool {
	for _, r := range reservations {
		if booking.Overlaps(r.Span(), stay) {
			return true
		}
	}
	return false
}

// todayIn is the current calendar date as seen from loc, as UTC midnight.
func (h *Handler) todayIn(loc *time.Location) time.Time {
	return calendarDate(h.now().In(loc))
}
