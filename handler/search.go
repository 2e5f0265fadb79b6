package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"staybook/booking"
	"staybook/model"
)

// Labels shown in the collapsed search bar
type SearchSummary struct {
	Location string `json:"location"`
	Duration string `json:"duration"`
	Guests   string `json:"guests"`
}

// SearchSummary turns search params into labels. Unparseable dates read as
// no dates, an unknown country as "Anywhere".
func (h *Handler) SearchSummary(c echo.Context) error {
	q := model.SearchQueryParams{}
	if err := c.Bind(&q); err != nil {
		return err
	}

	summary := SearchSummary{
		Location: "Anywhere",
		Guests:   booking.GuestLabel(q.GuestCount),
	}

	if name := model.CountryName(q.Country); name != "" {
		summary.Location = name
	}

	// parseDate yields the zero time on bad input
	start, _ := parseDate(q.StartDate)
	end, _ := parseDate(q.EndDate)
	summary.Duration = booking.DurationLabel(start, end)

	return c.JSON(http.StatusOK, summary)
}

// Type is one of: listing, category
// slug:
// - listing.id
// - category.slug
type SearchResponseItem struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// Search matches the keyword against listing title, description and region,
// and against category labels.
func (h *Handler) Search(c echo.Context) error {
	keyword := strings.TrimSpace(c.QueryParam("keyword"))
	if keyword == "" {
		return &echo.HTTPError{Code: http.StatusBadRequest, Message: "Keyword is required."}
	}

	response := []SearchResponseItem{}
	for _, category := range model.Categories {
		if strings.Contains(strings.ToLower(category.Label), strings.ToLower(keyword)) {
			response = append(response, SearchResponseItem{Type: "category", Title: category.Label, Slug: category.Slug})
		}
	}

	query := `
		SELECT 'listing' AS type, title, id AS slug FROM listings
		WHERE title LIKE ? OR description LIKE ? OR region LIKE ?
		ORDER BY created_at DESC
		LIMIT 50
	`
	pattern := "%" + keyword + "%"

	rows, err := h.DB.Raw(query, pattern, pattern, pattern).Rows()
	if err != nil {
		log.Errorf("search %q: %v", keyword, err)
		return &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Search failed."}
	}
	defer rows.Close()

	for rows.Next() {
		var item SearchResponseItem
		if err := rows.Scan(&item.Type, &item.Title, &item.Slug); err != nil {
			log.Errorf("scan search result: %v", err)
			return &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Search failed."}
		}
		response = append(response, item)
	}
	if err := rows.Err(); err != nil {
		log.Errorf("search %q: %v", keyword, err)
		return &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Search failed."}
	}

	return c.JSON(http.StatusOK, response)
}
