package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/gorm"

	"staybook/model"
)

type FavoritesResponse struct {
	FavoriteIDs []string `json:"favorite_ids"`
}

func (h *Handler) favoriteIDs(userID string) ([]string, error) {
	ids := []string{}
	err := h.DB.Model(&model.Favorite{}).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Pluck("listing_id", &ids).Error
	return ids, err
}

func (h *Handler) FetchFavorites(c echo.Context) error {
	u := authUser(c)

	favorites := []model.Favorite{}
	err := h.DB.Preload("Listing").
		Where("user_id = ?", u.ID).
		Order("created_at desc").
		Find(&favorites).Error
	if err != nil {
		log.Errorf("fetch favorites: %v", err)
		return &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Failed to fetch favorites."}
	}

	listings := []model.Listing{}
	for _, f := range favorites {
		if f.Listing != nil {
			listings = append(listings, *f.Listing)
		}
	}

	return c.JSON(http.StatusOK, ListResponse{Total: int64(len(listings)), Items: responseArrFormatter(listings, u.Roles)})
}

// AddFavorite is idempotent: favoriting twice keeps one row.
func (h *Handler) AddFavorite(c echo.Context) error {
	u := authUser(c)

	listing, err := h.findListing(c.Param("id"))
	if err != nil {
		return err
	}

	existing := model.Favorite{}
	err = h.DB.Where("user_id = ? AND listing_id = ?", u.ID, listing.ID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = h.DB.Create(&model.Favorite{UserID: u.ID, ListingID: listing.ID}).Error
	}
	if err != nil {
		log.Errorf("favorite listing %s: %v", listing.ID, err)
		return &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Failed to favorite listing."}
	}

	ids, err := h.favoriteIDs(u.ID)
	if err != nil {
		log.Errorf("fetch favorites: %v", err)
		return &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Failed to fetch favorites."}
	}

	return c.JSON(http.StatusOK, FavoritesResponse{FavoriteIDs: ids})
}

func (h *Handler) RemoveFavorite(c echo.Context) error {
	u := authUser(c)

	err := h.DB.Where("user_id = ? AND listing_id = ?", u.ID, c.Param("id")).Delete(&model.Favorite{}).Error
	if err != nil {
		log.Errorf("unfavorite listing %s: %v", c.Param("id"), err)
		return &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Failed to remove favorite."}
	}

	ids, err := h.favoriteIDs(u.ID)
	if err != nil {
		log.Errorf("fetch favorites: %v", err)
		return &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Failed to fetch favorites."}
	}

	return c.JSON(http.StatusOK, FavoritesResponse{FavoriteIDs: ids})
}
