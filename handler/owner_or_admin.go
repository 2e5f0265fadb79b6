package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/gorm"

	"staybook/model"
)

// isOwnerOrAdmin loads the object and checks the requesting user created it.
func (h *Handler) isOwnerOrAdmin(c echo.Context, objectID string, objectType string) (interface{}, error) {
	reqUser := authUser(c)
	if reqUser == nil {
		return nil, &echo.HTTPError{Code: http.StatusUnauthorized, Message: "Login required."}
	}

	var dbObject interface{}
	var errMsgs map[string]string
	switch objectType {
	case "file":
		dbObject = &model.File{}
		errMsgs = map[string]string{
			"notFound":     "File not found.",
			"fetchFailed":  "Failed to fetch file.",
			"noPermission": "You do not have permission to update this file.",
		}
	case "listing":
		dbObject = &model.Listing{}
		errMsgs = map[string]string{
			"notFound":     "Listing not found.",
			"fetchFailed":  "Failed to fetch listing.",
			"noPermission": "You do not have permission to update this listing.",
		}
	case "reservation":
		dbObject = &model.Reservation{}
		errMsgs = map[string]string{
			"notFound":     "Reservation not found.",
			"fetchFailed":  "Failed to fetch reservation.",
			"noPermission": "You do not have permission to cancel this reservation.",
		}
	default:
		return nil, &echo.HTTPError{Code: http.StatusBadRequest, Message: "Invalid object type."}
	}

	err := h.DB.First(dbObject, "id = ?", objectID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &echo.HTTPError{Code: http.StatusNotFound, Message: errMsgs["notFound"]}
		}
		log.Errorf("fetch %s %s: %v", objectType, objectID, err)
		return nil, &echo.HTTPError{Code: http.StatusInternalServerError, Message: errMsgs["fetchFailed"]}
	}

	ownerIDs := []string{}
	switch v := dbObject.(type) {
	case *model.File:
		ownerIDs = append(ownerIDs, v.CreatedByID)
	case *model.Listing:
		ownerIDs = append(ownerIDs, v.UserID)
	case *model.Reservation:
		// The host may cancel stays on their listing as well
		ownerIDs = append(ownerIDs, v.UserID)
		var listing model.Listing
		if err := h.DB.Select("user_id").First(&listing, "id = ?", v.ListingID).Error; err == nil {
			ownerIDs = append(ownerIDs, listing.UserID)
		}
	}

	if reqUser.IsAdmin {
		return dbObject, nil
	}
	for _, id := range ownerIDs {
		if id != "" && id == reqUser.ID {
			return dbObject, nil
		}
	}

	log.Debugf("user %s is not admin and does not own %s %s", reqUser.ID, objectType, objectID)
	return nil, &echo.HTTPError{Code: http.StatusForbidden, Message: errMsgs["noPermission"]}
}
