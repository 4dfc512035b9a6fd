package service

import (
	"errors"

	"skypass/internal/models"
)

// NotificationFor maps an operation error to the alert shown to the user.
// It returns false for errors that should not surface an alert.
func NotificationFor(err error) (models.Notification, bool) {
	var coordErr *models.CoordinateError

	switch {
	case err == nil:
		return models.Notification{}, false
	case errors.Is(err, models.ErrRequestInFlight):
		return models.Notification{}, false
	case errors.Is(err, models.ErrIncompleteInput):
		return models.Notification{
			Title:   "Missing coordinates",
			Message: "Please enter both latitude and longitude",
		}, true
	case errors.As(err, &coordErr):
		return models.Notification{
			Title:   "Invalid coordinates",
			Message: "Invalid coordinates: " + coordErr.Error(),
		}, true
	case errors.Is(err, models.ErrPermissionDenied):
		return models.Notification{
			Title:   "Permission denied",
			Message: "Location permission is required",
		}, true
	case errors.Is(err, models.ErrLocationUnavailable):
		return models.Notification{
			Title:   "Location unavailable",
			Message: "Could not determine your current location",
		}, true
	}

	return models.Notification{
		Title:   "Error",
		Message: "Failed to fetch passes. Please try again.",
	}, true
}
