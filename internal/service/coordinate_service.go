package service

import (
	"context"
	"fmt"
	"log"

	"skypass/internal/clients"
	"skypass/internal/metrics"
	"skypass/internal/models"
)

type CoordinateService interface {
	Validate(c models.Coordinate) (models.ValidCoordinate, error)
	RequestDeviceLocation(ctx context.Context) (models.Coordinate, error)
}

type coordinateService struct {
	locator clients.Locator
}

func NewCoordinateService(locator clients.Locator) CoordinateService {
	return &coordinateService{locator: locator}
}

func (s *coordinateService) Validate(c models.Coordinate) (models.ValidCoordinate, error) {
	return c.Validate()
}

// RequestDeviceLocation asks for foreground permission and then queries the
// current position. The returned coordinate is rounded to 4 decimals.
func (s *coordinateService) RequestDeviceLocation(ctx context.Context) (models.Coordinate, error) {
	granted, err := s.locator.RequestPermission(ctx)
	if err != nil {
		metrics.ObserveLocation("unavailable")
		log.Printf("Location permission request failed: %v", err)
		return models.Coordinate{}, fmt.Errorf("%w: %v", models.ErrLocationUnavailable, err)
	}
	if !granted {
		metrics.ObserveLocation("denied")
		return models.Coordinate{}, models.ErrPermissionDenied
	}

	pos, err := s.locator.CurrentPosition(ctx)
	if err != nil {
		metrics.ObserveLocation("unavailable")
		log.Printf("Location query failed: %v", err)
		return models.Coordinate{}, fmt.Errorf("%w: %v", models.ErrLocationUnavailable, err)
	}

	metrics.ObserveLocation("ok")
	return models.CoordinateFromPosition(pos.Latitude, pos.Longitude), nil
}
