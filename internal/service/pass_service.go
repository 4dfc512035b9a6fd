package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"skypass/internal/clients"
	"skypass/internal/metrics"
	"skypass/internal/models"
)

type PassService interface {
	PredictPasses(ctx context.Context, c models.ValidCoordinate) ([]models.PassRecord, error)
	SatelliteID() string
}

type passService struct {
	client      clients.PassClient
	satelliteID string
}

type PassConfig struct {
	SatelliteID string
}

func NewPassService(client clients.PassClient, config PassConfig) PassService {
	return &passService{
		client:      client,
		satelliteID: config.SatelliteID,
	}
}

func (s *passService) SatelliteID() string {
	return s.satelliteID
}

// PredictPasses issues exactly one request for c. Every failure after the
// request is attempted collapses to models.ErrPassFetch; the passes are
// returned in the order the service sent them.
func (s *passService) PredictPasses(ctx context.Context, c models.ValidCoordinate) ([]models.PassRecord, error) {
	if !c.IsValid() {
		return nil, &models.CoordinateError{Kind: models.ErrUnvalidated}
	}

	log.Printf("Fetching passes for satellite=%s lat=%s lng=%s",
		s.satelliteID, c.LatitudeText(), c.LongitudeText())

	start := time.Now()
	passes, err := s.client.FetchPasses(ctx, models.NewPassRequest(s.satelliteID, c))
	outcome := classifyFetchError(err)
	metrics.ObservePassFetch(outcome, time.Since(start))

	if err != nil {
		log.Printf("Pass fetch failed (%s): %v", outcome, err)
		return nil, fmt.Errorf("%w: %v", models.ErrPassFetch, err)
	}

	log.Printf("Fetched %d passes for satellite=%s", len(passes), s.satelliteID)
	return passes, nil
}

func classifyFetchError(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, clients.ErrTransport):
		return metrics.OutcomeTransport
	case errors.Is(err, clients.ErrStatus):
		return metrics.OutcomeStatus
	case errors.Is(err, clients.ErrDecode):
		return metrics.OutcomeDecode
	}
	return metrics.OutcomeOther
}
