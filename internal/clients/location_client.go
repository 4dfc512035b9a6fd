package clients

//go:generate mockgen -source=location_client.go -destination=mocks/mock_location_client.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Position is a raw device fix.
type Position struct {
	Latitude  float64
	Longitude float64
}

// Locator is the host's location capability: a foreground permission prompt
// followed by a position query. Neither step can be cancelled by the caller.
type Locator interface {
	RequestPermission(ctx context.Context) (bool, error)
	CurrentPosition(ctx context.Context) (Position, error)
}

type LocationConfig struct {
	URL        string
	Permission bool
}

type httpLocator struct {
	url        string
	permission bool
	httpClient *http.Client
}

// NewLocator returns a Locator that resolves position through an HTTP
// geolocation endpoint. The permission answer is fixed by configuration.
func NewLocator(config LocationConfig) Locator {
	return &httpLocator{
		url:        config.URL,
		permission: config.Permission,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (l *httpLocator) RequestPermission(ctx context.Context) (bool, error) {
	return l.permission, nil
}

func (l *httpLocator) CurrentPosition(ctx context.Context) (Position, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return Position{}, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", "Skypass/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return Position{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return Position{}, fmt.Errorf("geolocation service returned status %d", resp.StatusCode)
	}

	var data map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return Position{}, fmt.Errorf("decode JSON: %w", err)
	}

	if status, ok := data["status"].(string); ok && status != "success" {
		return Position{}, fmt.Errorf("geolocation lookup failed: %s", status)
	}

	lat, latOK := extractFloat(data, "lat", "latitude")
	lng, lngOK := extractFloat(data, "lon", "lng", "longitude")
	if !latOK || !lngOK {
		return Position{}, fmt.Errorf("geolocation response has no position")
	}

	return Position{Latitude: lat, Longitude: lng}, nil
}

func extractFloat(data map[string]interface{}, keys ...string) (float64, bool) {
	for _, key := range keys {
		if val, ok := data[key]; ok {
			switch v := val.(type) {
			case float64:
				return v, true
			case string:
				f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
				if err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
					return f, true
				}
			}
		}
	}
	return 0, false
}
