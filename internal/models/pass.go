package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// PassRequest is the body of POST /api/passes. Coordinates travel as text.
type PassRequest struct {
	SatelliteID string `json:"satelliteId"`
	Lat         string `json:"lat"`
	Lng         string `json:"lng"`
}

func NewPassRequest(satelliteID string, c ValidCoordinate) PassRequest {
	return PassRequest{
		SatelliteID: satelliteID,
		Lat:         c.LatitudeText(),
		Lng:         c.LongitudeText(),
	}
}

// PassRecord is one predicted overhead pass.
type PassRecord struct {
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	MaxElevation    float64   `json:"maxElevation"`
	DurationSeconds float64   `json:"duration"`
	AzimuthStart    float64   `json:"azimuthStart"`
	AzimuthEnd      float64   `json:"azimuthEnd"`
}

type passWire struct {
	StartTime    string   `json:"startTime"`
	EndTime      string   `json:"endTime"`
	MaxElevation *float64 `json:"maxElevation"`
	Duration     *float64 `json:"duration"`
	AzimuthStart float64  `json:"azimuthStart"`
	AzimuthEnd   float64  `json:"azimuthEnd"`
}

var passTimeFormats = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
}

func parsePassTime(s string) (time.Time, error) {
	for _, format := range passTimeFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable time %q", s)
}

// UnmarshalJSON decodes the service representation and enforces the record
// invariants: endTime after startTime and maxElevation within [0, 90].
func (p *PassRecord) UnmarshalJSON(data []byte) error {
	var w passWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.MaxElevation == nil {
		return fmt.Errorf("pass is missing maxElevation")
	}
	if w.Duration == nil {
		return fmt.Errorf("pass is missing duration")
	}

	start, err := parsePassTime(w.StartTime)
	if err != nil {
		return fmt.Errorf("startTime: %w", err)
	}
	end, err := parsePassTime(w.EndTime)
	if err != nil {
		return fmt.Errorf("endTime: %w", err)
	}
	if !end.After(start) {
		return fmt.Errorf("endTime %s is not after startTime %s", w.EndTime, w.StartTime)
	}
	if *w.MaxElevation < 0 || *w.MaxElevation > 90 {
		return fmt.Errorf("maxElevation %g out of range [0, 90]", *w.MaxElevation)
	}

	*p = PassRecord{
		StartTime:       start,
		EndTime:         end,
		MaxElevation:    *w.MaxElevation,
		DurationSeconds: *w.Duration,
		AzimuthStart:    w.AzimuthStart,
		AzimuthEnd:      w.AzimuthEnd,
	}
	return nil
}
