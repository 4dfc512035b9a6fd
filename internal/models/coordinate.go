package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type Field string

const (
	FieldLatitude  Field = "latitude"
	FieldLongitude Field = "longitude"
)

func ParseField(s string) (Field, error) {
	switch Field(strings.ToLower(s)) {
	case FieldLatitude:
		return FieldLatitude, nil
	case FieldLongitude:
		return FieldLongitude, nil
	}
	return "", fmt.Errorf("unknown coordinate field %q", s)
}

// Bounds returns the inclusive valid range for the field.
func (f Field) Bounds() (float64, float64) {
	if f == FieldLatitude {
		return -90, 90
	}
	return -180, 180
}

// Coordinate holds latitude and longitude exactly as the user typed them.
type Coordinate struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// SetField stores text verbatim. Validation is deferred to Validate.
func (c *Coordinate) SetField(field Field, text string) {
	switch field {
	case FieldLatitude:
		c.Latitude = text
	case FieldLongitude:
		c.Longitude = text
	}
}

func (c Coordinate) Get(field Field) string {
	if field == FieldLatitude {
		return c.Latitude
	}
	return c.Longitude
}

// Validate checks both fields. A field that is present but malformed or out
// of range is reported before a field that is missing, so "91" with an empty
// longitude is an invalid coordinate rather than an incomplete one.
func (c Coordinate) Validate() (ValidCoordinate, error) {
	lat, latErr := parseField(FieldLatitude, c.Latitude)
	lng, lngErr := parseField(FieldLongitude, c.Longitude)

	for _, err := range []error{latErr, lngErr} {
		if IsInvalidCoordinate(err) {
			return ValidCoordinate{}, err
		}
	}
	for _, err := range []error{latErr, lngErr} {
		if err != nil {
			return ValidCoordinate{}, err
		}
	}

	return ValidCoordinate{
		lat:     lat,
		lng:     lng,
		latText: strings.TrimSpace(c.Latitude),
		lngText: strings.TrimSpace(c.Longitude),
		ok:      true,
	}, nil
}

func parseField(field Field, text string) (float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, &CoordinateError{Field: field, Kind: ErrIncompleteInput}
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &CoordinateError{Field: field, Value: text, Kind: ErrNotANumber}
	}

	min, max := field.Bounds()
	if v < min || v > max {
		return 0, &CoordinateError{Field: field, Value: text, Kind: ErrInvalidCoordinateRange}
	}
	return v, nil
}

// ValidCoordinate can only be produced by Coordinate.Validate. The zero value
// is not valid.
type ValidCoordinate struct {
	lat, lng         float64
	latText, lngText string
	ok               bool
}

func (v ValidCoordinate) IsValid() bool { return v.ok }

func (v ValidCoordinate) Latitude() float64  { return v.lat }
func (v ValidCoordinate) Longitude() float64 { return v.lng }

// LatitudeText and LongitudeText return the trimmed user text, which is what
// goes on the wire.
func (v ValidCoordinate) LatitudeText() string  { return v.latText }
func (v ValidCoordinate) LongitudeText() string { return v.lngText }

// CoordinateFromPosition builds the text form of a device position, each
// component rounded to 4 decimal places.
func CoordinateFromPosition(lat, lng float64) Coordinate {
	return Coordinate{
		Latitude:  strconv.FormatFloat(lat, 'f', 4, 64),
		Longitude: strconv.FormatFloat(lng, 'f', 4, 64),
	}
}
