package validation

import (
	"errors"
	"strconv"
)

// ErrInvalidLatitude is returned when latitude is non-numeric or outside [-90, 90].
var ErrInvalidLatitude = errors.New("invalid latitude")

// ErrInvalidLongitude is returned when longitude is non-numeric or outside [-180, 180].
var ErrInvalidLongitude = errors.New("invalid longitude")

const (
	minLatitude  = -90.0
	maxLatitude  = 90.0
	minLongitude = -180.0
	maxLongitude = 180.0
)

// IsValidLatitude reports whether text parses as a decimal number in [-90, 90].
func IsValidLatitude(text string) bool {
	return inRange(text, minLatitude, maxLatitude)
}

// IsValidLongitude reports whether text parses as a decimal number in [-180, 180].
func IsValidLongitude(text string) bool {
	return inRange(text, minLongitude, maxLongitude)
}

// ValidateCoordinates checks both values and names the first one that fails.
// Input is not trimmed; callers normalize form input before validating.
func ValidateCoordinates(lat, lon string) error {
	if !IsValidLatitude(lat) {
		return ErrInvalidLatitude
	}
	if !IsValidLongitude(lon) {
		return ErrInvalidLongitude
	}
	return nil
}

// inRange parses text and checks inclusive bounds. NaN fails both comparisons.
func inRange(text string, lo, hi float64) bool {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return false
	}
	return v >= lo && v <= hi
}
