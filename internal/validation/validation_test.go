package validation

import (
	"errors"
	"fmt"
	"testing"
)

// TestIsValidLatitude covers inclusive bounds, just-outside values and non-numeric text.
func TestIsValidLatitude(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"0", true},
		{"42.36", true},
		{"90", true},
		{"-90", true},
		{"90.0", true},
		{"90.0001", false},
		{"-90.0001", false},
		{"200", false},
		{"", false},
		{"abc", false},
		{"1.2.3", false},
		{"42,36", false},
		{"NaN", false},
		{"Inf", false},
		{"-Inf", false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.in), func(t *testing.T) {
			if got := IsValidLatitude(tt.in); got != tt.want {
				t.Errorf("IsValidLatitude(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// TestIsValidLongitude mirrors the latitude cases at ±180.
func TestIsValidLongitude(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"-71.06", true},
		{"180", true},
		{"-180", true},
		{"180.0001", false},
		{"-180.0001", false},
		{"", false},
		{"west", false},
		{"--71", false},
		{"NaN", false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.in), func(t *testing.T) {
			if got := IsValidLongitude(tt.in); got != tt.want {
				t.Errorf("IsValidLongitude(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// TestIsValidLatitude_MatchesRange checks the predicate against the numeric range over a sweep.
func TestIsValidLatitude_MatchesRange(t *testing.T) {
	for v := -100.0; v <= 100.0; v += 0.5 {
		s := fmt.Sprintf("%g", v)
		want := v >= -90 && v <= 90
		if got := IsValidLatitude(s); got != want {
			t.Errorf("IsValidLatitude(%q) = %v, want %v", s, got, want)
		}
	}
}

func TestValidateCoordinates(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon string
		wantErr  error
	}{
		{"valid", "42.36", "-71.06", nil},
		{"bad latitude", "200", "-71.06", ErrInvalidLatitude},
		{"bad longitude", "42.36", "181", ErrInvalidLongitude},
		{"both bad reports latitude", "x", "y", ErrInvalidLatitude},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCoordinates(tt.lat, tt.lon)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateCoordinates(%q, %q) = %v, want %v", tt.lat, tt.lon, err, tt.wantErr)
			}
		})
	}
}
