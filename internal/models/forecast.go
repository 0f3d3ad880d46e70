package models

import (
	"errors"
	"fmt"
	"strings"
)

// MaxForecastPeriods caps how many periods a Forecast carries.
const MaxForecastPeriods = 5

var (
	ErrEmptyTitle         = errors.New("forecast title is required")
	ErrEmptyPeriodName    = errors.New("period name is required")
	ErrEmptyPeriodDetails = errors.New("period details are required")
	ErrTooManyPeriods     = errors.New("too many forecast periods")
)

// Forecast is the result of one completed lookup.
type Forecast struct {
	Title   string           `json:"title"`
	City    string           `json:"city"`
	State   string           `json:"state"`
	Periods []ForecastPeriod `json:"periods"`
}

// ForecastPeriod is one named time slice, e.g. "Tonight".
type ForecastPeriod struct {
	Name    string `json:"name"`
	Details string `json:"details"`
}

// NewForecast returns a Forecast with no periods. title must not be blank.
func NewForecast(title, city, state string) (Forecast, error) {
	if strings.TrimSpace(title) == "" {
		return Forecast{}, ErrEmptyTitle
	}
	return Forecast{
		Title:   title,
		City:    city,
		State:   state,
		Periods: make([]ForecastPeriod, 0, MaxForecastPeriods),
	}, nil
}

// NewForecastPeriod returns a period, failing when either field is blank.
func NewForecastPeriod(name, details string) (ForecastPeriod, error) {
	if strings.TrimSpace(name) == "" {
		return ForecastPeriod{}, ErrEmptyPeriodName
	}
	if strings.TrimSpace(details) == "" {
		return ForecastPeriod{}, ErrEmptyPeriodDetails
	}
	return ForecastPeriod{Name: name, Details: details}, nil
}

// AddPeriod appends a validated period. Fails once MaxForecastPeriods is reached.
func (f *Forecast) AddPeriod(name, details string) error {
	if len(f.Periods) >= MaxForecastPeriods {
		return fmt.Errorf("%w: limit is %d", ErrTooManyPeriods, MaxForecastPeriods)
	}
	p, err := NewForecastPeriod(name, details)
	if err != nil {
		return err
	}
	f.Periods = append(f.Periods, p)
	return nil
}
