package service

import (
	"errors"
	"fmt"
)

// Reason says why a lookup produced no forecast. Every reason is terminal.
type Reason string

const (
	ReasonInvalidInput    Reason = "invalid_input"
	ReasonNotFound        Reason = "not_found"
	ReasonTransport       Reason = "transport_error"
	ReasonRemoteRejection Reason = "remote_rejection"
	ReasonUnexpected      Reason = "unexpected_error"
)

// Sentinels for errors.Is against a *LookupError.
var (
	ErrInvalidInput    = errors.New("invalid coordinates")
	ErrNotFound        = errors.New("no forecast available")
	ErrTransport       = errors.New("weather service unreachable")
	ErrRemoteRejection = errors.New("weather service rejected request")
	ErrUnexpected      = errors.New("unexpected error")
)

// LookupError is the only error type GetForecast returns.
type LookupError struct {
	Reason Reason
	Err    error
}

func newLookupError(reason Reason, err error) *LookupError {
	return &LookupError{Reason: reason, Err: err}
}

func (e *LookupError) Error() string {
	if e.Err == nil {
		return e.Reason.sentinel().Error()
	}
	return fmt.Sprintf("%s: %v", e.Reason.sentinel(), e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for e.Reason.
func (e *LookupError) Is(target error) bool {
	return target == e.Reason.sentinel()
}

func (r Reason) sentinel() error {
	switch r {
	case ReasonInvalidInput:
		return ErrInvalidInput
	case ReasonNotFound:
		return ErrNotFound
	case ReasonTransport:
		return ErrTransport
	case ReasonRemoteRejection:
		return ErrRemoteRejection
	default:
		return ErrUnexpected
	}
}

// ReasonOf returns the reason carried by err. Errors that did not come from
// GetForecast map to ReasonUnexpected; nil maps to "".
func ReasonOf(err error) Reason {
	if err == nil {
		return ""
	}
	var lookupErr *LookupError
	if errors.As(err, &lookupErr) {
		return lookupErr.Reason
	}
	return ReasonUnexpected
}
