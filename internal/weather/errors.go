package weather

import (
	"errors"
	"fmt"
)

// ErrFetchInProgress is returned when a fetch is requested while another one
// is still outstanding for the same session.
var ErrFetchInProgress = errors.New("a weather fetch is already in progress")

// ErrNoHistory is returned by history queries on a session without a store.
var ErrNoHistory = errors.New("snapshot history is not enabled")

// ValidationError reports missing or empty required input. It is raised
// before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s is required", e.Field)
}

// NotFoundError is returned when geocoding yields no candidates.
type NotFoundError struct {
	City        string
	CountryCode string
}

func (e *NotFoundError) Error() string {
	if e.CountryCode != "" {
		return fmt.Sprintf("No results found for %q (%s).", e.City, e.CountryCode)
	}
	return fmt.Sprintf("No results found for %q.", e.City)
}

// ServiceError is returned when an upstream endpoint fails at the transport
// level or answers with a non-success status.
type ServiceError struct {
	Service string // "geocoding" or "forecast"
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
