package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the API confirmed the entity does not exist
	// (zero results). Distinct from transport failures, where the state
	// of the entity is unknown.
	ErrNotFound = errors.New("not found")

	// ErrNoImporter is returned when no importer is registered for the
	// selected platform.
	ErrNoImporter = errors.New("no importer registered for platform")
)

// APIError describes a failed call to the external metrics API: a network
// error, a non-2xx response, or an undecodable body. It must never be
// collapsed into a nil result.
type APIError struct {
	Op     string // which call failed, e.g. "channels"
	Status int    // HTTP status, 0 when the request never completed
	Body   string // response body context, truncated
	Err    error
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, e.Body)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *APIError) Unwrap() error { return e.Err }
