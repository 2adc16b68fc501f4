package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned when the shared secret is missing or wrong.
	ErrUnauthorized = errors.New("invalid API key")
	// ErrUnknownCollection is returned for a collection name the catalog
	// does not serve.
	ErrUnknownCollection = errors.New("unknown collection")
)

// ValidationError reports a payload or query parameter that does not
// satisfy the collection's schema. Field is the JSON name of the offending
// field, or empty when the body as a whole is malformed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid payload: " + e.Reason
	}
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
}

// StoreError wraps a failure of the underlying record store.
type StoreError struct {
	Op         string
	Collection string
	Err        error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
