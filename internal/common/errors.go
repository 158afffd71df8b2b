// Package common defines shared constants and sentinel errors used across
// the Daybook storage layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Validation errors raised before any write is attempted.
	ErrValidation = errors.New("validation error")

	// ErrMalformedCollection is reported when a stored collection does not
	// deserialize into the expected array shape. Read paths degrade to an
	// empty result instead of propagating it.
	ErrMalformedCollection = errors.New("malformed collection")
)
