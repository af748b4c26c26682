package services

import "errors"

// Error taxonomy surfaced to the HTTP layer.
var (
	// ErrValidation marks malformed or missing input caught before any
	// store operation runs.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks lookups for rows that don't exist or don't belong
	// to the requesting user.
	ErrNotFound = errors.New("not found")

	// ErrInUse marks referential-integrity refusals: deleting a record
	// that still has dependent rows.
	ErrInUse = errors.New("record has dependent records")
)
