package domain

import "errors"

// Sentinel errors - match with errors.Is() and map to HTTP status codes at
// the handler boundary.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// ErrUnavailable indicates the text-generation collaborator failed.
	// Collaborator failures are fatal to the request: no retry, no synthetic
	// verdict, the whole pipeline aborts.
	ErrUnavailable = errors.New("generation service unavailable")
)
