// Package common defines shared sentinel errors used across patientwatch
// layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Startup errors (abort the run before any fetch).
	ErrorMissingCredential = errors.New("credential file missing")
	ErrorInvalidConfig     = errors.New("invalid configuration")

	// Store-level errors (per-user, recoverable).
	ErrorStoreUnavailable = errors.New("document store unavailable")
)
