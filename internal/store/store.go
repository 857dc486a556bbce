// Package store abstracts the remote document database behind a small
// read-only interface so that the aggregation layer can be tested with a
// substitute implementation.
package store

import (
	"context"
	"time"
)

// Document is one record read from the backing document database.
type Document struct {
	// ID is the document identifier within its collection.
	ID string

	// Data holds the document fields as decoded by the client.
	Data map[string]any

	// CreateTime is the server-side creation timestamp, zero when the
	// backend does not report one.
	CreateTime time.Time
}

// DocumentStore is the slice of the clinical document database the report
// pipeline reads from.
type DocumentStore interface {
	// SessionDocs lists every document under session/{userID}/{collection}.
	SessionDocs(ctx context.Context, userID, collection string) ([]Document, error)

	// PatientDoc returns the registry document patient/{userID}.
	// A missing document is reported as common.ErrorNotFound.
	PatientDoc(ctx context.Context, userID string) (*Document, error)
}
