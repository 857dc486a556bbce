package roster

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/civil"

	"github.com/dmitrijs2005/patientwatch/internal/common"
	"github.com/dmitrijs2005/patientwatch/internal/store"
)

const nameField = "name"

// Directory resolves user identifiers against the patient registry.
type Directory struct {
	store store.DocumentStore
}

func NewDirectory(s store.DocumentStore) *Directory {
	return &Directory{store: s}
}

// ResolveName returns the patient's display name. A missing registry
// document or an absent name field falls back to the identifier's local
// part; a store failure is returned to the caller.
func (d *Directory) ResolveName(ctx context.Context, userID string) (string, error) {
	doc, err := d.store.PatientDoc(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return LocalPart(userID), nil
		}
		return "", err
	}

	if name, ok := doc.Data[nameField].(string); ok && name != "" {
		return name, nil
	}
	return LocalPart(userID), nil
}

// ResolveRegistrationDate returns the date component of the registry
// document's creation timestamp, or nil when the document or timestamp is
// unavailable.
func (d *Directory) ResolveRegistrationDate(ctx context.Context, userID string) (*civil.Date, error) {
	doc, err := d.store.PatientDoc(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if doc.CreateTime.IsZero() {
		return nil, nil
	}

	date := civil.DateOf(doc.CreateTime)
	return &date, nil
}

// LocalPart returns everything before the first '@' of an identifier, or
// the whole identifier when it contains none.
func LocalPart(userID string) string {
	if i := strings.Index(userID, "@"); i >= 0 {
		return userID[:i]
	}
	return userID
}
