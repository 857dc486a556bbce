package store

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/patientwatch/internal/common"
)

const (
	sessionCollection = "session"
	patientCollection = "patient"
)

// FirestoreStore implements DocumentStore on top of a Cloud Firestore
// database, authenticated with a service-account credential file.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore builds a Firestore-backed store. The project ID is
// taken from the credential file.
func NewFirestoreStore(ctx context.Context, credentialPath string) (*FirestoreStore, error) {
	client, err := firestore.NewClient(ctx, firestore.DetectProjectID,
		option.WithCredentialsFile(credentialPath))
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}

	return &FirestoreStore{client: client}, nil
}

func (s *FirestoreStore) SessionDocs(ctx context.Context, userID, collection string) ([]Document, error) {
	iter := s.client.Collection(sessionCollection).Doc(userID).Collection(collection).Documents(ctx)
	defer iter.Stop()

	var docs []Document
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list %s/%s/%s: %w", sessionCollection, userID, collection, wrapUnavailable(err))
		}

		docs = append(docs, Document{
			ID:         snap.Ref.ID,
			Data:       snap.Data(),
			CreateTime: snap.CreateTime,
		})
	}

	return docs, nil
}

func (s *FirestoreStore) PatientDoc(ctx context.Context, userID string) (*Document, error) {
	snap, err := s.client.Collection(patientCollection).Doc(userID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", patientCollection, userID, wrapUnavailable(err))
	}

	return &Document{
		ID:         snap.Ref.ID,
		Data:       snap.Data(),
		CreateTime: snap.CreateTime,
	}, nil
}

// wrapUnavailable tags transient transport failures with the shared
// sentinel so callers can tell them from data errors with errors.Is.
func wrapUnavailable(err error) error {
	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("%w: %v", common.ErrorStoreUnavailable, err)
	}
	return err
}

// Close releases the underlying client connection.
func (s *FirestoreStore) Close() error {
	return s.client.Close()
}
