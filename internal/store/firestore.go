package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreStore backs the document-store capability with Cloud Firestore.
type FirestoreStore struct {
	client *firestore.Client
}

// Ensure FirestoreStore implements Store
var _ Store = (*FirestoreStore)(nil)

// NewFirestoreStore creates a Firestore-backed store for the given project.
func NewFirestoreStore(ctx context.Context, projectID string) (*FirestoreStore, error) {
	if projectID == "" {
		return nil, fmt.Errorf("google cloud project id is required")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	return &FirestoreStore{client: client}, nil
}

// Close releases the underlying client.
func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

func (s *FirestoreStore) Get(ctx context.Context, collection, key string) (map[string]interface{}, error) {
	snap, err := s.client.Collection(collection).Doc(key).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s/%s: %w", collection, key, err)
	}
	return snap.Data(), nil
}

func (s *FirestoreStore) Put(ctx context.Context, collection, key string, fields map[string]interface{}) error {
	if _, err := s.client.Collection(collection).Doc(key).Set(ctx, fields); err != nil {
		return fmt.Errorf("failed to put %s/%s: %w", collection, key, err)
	}
	return nil
}

func (s *FirestoreStore) Add(ctx context.Context, collection string, fields map[string]interface{}) (string, error) {
	ref, _, err := s.client.Collection(collection).Add(ctx, fields)
	if err != nil {
		return "", fmt.Errorf("failed to add to %s: %w", collection, err)
	}
	return ref.ID, nil
}

func (s *FirestoreStore) Recent(ctx context.Context, collection, timeField string, limit int) ([]Document, error) {
	query := s.client.Collection(collection).OrderBy(timeField, firestore.Desc).Limit(limit)

	var docs []Document
	iter := query.Documents(ctx)
	defer iter.Stop()

	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query %s: %w", collection, err)
		}
		docs = append(docs, Document{ID: snap.Ref.ID, Fields: snap.Data()})
	}

	return docs, nil
}

func (s *FirestoreStore) DeleteAll(ctx context.Context, collection string) (int, error) {
	iter := s.client.Collection(collection).Documents(ctx)
	defer iter.Stop()

	deleted := 0
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return deleted, fmt.Errorf("failed to stream %s for deletion: %w", collection, err)
		}
		if _, err := snap.Ref.Delete(ctx); err != nil {
			return deleted, fmt.Errorf("failed to delete %s/%s: %w", collection, snap.Ref.ID, err)
		}
		deleted++
	}

	logrus.Infof("Deleted %d documents from collection %s", deleted, collection)
	return deleted, nil
}
