package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no document exists under the key.
var ErrNotFound = errors.New("store: document not found")

// Document is one stored record with its collection-unique id.
type Document struct {
	ID     string
	Fields map[string]interface{}
}

// Store is the document-store capability injected into the fingerprint
// index and the history ledger. Collections are addressed by name; tenant
// isolation happens one level up, by namespacing collection names with the
// brand id.
type Store interface {
	// Get returns the fields of the document stored under key, or
	// ErrNotFound.
	Get(ctx context.Context, collection, key string) (map[string]interface{}, error)

	// Put upserts the document under key. Repeated Puts for the same key
	// leave exactly one document.
	Put(ctx context.Context, collection, key string, fields map[string]interface{}) error

	// Add appends a document under a store-generated key and returns it.
	Add(ctx context.Context, collection string, fields map[string]interface{}) (string, error)

	// Recent returns up to limit documents ordered by the named timestamp
	// field, most recent first.
	Recent(ctx context.Context, collection, timeField string, limit int) ([]Document, error)

	// DeleteAll removes every document in the collection and reports how
	// many were deleted. Irreversible.
	DeleteAll(ctx context.Context, collection string) (int, error)
}
