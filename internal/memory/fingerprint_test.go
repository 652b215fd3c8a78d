package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vigilmarca/brand-health-bot/internal/models"
	"github.com/vigilmarca/brand-health-bot/internal/store"
)

// failingStore simulates an unreachable document store
type failingStore struct{}

var errStoreDown = errors.New("store unreachable")

func (f *failingStore) Get(ctx context.Context, collection, key string) (map[string]interface{}, error) {
	return nil, errStoreDown
}

func (f *failingStore) Put(ctx context.Context, collection, key string, fields map[string]interface{}) error {
	return errStoreDown
}

func (f *failingStore) Add(ctx context.Context, collection string, fields map[string]interface{}) (string, error) {
	return "", errStoreDown
}

func (f *failingStore) Recent(ctx context.Context, collection, timeField string, limit int) ([]store.Document, error) {
	return nil, errStoreDown
}

func (f *failingStore) DeleteAll(ctx context.Context, collection string) (int, error) {
	return 0, errStoreDown
}

func TestFingerprintIndex_MarkProcessedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	documentStore := store.NewMemoryStore()
	index := NewFingerprintIndex(documentStore, "banco_chile")

	mention := models.Mention{
		Title:     "Nueva sucursal digital",
		URL:       "https://www.df.cl/nueva-sucursal",
		Sentiment: "positivo",
	}

	assert.False(t, index.IsProcessed(ctx, mention.URL))

	index.MarkProcessed(ctx, mention)
	index.MarkProcessed(ctx, mention)

	assert.True(t, index.IsProcessed(ctx, mention.URL))
	assert.Equal(t, 1, documentStore.Count(index.Collection()), "repeated marks must leave exactly one record")
}

func TestFingerprintIndex_EmptyURL(t *testing.T) {
	ctx := context.Background()
	documentStore := store.NewMemoryStore()
	index := NewFingerprintIndex(documentStore, "banco_chile")

	assert.False(t, index.IsProcessed(ctx, ""))

	index.MarkProcessed(ctx, models.Mention{Title: "sin url"})
	assert.Equal(t, 0, documentStore.Count(index.Collection()))
}

func TestFingerprintIndex_FailsOpenOnStoreErrors(t *testing.T) {
	ctx := context.Background()
	index := NewFingerprintIndex(&failingStore{}, "banco_chile")

	// Lookup errors must read as "not processed", and write errors must
	// be swallowed, so the pipeline never blocks on the store.
	assert.False(t, index.IsProcessed(ctx, "https://example.cl/nota"))
	assert.NotPanics(t, func() {
		index.MarkProcessed(ctx, models.Mention{URL: "https://example.cl/nota"})
	})
}

func TestFingerprintIndex_TenantIsolation(t *testing.T) {
	ctx := context.Background()
	documentStore := store.NewMemoryStore()
	chile := NewFingerprintIndex(documentStore, "banco_chile")
	estado := NewFingerprintIndex(documentStore, "banco_estado")

	url := "https://www.df.cl/la-misma-nota"
	chile.MarkProcessed(ctx, models.Mention{Title: "nota", URL: url})

	assert.True(t, chile.IsProcessed(ctx, url))
	assert.False(t, estado.IsProcessed(ctx, url), "brands must never share fingerprint space")
}

func TestFingerprintIndex_Reset(t *testing.T) {
	ctx := context.Background()
	documentStore := store.NewMemoryStore()
	index := NewFingerprintIndex(documentStore, "banco_chile")

	index.MarkProcessed(ctx, models.Mention{URL: "https://a.cl/1"})
	index.MarkProcessed(ctx, models.Mention{URL: "https://a.cl/2"})

	deleted, err := index.Reset(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 2, deleted)
	assert.False(t, index.IsProcessed(ctx, "https://a.cl/1"))
}

func TestFingerprint_StableAndDistinct(t *testing.T) {
	a := Fingerprint("https://example.cl/a")
	assert.Equal(t, a, Fingerprint("https://example.cl/a"), "same URL must always hash identically")
	assert.NotEqual(t, a, Fingerprint("https://example.cl/b"))
	assert.Len(t, a, 64)
}
