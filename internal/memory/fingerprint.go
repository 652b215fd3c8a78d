package memory

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vigilmarca/brand-health-bot/internal/models"
	"github.com/vigilmarca/brand-health-bot/internal/store"
)

// FingerprintIndex remembers which mention URLs have already been part of a
// delivered report, so the same item is never processed twice. Records are
// kept indefinitely; Reset is the only deletion path.
type FingerprintIndex struct {
	store      store.Store
	collection string
}

// NewFingerprintIndex binds the index to the given brand's fingerprint
// collection.
func NewFingerprintIndex(s store.Store, brandID string) *FingerprintIndex {
	return &FingerprintIndex{
		store:      s,
		collection: brandID + "_processed_news",
	}
}

// Collection returns the backing collection name.
func (f *FingerprintIndex) Collection() string {
	return f.collection
}

// IsProcessed reports whether the URL was already part of a delivered
// report. It fails open: an empty URL or an unreachable store yields false
// so the pipeline is never blocked on a lookup.
func (f *FingerprintIndex) IsProcessed(ctx context.Context, url string) bool {
	if url == "" {
		return false
	}

	_, err := f.store.Get(ctx, f.collection, Fingerprint(url))
	if err == store.ErrNotFound {
		return false
	}
	if err != nil {
		logrus.Errorf("Fingerprint lookup failed for %s, treating as unprocessed: %v", url, err)
		return false
	}
	return true
}

// MarkProcessed records a delivered mention's fingerprint. Best effort: a
// write failure only risks a future duplicate, so it is logged and
// swallowed. The write is an upsert keyed by the URL hash, so repeated
// calls for the same URL leave exactly one record.
func (f *FingerprintIndex) MarkProcessed(ctx context.Context, mention models.Mention) {
	if mention.URL == "" {
		return
	}

	fields := map[string]interface{}{
		"title":        mention.Title,
		"url":          mention.URL,
		"processed_at": time.Now().UTC(),
	}
	if mention.Sentiment != "" {
		fields["sentiment"] = mention.Sentiment
	}

	if err := f.store.Put(ctx, f.collection, Fingerprint(mention.URL), fields); err != nil {
		logrus.Errorf("Failed to record fingerprint for %s: %v", mention.URL, err)
	}
}

// Reset deletes every fingerprint for the brand. Irreversible.
func (f *FingerprintIndex) Reset(ctx context.Context) (int, error) {
	return f.store.DeleteAll(ctx, f.collection)
}

// Fingerprint derives the stable storage key for a URL: the hex SHA-256 of
// the exact URL string. Identical across runs and processes; distinct URLs
// collide only with negligible probability.
func Fingerprint(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])
}
