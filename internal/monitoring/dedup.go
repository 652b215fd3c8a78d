package monitoring

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/vigilmarca/brand-health-bot/internal/models"
)

// Index is the fingerprint lookup the dedup pipeline consults. Lookups
// fail open, so the pipeline itself never sees a store error.
type Index interface {
	IsProcessed(ctx context.Context, url string) bool
}

// Dedup filters freshly collected mentions down to the ones not yet part
// of a delivered report, preserving their relative order. Mentions with no
// URL are skipped with a log line. The index is never mutated here;
// fingerprints are committed only after confirmed delivery.
func Dedup(ctx context.Context, mentions []models.Mention, index Index) []models.Mention {
	novel := make([]models.Mention, 0, len(mentions))

	for _, mention := range mentions {
		if mention.URL == "" {
			logrus.Warnf("Skipping mention without URL: %q", mention.Title)
			continue
		}
		if index.IsProcessed(ctx, mention.URL) {
			logrus.Infof("Skipping duplicate: %s", mention.URL)
			continue
		}
		novel = append(novel, mention)
	}

	return novel
}
