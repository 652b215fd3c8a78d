package memory

import (
	"context"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vigilmarca/brand-health-bot/internal/models"
	"github.com/vigilmarca/brand-health-bot/internal/store"
)

// HistoryLedger is the append-only Brand Health Index time series for one
// brand. Entries are never mutated; Reset purges the whole series.
type HistoryLedger struct {
	store      store.Store
	collection string
}

// NewHistoryLedger binds the ledger to the given brand's history collection.
func NewHistoryLedger(s store.Store, brandID string) *HistoryLedger {
	return &HistoryLedger{
		store:      s,
		collection: brandID + "_score_history",
	}
}

// Collection returns the backing collection name.
func (l *HistoryLedger) Collection() string {
	return l.collection
}

// Append records one score point. Fire and forget: a store failure loses a
// single chart point, so it is logged and swallowed.
func (l *HistoryLedger) Append(ctx context.Context, score int, now time.Time) {
	fields := map[string]interface{}{
		"timestamp": now.UTC(),
		"score":     score,
		"label":     now.Format("02/01"),
	}

	if _, err := l.store.Add(ctx, l.collection, fields); err != nil {
		logrus.Errorf("Failed to append score %d to history: %v", score, err)
	}
}

// ReadRecent returns up to limit entries sorted ascending by timestamp.
// The store is queried most-recent-first and re-sorted, because the chart
// plots oldest to newest left to right regardless of store iteration order.
func (l *HistoryLedger) ReadRecent(ctx context.Context, limit int) ([]models.ScoreEntry, error) {
	docs, err := l.store.Recent(ctx, l.collection, "timestamp", limit)
	if err != nil {
		return nil, err
	}

	entries := make([]models.ScoreEntry, 0, len(docs))
	for _, doc := range docs {
		entry, ok := entryFromFields(doc.Fields)
		if !ok {
			logrus.Warnf("Skipping malformed history document %s in %s", doc.ID, l.collection)
			continue
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Timestamp.Before(entries[j].Timestamp)
	})
	return entries, nil
}

// Reset deletes the brand's entire score history. Irreversible.
func (l *HistoryLedger) Reset(ctx context.Context) (int, error) {
	return l.store.DeleteAll(ctx, l.collection)
}

func entryFromFields(fields map[string]interface{}) (models.ScoreEntry, bool) {
	ts, ok := fields["timestamp"].(time.Time)
	if !ok {
		return models.ScoreEntry{}, false
	}

	var score int
	switch v := fields["score"].(type) {
	case int:
		score = v
	case int64:
		// Firestore returns integers as int64.
		score = int(v)
	default:
		return models.ScoreEntry{}, false
	}

	label, _ := fields["label"].(string)
	return models.ScoreEntry{Timestamp: ts, Score: score, Label: label}, true
}
