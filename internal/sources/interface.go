package sources

import (
	"context"

	"github.com/vigilmarca/brand-health-bot/internal/models"
)

// Provider is a search backend for one source category. Implementations
// must fail soft: quota, auth and network errors yield an empty result and
// a logged error, never an aborted cycle.
type Provider interface {
	// Search returns mentions for one search term, in the backend's
	// result order.
	Search(ctx context.Context, term string, limit int) ([]models.Mention, error)
	// Category is the source category the provider serves ("social" or
	// "financial_news").
	Category() string
	IsEnabled() bool
}
