package summarizer

import (
	"context"

	"github.com/vigilmarca/brand-health-bot/internal/models"
)

// BrandContext is the strategic framing handed to the summarizer alongside
// the mentions.
type BrandContext struct {
	BrandName   string
	Competitors []string
	TechFocus   string
}

// Summarizer turns one cycle's novel mentions into the executive report
// body. A failure here is cycle-fatal: no partial report is ever sent.
type Summarizer interface {
	Summarize(ctx context.Context, mentions []models.Mention, brand BrandContext) (string, error)
}
