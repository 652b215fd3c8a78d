package models

import "time"

// Source categories a mention can come from.
const (
	CategorySocial        = "social"
	CategoryFinancialNews = "financial_news"
)

// Mention represents a single discovered news or social item about the
// monitored brand. Immutable once collected; only its URL outlives the
// cycle, as a fingerprint.
type Mention struct {
	Title       string     `json:"title"`
	URL         string     `json:"url"`
	Snippet     string     `json:"snippet"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Category    string     `json:"source_category"` // "social" or "financial_news"
	Sentiment   string     `json:"sentiment,omitempty"`
	Urgency     string     `json:"urgency,omitempty"`
}

// ScoreEntry is one point of the Brand Health Index time series.
type ScoreEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Score     int       `json:"score"` // 0-100
	Label     string    `json:"label"` // dd/mm date label for chart ticks
}

// Report is the rendered outcome of one monitoring cycle.
type Report struct {
	GeneratedAt time.Time          `json:"generated_at"`
	BrandID     string             `json:"brand_id"`
	BrandName   string             `json:"brand_name"`
	Mentions    []Mention          `json:"mentions"`
	Summary     string             `json:"summary"` // LLM-produced HTML body
	Score       *int               `json:"score,omitempty"`
	Chart       []byte             `json:"-"` // PNG trend image, nil when absent
	Indicators  []Indicator        `json:"indicators,omitempty"`
	NoNovelty   bool               `json:"no_novelty"`
}

// Indicator is one economic indicator row shown in the report footer.
type Indicator struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}
