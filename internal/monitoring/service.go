package monitoring

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vigilmarca/brand-health-bot/internal/chart"
	"github.com/vigilmarca/brand-health-bot/internal/config"
	"github.com/vigilmarca/brand-health-bot/internal/indicators"
	"github.com/vigilmarca/brand-health-bot/internal/memory"
	"github.com/vigilmarca/brand-health-bot/internal/models"
	"github.com/vigilmarca/brand-health-bot/internal/notifications"
	"github.com/vigilmarca/brand-health-bot/internal/sources"
	"github.com/vigilmarca/brand-health-bot/internal/storage"
	"github.com/vigilmarca/brand-health-bot/internal/store"
	"github.com/vigilmarca/brand-health-bot/internal/summarizer"
)

// State is one step of the monitoring cycle.
type State string

// Cycle states, in execution order. FAILED is terminal and reachable from
// SUMMARIZING and DELIVERING.
const (
	StateIdle       State = "IDLE"
	StateCollecting State = "COLLECTING"
	StateDeduping   State = "DEDUPING"
	StateNoNovelty  State = "NO_NOVELTY_REPORT"
	StateSummarize  State = "SUMMARIZING"
	StateScoring    State = "SCORING"
	StateCharting   State = "CHARTING"
	StateDelivering State = "DELIVERING"
	StateCommitting State = "COMMITTING"
	StateDone       State = "DONE"
	StateFailed     State = "FAILED"
)

const (
	searchLimit  = 10
	historyDepth = 11 // recent ledger entries on a chart, before today's point
)

// ChartRenderer draws the score series handed to it oldest-first.
type ChartRenderer interface {
	Render(entries []models.ScoreEntry) ([]byte, error)
}

// IndicatorSource supplies the optional economic-indicator block.
type IndicatorSource interface {
	Fetch(ctx context.Context) []models.Indicator
}

// Deps are the orchestrator's collaborators. Notifications and Store are
// required; nil optional fields get production defaults built from the
// configuration (Archive and Indicators stay absent when nil).
type Deps struct {
	Store         store.Store
	Providers     []sources.Provider
	Summarizer    summarizer.Summarizer
	Notifications notifications.NotificationInterface
	Chart         ChartRenderer
	Indicators    IndicatorSource
	Archive       storage.ArchiveInterface
}

// Service drives the monitoring cycle for one brand:
// collect -> dedup -> summarize -> score -> chart -> deliver -> commit.
type Service struct {
	config        *config.Config
	fingerprints  *memory.FingerprintIndex
	history       *memory.HistoryLedger
	providers     []sources.Provider
	summarizer    summarizer.Summarizer
	notifications notifications.NotificationInterface
	chart         ChartRenderer
	indicators    IndicatorSource
	archive       storage.ArchiveInterface

	runMu   sync.Mutex // guarantees non-overlapping cycles
	mu      sync.RWMutex
	metrics *Metrics
}

// Metrics holds the outcome of the most recent cycle.
type Metrics struct {
	State           State     `json:"state"`
	LastRun         time.Time `json:"last_run"`
	LastRunDuration string    `json:"last_run_duration"`
	Collected       int       `json:"collected"`
	Novel           int       `json:"novel"`
	Duplicates      int       `json:"duplicates"`
	LastScore       *int      `json:"last_score,omitempty"`
	ErrorCount      int       `json:"error_count"`
}

// NewService creates the orchestrator for the configured brand.
func NewService(cfg *config.Config, deps Deps) *Service {
	brand := cfg.Brand

	if deps.Providers == nil {
		deps.Providers = []sources.Provider{
			sources.NewFinancialNewsProvider(cfg.SerpAPIKey, brand.FinancialSites),
			sources.NewSocialProvider(cfg.SerpAPIKey),
		}
	}
	if deps.Summarizer == nil {
		deps.Summarizer = summarizer.NewGeminiSummarizer(cfg.GeminiAPIKey, cfg.GeminiModel)
	}
	if deps.Chart == nil {
		deps.Chart = chart.NewRenderer(brand.PrimaryColor)
	}
	if deps.Indicators == nil && cfg.IndicatorsURL != "" {
		deps.Indicators = indicators.NewClient(cfg.IndicatorsURL)
	}

	return &Service{
		config:        cfg,
		fingerprints:  memory.NewFingerprintIndex(deps.Store, brand.ID),
		history:       memory.NewHistoryLedger(deps.Store, brand.ID),
		providers:     deps.Providers,
		summarizer:    deps.Summarizer,
		notifications: deps.Notifications,
		chart:         deps.Chart,
		indicators:    deps.Indicators,
		archive:       deps.Archive,
		metrics:       &Metrics{State: StateIdle},
	}
}

// RunCycle performs one full monitoring cycle. A summarizer or delivery
// failure aborts the cycle with every persisted state untouched, so the
// same items are reconsidered on the next run.
func (s *Service) RunCycle() error {
	if !s.runMu.TryLock() {
		return fmt.Errorf("a monitoring cycle is already running")
	}
	defer s.runMu.Unlock()

	start := time.Now()
	brand := s.config.Brand
	logrus.Infof("Starting monitoring cycle for %s", brand.Name)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	s.setState(StateCollecting)
	collected := s.collect(ctx)
	logrus.Infof("Collected %d mentions across %d search terms", len(collected), len(brand.SearchTerms))

	s.setState(StateDeduping)
	novel := Dedup(ctx, collected, s.fingerprints)
	logrus.Infof("%d novel mentions after dedup (%d filtered)", len(novel), len(collected)-len(novel))

	if len(novel) == 0 {
		s.setState(StateNoNovelty)
		if err := s.notifications.SendNoNovelty(brand.Name); err != nil {
			logrus.Errorf("Failed to send no-novelty notice: %v", err)
		}
		s.finishCycle(start, len(collected), 0, nil, StateDone)
		logrus.Info("No novel mentions; cycle complete with no writes")
		return nil
	}

	if s.config.EnableSentimentAnalysis {
		for i := range novel {
			novel[i].Sentiment, novel[i].Urgency = AnalyzeSentiment(novel[i].Title + " " + novel[i].Snippet)
		}
	}

	s.setState(StateSummarize)
	summary, err := s.summarizer.Summarize(ctx, novel, summarizer.BrandContext{
		BrandName:   brand.Name,
		Competitors: brand.Competitors,
		TechFocus:   brand.TechFocus,
	})
	if err != nil {
		s.finishCycle(start, len(collected), len(novel), nil, StateFailed)
		return fmt.Errorf("summarization failed, aborting cycle: %w", err)
	}

	s.setState(StateScoring)
	score, scored := ExtractHealthScore(summary)
	if scored {
		logrus.Infof("Extracted Brand Health Index %d/100", score)
	} else {
		logrus.Warn("No Brand Health Index found in summary; skipping ledger append")
	}

	s.setState(StateCharting)
	now := time.Now()
	trend := s.renderTrend(ctx, score, scored, now)

	report := &models.Report{
		GeneratedAt: now,
		BrandID:     brand.ID,
		BrandName:   brand.Name,
		Mentions:    novel,
		Summary:     summary,
		Chart:       trend,
	}
	if scored {
		scoreCopy := score
		report.Score = &scoreCopy
	}
	if s.indicators != nil {
		report.Indicators = s.indicators.Fetch(ctx)
	}

	s.setState(StateDelivering)
	if err := s.notifications.SendReport(report); err != nil {
		s.finishCycle(start, len(collected), len(novel), nil, StateFailed)
		return fmt.Errorf("delivery failed, nothing committed: %w", err)
	}

	s.setState(StateCommitting)
	for _, mention := range novel {
		s.fingerprints.MarkProcessed(ctx, mention)
	}
	if scored {
		s.history.Append(ctx, score, now)
	}

	s.archiveReport(report)

	var lastScore *int
	if scored {
		lastScore = &score
	}
	s.finishCycle(start, len(collected), len(novel), lastScore, StateDone)
	logrus.Infof("Monitoring cycle completed in %v", time.Since(start))
	return nil
}

// collect fans out one search per (term, provider) pair. Slot-indexed
// aggregation keeps the result in term-major, provider-minor order no
// matter how the concurrent calls interleave. A failing provider yields an
// empty slot for that term only.
func (s *Service) collect(ctx context.Context) []models.Mention {
	terms := s.config.Brand.SearchTerms
	slots := make([][]models.Mention, len(terms)*len(s.providers))

	var wg sync.WaitGroup
	for ti, term := range terms {
		for pi, provider := range s.providers {
			wg.Add(1)
			go func(slot int, term string, p sources.Provider) {
				defer wg.Done()

				mentions, err := p.Search(ctx, term, searchLimit)
				if err != nil {
					logrus.Errorf("Search failed for term %q (%s): %v", term, p.Category(), err)
					s.recordError()
					return
				}
				slots[slot] = mentions
			}(ti*len(s.providers)+pi, term, provider)
		}
	}
	wg.Wait()

	var all []models.Mention
	for _, slot := range slots {
		all = append(all, slot...)
	}
	return all
}

// renderTrend reads the recent ledger, appends today's score when one was
// extracted, and renders the series. Fewer than two points means no chart;
// a read or render failure degrades to no chart as well.
func (s *Service) renderTrend(ctx context.Context, score int, scored bool, now time.Time) []byte {
	entries, err := s.history.ReadRecent(ctx, historyDepth)
	if err != nil {
		logrus.Errorf("Failed to read score history, skipping chart: %v", err)
		entries = nil
	}

	if scored {
		entries = append(entries, models.ScoreEntry{
			Timestamp: now,
			Score:     score,
			Label:     now.Format("02/01"),
		})
	}

	if len(entries) < 2 {
		logrus.Infof("Only %d score points available; no trend chart this cycle", len(entries))
		return nil
	}

	png, err := s.chart.Render(entries)
	if err != nil {
		logrus.Errorf("Failed to render trend chart: %v", err)
		return nil
	}
	return png
}

// archiveReport stores the delivered report and chart. Best effort.
func (s *Service) archiveReport(report *models.Report) {
	if s.archive == nil {
		return
	}

	stamp := report.GeneratedAt.Format("2006-01-02-15-04-05")
	prefix := fmt.Sprintf("%s/%s", report.BrandID, stamp)

	if err := s.archive.Store(prefix+"-report.html", []byte(report.Summary)); err != nil {
		logrus.Errorf("Failed to archive report: %v", err)
	}
	if len(report.Chart) > 0 {
		if err := s.archive.Store(prefix+"-trend.png", report.Chart); err != nil {
			logrus.Errorf("Failed to archive chart: %v", err)
		}
	}
}

func (s *Service) setState(state State) {
	s.mu.Lock()
	s.metrics.State = state
	s.mu.Unlock()
	logrus.Debugf("Cycle state: %s", state)
}

func (s *Service) recordError() {
	s.mu.Lock()
	s.metrics.ErrorCount++
	s.mu.Unlock()
}

func (s *Service) finishCycle(start time.Time, collected, novel int, lastScore *int, state State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.State = state
	s.metrics.LastRun = time.Now()
	s.metrics.LastRunDuration = time.Since(start).String()
	s.metrics.Collected = collected
	s.metrics.Novel = novel
	s.metrics.Duplicates = collected - novel
	if lastScore != nil {
		s.metrics.LastScore = lastScore
	}
}

// GetMetrics returns the current metrics as JSON.
func (s *Service) GetMetrics() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, _ := json.MarshalIndent(s.metrics, "", "  ")
	return string(data)
}
