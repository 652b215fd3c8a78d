package sources

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"github.com/vigilmarca/brand-health-bot/internal/models"
)

const defaultSerpAPIBaseURL = "https://serpapi.com/search"

// socialSites are the platforms the social provider restricts queries to.
var socialSites = []string{
	"twitter.com", "linkedin.com", "facebook.com", "instagram.com", "reddit.com",
}

type serpAPIResponse struct {
	OrganicResults []serpAPIResult `json:"organic_results"`
	Error          string          `json:"error"`
}

type serpAPIResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
	Date    string `json:"date"`
}

// SerpAPIProvider searches Google through SerpApi, scoped to either social
// platforms or configured financial news sites.
type SerpAPIProvider struct {
	apiKey   string
	category string
	sites    []string
	client   *resty.Client
	baseURL  string
}

// Ensure SerpAPIProvider implements Provider
var _ Provider = (*SerpAPIProvider)(nil)

// NewSocialProvider creates the social-media search provider.
func NewSocialProvider(apiKey string) *SerpAPIProvider {
	return newSerpAPIProvider(apiKey, models.CategorySocial, socialSites)
}

// NewFinancialNewsProvider creates the financial-news search provider
// restricted to the given news sites.
func NewFinancialNewsProvider(apiKey string, sites []string) *SerpAPIProvider {
	if len(sites) == 0 {
		sites = []string{"df.cl", "elmercurio.com"}
	}
	return newSerpAPIProvider(apiKey, models.CategoryFinancialNews, sites)
}

func newSerpAPIProvider(apiKey, category string, sites []string) *SerpAPIProvider {
	return &SerpAPIProvider{
		apiKey:   apiKey,
		category: category,
		sites:    sites,
		client:   resty.New().SetTimeout(30 * time.Second),
		baseURL:  defaultSerpAPIBaseURL,
	}
}

func (p *SerpAPIProvider) Category() string {
	return p.category
}

func (p *SerpAPIProvider) IsEnabled() bool {
	return p.apiKey != ""
}

// Search queries SerpApi for one term. Results come back in the engine's
// ranking order.
func (p *SerpAPIProvider) Search(ctx context.Context, term string, limit int) ([]models.Mention, error) {
	if !p.IsEnabled() {
		logrus.Debugf("SerpApi %s provider disabled - missing API key", p.category)
		return nil, nil
	}

	var result serpAPIResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"engine":  "google",
			"q":       p.buildQuery(term),
			"api_key": p.apiKey,
			"num":     strconv.Itoa(limit),
		}).
		SetResult(&result).
		Get(p.baseURL)

	if err != nil {
		return nil, fmt.Errorf("serpapi %s search failed: %w", p.category, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("serpapi %s search returned status %d: %s", p.category, resp.StatusCode(), string(resp.Body()))
	}
	if result.Error != "" {
		return nil, fmt.Errorf("serpapi %s search error: %s", p.category, result.Error)
	}

	mentions := make([]models.Mention, 0, len(result.OrganicResults))
	for _, r := range result.OrganicResults {
		mentions = append(mentions, models.Mention{
			Title:       r.Title,
			URL:         r.Link,
			Snippet:     r.Snippet,
			PublishedAt: parseResultDate(r.Date),
			Category:    p.category,
		})
	}

	logrus.Infof("SerpApi %s search for %q found %d results", p.category, term, len(mentions))
	return mentions, nil
}

func (p *SerpAPIProvider) buildQuery(term string) string {
	clauses := make([]string, 0, len(p.sites))
	for _, site := range p.sites {
		clauses = append(clauses, "site:"+site)
	}
	return fmt.Sprintf("(%s) %s", strings.Join(clauses, " OR "), term)
}

func parseResultDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}

	for _, layout := range []string{"Jan 2, 2006", "2 Jan 2006", time.RFC3339} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return &ts
		}
	}
	// Relative dates like "2 days ago" are not worth parsing; the
	// timestamp is optional on a mention.
	return nil
}
