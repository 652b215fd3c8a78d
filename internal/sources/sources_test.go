package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vigilmarca/brand-health-bot/internal/models"
)

func TestSerpAPIProvider_Search(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		assert.Equal(t, "google", r.URL.Query().Get("engine"))
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "10", r.URL.Query().Get("num"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"organic_results": [
				{"title": "Resultados del banco", "link": "https://www.df.cl/nota-1", "snippet": "resumen uno", "date": "Aug 30, 2026"},
				{"title": "Otra nota", "link": "https://www.df.cl/nota-2", "snippet": "resumen dos", "date": "2 days ago"}
			]
		}`))
	}))
	defer server.Close()

	provider := NewFinancialNewsProvider("test-key", nil)
	provider.baseURL = server.URL

	mentions, err := provider.Search(context.Background(), "Banco de Chile", 10)
	require.NoError(t, err)
	require.Len(t, mentions, 2)

	assert.Equal(t, "(site:df.cl OR site:elmercurio.com) Banco de Chile", gotQuery)
	assert.Equal(t, "Resultados del banco", mentions[0].Title)
	assert.Equal(t, "https://www.df.cl/nota-1", mentions[0].URL)
	assert.Equal(t, models.CategoryFinancialNews, mentions[0].Category)
	require.NotNil(t, mentions[0].PublishedAt)
	assert.Nil(t, mentions[1].PublishedAt, "relative dates stay unset")
}

func TestSerpAPIProvider_SocialQueryScopesPlatforms(t *testing.T) {
	provider := NewSocialProvider("test-key")
	query := provider.buildQuery("Banco de Chile reclamos")

	assert.Contains(t, query, "site:twitter.com")
	assert.Contains(t, query, "site:reddit.com")
	assert.Contains(t, query, "Banco de Chile reclamos")
	assert.Equal(t, models.CategorySocial, provider.Category())
}

func TestSerpAPIProvider_APIErrorFailsSoft(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error": "Your account has run out of searches."}`))
	}))
	defer server.Close()

	provider := NewSocialProvider("test-key")
	provider.baseURL = server.URL

	mentions, err := provider.Search(context.Background(), "Banco de Chile", 10)
	assert.Error(t, err)
	assert.Empty(t, mentions)
}

func TestSerpAPIProvider_QuotaStatusFailsSoft(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	provider := NewFinancialNewsProvider("test-key", []string{"df.cl"})
	provider.baseURL = server.URL

	_, err := provider.Search(context.Background(), "Banco de Chile", 10)
	assert.Error(t, err)
}

func TestSerpAPIProvider_DisabledWithoutKey(t *testing.T) {
	provider := NewSocialProvider("")
	assert.False(t, provider.IsEnabled())

	mentions, err := provider.Search(context.Background(), "Banco de Chile", 10)
	assert.NoError(t, err)
	assert.Empty(t, mentions)
}
