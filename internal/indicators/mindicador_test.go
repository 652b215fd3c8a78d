package indicators

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"uf": {"valor": 38072.45},
			"dolar": {"valor": 945.12},
			"euro": {"valor": 1021.33},
			"utm": {"valor": 66362.0}
		}`))
	}))
	defer server.Close()

	block := NewClient(server.URL).Fetch(context.Background())
	require.Len(t, block, 4)
	assert.Equal(t, "UF", block[0].Name)
	assert.Equal(t, "$38072.45", block[0].Value)
	assert.Equal(t, "$66362", block[3].Value)
}

func TestClient_FetchRetriesThenGivesUp(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	block := NewClient(server.URL).Fetch(context.Background())
	assert.Nil(t, block, "the report simply omits the block on failure")
	assert.Equal(t, 3, attempts)
}

func TestClient_FetchRecoversMidway(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"uf": {"valor": 1}, "dolar": {"valor": 2}, "euro": {"valor": 3}, "utm": {"valor": 4}}`))
	}))
	defer server.Close()

	block := NewClient(server.URL).Fetch(context.Background())
	assert.Len(t, block, 4)
}

func TestClient_DisabledWithoutURL(t *testing.T) {
	assert.Nil(t, NewClient("").Fetch(context.Background()))
}
