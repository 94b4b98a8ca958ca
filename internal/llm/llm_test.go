package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpungsan/nobi/internal/errors"
)

func TestNewGemini_RequiresAPIKey(t *testing.T) {
	t.Setenv(APIKeyEnv, "")

	_, err := NewGemini(context.Background(), Options{})
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestNewGemini_KeyFromEnv(t *testing.T) {
	t.Setenv(APIKeyEnv, "test-key")

	g, err := NewGemini(context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.0-flash", g.Model())
}

func geminiServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/test-model:generateContent"), r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGemini_Generate(t *testing.T) {
	srv := geminiServer(t, `{"candidates":[{"content":{"role":"model","parts":[{"text":"Day 1: Arrival\n**Morning**\nLand"}]}}]}`)

	g, err := NewGemini(context.Background(), Options{APIKey: "k", Model: "test-model", BaseURL: srv.URL})
	require.NoError(t, err)

	text, err := g.Generate(context.Background(), "plan a trip")
	require.NoError(t, err)
	assert.Equal(t, "Day 1: Arrival\n**Morning**\nLand", text)
}

func TestGemini_GenerateEmptyResponse(t *testing.T) {
	srv := geminiServer(t, `{"candidates":[]}`)

	g, err := NewGemini(context.Background(), Options{APIKey: "k", Model: "test-model", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = g.Generate(context.Background(), "plan a trip")
	assert.True(t, errors.Is(err, errors.ErrUpstream), "got %v", err)
}
