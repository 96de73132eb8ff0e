package elasticsearch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/seo-generator/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/seo-generator/infrastructure/retry"
)

func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"":                          "http://localhost:9200",
		"elasticsearch:9200":        "http://elasticsearch:9200",
		"http://elasticsearch:9200": "http://elasticsearch:9200",
		"https://search.example":    "https://search.example",
	}
	for in, want := range tests {
		assert.Equal(t, want, normalizeURL(in), "input %q", in)
	}
}

func TestConfig_SetDefaults(t *testing.T) {
	t.Parallel()

	cfg := Config{URL: "http://custom:9200", MaxRetries: 7}
	cfg.SetDefaults()

	assert.Equal(t, "http://custom:9200", cfg.URL)
	assert.Equal(t, 7, cfg.MaxRetries)
	assert.Equal(t, 5*time.Second, cfg.PingTimeout)
	assert.Equal(t, 5, cfg.Retry.MaxAttempts)
}

func TestNewClient_PingsCluster(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client, err := NewClient(context.Background(), Config{URL: srv.URL}, logger.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNewClient_GivesUp(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(context.Background(), Config{
		URL:        srv.URL,
		MaxRetries: 1,
		Retry:      retry.Config{MaxAttempts: 2, InitialDelay: time.Millisecond, IsRetryable: func(error) bool { return true }},
	}, logger.NewNop())
	assert.Error(t, err)
}
