package bootstrap_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/seo-generator/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/seo-generator/internal/bootstrap"
	"github.com/jonesrussell/north-cloud/seo-generator/internal/config"
	"github.com/jonesrussell/north-cloud/seo-generator/internal/content"
	"github.com/jonesrussell/north-cloud/seo-generator/internal/domain"
	"github.com/jonesrussell/north-cloud/seo-generator/internal/llm"
	"github.com/jonesrussell/north-cloud/seo-generator/internal/service"
	"github.com/jonesrussell/north-cloud/seo-generator/internal/telemetry"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Service.Name = "seo-generator"
	cfg.Service.Version = "test"
	cfg.Server.Port = 8000
	cfg.LLM = llm.Config{Provider: llm.ProviderNone}
	cfg.Site.PublicURL = "https://shop.example.com"
	cfg.Site.APIBaseURL = "https://api.example.com"
	cfg.Site.PingAttempts = 1
	return cfg
}

type emptyService struct{}

func (emptyService) Generate(context.Context, domain.ProductInput) (*service.GenerateResult, error) {
	return nil, errors.New("not used")
}

func (emptyService) Get(context.Context, string) (*domain.Product, error) {
	return nil, service.ErrNotFound
}

func (emptyService) List(context.Context, int, int) ([]*domain.Product, error) {
	return []*domain.Product{}, nil
}

func (emptyService) Delete(context.Context, string) error { return service.ErrNotFound }

func (emptyService) Sitemap(context.Context) ([]byte, error) { return []byte("<urlset/>"), nil }

func (emptyService) PingSearchEngines(context.Context) error { return nil }

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, http.NoBody))
	return w
}

func TestSetupHTTPServer_Routes(t *testing.T) {
	server := bootstrap.SetupHTTPServer(testConfig(), emptyService{}, telemetry.NewProvider(), bootstrap.Checks{
		Database: func() error { return nil },
	}, logger.NewNop())
	router := server.Router()

	assert.Equal(t, http.StatusOK, get(t, router, "/").Code)
	assert.Equal(t, http.StatusOK, get(t, router, "/health").Code)
	assert.Equal(t, http.StatusOK, get(t, router, "/api/v1/products").Code)
	assert.Equal(t, http.StatusNotFound, get(t, router, "/api/v1/products/missing").Code)

	metrics := get(t, router, "/metrics")
	require.Equal(t, http.StatusOK, metrics.Code)
	assert.Contains(t, metrics.Body.String(), "seo_generator_http_requests_total")
}

func TestSetupHTTPServer_UnhealthyDatabase(t *testing.T) {
	server := bootstrap.SetupHTTPServer(testConfig(), emptyService{}, telemetry.NewProvider(), bootstrap.Checks{
		Database: func() error { return errors.New("connection refused") },
	}, logger.NewNop())

	assert.Equal(t, http.StatusServiceUnavailable, get(t, server.Router(), "/health").Code)
}

func TestSetupPipeline_WithoutProviderFallsBack(t *testing.T) {
	t.Parallel()

	pipeline, err := bootstrap.SetupPipeline(context.Background(), testConfig(), telemetry.NewProvider(), logger.NewNop())
	require.NoError(t, err)

	result := pipeline.Generate(context.Background(), domain.ProductInput{
		Name:     "EcoClean Detergent",
		Category: "Cleaning Supplies",
	})

	assert.Equal(t, content.SourceFallback, result.Source)
	assert.Equal(t, "ecoclean-detergent", result.Document.Slug)
}

func TestSetupPinger_DefaultEndpoint(t *testing.T) {
	t.Parallel()

	pinger := bootstrap.SetupPinger(testConfig(), logger.NewNop())

	assert.Equal(t, []string{"http://www.google.com/ping"}, pinger.Endpoints())
}
