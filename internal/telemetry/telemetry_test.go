package telemetry_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/seo-generator/internal/telemetry"
)

func TestNewProvider(t *testing.T) {
	t.Parallel()

	p := telemetry.NewProvider()
	require.NotNil(t, p.Tracer)
	require.NotNil(t, p.Metrics)
	require.NotNil(t, p.Registry)
}

func TestRecordGeneration(t *testing.T) {
	t.Parallel()

	p := telemetry.NewProvider()
	ctx := context.Background()

	p.RecordGeneration(ctx, "ai", "", 300*time.Millisecond)
	p.RecordGeneration(ctx, "fallback", "parse", 10*time.Millisecond)
	p.RecordGeneration(ctx, "fallback", "parse", 10*time.Millisecond)

	assert.InDelta(t, 1, testutil.ToFloat64(p.Metrics.Generations.WithLabelValues("ai")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(p.Metrics.Generations.WithLabelValues("fallback")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(p.Metrics.Fallbacks.WithLabelValues("parse")), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(p.Metrics.Fallbacks))
}

func TestRecordStoredAndDeleted(t *testing.T) {
	t.Parallel()

	p := telemetry.NewProvider()
	p.RecordStored(true)
	p.RecordStored(false)
	p.RecordStored(false)
	p.RecordDeleted()
	p.RecordPing(false)

	assert.InDelta(t, 1, testutil.ToFloat64(p.Metrics.PagesStored.WithLabelValues("created")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(p.Metrics.PagesStored.WithLabelValues("updated")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(p.Metrics.PagesDeleted), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(p.Metrics.SitemapPings.WithLabelValues("failure")), 0)
}

func TestHandler_ExposesMetrics(t *testing.T) {
	t.Parallel()

	p := telemetry.NewProvider()
	p.RecordGeneration(context.Background(), "fallback", "provider", time.Second)

	rec := httptest.NewRecorder()
	p.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `seo_generator_generation_fallbacks_total{reason="provider"} 1`)
	assert.Contains(t, body, "go_goroutines")
}

func TestStartSpan(t *testing.T) {
	t.Parallel()

	p := telemetry.NewProvider()
	ctx, span := p.StartSpan(context.Background(), "test")
	defer span.End()

	assert.NotNil(t, ctx)
}
