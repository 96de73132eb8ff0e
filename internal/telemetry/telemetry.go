// Package telemetry provides Prometheus metrics and OpenTelemetry tracing for
// the seo-generator service.
package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "seo-generator"

// Namespace prefixes every metric the service exports.
const Namespace = "seo_generator"

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	Generations        *prometheus.CounterVec
	Fallbacks          *prometheus.CounterVec
	GenerationDuration *prometheus.HistogramVec

	PagesStored  *prometheus.CounterVec
	PagesDeleted prometheus.Counter

	SitemapPings *prometheus.CounterVec
}

// Provider wraps the tracer, the metrics and the registry they live on.
type Provider struct {
	Tracer   trace.Tracer
	Metrics  *Metrics
	Registry *prometheus.Registry
}

// NewProvider registers every metric on a fresh registry, together with the
// Go runtime and process collectors.
func NewProvider() *Provider {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Provider{
		Tracer:   otel.Tracer(serviceName),
		Metrics:  initMetrics(promauto.With(reg)),
		Registry: reg,
	}
}

// Handler serves the registry for the /metrics endpoint.
func (p *Provider) Handler() http.Handler {
	return promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{Registry: p.Registry})
}

func initMetrics(factory promauto.Factory) *Metrics {
	return &Metrics{
		Generations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "generations_total",
			Help:      "Page documents produced, by content source (ai, fallback)",
		}, []string{"source"}),
		Fallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "generation_fallbacks_total",
			Help:      "Generations that used fallback content, by failure kind",
		}, []string{"reason"}),
		GenerationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "generation_duration_seconds",
			Help:      "Time to produce a page document",
			Buckets:   []float64{0.01, 0.1, 0.5, 1, 2.5, 5, 10, 20, 30, 60},
		}, []string{"source"}),
		PagesStored: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "pages_stored_total",
			Help:      "Pages written to the database, by operation (created, updated)",
		}, []string{"operation"}),
		PagesDeleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "pages_deleted_total",
			Help:      "Pages deleted",
		}),
		SitemapPings: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "sitemap_pings_total",
			Help:      "Search engine sitemap notifications, by result",
		}, []string{"result"}),
	}
}

// RecordGeneration counts one pipeline run. failureKind is empty when the
// model reply was used.
func (p *Provider) RecordGeneration(_ context.Context, source, failureKind string, duration time.Duration) {
	p.Metrics.Generations.WithLabelValues(source).Inc()
	p.Metrics.GenerationDuration.WithLabelValues(source).Observe(duration.Seconds())
	if failureKind != "" {
		p.Metrics.Fallbacks.WithLabelValues(failureKind).Inc()
	}
}

// RecordStored counts an upsert.
func (p *Provider) RecordStored(created bool) {
	op := "updated"
	if created {
		op = "created"
	}
	p.Metrics.PagesStored.WithLabelValues(op).Inc()
}

// RecordDeleted counts a deletion.
func (p *Provider) RecordDeleted() {
	p.Metrics.PagesDeleted.Inc()
}

// RecordPing counts a sitemap notification.
func (p *Provider) RecordPing(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	p.Metrics.SitemapPings.WithLabelValues(result).Inc()
}

// StartSpan starts a new trace span.
func (p *Provider) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return p.Tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}
