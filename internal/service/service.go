// Package service coordinates page generation with storage and the side
// channels that follow a write: metrics, page events and the search index.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	infraevents "github.com/jonesrussell/north-cloud/seo-generator/infrastructure/events"
	"github.com/jonesrussell/north-cloud/seo-generator/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/seo-generator/internal/content"
	"github.com/jonesrussell/north-cloud/seo-generator/internal/database"
	"github.com/jonesrussell/north-cloud/seo-generator/internal/domain"
	"github.com/jonesrussell/north-cloud/seo-generator/internal/sitemap"
)

// ErrInvalidSlug is returned when a product name derives an empty slug.
var ErrInvalidSlug = errors.New("product name does not produce a valid slug")

// ErrNotFound is returned when no page is stored under a slug.
var ErrNotFound = database.ErrNotFound

// Store persists pages. *database.Repository satisfies it.
type Store interface {
	Upsert(ctx context.Context, p *domain.Product) (*database.UpsertResult, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Product, error)
	DeleteBySlug(ctx context.Context, slug string) (*domain.Product, error)
	ListSitemapEntries(ctx context.Context) ([]domain.SitemapEntry, error)
}

// ContentGenerator produces page content. *content.Pipeline satisfies it.
type ContentGenerator interface {
	Generate(ctx context.Context, in domain.ProductInput) *content.Result
}

// EventPublisher announces page changes. *events.Publisher satisfies it and
// is usable as a nil pointer.
type EventPublisher interface {
	PageStored(ctx context.Context, slug string, inserted bool, payload infraevents.PageStoredPayload)
	PageDeleted(ctx context.Context, slug, name string)
}

// SearchIndexer mirrors pages into a search index. *searchindex.Indexer
// satisfies it and is usable as a nil pointer.
type SearchIndexer interface {
	Index(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, slug string) error
}

// SitemapPinger notifies search engines. *searchping.Pinger satisfies it.
type SitemapPinger interface {
	Ping(ctx context.Context, sitemapURL string) error
}

// Metrics records page lifecycle counters. *telemetry.Provider satisfies it.
type Metrics interface {
	RecordStored(created bool)
	RecordDeleted()
	RecordPing(success bool)
}

// Config holds the public addresses the service advertises.
type Config struct {
	// SiteURL is the public frontend that serves /products/{slug}.
	SiteURL string
	// APIBaseURL is where this service serves /sitemap.xml.
	APIBaseURL string
}

// Deps are the collaborators of a PageService. Events, Indexer, Pinger and
// Metrics are optional.
type Deps struct {
	Store     Store
	Generator ContentGenerator
	Events    EventPublisher
	Indexer   SearchIndexer
	Pinger    SitemapPinger
	Metrics   Metrics
	Logger    logger.Logger
}

// GenerateResult is the outcome of PageService.Generate.
type GenerateResult struct {
	Product *domain.Product
	Created bool
	Source  content.Source
}

// PageService is safe for concurrent use.
type PageService struct {
	store     Store
	generator ContentGenerator
	events    EventPublisher
	indexer   SearchIndexer
	pinger    SitemapPinger
	metrics   Metrics
	log       logger.Logger
	cfg       Config
	now       func() time.Time
}

// New creates a PageService.
func New(cfg Config, deps Deps) *PageService {
	log := deps.Logger
	if log == nil {
		log = logger.NewNop()
	}
	metrics := deps.Metrics
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &PageService{
		store:     deps.Store,
		generator: deps.Generator,
		events:    deps.Events,
		indexer:   deps.Indexer,
		pinger:    deps.Pinger,
		metrics:   metrics,
		log:       log,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Generate builds the page for in and stores it under its slug, replacing any
// page already stored there.
func (s *PageService) Generate(ctx context.Context, in domain.ProductInput) (*GenerateResult, error) {
	in = in.Normalize()
	if content.DeriveSlug(in.Name) == "" {
		return nil, ErrInvalidSlug
	}

	log := logger.FromContextOr(ctx, s.log)
	result := s.generator.Generate(ctx, in)
	doc := sanitizeDocument(result.Document)

	product := domain.NewProduct(in, *doc)
	stored, err := s.store.Upsert(ctx, &product)
	if err != nil {
		return nil, fmt.Errorf("store page: %w", err)
	}

	if !stored.Inserted && stored.PreviousName != "" && stored.PreviousName != in.Name {
		log.Warn("Slug collision replaced a different product",
			logger.String("slug", product.Slug),
			logger.String("previous_name", stored.PreviousName),
			logger.String("name", in.Name),
		)
	}

	log.Info("Page stored",
		logger.String("slug", stored.Product.Slug),
		logger.Int64("id", stored.Product.ID),
		logger.Bool("created", stored.Inserted),
		logger.String("source", string(result.Source)),
	)

	s.metrics.RecordStored(stored.Inserted)
	if s.events != nil {
		payload := infraevents.PageStoredPayload{
			Name:     stored.Product.Name,
			Category: stored.Product.Category,
			Source:   string(result.Source),
		}
		if stored.PreviousName != in.Name {
			payload.PreviousName = stored.PreviousName
		}
		s.events.PageStored(ctx, stored.Product.Slug, stored.Inserted, payload)
	}
	if s.indexer != nil {
		if err := s.indexer.Index(ctx, stored.Product); err != nil {
			log.Error("Failed to index page", logger.String("slug", stored.Product.Slug), logger.Error(err))
		}
	}

	return &GenerateResult{Product: stored.Product, Created: stored.Inserted, Source: result.Source}, nil
}

// Get returns the page stored under slug or ErrNotFound.
func (s *PageService) Get(ctx context.Context, slug string) (*domain.Product, error) {
	return s.store.GetBySlug(ctx, slug)
}

// List returns pages newest first. A limit of zero or less returns all of them.
func (s *PageService) List(ctx context.Context, limit, offset int) ([]*domain.Product, error) {
	products, err := s.store.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []*domain.Product{}
	}
	return products, nil
}

// Delete removes the page stored under slug or returns ErrNotFound.
func (s *PageService) Delete(ctx context.Context, slug string) error {
	deleted, err := s.store.DeleteBySlug(ctx, slug)
	if err != nil {
		return err
	}

	log := logger.FromContextOr(ctx, s.log)
	log.Info("Page deleted", logger.String("slug", slug), logger.String("name", deleted.Name))

	s.metrics.RecordDeleted()
	if s.events != nil {
		s.events.PageDeleted(ctx, slug, deleted.Name)
	}
	if s.indexer != nil {
		if err := s.indexer.Delete(ctx, slug); err != nil {
			log.Error("Failed to remove page from search index", logger.String("slug", slug), logger.Error(err))
		}
	}
	return nil
}

// Sitemap renders the sitemap for every stored page.
func (s *PageService) Sitemap(ctx context.Context) ([]byte, error) {
	entries, err := s.store.ListSitemapEntries(ctx)
	if err != nil {
		return nil, err
	}
	return sitemap.Render(s.cfg.SiteURL, entries, s.now())
}

// SitemapURL is the public address of the sitemap.
func (s *PageService) SitemapURL() string {
	return sitemap.Location(s.cfg.APIBaseURL)
}

// PingSearchEngines tells the configured search engines the sitemap changed.
func (s *PageService) PingSearchEngines(ctx context.Context) error {
	if s.pinger == nil {
		return errors.New("search engine ping is not configured")
	}
	err := s.pinger.Ping(ctx, s.SitemapURL())
	s.metrics.RecordPing(err == nil)
	return err
}

type nopMetrics struct{}

func (nopMetrics) RecordStored(bool) {}
func (nopMetrics) RecordDeleted()    {}
func (nopMetrics) RecordPing(bool)   {}
