package bootstrap

import (
	"context"
	"time"

	es "github.com/elastic/go-elasticsearch/v8"

	infraes "github.com/jonesrussell/north-cloud/seo-generator/infrastructure/elasticsearch"
	"github.com/jonesrussell/north-cloud/seo-generator/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/seo-generator/internal/config"
	"github.com/jonesrussell/north-cloud/seo-generator/internal/searchindex"
)

const healthPingTimeout = 2 * time.Second

// SetupElasticsearch connects to the cluster when it is configured. It
// returns nil when the search index is disabled or unreachable.
func SetupElasticsearch(ctx context.Context, cfg *config.Config, log logger.Logger) *es.Client {
	if !cfg.Elasticsearch.Enabled() {
		log.Info("Elasticsearch not configured, search indexing disabled")
		return nil
	}

	client, err := infraes.NewClient(ctx, infraes.Config{
		URL:      cfg.Elasticsearch.URL,
		Username: cfg.Elasticsearch.Username,
		Password: cfg.Elasticsearch.Password,
		APIKey:   cfg.Elasticsearch.APIKey,
	}, log)
	if err != nil {
		log.Warn("Elasticsearch not available, search indexing disabled", logger.Error(err))
		return nil
	}
	return client
}

// SetupIndexer returns the page indexer and makes sure its index exists.
func SetupIndexer(ctx context.Context, cfg *config.Config, client *es.Client, log logger.Logger) *searchindex.Indexer {
	indexer := searchindex.NewIndexer(client, cfg.Elasticsearch.Index, log)
	if err := indexer.EnsureIndex(ctx); err != nil {
		log.Warn("Failed to prepare search index", logger.Error(err))
	}
	return indexer
}

func elasticsearchPing(ctx context.Context, client *es.Client) func() error {
	if client == nil {
		return nil
	}
	return func() error { return infraes.Ping(ctx, client, healthPingTimeout) }
}
