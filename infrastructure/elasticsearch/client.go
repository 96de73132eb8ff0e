// Package elasticsearch opens verified go-elasticsearch clients.
package elasticsearch

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	es "github.com/elastic/go-elasticsearch/v8"

	"github.com/jonesrussell/north-cloud/seo-generator/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/seo-generator/infrastructure/retry"
)

// NewClient creates a client and pings the cluster, retrying with backoff
// until it answers or cfg.Retry gives up.
func NewClient(ctx context.Context, cfg Config, log logger.Logger) (*es.Client, error) {
	cfg.SetDefaults()
	url := normalizeURL(cfg.URL)

	esCfg := es.Config{
		Addresses:  []string{url},
		MaxRetries: cfg.MaxRetries,
	}
	switch {
	case cfg.APIKey != "":
		esCfg.APIKey = cfg.APIKey
	case cfg.Username != "":
		esCfg.Username = cfg.Username
		esCfg.Password = cfg.Password
	}

	client, err := es.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}

	log.Info("Verifying Elasticsearch connection", logger.String("url", url))
	if err := retry.Retry(ctx, cfg.Retry, func() error {
		return Ping(ctx, client, cfg.PingTimeout)
	}); err != nil {
		return nil, fmt.Errorf("connect to elasticsearch: %w", err)
	}

	return client, nil
}

// Ping checks that the cluster answers within timeout.
func Ping(ctx context.Context, client *es.Client, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	res, err := client.Ping(client.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 1<<10))
		return fmt.Errorf("ping returned %s: %s", res.Status(), body)
	}
	return nil
}

func normalizeURL(url string) string {
	if url == "" {
		return "http://localhost:9200"
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return "http://" + url
	}
	return url
}
