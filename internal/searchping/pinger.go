// Package searchping notifies search engines that the sitemap changed.
package searchping

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/sync/errgroup"

	infraerrors "github.com/jonesrussell/north-cloud/seo-generator/infrastructure/errors"
	"github.com/jonesrussell/north-cloud/seo-generator/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/seo-generator/infrastructure/retry"
)

// DefaultEndpoint is Google's sitemap ping endpoint.
const DefaultEndpoint = "http://www.google.com/ping"

// ErrNoEndpoints is returned when no ping endpoint is configured.
var ErrNoEndpoints = errors.New("no ping endpoints configured")

// Pinger sends GET {endpoint}?sitemap={sitemapURL} to every endpoint.
type Pinger struct {
	client    *http.Client
	endpoints []string
	retry     retry.Config
	log       logger.Logger
}

// New creates a Pinger. An empty endpoint list uses DefaultEndpoint.
func New(client *http.Client, endpoints []string, retryCfg retry.Config, log logger.Logger) *Pinger {
	if len(endpoints) == 0 {
		endpoints = []string{DefaultEndpoint}
	}
	return &Pinger{client: client, endpoints: endpoints, retry: retryCfg, log: log}
}

// Endpoints returns the configured endpoints.
func (p *Pinger) Endpoints() []string {
	return append([]string(nil), p.endpoints...)
}

// Ping notifies every endpoint about sitemapURL concurrently. It waits for
// all of them and returns the joined errors of those that failed.
func (p *Pinger) Ping(ctx context.Context, sitemapURL string) error {
	if len(p.endpoints) == 0 {
		return ErrNoEndpoints
	}

	errs := make([]error, len(p.endpoints))
	var g errgroup.Group
	for i, endpoint := range p.endpoints {
		g.Go(func() error {
			if err := p.pingOne(ctx, endpoint, sitemapURL); err != nil {
				p.log.Warn("Sitemap ping failed",
					logger.String("endpoint", endpoint),
					logger.Error(err),
				)
				errs[i] = fmt.Errorf("%s: %w", endpoint, err)
				return nil
			}
			p.log.Info("Sitemap ping sent",
				logger.String("endpoint", endpoint),
				logger.String("sitemap", sitemapURL),
			)
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}

// PingURL builds the request URL for one endpoint.
func PingURL(endpoint, sitemapURL string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("parse ping endpoint: %w", err)
	}
	q := u.Query()
	q.Set("sitemap", sitemapURL)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (p *Pinger) pingOne(ctx context.Context, endpoint, sitemapURL string) error {
	target, err := PingURL(endpoint, sitemapURL)
	if err != nil {
		return err
	}

	return retry.Retry(ctx, p.retry, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
		if err != nil {
			return fmt.Errorf("create ping request: %w", err)
		}

		resp, err := p.client.Do(req)
		if err != nil {
			return fmt.Errorf("send ping: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode != http.StatusOK {
			if httpErr := infraerrors.ParseHTTPError(resp); httpErr != nil {
				return httpErr
			}
			_, _ = io.Copy(io.Discard, resp.Body)
			return &infraerrors.HTTPError{StatusCode: resp.StatusCode, Status: resp.Status}
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	})
}
