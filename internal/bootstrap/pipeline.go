package bootstrap

import (
	"context"
	"fmt"
	"time"

	infrahttp "github.com/jonesrussell/north-cloud/seo-generator/infrastructure/http"
	"github.com/jonesrussell/north-cloud/seo-generator/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/seo-generator/infrastructure/retry"
	"github.com/jonesrussell/north-cloud/seo-generator/internal/config"
	"github.com/jonesrussell/north-cloud/seo-generator/internal/content"
	"github.com/jonesrussell/north-cloud/seo-generator/internal/llm"
	"github.com/jonesrussell/north-cloud/seo-generator/internal/searchping"
	"github.com/jonesrussell/north-cloud/seo-generator/internal/telemetry"
)

// SetupPipeline creates the model client and the content pipeline around it.
// A nil tel leaves the pipeline without metrics and tracing.
func SetupPipeline(ctx context.Context, cfg *config.Config, tel *telemetry.Provider, log logger.Logger) (*content.Pipeline, error) {
	client, err := llm.New(ctx, cfg.LLM, log)
	if err != nil {
		return nil, fmt.Errorf("create llm client: %w", err)
	}

	opts := []content.Option{
		content.WithTimeout(cfg.LLM.Timeout),
		content.WithMaxAttempts(cfg.LLM.MaxAttempts),
	}
	if tel != nil {
		opts = append(opts, content.WithRecorder(tel), content.WithTracer(tel.Tracer))
	}
	return content.NewPipeline(client, log, opts...), nil
}

// SetupPinger creates the sitemap pinger.
func SetupPinger(cfg *config.Config, log logger.Logger) *searchping.Pinger {
	client := infrahttp.NewClient(&infrahttp.ClientConfig{
		Timeout:   cfg.Site.PingTimeout,
		UserAgent: cfg.Service.Name,
	})

	retryCfg := retry.DefaultConfig()
	retryCfg.MaxAttempts = cfg.Site.PingAttempts
	retryCfg.InitialDelay = 500 * time.Millisecond

	return searchping.New(client, cfg.Site.PingEndpoints, retryCfg, log)
}
