package llm

import (
	"context"
	"fmt"

	infrahttp "github.com/jonesrussell/north-cloud/seo-generator/infrastructure/http"
	"github.com/jonesrussell/north-cloud/seo-generator/infrastructure/logger"
)

// New builds the configured provider client, wrapped in a circuit breaker
// when enabled. The pipeline bounds each call with its own timeout, so the
// transport only caps runaway requests.
func New(ctx context.Context, cfg Config, log logger.Logger) (Client, error) {
	cfg.SetDefaults()

	httpClient := infrahttp.NewClient(&infrahttp.ClientConfig{
		Timeout:   cfg.Timeout * 2,
		UserAgent: "seo-generator",
	})

	var client Client
	switch cfg.Provider {
	case ProviderAnthropic:
		client = NewAnthropicClient(cfg, httpClient)
	case ProviderGemini:
		gemini, err := NewGeminiClient(ctx, cfg, httpClient)
		if err != nil {
			return nil, err
		}
		client = gemini
	case ProviderOpenAI:
		client = NewOpenAIClient(cfg, httpClient)
	case ProviderNone:
		log.Warn("No generative provider configured, all pages will use fallback content")
		return DisabledClient{}, nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}

	log.Info("Generative provider configured",
		logger.String("provider", client.Name()),
		logger.String("model", cfg.Model),
		logger.Bool("circuit_breaker", cfg.Breaker.Enabled),
	)

	if cfg.Breaker.Enabled {
		client = NewBreakerClient(client, cfg.Breaker, log)
	}
	return client, nil
}
