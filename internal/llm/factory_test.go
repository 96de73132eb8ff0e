package llm_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/seo-generator/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/seo-generator/internal/llm"
)

func TestNew_SelectsProvider(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cfg      llm.Config
		wantName string
		wantType any
	}{
		{
			name:     "no api key disables generation",
			cfg:      llm.Config{Provider: llm.ProviderOpenAI},
			wantName: llm.ProviderNone,
			wantType: llm.DisabledClient{},
		},
		{
			name:     "openai",
			cfg:      llm.Config{Provider: llm.ProviderOpenAI, APIKey: "k"},
			wantName: llm.ProviderOpenAI,
			wantType: &llm.OpenAIClient{},
		},
		{
			name:     "anthropic",
			cfg:      llm.Config{Provider: llm.ProviderAnthropic, APIKey: "k"},
			wantName: llm.ProviderAnthropic,
			wantType: &llm.AnthropicClient{},
		},
		{
			name:     "breaker wraps provider",
			cfg:      llm.Config{Provider: llm.ProviderOpenAI, APIKey: "k", Breaker: llm.BreakerConfig{Enabled: true}},
			wantName: llm.ProviderOpenAI,
			wantType: &llm.BreakerClient{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client, err := llm.New(context.Background(), tt.cfg, logger.NewNop())
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, client.Name())
			assert.IsType(t, tt.wantType, client)
		})
	}
}

func TestNew_UnknownProvider(t *testing.T) {
	t.Parallel()

	_, err := llm.New(context.Background(), llm.Config{Provider: "mystery", APIKey: "k"}, logger.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mystery")
}

func TestConfig_SetDefaults(t *testing.T) {
	t.Parallel()

	cfg := llm.Config{APIKey: "k"}
	cfg.SetDefaults()

	assert.Equal(t, llm.ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "gpt-4", cfg.Model)
	require.NotNil(t, cfg.Temperature)
	assert.InDelta(t, 0.7, *cfg.Temperature, 0)
	assert.Equal(t, 2000, cfg.MaxTokens)
	assert.Equal(t, 1, cfg.MaxAttempts)
}

func TestConfig_SetDefaults_KeepsZeroTemperature(t *testing.T) {
	t.Parallel()

	zero := 0.0
	cfg := llm.Config{APIKey: "k", Temperature: &zero}
	cfg.SetDefaults()

	require.NotNil(t, cfg.Temperature)
	assert.InDelta(t, 0.0, *cfg.Temperature, 0)
}

func TestDisabledClient_AlwaysFails(t *testing.T) {
	t.Parallel()

	_, err := llm.DisabledClient{}.Generate(context.Background(), "s", "p")

	var provErr *llm.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.ErrorIs(t, err, llm.ErrDisabled)
	assert.False(t, provErr.Retryable())
}
