// Package llm adapts generative text providers to a single call: send a
// system instruction and a prompt, get the reply text back.
package llm

import (
	"context"
	"time"
)

// Provider names accepted in configuration.
const (
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderNone      = "none"
)

// Client sends one prompt to a provider. Implementations do not retry and
// return *ProviderError or *EmptyResponseError on failure.
type Client interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
	// Name identifies the provider in logs.
	Name() string
}

// Config selects and tunes the provider.
type Config struct {
	Provider    string        `env:"LLM_PROVIDER"     yaml:"provider"`
	APIKey      string        `env:"LLM_API_KEY"      yaml:"api_key"`
	Model       string        `env:"LLM_MODEL"        yaml:"model"`
	BaseURL     string        `env:"LLM_BASE_URL"     yaml:"base_url"`
	Temperature *float64      `env:"LLM_TEMPERATURE"  yaml:"temperature"`
	MaxTokens   int           `env:"LLM_MAX_TOKENS"   yaml:"max_tokens"`
	Timeout     time.Duration `env:"LLM_TIMEOUT"      yaml:"timeout"`
	MaxAttempts int           `env:"LLM_MAX_ATTEMPTS" yaml:"max_attempts"`

	Breaker BreakerConfig `yaml:"breaker"`
}

// BreakerConfig tunes the circuit breaker around the provider.
type BreakerConfig struct {
	Enabled          bool          `env:"LLM_BREAKER_ENABLED"   yaml:"enabled"`
	FailureThreshold int           `env:"LLM_BREAKER_FAILURES"  yaml:"failure_threshold"`
	Cooldown         time.Duration `env:"LLM_BREAKER_COOLDOWN"  yaml:"cooldown"`
}

const (
	defaultTemperature = 0.7
	defaultMaxTokens   = 2000
	defaultTimeout     = 60 * time.Second
)

var defaultModels = map[string]string{
	ProviderAnthropic: "claude-sonnet-4-5",
	ProviderGemini:    "gemini-2.5-flash",
	ProviderOpenAI:    "gpt-4",
}

// SetDefaults fills in unset values. The provider falls back to "none" when
// no API key is configured. An explicit temperature of 0 is kept.
func (c *Config) SetDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderOpenAI
	}
	if c.APIKey == "" {
		c.Provider = ProviderNone
	}
	if c.Model == "" {
		c.Model = defaultModels[c.Provider]
	}
	if c.Temperature == nil {
		t := defaultTemperature
		c.Temperature = &t
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = defaultMaxTokens
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = 1
	}
	if c.Breaker.FailureThreshold == 0 {
		c.Breaker.FailureThreshold = 5
	}
	if c.Breaker.Cooldown == 0 {
		c.Breaker.Cooldown = 30 * time.Second
	}
}

func (c *Config) temperature() float64 {
	if c.Temperature == nil {
		return defaultTemperature
	}
	return *c.Temperature
}
