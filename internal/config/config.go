// Package config defines the seo-generator configuration.
package config

import (
	"fmt"
	"os"
	"time"

	infraconfig "github.com/jonesrussell/north-cloud/seo-generator/infrastructure/config"
	"github.com/jonesrussell/north-cloud/seo-generator/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/seo-generator/infrastructure/profiling"
	"github.com/jonesrussell/north-cloud/seo-generator/internal/llm"
)

// DefaultPath is the config file read when CONFIG_PATH is unset.
const DefaultPath = "config.yml"

const (
	defaultServiceName  = "seo-generator"
	defaultPublicURL    = "http://localhost:5173"
	defaultAPIBaseURL   = "http://localhost:8000"
	defaultEventsMaxLen = 10000
	defaultPingTimeout  = 10 * time.Second
	defaultPingAttempts = 2
)

// providerKeyEnv maps providers to the API key variables their SDKs use.
var providerKeyEnv = map[string]string{
	llm.ProviderOpenAI:    "OPENAI_API_KEY",
	llm.ProviderAnthropic: "ANTHROPIC_API_KEY",
	llm.ProviderGemini:    "GEMINI_API_KEY",
}

// Config is the complete service configuration.
type Config struct {
	Service       ServiceConfig                   `yaml:"service"`
	Server        infraconfig.ServerConfig        `yaml:"server"`
	Database      infraconfig.DatabaseConfig      `yaml:"database"`
	Redis         infraconfig.RedisConfig         `yaml:"redis"`
	Elasticsearch infraconfig.ElasticsearchConfig `yaml:"elasticsearch"`
	LLM           llm.Config                      `yaml:"llm"`
	Site          SiteConfig                      `yaml:"site"`
	Auth          AuthConfig                      `yaml:"auth"`
	Events        EventsConfig                    `yaml:"events"`
	Logging       logger.Config                   `yaml:"logging"`
	Profiling     profiling.Config                `yaml:"profiling"`
}

// ServiceConfig identifies the running service.
type ServiceConfig struct {
	Name    string `yaml:"name"`
	Version string `env:"SERVICE_VERSION" yaml:"version"`
	Debug   bool   `env:"APP_DEBUG"       yaml:"debug"`
}

// SiteConfig holds the public addresses used by the sitemap and ping.
type SiteConfig struct {
	// PublicURL is the frontend that renders /products/{slug}.
	PublicURL string `env:"FRONTEND_URL" yaml:"public_url"`
	// APIBaseURL is where this service is reachable; the sitemap lives under it.
	APIBaseURL    string        `env:"BASE_URL"               yaml:"api_base_url"`
	PingEndpoints []string      `env:"SITEMAP_PING_ENDPOINTS" yaml:"ping_endpoints"`
	PingTimeout   time.Duration `env:"SITEMAP_PING_TIMEOUT"   yaml:"ping_timeout"`
	PingAttempts  int           `env:"SITEMAP_PING_ATTEMPTS"  yaml:"ping_attempts"`
}

// AuthConfig guards the write routes. An empty secret leaves them open.
type AuthConfig struct {
	JWTSecret string `env:"AUTH_JWT_SECRET" yaml:"jwt_secret"`
}

// EventsConfig tunes the page event stream.
type EventsConfig struct {
	MaxLen int64 `env:"EVENTS_STREAM_MAXLEN" yaml:"stream_maxlen"`
}

// Load reads the config from path, applies defaults and validates it.
func Load(path string) (*Config, error) {
	cfg, err := infraconfig.LoadWithDefaults(path, setDefaults)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.Service.Name == "" {
		cfg.Service.Name = defaultServiceName
	}
	if cfg.Service.Version == "" {
		cfg.Service.Version = "dev"
	}

	cfg.Server.SetDefaults()
	cfg.Database.SetDefaults()
	cfg.Elasticsearch.SetDefaults()
	cfg.Profiling.SetDefaults()

	if cfg.LLM.APIKey == "" {
		provider := cfg.LLM.Provider
		if provider == "" {
			provider = llm.ProviderOpenAI
		}
		if name, ok := providerKeyEnv[provider]; ok {
			cfg.LLM.APIKey = os.Getenv(name)
		}
	}
	cfg.LLM.SetDefaults()

	if cfg.Site.PublicURL == "" {
		cfg.Site.PublicURL = defaultPublicURL
	}
	if cfg.Site.APIBaseURL == "" {
		cfg.Site.APIBaseURL = defaultAPIBaseURL
	}
	if cfg.Site.PingTimeout == 0 {
		cfg.Site.PingTimeout = defaultPingTimeout
	}
	if cfg.Site.PingAttempts == 0 {
		cfg.Site.PingAttempts = defaultPingAttempts
	}

	if cfg.Events.MaxLen == 0 {
		cfg.Events.MaxLen = defaultEventsMaxLen
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = logger.DefaultLevel
	}
	cfg.Logging.Service = cfg.Service.Name
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Elasticsearch.Validate(); err != nil {
		return err
	}
	if err := validateProvider(c.LLM.Provider); err != nil {
		return err
	}
	if err := infraconfig.ValidateAbsoluteURL("site.public_url", c.Site.PublicURL); err != nil {
		return err
	}
	if err := infraconfig.ValidateAbsoluteURL("site.api_base_url", c.Site.APIBaseURL); err != nil {
		return err
	}
	for _, endpoint := range c.Site.PingEndpoints {
		if err := infraconfig.ValidateAbsoluteURL("site.ping_endpoints", endpoint); err != nil {
			return err
		}
	}
	return infraconfig.ValidateLogLevel("logging.level", c.Logging.Level)
}

func validateProvider(provider string) error {
	switch provider {
	case llm.ProviderOpenAI, llm.ProviderAnthropic, llm.ProviderGemini, llm.ProviderNone:
		return nil
	default:
		return &infraconfig.ValidationError{
			Field:   "llm.provider",
			Message: "must be one of: openai, anthropic, gemini, none",
		}
	}
}
