package elasticsearch

import (
	"time"

	"github.com/jonesrussell/north-cloud/seo-generator/infrastructure/retry"
)

// Config holds Elasticsearch client settings.
type Config struct {
	// URL of the cluster. A missing scheme gets http://.
	URL      string
	Username string
	Password string
	APIKey   string
	// MaxRetries is passed to the transport for individual requests.
	MaxRetries int
	// PingTimeout bounds each verification ping.
	PingTimeout time.Duration
	// Retry controls connection verification at startup.
	Retry retry.Config
}

// SetDefaults fills in unset values.
func (c *Config) SetDefaults() {
	if c.URL == "" {
		c.URL = "http://localhost:9200"
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = 3
	}
	if c.PingTimeout == 0 {
		c.PingTimeout = 5 * time.Second
	}
	if c.Retry.MaxAttempts == 0 {
		c.Retry = retry.Config{
			MaxAttempts:  5,
			InitialDelay: 2 * time.Second,
			MaxDelay:     10 * time.Second,
			Multiplier:   2.0,
			IsRetryable:  func(error) bool { return true },
		}
	}
}
