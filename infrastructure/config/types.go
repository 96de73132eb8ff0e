package config

import (
	"fmt"
	"net/url"
	"time"
)

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port         int           `env:"SERVER_PORT"          yaml:"port"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT"  yaml:"read_timeout"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" yaml:"write_timeout"`
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT"  yaml:"idle_timeout"`
	CORSOrigins  []string      `env:"CORS_ORIGINS"         yaml:"cors_origins"`
}

// SetDefaults applies default values for ServerConfig.
func (c *ServerConfig) SetDefaults() {
	if c.Port == 0 {
		c.Port = 8000
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 30 * time.Second
	}
	// Generation waits on the model, so writes get more room than reads.
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 120 * time.Second
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 120 * time.Second
	}
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host            string        `env:"POSTGRES_HOST"     yaml:"host"`
	Port            int           `env:"POSTGRES_PORT"     yaml:"port"`
	User            string        `env:"POSTGRES_USER"     yaml:"user"`
	Password        string        `env:"POSTGRES_PASSWORD" yaml:"password"`
	Database        string        `env:"POSTGRES_DB"       yaml:"database"`
	SSLMode         string        `env:"POSTGRES_SSLMODE"  yaml:"sslmode"`
	MaxOpenConns    int           `yaml:"max_open_connections"`
	MaxIdleConns    int           `yaml:"max_idle_connections"`
	ConnMaxLifetime time.Duration `yaml:"connection_max_lifetime"`
}

// DSN returns a lib/pq keyword/value connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// URL returns the postgres:// form used by golang-migrate.
func (c *DatabaseConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     c.Database,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}

// SetDefaults applies default values for DatabaseConfig.
func (c *DatabaseConfig) SetDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 5432
	}
	if c.User == "" {
		c.User = "postgres"
	}
	if c.Database == "" {
		c.Database = "seo_generator"
	}
	if c.SSLMode == "" {
		c.SSLMode = "disable"
	}
	if c.MaxOpenConns == 0 {
		c.MaxOpenConns = 25
	}
	if c.MaxIdleConns == 0 {
		c.MaxIdleConns = 5
	}
	if c.ConnMaxLifetime == 0 {
		c.ConnMaxLifetime = 5 * time.Minute
	}
}

// RedisConfig holds Redis settings. An empty Address disables Redis.
type RedisConfig struct {
	Address  string `env:"REDIS_ADDRESS"  yaml:"address"`
	Password string `env:"REDIS_PASSWORD" yaml:"password"`
	DB       int    `env:"REDIS_DB"       yaml:"db"`
}

// Enabled reports whether a Redis address is configured.
func (c *RedisConfig) Enabled() bool {
	return c.Address != ""
}

// ElasticsearchConfig holds Elasticsearch settings. An empty URL disables it.
type ElasticsearchConfig struct {
	URL      string `env:"ELASTICSEARCH_URL"      yaml:"url"`
	Username string `env:"ELASTICSEARCH_USERNAME" yaml:"username"`
	Password string `env:"ELASTICSEARCH_PASSWORD" yaml:"password"`
	APIKey   string `env:"ELASTICSEARCH_API_KEY"  yaml:"api_key"`
	Index    string `env:"ELASTICSEARCH_INDEX"    yaml:"index"`
}

// Enabled reports whether an Elasticsearch URL is configured.
func (c *ElasticsearchConfig) Enabled() bool {
	return c.URL != ""
}

// SetDefaults applies default values for ElasticsearchConfig.
func (c *ElasticsearchConfig) SetDefaults() {
	if c.Index == "" {
		c.Index = "seo_pages"
	}
}
