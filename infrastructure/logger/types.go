package logger

// Config configures the service logger.
type Config struct {
	// Level is the minimum level: debug, info, warn, error or fatal.
	Level string `env:"LOG_LEVEL" yaml:"level"`
	// Development disables sampling so every entry is written.
	Development bool `env:"LOG_DEVELOPMENT" yaml:"development"`
	// OutputPaths lists zap sinks such as "stdout" or a file path.
	OutputPaths []string `yaml:"output_paths"`
	// Service is attached to every entry as the "service" field.
	Service string `yaml:"-"`
}

// DefaultLevel is used when no level is configured.
const DefaultLevel = "info"

// SetDefaults fills in unset values.
func (c *Config) SetDefaults() {
	if c.Level == "" {
		c.Level = DefaultLevel
	}
	if len(c.OutputPaths) == 0 {
		c.OutputPaths = []string{"stdout"}
	}
}
