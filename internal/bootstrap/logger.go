package bootstrap

import (
	"fmt"

	"github.com/jonesrussell/north-cloud/seo-generator/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/seo-generator/internal/config"
)

// CreateLogger creates the service logger from configuration.
func CreateLogger(cfg *config.Config) (logger.Logger, error) {
	logCfg := cfg.Logging
	if cfg.Service.Debug {
		logCfg.Development = true
	}
	log, err := logger.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log.With(logger.String("version", cfg.Service.Version)), nil
}
