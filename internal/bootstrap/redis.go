package bootstrap

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/jonesrussell/north-cloud/seo-generator/infrastructure/logger"
	infraredis "github.com/jonesrussell/north-cloud/seo-generator/infrastructure/redis"
	"github.com/jonesrussell/north-cloud/seo-generator/internal/config"
	"github.com/jonesrussell/north-cloud/seo-generator/internal/events"
)

// SetupRedis connects to Redis when it is configured. It returns nil when
// Redis is disabled or unreachable; events are then skipped.
func SetupRedis(ctx context.Context, cfg *config.Config, log logger.Logger) *redis.Client {
	if !cfg.Redis.Enabled() {
		log.Info("Redis not configured, page events disabled")
		return nil
	}

	client, err := infraredis.NewClient(ctx, infraredis.Config{
		Address:  cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis not available, page events disabled", logger.Error(err))
		return nil
	}

	log.Info("Redis connected", logger.String("address", cfg.Redis.Address))
	return client
}

// SetupEventPublisher returns the page event publisher. It is nil, and
// ignores every call, when client is nil.
func SetupEventPublisher(cfg *config.Config, client *redis.Client, log logger.Logger) *events.Publisher {
	return events.NewPublisher(client, log, cfg.Events.MaxLen)
}

func redisPing(ctx context.Context, client *redis.Client) func() error {
	if client == nil {
		return nil
	}
	return func() error { return client.Ping(ctx).Err() }
}
