// Package events publishes page lifecycle events to Redis Streams.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	infraevents "github.com/jonesrussell/north-cloud/seo-generator/infrastructure/events"
	"github.com/jonesrussell/north-cloud/seo-generator/infrastructure/logger"
)

// publishTimeout bounds a single XADD so a slow Redis cannot hold a request.
const publishTimeout = 2 * time.Second

// Publisher publishes page events to the page stream.
type Publisher struct {
	client *redis.Client
	log    logger.Logger
	maxLen int64
}

// NewPublisher creates a new event publisher.
// Returns nil if client is nil; a nil Publisher drops every event.
func NewPublisher(client *redis.Client, log logger.Logger, maxLen int64) *Publisher {
	if client == nil {
		return nil
	}
	return &Publisher{client: client, log: log, maxLen: maxLen}
}

// Publish sends an event to the stream and returns the stream entry ID.
func (p *Publisher) Publish(ctx context.Context, event infraevents.PageEvent) (string, error) {
	if p == nil || p.client == nil {
		return "", nil
	}

	if event.EventID == uuid.Nil {
		event.EventID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	args := &redis.XAddArgs{
		Stream: infraevents.StreamName,
		Values: map[string]any{
			"event_type": string(event.EventType),
			"slug":       event.Slug,
			"event":      string(payload),
		},
	}
	if p.maxLen > 0 {
		args.MaxLen = p.maxLen
		args.Approx = true
	}

	id, err := p.client.XAdd(ctx, args).Result()
	if err != nil {
		return "", fmt.Errorf("publish to stream: %w", err)
	}

	p.log.Debug("Published page event",
		logger.String("event_type", string(event.EventType)),
		logger.String("slug", event.Slug),
		logger.String("stream_id", id),
	)
	return id, nil
}

// PageStored publishes page.generated for an insert and page.updated
// otherwise. Errors are logged, not returned.
func (p *Publisher) PageStored(ctx context.Context, slug string, inserted bool, payload infraevents.PageStoredPayload) {
	eventType := infraevents.PageUpdated
	if inserted {
		eventType = infraevents.PageGenerated
	}
	p.publishLogged(ctx, infraevents.PageEvent{EventType: eventType, Slug: slug, Payload: payload})
}

// PageDeleted publishes page.deleted. Errors are logged, not returned.
func (p *Publisher) PageDeleted(ctx context.Context, slug, name string) {
	p.publishLogged(ctx, infraevents.PageEvent{
		EventType: infraevents.PageDeleted,
		Slug:      slug,
		Payload:   infraevents.PageDeletedPayload{Name: name},
	})
}

func (p *Publisher) publishLogged(ctx context.Context, event infraevents.PageEvent) {
	if p == nil {
		return
	}
	if _, err := p.Publish(ctx, event); err != nil {
		p.log.Error("Failed to publish page event",
			logger.String("event_type", string(event.EventType)),
			logger.String("slug", event.Slug),
			logger.Error(err),
		)
	}
}
