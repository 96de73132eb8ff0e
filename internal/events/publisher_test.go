package events_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infraevents "github.com/jonesrussell/north-cloud/seo-generator/infrastructure/events"
	"github.com/jonesrussell/north-cloud/seo-generator/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/seo-generator/internal/events"
)

func newTestPublisher(t *testing.T) (*events.Publisher, *redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return events.NewPublisher(client, logger.NewNop(), 1000), client, mr
}

func readStream(t *testing.T, client *redis.Client) []redis.XMessage {
	t.Helper()

	msgs, err := client.XRange(context.Background(), infraevents.StreamName, "-", "+").Result()
	require.NoError(t, err)
	return msgs
}

func TestPublisher_Publish(t *testing.T) {
	t.Parallel()

	pub, client, _ := newTestPublisher(t)

	id, err := pub.Publish(context.Background(), infraevents.PageEvent{
		EventType: infraevents.PageGenerated,
		Slug:      "ecoclean-detergent",
		Payload:   infraevents.PageStoredPayload{Name: "EcoClean Detergent", Source: "ai"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	msgs := readStream(t, client)
	require.Len(t, msgs, 1)
	assert.Equal(t, "page.generated", msgs[0].Values["event_type"])
	assert.Equal(t, "ecoclean-detergent", msgs[0].Values["slug"])

	var decoded infraevents.PageEvent
	require.NoError(t, json.Unmarshal([]byte(msgs[0].Values["event"].(string)), &decoded))
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", decoded.EventID.String())
	assert.False(t, decoded.Timestamp.IsZero())
}

func TestPublisher_PageStored(t *testing.T) {
	t.Parallel()

	pub, client, _ := newTestPublisher(t)
	ctx := context.Background()

	pub.PageStored(ctx, "a", true, infraevents.PageStoredPayload{Name: "A"})
	pub.PageStored(ctx, "a", false, infraevents.PageStoredPayload{Name: "A"})
	pub.PageDeleted(ctx, "a", "A")

	msgs := readStream(t, client)
	require.Len(t, msgs, 3)
	assert.Equal(t, "page.generated", msgs[0].Values["event_type"])
	assert.Equal(t, "page.updated", msgs[1].Values["event_type"])
	assert.Equal(t, "page.deleted", msgs[2].Values["event_type"])
}

func TestPublisher_RedisDownIsNotFatal(t *testing.T) {
	t.Parallel()

	pub, _, mr := newTestPublisher(t)
	mr.Close()

	_, err := pub.Publish(context.Background(), infraevents.PageEvent{EventType: infraevents.PageDeleted, Slug: "a"})
	require.Error(t, err)

	assert.NotPanics(t, func() { pub.PageDeleted(context.Background(), "a", "A") })
}

func TestPublisher_NilIsNoOp(t *testing.T) {
	t.Parallel()

	pub := events.NewPublisher(nil, logger.NewNop(), 0)
	assert.Nil(t, pub)

	id, err := pub.Publish(context.Background(), infraevents.PageEvent{Slug: "a"})
	require.NoError(t, err)
	assert.Empty(t, id)
	assert.NotPanics(t, func() { pub.PageStored(context.Background(), "a", true, infraevents.PageStoredPayload{}) })
}
