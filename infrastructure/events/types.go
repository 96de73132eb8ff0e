// Package events defines the page lifecycle events the seo-generator
// publishes on a Redis stream for downstream consumers such as renderers and
// cache purgers.
package events

import (
	"time"

	"github.com/google/uuid"
)

// StreamName is the Redis stream for page events.
const StreamName = "seo:page-events"

// EventType represents the type of page event.
type EventType string

const (
	// PageGenerated indicates a page was stored under a new slug.
	PageGenerated EventType = "page.generated"
	// PageUpdated indicates an existing page was regenerated.
	PageUpdated EventType = "page.updated"
	// PageDeleted indicates a page was removed.
	PageDeleted EventType = "page.deleted"
)

// PageEvent is the envelope for all page events.
type PageEvent struct {
	EventID   uuid.UUID `json:"event_id"`
	EventType EventType `json:"event_type"`
	Slug      string    `json:"slug"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// PageStoredPayload accompanies page.generated and page.updated.
type PageStoredPayload struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	// Source is "ai" or "fallback".
	Source string `json:"source"`
	// PreviousName is set when an update replaced a page of another product
	// whose name derives the same slug.
	PreviousName string `json:"previous_name,omitempty"`
}

// PageDeletedPayload accompanies page.deleted.
type PageDeletedPayload struct {
	Name string `json:"name"`
}
