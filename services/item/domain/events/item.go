package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics published by the item repository.
const (
	TopicItemCreated = "item.created"
	TopicItemUpdated = "item.updated"
	TopicItemDeleted = "item.deleted"
)

// ItemCreatedEvent is published after an Item is first added.
// Consumers subscribe via EventBus.Subscribe(ctx, events.TopicItemCreated).
type ItemCreatedEvent struct {
	EventID     uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version     int       `json:"version"`  // Schema version; increment on breaking changes
	ItemID      uuid.UUID `json:"item_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// ItemUpdatedEvent is published when Add overwrites an existing Item.
// It carries the same fields as ItemCreatedEvent.
type ItemUpdatedEvent ItemCreatedEvent

// ItemDeletedEvent is published after an Item is removed.
type ItemDeletedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	ItemID     uuid.UUID `json:"item_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
