package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/menagerist/services/item/domain/events"
)

func TestItemCreatedEvent_JSONFieldNames(t *testing.T) {
	desc := "TOS - The Menagerie"
	evt := events.ItemCreatedEvent{
		EventID:     uuid.New(),
		Version:     1,
		ItemID:      uuid.New(),
		Name:        "Vintage Laserdisc",
		Description: &desc,
		OccurredAt:  time.Now().UTC(),
	}

	data, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal to map failed: %v", err)
	}

	for _, field := range []string{"event_id", "version", "item_id", "name", "description", "occurred_at"} {
		if _, ok := raw[field]; !ok {
			t.Errorf("expected JSON field %q not found in: %s", field, data)
		}
	}
}

func TestItemCreatedEvent_NilDescriptionIsNull(t *testing.T) {
	data, err := json.Marshal(events.ItemCreatedEvent{Name: "x"})
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	var raw map[string]interface{}
	_ = json.Unmarshal(data, &raw)
	if v, ok := raw["description"]; !ok || v != nil {
		t.Errorf("expected description to be null, got %v (present=%v)", v, ok)
	}
}

func TestItemDeletedEvent_JSONFieldNames(t *testing.T) {
	data, err := json.Marshal(events.ItemDeletedEvent{
		EventID:    uuid.New(),
		Version:    1,
		ItemID:     uuid.New(),
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	var raw map[string]interface{}
	_ = json.Unmarshal(data, &raw)
	for _, field := range []string{"event_id", "version", "item_id", "occurred_at"} {
		if _, ok := raw[field]; !ok {
			t.Errorf("expected JSON field %q not found in: %s", field, data)
		}
	}
}

func TestTopics(t *testing.T) {
	if events.TopicItemCreated != "item.created" {
		t.Errorf("expected %q, got %q", "item.created", events.TopicItemCreated)
	}
	if events.TopicItemUpdated != "item.updated" {
		t.Errorf("expected %q, got %q", "item.updated", events.TopicItemUpdated)
	}
	if events.TopicItemDeleted != "item.deleted" {
		t.Errorf("expected %q, got %q", "item.deleted", events.TopicItemDeleted)
	}
}
