// Package sse implements Server-Sent Events for real-time list updates and event broadcasting.
package sse

import (
	"time"

	"github.com/hatkhataapp/hatkhata-server/internal/domain"
)

// HatKhata uses SSE for server-to-client communication only, since every
// client interaction follows a request/response pattern. Bidirectional
// sync (e.g. multi-device editing sessions) could move to WebSockets
// later if needed.

// EventType represents the type of SSE Event.
type EventType string

const (
	// EventTagCreated represents a tag creation event.
	EventTagCreated EventType = "tag.created"
	// EventTagUpdated represents a tag update event.
	EventTagUpdated EventType = "tag.updated"
	// EventTagDeleted represents a tag deletion event.
	EventTagDeleted EventType = "tag.deleted"

	// EventListCreated represents a list creation event.
	EventListCreated EventType = "list.created"
	// EventListUpdated represents a list update event. Covers title, tag,
	// pin, urgency, note and ordering changes.
	EventListUpdated EventType = "list.updated"
	// EventListDeleted represents a list deletion event.
	EventListDeleted EventType = "list.deleted"
	// EventListItemsChanged represents any item-level mutation on a list
	// (add, update, delete, toggle, reorder, clear-checked). The payload
	// carries the full list so clients can re-render without refetching.
	EventListItemsChanged EventType = "list.items_changed"

	// EventSettingsUpdated represents an app settings change.
	EventSettingsUpdated EventType = "settings.updated"
	// EventUserUpdated represents a profile or onboarding state change.
	EventUserUpdated EventType = "user.updated"

	// EventHeartbeat represents a connection keepalive event.
	EventHeartbeat EventType = "heartbeat"
)

// Event represents an SSE event to be sent to clients.
// The Data field contains the event payload as a JSON object for direct deserialization.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"` // Event-specific data as JSON object
	Type      EventType `json:"type"`
}

// TagEventData is the data payload for tag create/update events.
type TagEventData struct {
	Tag domain.Tag `json:"tag"`
}

// TagDeletedEventData is the data payload for tag delete events.
type TagDeletedEventData struct {
	DeletedAt time.Time `json:"deleted_at"`
	TagID     string    `json:"tag_id"`
}

// ListEventData is the data payload for list events. The list is embedded
// whole, items included, so events are self-contained and immediately
// renderable without a follow-up fetch.
type ListEventData struct {
	List domain.BazaarList `json:"list"`
}

// ListDeletedEventData is the data payload for list delete events.
type ListDeletedEventData struct {
	DeletedAt time.Time `json:"deleted_at"`
	ListID    string    `json:"list_id"`
}

// SettingsEventData is the data payload for settings events.
type SettingsEventData struct {
	Settings domain.Settings `json:"settings"`
}

// UserEventData is the data payload for user events.
type UserEventData struct {
	Profile   domain.UserProfile `json:"profile"`
	Onboarded bool               `json:"onboarded"`
}

// HeartbeatEventData is the data payload for heartbeat events.
type HeartbeatEventData struct {
	ServerTime time.Time `json:"server_time"`
}

// NewTagCreatedEvent creates a tag.created event.
func NewTagCreatedEvent(tag domain.Tag) Event {
	return Event{
		Type:      EventTagCreated,
		Data:      TagEventData{Tag: tag},
		Timestamp: time.Now(),
	}
}

// NewTagUpdatedEvent creates a tag.updated event.
func NewTagUpdatedEvent(tag domain.Tag) Event {
	return Event{
		Type:      EventTagUpdated,
		Data:      TagEventData{Tag: tag},
		Timestamp: time.Now(),
	}
}

// NewTagDeletedEvent creates a tag.deleted event.
func NewTagDeletedEvent(tagID string, deletedAt time.Time) Event {
	return Event{
		Type: EventTagDeleted,
		Data: TagDeletedEventData{
			TagID:     tagID,
			DeletedAt: deletedAt,
		},
		Timestamp: time.Now(),
	}
}

// NewListCreatedEvent creates a list.created event.
func NewListCreatedEvent(list domain.BazaarList) Event {
	return Event{
		Type:      EventListCreated,
		Data:      ListEventData{List: list},
		Timestamp: time.Now(),
	}
}

// NewListUpdatedEvent creates a list.updated event.
func NewListUpdatedEvent(list domain.BazaarList) Event {
	return Event{
		Type:      EventListUpdated,
		Data:      ListEventData{List: list},
		Timestamp: time.Now(),
	}
}

// NewListDeletedEvent creates a list.deleted event.
func NewListDeletedEvent(listID string, deletedAt time.Time) Event {
	return Event{
		Type: EventListDeleted,
		Data: ListDeletedEventData{
			ListID:    listID,
			DeletedAt: deletedAt,
		},
		Timestamp: time.Now(),
	}
}

// NewListItemsChangedEvent creates a list.items_changed event.
func NewListItemsChangedEvent(list domain.BazaarList) Event {
	return Event{
		Type:      EventListItemsChanged,
		Data:      ListEventData{List: list},
		Timestamp: time.Now(),
	}
}

// NewSettingsUpdatedEvent creates a settings.updated event.
func NewSettingsUpdatedEvent(settings domain.Settings) Event {
	return Event{
		Type:      EventSettingsUpdated,
		Data:      SettingsEventData{Settings: settings},
		Timestamp: time.Now(),
	}
}

// NewUserUpdatedEvent creates a user.updated event.
func NewUserUpdatedEvent(profile domain.UserProfile, onboarded bool) Event {
	return Event{
		Type: EventUserUpdated,
		Data: UserEventData{
			Profile:   profile,
			Onboarded: onboarded,
		},
		Timestamp: time.Now(),
	}
}

// NewHeartbeatEvent creates a heartbeat event.
func NewHeartbeatEvent() Event {
	return Event{
		Type: EventHeartbeat,
		Data: HeartbeatEventData{
			ServerTime: time.Now(),
		},
		Timestamp: time.Now(),
	}
}
