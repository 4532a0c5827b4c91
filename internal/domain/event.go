package domain

import "time"

// EventType identifies what changed in the catalog.
type EventType string

// Catalog event types, one per write operation.
const (
	EventActivityDefined EventType = "activity.defined"
	EventCategoryAdded   EventType = "category.added"
	EventProductAdded    EventType = "product.added"
	EventRatingAdded     EventType = "rating.added"
)

// Event describes a committed catalog write.
// Subject is the name of the created entity (product name for ratings).
type Event struct {
	ID      string    `json:"id"`
	Type    EventType `json:"type"`
	Subject string    `json:"subject"`
	Data    any       `json:"data,omitempty"`
	At      time.Time `json:"at"`
}
