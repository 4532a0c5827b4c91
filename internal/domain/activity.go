package domain

import "time"

// Activity is a named sport or discipline such as "Trekking".
// The name is the identity; activities are never renamed or removed.
type Activity struct {
	Name      string    `json:"name"`
	Slug      string    `json:"slug"` // Display key only, never used for lookups
	CreatedAt time.Time `json:"created_at"`
}
