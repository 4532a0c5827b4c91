package domain

import (
	"slices"
	"time"
)

// Category is a product classification linked to one or more activities.
// Activities holds the linked activity names in ascending order.
type Category struct {
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	Activities []string  `json:"activities"`
	CreatedAt  time.Time `json:"created_at"`
}

// IsLinkedTo returns true if the category applies to the given activity.
func (c *Category) IsLinkedTo(activity string) bool {
	_, found := slices.BinarySearch(c.Activities, activity)
	return found
}
