package domain

import "time"

// Product is a sellable item bound to exactly one (activity, category) pair.
// The category is always linked to the activity.
type Product struct {
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Activity  string    `json:"activity"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}
