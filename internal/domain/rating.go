package domain

import (
	"cmp"
	"strconv"
	"time"
)

// Star bounds for a rating, both inclusive.
const (
	MinStars = 0
	MaxStars = 5
)

// Rating is one user's score and comment for a product.
// At most one rating exists per (product, user); ratings are immutable.
type Rating struct {
	ID        string    `json:"id"`
	Product   string    `json:"product"`
	User      string    `json:"user"`
	Stars     int       `json:"stars"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidStars reports whether n is an acceptable star value.
func ValidStars(n int) bool {
	return n >= MinStars && n <= MaxStars
}

// String renders the rating as "stars : comment".
func (r *Rating) String() string {
	return strconv.Itoa(r.Stars) + " : " + r.Comment
}

// CompareRatings orders ratings by descending stars, then ascending user.
func CompareRatings(a, b *Rating) int {
	if c := cmp.Compare(b.Stars, a.Stars); c != 0 {
		return c
	}
	return cmp.Compare(a.User, b.User)
}
