// Package id generates prefixed identifiers for catalog records.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes for generated IDs.
const (
	PrefixRating = "rat"
)

// Generate creates a prefixed unique ID using NanoID
// Format: prefix-nanoid (e.g., "rat-V1StGXR8_Z5jdHi6B-myT")
//
// Returns an error if the system has insufficient entropy for secure random generation.
func Generate(prefix string) (string, error) {
	nid, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + nid, nil
}

// NewRatingID returns a fresh rating identifier.
func NewRatingID() (string, error) {
	return Generate(PrefixRating)
}
