// Package id generates prefixed unique identifiers for BookDen entities.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Entity prefixes. The prefix makes IDs self-describing in logs and URLs.
const (
	PrefixBook  = "book"
	PrefixUser  = "usr"
	PrefixEvent = "evt"
)

// Generate creates a prefixed unique ID using NanoID.
// Format: prefix-nanoid (e.g., "book-V1StGXR8_Z5jdHi6B-myT").
//
// NanoIDs are URL-friendly and more compact than UUIDs (21 characters vs 36).
// Returns an error if the system has insufficient entropy.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// MustGenerate is like Generate but panics if ID generation fails.
// Acceptable for request-scoped entity creation where a failed entropy read
// means the process is unusable anyway.
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}

// NewBookID returns a fresh book ID.
func NewBookID() string { return MustGenerate(PrefixBook) }

// NewUserID returns a fresh user ID.
func NewUserID() string { return MustGenerate(PrefixUser) }

// NewEventID returns a fresh reading event ID.
func NewEventID() string { return MustGenerate(PrefixEvent) }
