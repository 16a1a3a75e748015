package session

import "context"

// Store defines the interface for session persistence. Implementations must
// be safe for concurrent use across requests; saves are last-write-wins with
// no version check.
type Store interface {
	// Create persists a brand new session under the given id.
	Create(ctx context.Context, id string) (*Session, error)

	// FindOrCreate returns the session stored under id, creating it when no
	// record exists.
	FindOrCreate(ctx context.Context, id string) (*Session, error)

	// Save upserts the full session record.
	Save(ctx context.Context, s *Session) error
}
