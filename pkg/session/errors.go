package session

import "errors"

// Session errors.
var (
	// ErrNotFound is returned when a session record does not exist and the
	// operation does not create one.
	ErrNotFound = errors.New("session: not found")

	// ErrInvalidID is returned when a session id is not UUID-shaped.
	ErrInvalidID = errors.New("session: invalid id")
)
