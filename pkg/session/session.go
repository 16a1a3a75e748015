package session

import (
	"encoding/json"
	"regexp"
	"time"
)

var uuidRe = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// ValidID reports whether s is a v4-UUID-shaped session id. Anything else
// arriving in a client cookie is discarded and replaced with a fresh id.
func ValidID(s string) bool {
	return uuidRe.MatchString(s)
}

// Session is a server-side state record keyed by a client-held id.
// Timestamps track creation, last access, and the last time the session
// cookie was (re)issued; Values holds arbitrary application data.
type Session struct {
	CreatedAt    time.Time      `json:"created_at"`
	LastAccessAt time.Time      `json:"last_access_at"`
	LastStoreAt  time.Time      `json:"last_store_at"`
	Values       map[string]any `json:"values,omitempty"`
	SessionID    string         `json:"session_id"`
}

// New creates a session with the given id and all timestamps set to now.
func New(id string) *Session {
	now := time.Now()
	return &Session{
		SessionID:    id,
		CreatedAt:    now,
		LastAccessAt: now,
		LastStoreAt:  now,
		Values:       make(map[string]any),
	}
}

// Get returns a value from the session data.
func (s *Session) Get(key string) (any, bool) {
	if s.Values == nil {
		return nil, false
	}
	v, ok := s.Values[key]
	return v, ok
}

// Set stores a value in the session data.
func (s *Session) Set(key string, val any) {
	if s.Values == nil {
		s.Values = make(map[string]any)
	}
	s.Values[key] = val
}

// Delete removes a value from the session data.
func (s *Session) Delete(key string) {
	delete(s.Values, key)
}

// ClearValues drops all application data, keeping id and timestamps.
func (s *Session) ClearValues() {
	s.Values = make(map[string]any)
}

// Clone returns a deep copy. Stores hand out clones so concurrent requests
// sharing one session id never alias the same map.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	c.Values = make(map[string]any, len(s.Values))
	for k, v := range s.Values {
		c.Values[k] = v
	}
	return &c
}

// MarshalBlob serializes the session for blob-oriented stores.
func (s *Session) MarshalBlob() ([]byte, error) {
	return json.Marshal(s)
}

// UnmarshalBlob deserializes a session previously written by MarshalBlob.
func UnmarshalBlob(data []byte) (*Session, error) {
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if s.Values == nil {
		s.Values = make(map[string]any)
	}
	return &s, nil
}

// Value is a typed helper to read session data with type safety.
func Value[T any](s *Session, key string) (T, bool) {
	var zero T
	if s == nil {
		return zero, false
	}
	v, ok := s.Get(key)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
