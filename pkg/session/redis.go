package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisKeyPrefix = "session:"

// RedisStore persists sessions as JSON blobs in Redis. An optional TTL lets
// Redis expire abandoned sessions without a separate cleanup job.
type RedisStore struct {
	client    redis.UniversalClient
	keyPrefix string
	ttl       time.Duration
}

// RedisOption configures the RedisStore.
type RedisOption func(*RedisStore)

// WithKeyPrefix overrides the default "session:" key prefix.
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.keyPrefix = prefix
		}
	}
}

// WithTTL sets a server-side expiry on session keys. Zero means no expiry.
func WithTTL(ttl time.Duration) RedisOption {
	return func(s *RedisStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// NewRedisStore creates a store backed by the given Redis client.
func NewRedisStore(client redis.UniversalClient, opts ...RedisOption) *RedisStore {
	s := &RedisStore{client: client, keyPrefix: defaultRedisKeyPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (r *RedisStore) key(id string) string {
	return r.keyPrefix + id
}

// Create persists a brand new session under the given id.
func (r *RedisStore) Create(ctx context.Context, id string) (*Session, error) {
	s := New(id)
	if err := r.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// FindOrCreate returns the stored session or creates one.
func (r *RedisStore) FindOrCreate(ctx context.Context, id string) (*Session, error) {
	blob, err := r.client.Get(ctx, r.key(id)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return r.Create(ctx, id)
	case err != nil:
		return nil, fmt.Errorf("session: find: %w", err)
	}
	return UnmarshalBlob(blob)
}

// Save upserts the full session record.
func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	blob, err := s.MarshalBlob()
	if err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}
	if err := r.client.Set(ctx, r.key(s.SessionID), blob, r.ttl).Err(); err != nil {
		return fmt.Errorf("session: save: %w", err)
	}
	return nil
}
