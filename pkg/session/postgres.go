package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists sessions in a single table keyed by session_id,
// storing the full record as a JSON blob with upsert semantics on save.
type PostgresStore struct {
	pool  *pgxpool.Pool
	table string
}

// PostgresOption configures the PostgresStore.
type PostgresOption func(*PostgresStore)

// WithTable overrides the default "sessions" table name.
func WithTable(name string) PostgresOption {
	return func(s *PostgresStore) {
		if name != "" {
			s.table = name
		}
	}
}

// NewPostgresStore creates a store backed by the given connection pool.
func NewPostgresStore(pool *pgxpool.Pool, opts ...PostgresOption) *PostgresStore {
	s := &PostgresStore{pool: pool, table: "sessions"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Migrate creates the session table if it does not exist.
func (p *PostgresStore) Migrate(ctx context.Context) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		session_id   varchar(50) PRIMARY KEY,
		session_data jsonb NOT NULL
	)`, p.table)
	if _, err := p.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("session: migrate: %w", err)
	}
	return nil
}

// Create persists a brand new session under the given id.
func (p *PostgresStore) Create(ctx context.Context, id string) (*Session, error) {
	s := New(id)
	blob, err := s.MarshalBlob()
	if err != nil {
		return nil, fmt.Errorf("session: encode: %w", err)
	}
	query := fmt.Sprintf(`INSERT INTO %s (session_id, session_data) VALUES ($1, $2)`, p.table)
	if _, err := p.pool.Exec(ctx, query, id, blob); err != nil {
		return nil, fmt.Errorf("session: create: %w", err)
	}
	return s, nil
}

// FindOrCreate returns the stored session or creates one.
func (p *PostgresStore) FindOrCreate(ctx context.Context, id string) (*Session, error) {
	query := fmt.Sprintf(`SELECT session_data FROM %s WHERE session_id = $1`, p.table)
	var blob []byte
	err := p.pool.QueryRow(ctx, query, id).Scan(&blob)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return p.Create(ctx, id)
	case err != nil:
		return nil, fmt.Errorf("session: find: %w", err)
	}
	return UnmarshalBlob(blob)
}

// Save upserts the full session record.
func (p *PostgresStore) Save(ctx context.Context, s *Session) error {
	blob, err := s.MarshalBlob()
	if err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}
	query := fmt.Sprintf(`INSERT INTO %s (session_id, session_data) VALUES ($1, $2)
		ON CONFLICT (session_id) DO UPDATE SET session_data = EXCLUDED.session_data`, p.table)
	if _, err := p.pool.Exec(ctx, query, s.SessionID, blob); err != nil {
		return fmt.Errorf("session: save: %w", err)
	}
	return nil
}
