// Package db manages the PostgreSQL connection pool backing the
// persistent session store.
//
// Connect applies retry with linear backoff so short network blips during
// startup do not kill the process:
//
//	pool, err := db.Connect(ctx, db.Config{
//	    ConnectionString: os.Getenv("DATABASE_CONN_URL"),
//	    RetryAttempts:    3,
//	    RetryInterval:    5 * time.Second,
//	})
//
// Healthcheck produces a probe closure for the health endpoints, and
// Shutdown produces a hook for graceful teardown.
package db
