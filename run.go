package kiln

import (
	"context"
	"log/slog"
	"time"

	"github.com/kilnhq/kiln/internal"
)

// Run options, re-exported from the runtime layer.

// Address sets the HTTP server address.
// Defaults to ":8080".
func Address(addr string) RunOption {
	return internal.Address(addr)
}

// Logger sets the server logger.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout sets the timeout for graceful shutdown.
// Defaults to 30 seconds.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// WithShutdownHook registers a hook that runs during graceful shutdown.
//
// Example:
//
//	err := app.Run(
//	    kiln.Address(":8080"),
//	    kiln.WithShutdownHook(db.Shutdown(pool)),
//	    kiln.WithShutdownHook(redis.Shutdown(client)),
//	)
func WithShutdownHook(hook func(context.Context) error) RunOption {
	return internal.WithShutdownHook(hook)
}

// WithBaseContext sets the context the server derives its lifetime from.
func WithBaseContext(ctx context.Context) RunOption {
	return internal.WithBaseContext(ctx)
}
