// Package logger builds structured slog loggers for the application runtime.
//
// The factory emits JSON to stdout and supports context extractors that pull
// request-scoped attributes, such as request IDs, into every record:
//
//	log := logger.New(
//	    logger.WithLevel(slog.LevelDebug),
//	    logger.WithExtractor(func(ctx context.Context) (slog.Attr, bool) {
//	        if id, ok := kiln.RequestID(ctx); ok {
//	            return slog.String("request_id", id), true
//	        }
//	        return slog.Attr{}, false
//	    }),
//	)
//
// NewWithSentry mirrors warnings and errors to Sentry when a DSN is
// configured, and degrades to stdout-only otherwise. NewNope returns a
// discard logger for tests and unconfigured components.
package logger
