package logger

import (
	"io"
	"log/slog"
	"os"
)

type config struct {
	w          io.Writer
	level      slog.Level
	extractors []ContextExtractor
}

// Option configures the logger factory.
type Option func(*config)

// WithWriter directs log output to w instead of stdout.
func WithWriter(w io.Writer) Option {
	return func(c *config) { c.w = w }
}

// WithLevel sets the minimum level emitted.
func WithLevel(level slog.Level) Option {
	return func(c *config) { c.level = level }
}

// WithExtractor registers a context extractor applied to every record.
func WithExtractor(ex ContextExtractor) Option {
	return func(c *config) {
		if ex != nil {
			c.extractors = append(c.extractors, ex)
		}
	}
}

// New creates a JSON-formatted logger. Context extractors registered via
// WithExtractor run per log call so request-scoped values stay fresh.
func New(opts ...Option) *slog.Logger {
	cfg := config{w: os.Stdout, level: slog.LevelInfo}
	for _, opt := range opts {
		opt(&cfg)
	}
	h := slog.NewJSONHandler(cfg.w, &slog.HandlerOptions{Level: cfg.level})
	return slog.New(newContextHandler(h, cfg.extractors...))
}

// NewNope creates a no-op logger that discards all output.
// Use this as a default when logging is not configured.
func NewNope() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
