package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	// MinLevel determines which log levels are forwarded to Sentry,
	// e.g. slog.LevelWarn for warnings and errors.
	MinLevel slog.Level
}

// NewWithSentry creates a logger that writes to stdout and mirrors records
// to Sentry. An empty DSN falls back to stdout only, which keeps local
// development working without a Sentry project.
func NewWithSentry(cfg SentryConfig, opts ...Option) *slog.Logger {
	base := config{w: os.Stdout, level: slog.LevelInfo}
	for _, opt := range opts {
		opt(&base)
	}
	stdoutHandler := slog.NewJSONHandler(base.w, &slog.HandlerOptions{Level: base.level})

	if cfg.DSN == "" {
		return slog.New(newContextHandler(stdoutHandler, base.extractors...))
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(stdoutHandler).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return slog.New(newContextHandler(stdoutHandler, base.extractors...))
	}

	eventLevel := []slog.Level{slog.LevelError}
	logLevel := []slog.Level{slog.LevelWarn, slog.LevelError}
	if cfg.MinLevel == slog.LevelError {
		logLevel = []slog.Level{slog.LevelError}
	}

	sentryHandler := sentryslog.Option{
		EventLevel: eventLevel,
		LogLevel:   logLevel,
	}.NewSentryHandler(context.Background())

	combined := newMultiHandler(stdoutHandler, sentryHandler)
	return slog.New(newContextHandler(combined, base.extractors...))
}
