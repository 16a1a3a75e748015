package internal

import "log/slog"

// Option configures an App during construction.
type Option func(a *App, middlewares *[]Middleware)

// WithLogger sets the application logger.
// Defaults to a no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *App, _ *[]Middleware) {
		if l != nil {
			a.logger = l
		}
	}
}

// Use appends middlewares to the chain in order.
func Use(mws ...Middleware) Option {
	return func(_ *App, middlewares *[]Middleware) {
		*middlewares = append(*middlewares, mws...)
	}
}

// WithErrorHandler replaces the default error handler.
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App, _ *[]Middleware) {
		if h != nil {
			a.errorHandler = h
		}
	}
}
