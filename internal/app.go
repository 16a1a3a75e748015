package internal

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/kilnhq/kiln/pkg/logger"
)

// Default server timeouts (hardcoded, opinionated).
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second
)

// ErrorHandler converts a dispatch error into the response sent to the
// client.
type ErrorHandler func(ctx *Context, err error) Response

// App runs requests through its middleware chain. It is immutable after
// creation; all configuration happens via New.
type App struct {
	pipeline     *Pipeline
	logger       *slog.Logger
	errorHandler ErrorHandler
}

// New assembles an application and runs every middleware's OnAppStart
// hook. A failing hook aborts construction, so misordered chains never
// serve a request.
//
// Example:
//
//	app, err := kiln.New(
//	    kiln.WithLogger(log),
//	    kiln.Use(
//	        middlewares.Cookies(),
//	        middlewares.Session(store),
//	        middlewares.SessionAuth(),
//	        middlewares.Pages(routes),
//	    ),
//	)
func New(opts ...Option) (*App, error) {
	a := &App{
		logger: logger.NewNope(),
	}
	var middlewares []Middleware
	for _, opt := range opts {
		opt(a, &middlewares)
	}
	a.pipeline = NewPipeline(middlewares...)
	if a.errorHandler == nil {
		a.errorHandler = a.defaultErrorHandler
	}

	sc := &StartupContext{Logger: a.logger, Middlewares: a.pipeline.Middlewares()}
	for _, mw := range a.pipeline.Middlewares() {
		if mw.OnAppStart == nil {
			continue
		}
		if err := mw.OnAppStart(context.Background(), sc); err != nil {
			return nil, fmt.Errorf("startup check failed for %s: %w", mw.Name, err)
		}
	}
	return a, nil
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Middlewares returns the assembled chain.
func (a *App) Middlewares() []Middleware {
	return a.pipeline.Middlewares()
}

// Dispatch runs one request through the chain and returns the response
// without writing it. Forwarded sub-requests re-enter here, so they see
// the exact same chain as external traffic.
func (a *App) Dispatch(req *http.Request) (Response, error) {
	ctx := NewContext(req, a.logger, a.Dispatch)
	return a.pipeline.Dispatch(ctx)
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := NewContext(r, a.logger, a.Dispatch)
	resp, err := a.pipeline.Dispatch(ctx)
	if err != nil {
		resp = a.errorHandler(ctx, err)
	}
	if err := resp.Write(w); err != nil {
		a.logger.ErrorContext(r.Context(), "failed to write response",
			slog.String("error", err.Error()))
	}
}

// defaultErrorHandler maps safe errors to their status with a JSON body
// and hides everything else behind a generic 500.
func (a *App) defaultErrorHandler(ctx *Context, err error) Response {
	if safe := AsSafeError(err); safe != nil {
		if safe.Code >= http.StatusInternalServerError {
			a.logger.ErrorContext(ctx.Context(), "request failed",
				slog.String("error", safe.Error()),
				slog.Int("status", safe.Code))
		}
		return JSON(safe.Code, map[string]string{"message": safe.Message})
	}
	a.logger.ErrorContext(ctx.Context(), "request failed",
		slog.String("error", err.Error()))
	return JSON(http.StatusInternalServerError,
		map[string]string{"message": http.StatusText(http.StatusInternalServerError)})
}
