package middlewares

import (
	"log/slog"
	"time"

	"github.com/kilnhq/kiln/internal"
)

// Logging returns the middleware that logs one line per request with
// method, path, status, and duration. Errors are logged by the error
// handling layers; this middleware only re-raises them.
func Logging() internal.Middleware {
	return internal.Middleware{
		Name: "logging",
		Handler: func(ctx *internal.Context) (internal.Result, error) {
			start := time.Now()
			res, err := ctx.MoveForward()
			duration := time.Since(start)

			attrs := []any{
				slog.String("method", ctx.Request().Method),
				slog.String("path", ctx.Request().URL.Path),
				slog.Duration("duration", duration),
			}
			if err != nil {
				ctx.Logger().InfoContext(ctx.Context(), "request errored", attrs...)
				return internal.Result{}, err
			}
			if res.Terminal() {
				attrs = append(attrs, slog.Int("status", res.Response().StatusCode))
			}
			ctx.Logger().InfoContext(ctx.Context(), "request completed", attrs...)
			return res, nil
		},
	}
}
