package middlewares

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/kilnhq/kiln/internal"
)

// DefaultStackSize is the default maximum stack trace size in bytes.
const DefaultStackSize = 4096

// RecoverConfig configures the recover middleware.
type RecoverConfig struct {
	StackSize         int
	DisablePrintStack bool
}

// RecoverOption configures RecoverConfig.
type RecoverOption func(*RecoverConfig)

// WithRecoverStackSize sets the maximum stack trace size.
func WithRecoverStackSize(size int) RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.StackSize = size
	}
}

// WithRecoverDisablePrintStack disables including stack traces in logs.
func WithRecoverDisablePrintStack() RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.DisablePrintStack = true
	}
}

// Recover returns the middleware that converts downstream panics into
// errors. Place it before the error page middleware so panics get the
// same treatment as ordinary failures.
func Recover(opts ...RecoverOption) internal.Middleware {
	cfg := &RecoverConfig{StackSize: DefaultStackSize}
	for _, opt := range opts {
		opt(cfg)
	}

	return internal.Middleware{
		Name: "recover",
		Handler: func(ctx *internal.Context) (res internal.Result, err error) {
			defer func() {
				if r := recover(); r != nil {
					if cfg.DisablePrintStack {
						ctx.Logger().ErrorContext(ctx.Context(), "panic recovered",
							slog.Any("panic", r))
					} else {
						stack := make([]byte, cfg.StackSize)
						n := runtime.Stack(stack, false)
						ctx.Logger().ErrorContext(ctx.Context(), "panic recovered",
							slog.Any("panic", r),
							slog.String("stack", string(stack[:n])))
					}
					res = internal.Result{}
					err = internal.ErrInternal("Internal Server Error",
						internal.WithCause(fmt.Errorf("panic: %v", r)))
				}
			}()
			return ctx.MoveForward()
		},
	}
}
