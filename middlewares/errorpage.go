package middlewares

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/kilnhq/kiln/internal"
)

// ErrorPageData is what an error page renderer receives.
type ErrorPageData struct {
	Message    string
	Detail     string
	ErrorID    string
	StatusCode int
}

// ErrorPageRenderer renders an error into a page component. Returning a
// nil component falls back to the JSON error body.
type ErrorPageRenderer func(ctx *internal.Context, data ErrorPageData) (internal.Component, error)

// ErrorPageConfig configures the error page middleware.
type ErrorPageConfig struct {
	Render ErrorPageRenderer
	Dev    bool
}

// ErrorPageOption configures ErrorPageConfig.
type ErrorPageOption func(*ErrorPageConfig)

// WithErrorPageRenderer sets the page renderer for error responses.
func WithErrorPageRenderer(render ErrorPageRenderer) ErrorPageOption {
	return func(cfg *ErrorPageConfig) {
		cfg.Render = render
	}
}

// WithErrorPageDev exposes underlying error details in responses.
// Never enable in production.
func WithErrorPageDev() ErrorPageOption {
	return func(cfg *ErrorPageConfig) {
		cfg.Dev = true
	}
}

// ErrorPage returns the middleware that converts dispatch errors into
// error responses. Every error gets a correlation ID that appears in both
// the log record and the response, so a user-reported error can be
// matched to its log entry. Safe errors keep their status and message;
// anything else becomes a generic 500.
func ErrorPage(opts ...ErrorPageOption) internal.Middleware {
	cfg := &ErrorPageConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	return internal.Middleware{
		Name: "error-page",
		Kind: internal.KindErrorPage,
		Handler: func(ctx *internal.Context) (internal.Result, error) {
			res, err := ctx.MoveForward()
			if err == nil {
				return res, nil
			}

			errorID := uuid.NewString()
			data := ErrorPageData{
				StatusCode: http.StatusInternalServerError,
				Message:    http.StatusText(http.StatusInternalServerError),
				ErrorID:    errorID,
			}
			if safe := internal.AsSafeError(err); safe != nil {
				data.StatusCode = safe.Code
				data.Message = safe.Message
				data.Detail = safe.Detail
			} else if cfg.Dev {
				data.Detail = err.Error()
			}

			logAttrs := []any{
				slog.String("error", err.Error()),
				slog.String("error_id", errorID),
				slog.Int("status", data.StatusCode),
			}
			if data.StatusCode >= http.StatusInternalServerError {
				ctx.Logger().ErrorContext(ctx.Context(), "request failed", logAttrs...)
			} else {
				ctx.Logger().WarnContext(ctx.Context(), "request rejected", logAttrs...)
			}

			if cfg.Render != nil {
				component, renderErr := cfg.Render(ctx, data)
				if renderErr != nil {
					ctx.Logger().ErrorContext(ctx.Context(), "error page render failed",
						slog.String("error", renderErr.Error()),
						slog.String("error_id", errorID))
				} else if component != nil {
					var buf strings.Builder
					renderErr := component.Render(ctx.Context(), &buf)
					if renderErr == nil {
						return internal.Respond(internal.HTML(data.StatusCode, buf.String())), nil
					}
					ctx.Logger().ErrorContext(ctx.Context(), "error page render failed",
						slog.String("error", renderErr.Error()),
						slog.String("error_id", errorID))
				}
			}

			body := map[string]string{
				"message":  data.Message,
				"error_id": errorID,
			}
			if cfg.Dev && data.Detail != "" {
				body["detail"] = data.Detail
			}
			return internal.Respond(internal.JSON(data.StatusCode, body)), nil
		},
	}
}
