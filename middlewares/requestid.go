package middlewares

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/kilnhq/kiln/internal"
	"github.com/kilnhq/kiln/pkg/logger"
)

type requestIDKey struct{}

// DefaultRequestIDHeaders are the headers checked (in order) for an
// existing request ID.
var DefaultRequestIDHeaders = []string{"X-Request-ID", "X-Request-Id", "X-Correlation-ID"}

// RequestIDConfig configures the request ID middleware.
type RequestIDConfig struct {
	Generator      func() string
	ResponseHeader string
	Headers        []string
}

// RequestIDOption configures RequestIDConfig.
type RequestIDOption func(*RequestIDConfig)

// WithRequestIDHeaders sets the headers checked for existing request IDs.
func WithRequestIDHeaders(headers ...string) RequestIDOption {
	return func(cfg *RequestIDConfig) {
		cfg.Headers = headers
	}
}

// WithRequestIDGenerator sets a custom ID generator function.
func WithRequestIDGenerator(gen func() string) RequestIDOption {
	return func(cfg *RequestIDConfig) {
		cfg.Generator = gen
	}
}

// RequestID returns the middleware that assigns a unique ID to each
// request. An ID presented by upstream tracing headers wins over a
// generated one. The ID lands on the request context for logger
// extractors and on the response as X-Request-ID.
func RequestID(opts ...RequestIDOption) internal.Middleware {
	cfg := &RequestIDConfig{
		Headers:        DefaultRequestIDHeaders,
		Generator:      uuid.NewString,
		ResponseHeader: "X-Request-ID",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return internal.Middleware{
		Name: "request-id",
		Handler: func(ctx *internal.Context) (internal.Result, error) {
			var reqID string
			for _, header := range cfg.Headers {
				if v := ctx.Request().Header.Get(header); v != "" {
					reqID = v
					break
				}
			}
			if reqID == "" {
				reqID = cfg.Generator()
			}
			ctx.WithValue(requestIDKey{}, reqID)

			res, err := ctx.MoveForward()
			if err != nil {
				return internal.Result{}, err
			}
			if res.Terminal() {
				resp := res.Response()
				if resp.Header == nil {
					resp.Header = make(http.Header)
				}
				resp.Header.Set(cfg.ResponseHeader, reqID)
				res.SetResponse(resp)
			}
			return res, nil
		},
	}
}

// GetRequestID extracts the request ID from a context.
// Returns "" when no request ID middleware ran.
func GetRequestID(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}

// RequestIDExtractor returns a logger extractor that adds "request_id"
// to every log record.
func RequestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if v, ok := ctx.Value(requestIDKey{}).(string); ok && v != "" {
			return slog.String("request_id", v), true
		}
		return slog.Attr{}, false
	}
}
