package middlewares

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kilnhq/kiln/internal"
	"github.com/kilnhq/kiln/pkg/health"
)

func TestHealthMiddleware(t *testing.T) {
	t.Parallel()

	passThrough := internal.Middleware{Handler: func(ctx *internal.Context) (internal.Result, error) {
		return internal.Respond(internal.Text(http.StatusOK, "app")), nil
	}}

	t.Run("liveness always answers", func(t *testing.T) {
		t.Parallel()

		rec := serveChain(t, httptest.NewRequest(http.MethodGet, LivenessPath, nil),
			Health(nil), passThrough)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "OK", rec.Body.String())
	})

	t.Run("readiness reports failing checks", func(t *testing.T) {
		t.Parallel()

		checks := health.Checks{
			"db": func(ctx context.Context) error { return errors.New("down") },
		}
		rec := serveChain(t, httptest.NewRequest(http.MethodGet, ReadinessPath, nil),
			Health(checks), passThrough)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), health.StatusUnhealthy)
	})

	t.Run("readiness passes with healthy checks", func(t *testing.T) {
		t.Parallel()

		checks := health.Checks{
			"db": func(ctx context.Context) error { return nil },
		}
		rec := serveChain(t, httptest.NewRequest(http.MethodGet, ReadinessPath, nil),
			Health(checks), passThrough)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("other paths pass through", func(t *testing.T) {
		t.Parallel()

		rec := serveChain(t, httptest.NewRequest(http.MethodGet, "/anything", nil),
			Health(nil), passThrough)
		assert.Equal(t, "app", rec.Body.String())
	})
}
