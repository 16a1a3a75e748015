package health_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilnhq/kiln/pkg/health"
)

func TestRun(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("no checks is healthy", func(t *testing.T) {
		t.Parallel()

		resp := health.Run(ctx, nil)
		assert.Equal(t, health.StatusHealthy, resp.Status)
		assert.Empty(t, resp.Checks)
	})

	t.Run("all healthy", func(t *testing.T) {
		t.Parallel()

		resp := health.Run(ctx, health.Checks{
			"db":    func(ctx context.Context) error { return nil },
			"redis": func(ctx context.Context) error { return nil },
		})
		assert.Equal(t, health.StatusHealthy, resp.Status)
		assert.Len(t, resp.Checks, 2)
	})

	t.Run("one failure marks unhealthy but runs every check", func(t *testing.T) {
		t.Parallel()

		resp := health.Run(ctx, health.Checks{
			"db":    func(ctx context.Context) error { return errors.New("connection refused") },
			"redis": func(ctx context.Context) error { return nil },
		})
		assert.Equal(t, health.StatusUnhealthy, resp.Status)
		require.Len(t, resp.Checks, 2)
		assert.Equal(t, health.StatusUnhealthy, resp.Checks["db"].Status)
		assert.Equal(t, "connection refused", resp.Checks["db"].Error)
		assert.Equal(t, health.StatusHealthy, resp.Checks["redis"].Status)
	})

	t.Run("slow check hits the shared timeout", func(t *testing.T) {
		t.Parallel()

		resp := health.Run(ctx, health.Checks{
			"slow": func(ctx context.Context) error {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(time.Second):
					return nil
				}
			},
		}, health.WithTimeout(10*time.Millisecond))
		assert.Equal(t, health.StatusUnhealthy, resp.Status)
	})
}

func TestHandlers(t *testing.T) {
	t.Parallel()

	t.Run("liveness", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		health.LivenessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("readiness json", func(t *testing.T) {
		t.Parallel()

		checks := health.Checks{
			"db": func(ctx context.Context) error { return errors.New("down") },
		}
		req := httptest.NewRequest(http.MethodGet, "/health/ready?format=json", nil)
		rec := httptest.NewRecorder()
		health.ReadinessHandler(checks).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
		assert.Contains(t, rec.Body.String(), health.StatusUnhealthy)
	})

	t.Run("readiness plain text", func(t *testing.T) {
		t.Parallel()

		checks := health.Checks{
			"db": func(ctx context.Context) error { return nil },
		}
		rec := httptest.NewRecorder()
		health.ReadinessHandler(checks).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
