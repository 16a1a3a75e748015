package middlewares

import (
	"net/http"

	"github.com/kilnhq/kiln/internal"
	"github.com/kilnhq/kiln/pkg/health"
)

const (
	// LivenessPath answers as long as the process runs.
	LivenessPath = "/health/live"
	// ReadinessPath answers once every registered check passes.
	ReadinessPath = "/health/ready"
)

// Health returns the middleware that serves liveness and readiness
// endpoints. Requests to other paths pass through untouched. Mount it
// early in the chain so probes skip sessions and routing.
func Health(checks health.Checks, opts ...health.Option) internal.Middleware {
	return internal.Middleware{
		Name: "health",
		Handler: func(ctx *internal.Context) (internal.Result, error) {
			if ctx.Request().Method != http.MethodGet {
				return ctx.MoveForward()
			}
			switch ctx.Request().URL.Path {
			case LivenessPath:
				return internal.Respond(internal.Text(http.StatusOK, "OK")), nil
			case ReadinessPath:
				resp := health.Run(ctx.Context(), checks, opts...)
				status := http.StatusOK
				if resp.Status == health.StatusUnhealthy {
					status = http.StatusServiceUnavailable
				}
				return internal.Respond(internal.JSON(status, resp)), nil
			default:
				return ctx.MoveForward()
			}
		},
	}
}
