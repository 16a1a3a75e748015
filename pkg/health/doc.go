// Package health aggregates named readiness probes and serves them over
// HTTP.
//
//	mux.Handle("/health/live", health.LivenessHandler())
//	mux.Handle("/health/ready", health.ReadinessHandler(health.Checks{
//	    "postgres": db.Healthcheck(pool),
//	    "redis":    redis.Healthcheck(client),
//	}))
//
// Checks run in parallel under a shared deadline. Responses are plain text
// by default and JSON when the client asks for it via the Accept header or
// a format=json query parameter.
package health
