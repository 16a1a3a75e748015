// Package redis opens Redis connections for the session store with retry
// and pool tuning.
//
//	client, err := redis.Open(ctx, "redis://localhost:6379/0")
//	if err != nil {
//	    return err
//	}
//	store := session.NewRedisStore(client, session.WithTTL(24*time.Hour))
//
// Healthcheck and Shutdown produce closures for the health endpoints and
// graceful teardown.
package redis
