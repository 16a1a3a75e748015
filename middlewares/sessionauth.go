package middlewares

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/kilnhq/kiln/internal"
	"github.com/kilnhq/kiln/pkg/authn"
)

const authenticationKey = "__authentication"

type storedPrincipal struct {
	Claims map[string]any `json:"claims"`
	ID     string         `json:"id"`
}

// SessionAuth returns the middleware that carries the authentication
// state across requests through the session.
//
// On the way in it restores the principal persisted under the session's
// authentication key. When a forwarded sub-request completes, the session
// is re-read from the store and the principal restored again, so a login
// handler reached via Forward authenticates the outer request too. On
// the way out a non-anonymous principal is persisted and an anonymous one
// removed, which makes Clear on the authentication state an effective
// logout.
func SessionAuth() internal.Middleware {
	return internal.Middleware{
		Name: "session-authentication",
		Kind: internal.KindSessionAuth,
		Handler: func(ctx *internal.Context) (internal.Result, error) {
			restorePrincipal(ctx)
			ctx.OnForwardComplete(func(ctx *internal.Context, _ *internal.Response) error {
				if err := RefreshSession(ctx); err != nil {
					return err
				}
				restorePrincipal(ctx)
				return nil
			})

			res, err := ctx.MoveForward()
			if err != nil {
				return internal.Result{}, err
			}
			if res.Terminal() {
				principal := ctx.Auth().Principal()
				if !principal.IsAnonymous() {
					if err := SetSessionValue(ctx, authenticationKey, storedPrincipal{
						ID:     principal.ID,
						Claims: principal.Claims,
					}); err != nil {
						return internal.Result{}, err
					}
				} else if err := RemoveSessionValue(ctx, authenticationKey); err != nil {
					return internal.Result{}, err
				}
			}
			return res, nil
		},
		OnAppStart: func(_ context.Context, sc *internal.StartupContext) error {
			sess := sc.Position(internal.KindSession)
			if sess == -1 {
				return errors.New("session authentication middleware cannot be used without the session middleware")
			}
			if sc.Position(internal.KindSessionAuth) <= sess {
				return errors.New("session middleware must be set up before the session authentication middleware")
			}
			return nil
		},
	}
}

// restorePrincipal rebuilds the principal persisted in the session, if
// any, and restores it as session-type authentication.
func restorePrincipal(ctx *internal.Context) {
	raw, ok := GetSessionValue[any](ctx, authenticationKey)
	if !ok {
		return
	}

	var stored storedPrincipal
	switch v := raw.(type) {
	case storedPrincipal:
		stored = v
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return
		}
		if err := json.Unmarshal(data, &stored); err != nil {
			return
		}
	}
	if stored.ID == "" {
		return
	}

	principal := authn.NewPrincipal(stored.ID, stored.Claims)
	ctx.Auth().Restore(authn.New(authn.TypeSession, principal))
}
