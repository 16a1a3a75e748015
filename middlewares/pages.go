package middlewares

import (
	"fmt"
	"net/http"

	"github.com/kilnhq/kiln/internal"
)

// Pages returns the routing middleware. A request matching a registered
// route runs through that route's step pipeline: folder guards from the
// outermost folder inward, the module guard, the handler guard, the
// handler, the page guard, the page render, and the fallback serializer.
// Requests matching no route pass through to the rest of the chain.
func Pages(routes *internal.Routes) internal.Middleware {
	return internal.Middleware{
		Name: "pages",
		Kind: internal.KindRouting,
		Handler: func(ctx *internal.Context) (internal.Result, error) {
			req := ctx.Request()
			match, ok := routes.Lookup(req.Method, req.URL.Path)
			if !ok {
				return internal.Pass(), nil
			}

			pageOnlyGet := req.Method == http.MethodGet && match.Route.Page != nil
			if match.Handler == nil && !pageOnlyGet {
				return internal.Result{}, internal.ErrMethodNotAllowed(
					fmt.Sprintf("method not allowed: %s %s", req.Method, req.URL.Path))
			}

			steps := internal.BuildSteps(match.Guards, match.Route, match.Handler)
			sc := internal.NewStepContext(ctx, match.Route, match.Params, steps)
			return sc.Run()
		},
	}
}
