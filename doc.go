// Package kiln is a server-side web application runtime built around an
// ordered middleware chain with consume semantics.
//
// Each middleware either answers the request with a terminal Result or
// passes it along; a middleware that calls ctx.MoveForward observes the
// downstream outcome and may decorate it. Routing is one middleware among
// others: a matched route runs through a step pipeline of folder guards,
// module and handler guards, the handler, the page render, and a fallback
// serializer.
//
// Requests can be forwarded internally. ctx.Forward re-enters the full
// chain with the caller's cookies plus any cookies established during the
// dispatch, and forward-complete hooks let session middlewares fold state
// written by the sub-request back into the outer request. This is how a
// page handler calls its own API routes without touching the network and
// without losing session identity in either direction.
//
// A minimal application:
//
//	routes := kiln.NewRoutes()
//	routes.Add(&kiln.Route{
//	    Pattern: "/hello",
//	    Handlers: map[string]*kiln.RouteHandler{
//	        http.MethodGet: {Handle: func(sc *kiln.StepContext) (any, error) {
//	            return "Hello " + sc.Query("name"), nil
//	        }},
//	    },
//	})
//
//	app, err := kiln.New(
//	    kiln.WithLogger(log),
//	    kiln.Use(
//	        middlewares.Recover(),
//	        middlewares.ErrorPage(),
//	        middlewares.Cookies(),
//	        middlewares.Session(session.NewMemoryStore()),
//	        middlewares.SessionAuth(),
//	        middlewares.Pages(routes),
//	    ),
//	)
//	if err != nil {
//	    log.Error("startup failed", "error", err)
//	    os.Exit(1)
//	}
//	if err := app.Run(kiln.Address(":8080")); err != nil {
//	    log.Error("server failed", "error", err)
//	}
package kiln
