// Package middlewares provides the built-in middleware chain elements:
// cookies, sessions, session-backed authentication, routing, error pages,
// request IDs, panic recovery, request logging, and health endpoints.
//
// Chain order matters. The cookie middleware must precede the session
// middleware, and the session middleware must precede session
// authentication; both requirements are verified when the application is
// constructed, not when the first request arrives. A typical chain:
//
//	app, err := kiln.New(
//	    kiln.WithLogger(log),
//	    kiln.Use(
//	        middlewares.RequestID(),
//	        middlewares.Logging(),
//	        middlewares.Recover(),
//	        middlewares.Health(checks),
//	        middlewares.ErrorPage(),
//	        middlewares.Cookies(),
//	        middlewares.Session(store),
//	        middlewares.SessionAuth(),
//	        middlewares.Pages(routes),
//	    ),
//	)
package middlewares
