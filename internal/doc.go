// Package internal implements the request pipeline runtime: the middleware
// chain, the route handler step pipeline, response values, the safe error
// taxonomy, and the application lifecycle.
//
// This package is internal; applications use the root kiln package, which
// re-exports the public surface.
package internal
