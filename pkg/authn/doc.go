// Package authn models per-request authentication state: an immutable
// Principal (identity plus claims) and a mutable Authentication that tracks
// which principal is current and how it was established.
//
// Every request starts anonymous:
//
//	auth := authn.NewAnonymous()
//	auth.Principal().ID // "Anonymous"
//
// A login handler authenticates a principal in place:
//
//	auth.Authenticate(authn.NewPrincipal("bob", map[string]any{
//		authn.ClaimEmail: "bob@example.com",
//	}))
//
// Session middleware restores a previously persisted identity with
// [Authentication.Restore] and logout clears it with [Authentication.Clear].
package authn
