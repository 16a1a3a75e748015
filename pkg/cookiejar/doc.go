// Package cookiejar tracks the cookies of one request: an immutable incoming
// set parsed from the Cookie header and an ordered outgoing set built up
// during processing.
//
// The outgoing set enforces one visible cookie per name by default:
//
//	jar := cookiejar.FromRequest(r)
//	jar.SetOutgoing(&http.Cookie{Name: "theme", Value: "dark", MaxAge: 86400})
//	jar.Remove("legacy")   // client-side delete via expiring empty cookie
//	jar.WriteTo(resp.Header)
//
// Use [Jar.AppendOutgoing] when duplicate names are intentional.
package cookiejar
