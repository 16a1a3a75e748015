package middlewares

import (
	"net/http"

	"github.com/kilnhq/kiln/internal"
	"github.com/kilnhq/kiln/pkg/cookiejar"
)

// Cookies returns the middleware that installs a cookie jar on the
// request context. The jar collects incoming cookies from the request and
// outgoing cookies set by later middlewares and handlers; on the way out
// the outgoing cookies are merged into the response without clobbering
// Set-Cookie headers the response already carries.
func Cookies() internal.Middleware {
	return internal.Middleware{
		Name: "cookies",
		Kind: internal.KindCookies,
		Handler: func(ctx *internal.Context) (internal.Result, error) {
			jar := cookiejar.FromRequest(ctx.Request())
			ctx.SetJar(jar)

			res, err := ctx.MoveForward()
			if err != nil {
				return internal.Result{}, err
			}
			if res.Terminal() && jar.Len() > 0 {
				resp := res.Response()
				if resp.Header == nil {
					resp.Header = make(http.Header)
				}
				jar.WriteTo(resp.Header)
				res.SetResponse(resp)
			}
			return res, nil
		},
	}
}

// GetIncomingCookie returns a cookie the client sent. Without a cookie
// middleware in the chain there is no jar and the lookup simply misses.
func GetIncomingCookie(ctx *internal.Context, name string) (*http.Cookie, bool) {
	jar := ctx.Jar()
	if jar == nil {
		return nil, false
	}
	if c := jar.FirstIncoming(name); c != nil {
		return c, true
	}
	return nil, false
}

// SetCookie records an outgoing cookie, replacing an earlier one with the
// same name. A no-op without a cookie middleware.
func SetCookie(ctx *internal.Context, cookie *http.Cookie) {
	if jar := ctx.Jar(); jar != nil {
		jar.SetOutgoing(cookie)
	}
}

// AppendCookie records an outgoing cookie without replacing earlier ones
// of the same name.
func AppendCookie(ctx *internal.Context, cookie *http.Cookie) {
	if jar := ctx.Jar(); jar != nil {
		jar.AppendOutgoing(cookie)
	}
}

// RemoveCookie instructs the client to drop a cookie by sending an
// expired replacement.
func RemoveCookie(ctx *internal.Context, name string) {
	if jar := ctx.Jar(); jar != nil {
		jar.Remove(name)
	}
}
