package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilnhq/kiln/internal"
)

func serveChain(t *testing.T, req *http.Request, mws ...internal.Middleware) *httptest.ResponseRecorder {
	t.Helper()
	app, err := internal.New(internal.Use(mws...))
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func TestCookiesMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("incoming cookies are readable downstream", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Cookie", "theme=dark")

		rec := serveChain(t, req,
			Cookies(),
			internal.Middleware{Handler: func(ctx *internal.Context) (internal.Result, error) {
				c, ok := GetIncomingCookie(ctx, "theme")
				require.True(t, ok)
				return internal.Respond(internal.Text(http.StatusOK, c.Value)), nil
			}},
		)
		assert.Equal(t, "dark", rec.Body.String())
	})

	t.Run("outgoing cookies land on the response", func(t *testing.T) {
		t.Parallel()

		rec := serveChain(t, httptest.NewRequest(http.MethodGet, "/", nil),
			Cookies(),
			internal.Middleware{Handler: func(ctx *internal.Context) (internal.Result, error) {
				SetCookie(ctx, &http.Cookie{Name: "seen", Value: "1", Path: "/"})
				return internal.Respond(internal.NoContent()), nil
			}},
		)
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "seen", cookies[0].Name)
		assert.Equal(t, "1", cookies[0].Value)
	})

	t.Run("jar cookies merge with response Set-Cookie headers", func(t *testing.T) {
		t.Parallel()

		rec := serveChain(t, httptest.NewRequest(http.MethodGet, "/", nil),
			Cookies(),
			internal.Middleware{Handler: func(ctx *internal.Context) (internal.Result, error) {
				SetCookie(ctx, &http.Cookie{Name: "from_jar", Value: "1"})
				resp := internal.NoContent()
				resp.Header.Add("Set-Cookie", "direct=2")
				return internal.Respond(resp), nil
			}},
		)
		values := rec.Header().Values("Set-Cookie")
		assert.Len(t, values, 2)
	})

	t.Run("set replaces while append duplicates", func(t *testing.T) {
		t.Parallel()

		rec := serveChain(t, httptest.NewRequest(http.MethodGet, "/", nil),
			Cookies(),
			internal.Middleware{Handler: func(ctx *internal.Context) (internal.Result, error) {
				SetCookie(ctx, &http.Cookie{Name: "a", Value: "1"})
				SetCookie(ctx, &http.Cookie{Name: "a", Value: "2"})
				AppendCookie(ctx, &http.Cookie{Name: "a", Value: "3"})
				return internal.Respond(internal.NoContent()), nil
			}},
		)
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 2)
		assert.Equal(t, "2", cookies[0].Value)
		assert.Equal(t, "3", cookies[1].Value)
	})

	t.Run("remove expires the cookie", func(t *testing.T) {
		t.Parallel()

		rec := serveChain(t, httptest.NewRequest(http.MethodGet, "/", nil),
			Cookies(),
			internal.Middleware{Handler: func(ctx *internal.Context) (internal.Result, error) {
				RemoveCookie(ctx, "stale")
				return internal.Respond(internal.NoContent()), nil
			}},
		)
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "stale", cookies[0].Name)
		assert.Empty(t, cookies[0].Value)
		assert.Negative(t, cookies[0].MaxAge)
	})
}

func TestCookieHelpersWithoutJar(t *testing.T) {
	t.Parallel()

	// Without the cookie middleware there is no jar; helpers degrade to
	// misses and no-ops instead of failing.
	rec := serveChain(t, httptest.NewRequest(http.MethodGet, "/", nil),
		internal.Middleware{Handler: func(ctx *internal.Context) (internal.Result, error) {
			_, ok := GetIncomingCookie(ctx, "anything")
			assert.False(t, ok)
			SetCookie(ctx, &http.Cookie{Name: "x", Value: "1"})
			AppendCookie(ctx, &http.Cookie{Name: "y", Value: "2"})
			RemoveCookie(ctx, "z")
			return internal.Respond(internal.Text(http.StatusOK, "survived")), nil
		}},
	)
	assert.Equal(t, "survived", rec.Body.String())
	assert.Empty(t, rec.Header().Values("Set-Cookie"))
}
