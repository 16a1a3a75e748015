package internal

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T, method, target string) *Context {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	return NewContext(req, nil, nil)
}

func TestPipelineDispatch(t *testing.T) {
	t.Parallel()

	t.Run("first terminal response wins", func(t *testing.T) {
		t.Parallel()

		p := NewPipeline(
			Middleware{Handler: func(ctx *Context) (Result, error) {
				return Pass(), nil
			}},
			Middleware{Handler: func(ctx *Context) (Result, error) {
				return Respond(Text(http.StatusOK, "second")), nil
			}},
			Middleware{Handler: func(ctx *Context) (Result, error) {
				t.Fatal("third middleware must not run")
				return Pass(), nil
			}},
		)

		resp, err := p.Dispatch(newTestContext(t, http.MethodGet, "/"))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "second", string(resp.Body))
	})

	t.Run("exhausted chain fails not found with target", func(t *testing.T) {
		t.Parallel()

		p := NewPipeline(
			Middleware{Handler: func(ctx *Context) (Result, error) {
				return Pass(), nil
			}},
		)

		_, err := p.Dispatch(newTestContext(t, http.MethodGet, "/missing"))
		require.Error(t, err)
		safe := AsSafeError(err)
		require.NotNil(t, safe)
		assert.Equal(t, http.StatusNotFound, safe.Code)
		assert.Contains(t, safe.Message, "GET /missing")
	})

	t.Run("empty chain fails not found", func(t *testing.T) {
		t.Parallel()

		_, err := NewPipeline().Dispatch(newTestContext(t, http.MethodGet, "/"))
		require.Error(t, err)
		require.NotNil(t, AsSafeError(err))
	})

	t.Run("properties flow between middlewares", func(t *testing.T) {
		t.Parallel()

		p := NewPipeline(
			Middleware{Handler: func(ctx *Context) (Result, error) {
				ctx.Set("message", "Hi there")
				return ctx.MoveForward()
			}},
			Middleware{Handler: func(ctx *Context) (Result, error) {
				return Respond(Text(http.StatusOK, ctx.GetString("message"))), nil
			}},
		)

		resp, err := p.Dispatch(newTestContext(t, http.MethodGet, "/"))
		require.NoError(t, err)
		assert.Equal(t, "Hi there", string(resp.Body))
	})

	t.Run("middleware decorates downstream response", func(t *testing.T) {
		t.Parallel()

		p := NewPipeline(
			Middleware{Handler: func(ctx *Context) (Result, error) {
				res, err := ctx.MoveForward()
				if err != nil {
					return Result{}, err
				}
				resp := res.Response()
				resp.Header.Set("X-Decorated", "yes")
				res.SetResponse(resp)
				return res, nil
			}},
			Middleware{Handler: func(ctx *Context) (Result, error) {
				return Respond(Text(http.StatusOK, "inner")), nil
			}},
		)

		resp, err := p.Dispatch(newTestContext(t, http.MethodGet, "/"))
		require.NoError(t, err)
		assert.Equal(t, "yes", resp.Header.Get("X-Decorated"))
		assert.Equal(t, "inner", string(resp.Body))
	})

	t.Run("pass without MoveForward still reaches later middlewares", func(t *testing.T) {
		t.Parallel()

		var order []string
		p := NewPipeline(
			Middleware{Handler: func(ctx *Context) (Result, error) {
				order = append(order, "first")
				return Pass(), nil
			}},
			Middleware{Handler: func(ctx *Context) (Result, error) {
				order = append(order, "second")
				return Respond(NoContent()), nil
			}},
		)

		_, err := p.Dispatch(newTestContext(t, http.MethodGet, "/"))
		require.NoError(t, err)
		assert.Equal(t, []string{"first", "second"}, order)
	})

	t.Run("error aborts the dispatch", func(t *testing.T) {
		t.Parallel()

		p := NewPipeline(
			Middleware{Handler: func(ctx *Context) (Result, error) {
				return Result{}, ErrForbidden("nope")
			}},
			Middleware{Handler: func(ctx *Context) (Result, error) {
				t.Fatal("must not run after error")
				return Pass(), nil
			}},
		)

		_, err := p.Dispatch(newTestContext(t, http.MethodGet, "/"))
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, AsSafeError(err).Code)
	})
}

func TestPipelineNaming(t *testing.T) {
	t.Parallel()

	p := NewPipeline(
		Middleware{Name: "custom", Handler: func(ctx *Context) (Result, error) { return Pass(), nil }},
		Middleware{Handler: func(ctx *Context) (Result, error) { return Pass(), nil }},
	)

	mws := p.Middlewares()
	assert.Equal(t, "custom", mws[0].Name)
	assert.Equal(t, "Middleware[1]", mws[1].Name)
	assert.Equal(t, KindGeneric, mws[1].Kind)
}

func TestStartupContextPosition(t *testing.T) {
	t.Parallel()

	sc := &StartupContext{Middlewares: []Middleware{
		{Name: "a", Kind: KindCookies},
		{Name: "b", Kind: KindSession},
	}}
	assert.Equal(t, 0, sc.Position(KindCookies))
	assert.Equal(t, 1, sc.Position(KindSession))
	assert.Equal(t, -1, sc.Position(KindSessionAuth))
}

func TestResult(t *testing.T) {
	t.Parallel()

	assert.False(t, Pass().Terminal())

	r := Respond(Text(http.StatusTeapot, "tea"))
	require.True(t, r.Terminal())
	assert.Equal(t, http.StatusTeapot, r.Response().StatusCode)
}
