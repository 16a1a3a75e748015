package internal

import (
	"context"
	"fmt"
	"log/slog"
)

// Result is the outcome of one middleware invocation. It is either
// terminal, carrying the response that ends the dispatch, or a
// pass-through that hands the request to the next middleware in the
// chain. Failures travel on the error return, never inside a Result.
type Result struct {
	response *Response
}

// Respond creates a terminal result carrying resp.
func Respond(resp Response) Result {
	return Result{response: &resp}
}

// Pass creates a pass-through result.
func Pass() Result {
	return Result{}
}

// Terminal reports whether the result carries a response.
func (r Result) Terminal() bool {
	return r.response != nil
}

// Response returns the carried response. Only valid when Terminal.
func (r Result) Response() Response {
	return *r.response
}

// SetResponse replaces the carried response in place. Used by middlewares
// that decorate a downstream response, e.g. by attaching cookies.
func (r *Result) SetResponse(resp Response) {
	r.response = &resp
}

// Handler processes one request. Return a terminal Result to answer the
// request, Pass() to hand it to the next middleware, or an error to abort
// the dispatch.
type Handler func(ctx *Context) (Result, error)

// Kind tags a middleware's role so startup checks can verify chain
// ordering without inspecting concrete types.
type Kind string

const (
	KindGeneric     Kind = "generic"
	KindCookies     Kind = "cookies"
	KindSession     Kind = "session"
	KindSessionAuth Kind = "session-auth"
	KindRouting     Kind = "routing"
	KindErrorPage   Kind = "error-page"
)

// StartupContext is handed to middleware OnAppStart hooks when the
// application is constructed. It exposes the assembled chain so hooks can
// verify ordering requirements before the server accepts traffic.
type StartupContext struct {
	Logger      *slog.Logger
	Middlewares []Middleware
}

// Position returns the index of the first middleware of the given kind,
// or -1 when the chain has none.
func (sc *StartupContext) Position(kind Kind) int {
	for i, mw := range sc.Middlewares {
		if mw.Kind == kind {
			return i
		}
	}
	return -1
}

// Middleware is one element of the request chain.
type Middleware struct {
	// Name identifies the middleware in logs and errors. Unnamed
	// middlewares get a positional name when the chain is assembled.
	Name string

	// Kind tags the middleware's role for ordering checks.
	Kind Kind

	// Handler processes requests.
	Handler Handler

	// OnAppStart, when set, runs once at application construction.
	// Returning an error aborts startup.
	OnAppStart func(ctx context.Context, sc *StartupContext) error
}

// Pipeline dispatches requests through an ordered middleware chain.
type Pipeline struct {
	middlewares []Middleware
}

// NewPipeline assembles a pipeline, assigning positional names to unnamed
// middlewares and defaulting their kind to generic.
func NewPipeline(middlewares ...Middleware) *Pipeline {
	chain := make([]Middleware, len(middlewares))
	copy(chain, middlewares)
	for i := range chain {
		if chain[i].Name == "" {
			chain[i].Name = fmt.Sprintf("Middleware[%d]", i)
		}
		if chain[i].Kind == "" {
			chain[i].Kind = KindGeneric
		}
	}
	return &Pipeline{middlewares: chain}
}

// Middlewares returns the assembled chain.
func (p *Pipeline) Middlewares() []Middleware {
	return p.middlewares
}

// MoveForward consumes middlewares from the current position until one
// returns a terminal result. A middleware that returns Pass() without
// calling ctx.MoveForward itself simply yields to the next one; a
// middleware that does call it observes the downstream outcome and may
// decorate it before returning. Exhausting the chain returns Pass().
func (p *Pipeline) MoveForward(ctx *Context) (Result, error) {
	for ctx.index < len(p.middlewares) {
		mw := p.middlewares[ctx.index]
		ctx.index++
		res, err := mw.Handler(ctx)
		if err != nil {
			return Result{}, err
		}
		if res.Terminal() {
			return res, nil
		}
	}
	return Pass(), nil
}

// Dispatch runs the full chain for one request. When no middleware
// produces a response the dispatch fails with a not-found error naming
// the request target.
func (p *Pipeline) Dispatch(ctx *Context) (Response, error) {
	ctx.pipeline = p
	defer func() { ctx.index = 0 }()

	res, err := p.MoveForward(ctx)
	if err != nil {
		return Response{}, err
	}
	if !res.Terminal() {
		return Response{}, ErrNotFound(
			fmt.Sprintf("no handler found: %s %s", ctx.Request().Method, ctx.Request().URL.Path))
	}
	return res.Response(), nil
}
