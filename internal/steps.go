package internal

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Component is the interface for renderable page templates.
// This is compatible with templ.Component.
type Component interface {
	Render(ctx context.Context, w io.Writer) error
}

// Step is one stage of a route dispatch. A step either answers the request
// with a terminal result, or calls sc.Next() to run the following stage
// and returns what it observed. Guards share this signature: returning a
// terminal result blocks the request, calling Next lets it through.
type Step func(sc *StepContext) (Result, error)

// Guard protects a folder, module, handler, or page.
type Guard = Step

// StepContext carries one matched route through its step pipeline.
type StepContext struct {
	*Context

	route  *Route
	params map[string]string

	// HandlerResult holds what the route handler returned, for the
	// render and fallback stages.
	HandlerResult any

	steps []Step
	step  int
}

// NewStepContext builds a step context for a matched route.
func NewStepContext(ctx *Context, route *Route, params map[string]string, steps []Step) *StepContext {
	return &StepContext{Context: ctx, route: route, params: params, steps: steps}
}

// Route returns the matched route.
func (sc *StepContext) Route() *Route {
	return sc.route
}

// Param returns the URL parameter value by name.
func (sc *StepContext) Param(name string) string {
	return sc.params[name]
}

// Next runs the following step. Each call consumes exactly one step; the
// consumed step decides whether to continue. Exhausting the steps yields
// a pass-through, which sends the request back to the middleware chain.
func (sc *StepContext) Next() (Result, error) {
	if sc.step >= len(sc.steps) {
		return Pass(), nil
	}
	step := sc.steps[sc.step]
	sc.step++
	return step(sc)
}

// Run starts the step pipeline.
func (sc *StepContext) Run() (Result, error) {
	return sc.Next()
}

// BuildSteps assembles the step pipeline for a matched route: folder
// guards from the outermost folder inward, then the module guard, the
// handler guard, the handler itself, the page guard, the page render, and
// finally the fallback serializer. A nil handler (a page-only route) skips
// the handler stages.
func BuildSteps(folderGuards []Guard, route *Route, handler *RouteHandler) []Step {
	var steps []Step
	for _, g := range folderGuards {
		if g != nil {
			steps = append(steps, g)
		}
	}
	if route.Guard != nil {
		steps = append(steps, route.Guard)
	}
	if handler != nil {
		if handler.Guard != nil {
			steps = append(steps, handler.Guard)
		}
		steps = append(steps, executeHandler(handler))
	}
	if route.Page != nil {
		if route.Page.Guard != nil {
			steps = append(steps, route.Page.Guard)
		}
		steps = append(steps, renderPage(route.Page))
	}
	steps = append(steps, fallback)
	return steps
}

// executeHandler runs the route handler. A handler returning a Response
// ends the dispatch; any other value is stored for the later stages.
func executeHandler(handler *RouteHandler) Step {
	return func(sc *StepContext) (Result, error) {
		out, err := handler.Handle(sc)
		if err != nil {
			return Result{}, err
		}
		if resp, ok := out.(Response); ok {
			return Respond(resp), nil
		}
		sc.HandlerResult = out
		return sc.Next()
	}
}

// renderPage renders the route's page component into an HTML response.
// A nil component defers to the fallback stage.
func renderPage(page *Page) Step {
	return func(sc *StepContext) (Result, error) {
		component, err := page.Render(sc)
		if err != nil {
			return Result{}, err
		}
		if component == nil {
			return sc.Next()
		}
		var buf strings.Builder
		if err := component.Render(sc.Context.Context(), &buf); err != nil {
			return Result{}, err
		}
		return Respond(HTML(http.StatusOK, buf.String())), nil
	}
}

// fallback serializes a handler result that no earlier stage consumed.
// Maps, slices, and structs become JSON; primitives and timestamps become
// plain text; a nil result passes through so the dispatch ends not found.
func fallback(sc *StepContext) (Result, error) {
	switch v := sc.HandlerResult.(type) {
	case nil:
		return Pass(), nil
	case string:
		return Respond(Text(http.StatusOK, v)), nil
	case bool:
		return Respond(Text(http.StatusOK, fmt.Sprintf("%t", v))), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return Respond(Text(http.StatusOK, fmt.Sprintf("%v", v))), nil
	case time.Time:
		return Respond(Text(http.StatusOK, v.Format(time.RFC3339))), nil
	default:
		return Respond(JSON(http.StatusOK, v)), nil
	}
}
