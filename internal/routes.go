package internal

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

// RouteHandler answers one HTTP method of a route. Handle may return a
// Response to end the dispatch, any other value for the page and fallback
// stages to serialize, or nil to fall through.
type RouteHandler struct {
	Guard  Guard
	Handle func(sc *StepContext) (any, error)
}

// Page renders a route into a component. Render may return a nil
// component to defer to the fallback stage.
type Page struct {
	Guard  Guard
	Render func(sc *StepContext) (Component, error)
}

// Route is one registered route. Pattern uses chi syntax, e.g.
// "/users/{id}". Handlers is keyed by HTTP method; a route with a Page
// and no GET handler still serves GET by rendering the page.
type Route struct {
	Pattern  string
	Guard    Guard
	Handlers map[string]*RouteHandler
	Page     *Page
}

var probeMethods = []string{
	http.MethodGet, http.MethodPost, http.MethodPut,
	http.MethodPatch, http.MethodDelete, http.MethodHead, http.MethodOptions,
}

// Match is the outcome of routing one request.
type Match struct {
	Route   *Route
	Handler *RouteHandler
	Params  map[string]string
	Guards  []Guard
}

// Routes is the explicit route registry. Routes and folder guards are
// registered up front; the registry owns the memoized guard chains and
// exposes explicit invalidation for callers that mutate guards at runtime.
type Routes struct {
	mu           sync.RWMutex
	mux          *chi.Mux
	byPattern    map[string]*Route
	folderGuards map[string][]Guard
	guardCache   map[string][]Guard
}

// NewRoutes creates an empty registry.
func NewRoutes() *Routes {
	return &Routes{
		mux:          chi.NewRouter(),
		byPattern:    make(map[string]*Route),
		folderGuards: make(map[string][]Guard),
		guardCache:   make(map[string][]Guard),
	}
}

// Add registers a route. Registering the same pattern twice is a
// programming error and panics, matching the router's own behavior for
// duplicate patterns.
func (r *Routes) Add(route *Route) *Routes {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byPattern[route.Pattern]; exists {
		panic(fmt.Sprintf("routes: duplicate pattern %q", route.Pattern))
	}
	r.byPattern[route.Pattern] = route

	marker := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	for method := range route.Handlers {
		r.mux.Method(method, route.Pattern, marker)
	}
	if route.Page != nil {
		if _, ok := route.Handlers[http.MethodGet]; !ok {
			r.mux.Get(route.Pattern, marker)
		}
	}
	return r
}

// GuardFolder attaches a guard to a path prefix. Every route whose pattern
// lives under the prefix runs the guard before its own stages. Guards
// attached to nested prefixes run outermost first.
func (r *Routes) GuardFolder(prefix string, guard Guard) *Routes {
	r.mu.Lock()
	defer r.mu.Unlock()

	prefix = normalizeFolder(prefix)
	r.folderGuards[prefix] = append(r.folderGuards[prefix], guard)
	r.guardCache = make(map[string][]Guard)
	return r
}

// InvalidateGuards drops the memoized guard chains. Call after mutating
// guard state outside GuardFolder.
func (r *Routes) InvalidateGuards() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.guardCache = make(map[string][]Guard)
}

// Lookup routes a request. The second return is false when no pattern
// matches the path at all; a pattern match without a handler for the
// method yields a Match with a nil Handler so the caller can distinguish
// not-found from method-not-allowed.
func (r *Routes) Lookup(method, path string) (Match, bool) {
	// Full lock: lookups populate the guard cache.
	r.mu.Lock()
	defer r.mu.Unlock()

	rctx := chi.NewRouteContext()
	if !r.mux.Match(rctx, method, path) {
		// Probe other methods to tell a missing pattern apart from a
		// pattern that exists but lacks this method.
		rctx = nil
		for _, probe := range probeMethods {
			if probe == method {
				continue
			}
			candidate := chi.NewRouteContext()
			if r.mux.Match(candidate, probe, path) {
				rctx = candidate
				break
			}
		}
		if rctx == nil {
			return Match{}, false
		}
	}

	pattern := rctx.RoutePattern()
	route, ok := r.byPattern[pattern]
	if !ok {
		return Match{}, false
	}

	params := make(map[string]string, len(rctx.URLParams.Keys))
	for i, key := range rctx.URLParams.Keys {
		params[key] = rctx.URLParams.Values[i]
	}

	return Match{
		Route:   route,
		Handler: route.Handlers[method],
		Params:  params,
		Guards:  r.guardsForLocked(pattern),
	}, true
}

// guardsForLocked resolves the folder guard chain for a pattern, outermost
// folder first, memoized per pattern. Caller holds the write lock.
func (r *Routes) guardsForLocked(pattern string) []Guard {
	if guards, ok := r.guardCache[pattern]; ok {
		return guards
	}

	var prefixes []string
	for prefix := range r.folderGuards {
		if folderContains(prefix, pattern) {
			prefixes = append(prefixes, prefix)
		}
	}
	sort.Slice(prefixes, func(i, j int) bool {
		return len(prefixes[i]) < len(prefixes[j])
	})

	var guards []Guard
	for _, prefix := range prefixes {
		guards = append(guards, r.folderGuards[prefix]...)
	}
	r.guardCache[pattern] = guards
	return guards
}

func normalizeFolder(prefix string) string {
	if prefix == "" {
		return "/"
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return strings.TrimSuffix(prefix, "/")
}

// folderContains reports whether a route pattern lives under a folder
// prefix. The root folder contains everything; other folders require a
// path boundary so "/admin" does not capture "/administrators".
func folderContains(prefix, pattern string) bool {
	if prefix == "" || prefix == "/" {
		return true
	}
	return pattern == prefix || strings.HasPrefix(pattern, prefix+"/")
}
