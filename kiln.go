package kiln

import (
	"log/slog"
	"net/http"

	"github.com/kilnhq/kiln/internal"
	"github.com/kilnhq/kiln/pkg/authn"
	"github.com/kilnhq/kiln/pkg/logger"
	"github.com/kilnhq/kiln/pkg/session"
)

// Type aliases - public API
type (
	// App runs requests through its middleware chain.
	App = internal.App

	// Context carries one request through the middleware chain.
	Context = internal.Context

	// Result is the outcome of one middleware invocation: a terminal
	// response or a pass-through to the next middleware.
	Result = internal.Result

	// Response is an immutable-by-convention HTTP response value.
	Response = internal.Response

	// Middleware is one element of the request chain.
	Middleware = internal.Middleware

	// Handler processes one request inside the middleware chain.
	Handler = internal.Handler

	// StartupContext is handed to middleware OnAppStart hooks.
	StartupContext = internal.StartupContext

	// Kind tags a middleware's role for chain ordering checks.
	Kind = internal.Kind

	// Routes is the explicit route registry.
	Routes = internal.Routes

	// Route is one registered route.
	Route = internal.Route

	// RouteHandler answers one HTTP method of a route.
	RouteHandler = internal.RouteHandler

	// Page renders a route into a component.
	Page = internal.Page

	// Guard protects a folder, module, handler, or page.
	Guard = internal.Guard

	// Step is one stage of a route dispatch.
	Step = internal.Step

	// StepContext carries a matched route through its step pipeline.
	StepContext = internal.StepContext

	// Component is the interface for renderable page templates.
	Component = internal.Component

	// SafeError is an error whose message is safe to expose to clients.
	SafeError = internal.SafeError

	// ErrorHandler converts a dispatch error into a response.
	ErrorHandler = internal.ErrorHandler

	// ForwardOption configures a forwarded sub-request.
	ForwardOption = internal.ForwardOption

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// ContextExtractor extracts a slog attribute from context.
	// Used with logger factories to add request-scoped values to logs.
	ContextExtractor = logger.ContextExtractor

	// Principal identifies an authenticated party.
	Principal = authn.Principal

	// Authentication is the per-request authentication state.
	Authentication = authn.Authentication

	// Session is one user session.
	Session = session.Session

	// SessionStore persists sessions.
	SessionStore = session.Store
)

// Middleware kinds, re-exported for custom OnAppStart checks.
const (
	KindGeneric     = internal.KindGeneric
	KindCookies     = internal.KindCookies
	KindSession     = internal.KindSession
	KindSessionAuth = internal.KindSessionAuth
	KindRouting     = internal.KindRouting
	KindErrorPage   = internal.KindErrorPage
)

// Constructors

// New assembles an application and runs every middleware's OnAppStart
// hook. A failing hook aborts construction, so misordered chains never
// serve a request.
//
// Example:
//
//	app, err := kiln.New(
//	    kiln.WithLogger(log),
//	    kiln.Use(
//	        middlewares.Cookies(),
//	        middlewares.Session(store),
//	        middlewares.SessionAuth(),
//	        middlewares.Pages(routes),
//	    ),
//	)
func New(opts ...Option) (*App, error) {
	return internal.New(opts...)
}

// NewRoutes creates an empty route registry.
func NewRoutes() *Routes {
	return internal.NewRoutes()
}

// Results

// Respond creates a terminal result carrying resp.
func Respond(resp Response) Result {
	return internal.Respond(resp)
}

// Pass creates a pass-through result.
func Pass() Result {
	return internal.Pass()
}

// Responses

// Text creates a plain text response.
func Text(code int, body string) Response {
	return internal.Text(code, body)
}

// HTML creates an HTML response.
func HTML(code int, body string) Response {
	return internal.HTML(code, body)
}

// JSON creates a JSON response by marshaling v.
func JSON(code int, v any) Response {
	return internal.JSON(code, v)
}

// Redirect creates a redirect response to the given location.
func Redirect(code int, location string) Response {
	return internal.Redirect(code, location)
}

// NoContent creates an empty 204 response.
func NoContent() Response {
	return internal.NoContent()
}

// Errors

// NewSafeError creates a SafeError with the given status and message.
func NewSafeError(code int, message string, opts ...internal.SafeErrorOption) *SafeError {
	return internal.NewSafeError(code, message, opts...)
}

// ErrNotFound creates a 404 SafeError.
func ErrNotFound(message string, opts ...internal.SafeErrorOption) *SafeError {
	return internal.ErrNotFound(message, opts...)
}

// ErrBadRequest creates a 400 SafeError.
func ErrBadRequest(message string, opts ...internal.SafeErrorOption) *SafeError {
	return internal.ErrBadRequest(message, opts...)
}

// ErrUnauthorized creates a 401 SafeError.
func ErrUnauthorized(message string, opts ...internal.SafeErrorOption) *SafeError {
	return internal.ErrUnauthorized(message, opts...)
}

// ErrForbidden creates a 403 SafeError.
func ErrForbidden(message string, opts ...internal.SafeErrorOption) *SafeError {
	return internal.ErrForbidden(message, opts...)
}

// ErrMethodNotAllowed creates a 405 SafeError.
func ErrMethodNotAllowed(message string, opts ...internal.SafeErrorOption) *SafeError {
	return internal.ErrMethodNotAllowed(message, opts...)
}

// ErrUnsupportedMediaType creates a 415 SafeError.
func ErrUnsupportedMediaType(message string, opts ...internal.SafeErrorOption) *SafeError {
	return internal.ErrUnsupportedMediaType(message, opts...)
}

// ErrInternal creates a 500 SafeError.
func ErrInternal(message string, opts ...internal.SafeErrorOption) *SafeError {
	return internal.ErrInternal(message, opts...)
}

// AsSafeError extracts the SafeError from err if present.
func AsSafeError(err error) *SafeError {
	return internal.AsSafeError(err)
}

// Forward options

// WithMethod overrides the forwarded request method. Defaults to GET.
func WithMethod(method string) ForwardOption {
	return internal.WithMethod(method)
}

// WithForm sets a form-encoded body on a forwarded request.
func WithForm(values map[string][]string) ForwardOption {
	return internal.WithForm(values)
}

// WithHeader adds a header to a forwarded request.
func WithHeader(key, value string) ForwardOption {
	return internal.WithHeader(key, value)
}

// App options

// WithLogger sets the application logger.
func WithLogger(l *slog.Logger) Option {
	return internal.WithLogger(l)
}

// Use appends middlewares to the chain in order.
func Use(mws ...Middleware) Option {
	return internal.Use(mws...)
}

// WithErrorHandler replaces the default error handler.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

var _ http.Handler = (*App)(nil)
