package internal

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/kilnhq/kiln/pkg/authn"
	"github.com/kilnhq/kiln/pkg/cookiejar"
	"github.com/kilnhq/kiln/pkg/validation"
)

// ForwardCompleteFunc observes a finished forwarded sub-request. Hooks run
// in registration order and may mutate the response before the caller of
// Forward sees it. A hook error aborts the dispatch.
type ForwardCompleteFunc func(ctx *Context, resp *Response) error

// Dispatcher runs a request through the application chain and returns the
// resulting response without writing it. The application installs one on
// every context so middlewares can issue forwarded sub-requests.
type Dispatcher func(req *http.Request) (Response, error)

// Context carries one request through the middleware chain. It owns the
// request-scoped property bag, the authentication state, and the cookie
// jar installed by the cookie middleware.
type Context struct {
	req    *http.Request
	logger *slog.Logger

	props map[string]any
	jar   *cookiejar.Jar
	auth  *authn.Authentication

	forwardCookies  []*http.Cookie
	forwardComplete []ForwardCompleteFunc
	dispatch        Dispatcher

	pipeline *Pipeline
	index    int
}

// NewContext creates a context for one request. The authentication state
// starts anonymous; middlewares restore or establish a principal later.
func NewContext(req *http.Request, logger *slog.Logger, dispatch Dispatcher) *Context {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Context{
		req:      req,
		logger:   logger,
		props:    make(map[string]any),
		auth:     authn.NewAnonymous(),
		dispatch: dispatch,
	}
}

// MoveForward hands the request to the rest of the middleware chain and
// returns the downstream outcome. A middleware that wants to observe or
// decorate the response calls this and returns the result; one that fully
// answers the request returns a terminal result without calling it.
func (c *Context) MoveForward() (Result, error) {
	if c.pipeline == nil {
		return Pass(), nil
	}
	return c.pipeline.MoveForward(c)
}

// Request returns the underlying request.
func (c *Context) Request() *http.Request {
	return c.req
}

// Context returns the request's context.
func (c *Context) Context() context.Context {
	return c.req.Context()
}

// WithValue attaches a value to the request context so it survives into
// code that only sees a context.Context, such as logger extractors.
func (c *Context) WithValue(key, value any) {
	c.req = c.req.WithContext(context.WithValue(c.req.Context(), key, value))
}

// Logger returns the request-scoped logger.
func (c *Context) Logger() *slog.Logger {
	return c.logger
}

// Set stores a request-scoped value visible to every later middleware and
// handler in this dispatch.
func (c *Context) Set(key string, value any) {
	c.props[key] = value
}

// Get returns a request-scoped value.
func (c *Context) Get(key string) (any, bool) {
	v, ok := c.props[key]
	return v, ok
}

// GetString returns a request-scoped string value, or "" when absent or
// not a string.
func (c *Context) GetString(key string) string {
	if v, ok := c.props[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Query returns the query parameter value by name.
func (c *Context) Query(name string) string {
	return c.req.URL.Query().Get(name)
}

// Form returns the form value by name, parsing the body on first access.
func (c *Context) Form(name string) string {
	if c.req.Form == nil {
		_ = c.req.ParseForm()
	}
	return c.req.FormValue(name)
}

// Jar returns the cookie jar, or nil when no cookie middleware ran.
func (c *Context) Jar() *cookiejar.Jar {
	return c.jar
}

// SetJar installs the cookie jar. Called by the cookie middleware.
func (c *Context) SetJar(jar *cookiejar.Jar) {
	c.jar = jar
}

// Auth returns the authentication state. Never nil.
func (c *Context) Auth() *authn.Authentication {
	return c.auth
}

// SetForwardCookie attaches a cookie to every forwarded sub-request issued
// from this context. A cookie with the same name replaces the earlier one.
func (c *Context) SetForwardCookie(cookie *http.Cookie) {
	for i, existing := range c.forwardCookies {
		if existing.Name == cookie.Name {
			c.forwardCookies[i] = cookie
			return
		}
	}
	c.forwardCookies = append(c.forwardCookies, cookie)
}

// ForwardCookies returns the cookies attached to forwarded sub-requests.
func (c *Context) ForwardCookies() []*http.Cookie {
	return c.forwardCookies
}

// OnForwardComplete registers a hook that runs after each forwarded
// sub-request finishes, in registration order.
func (c *Context) OnForwardComplete(fn ForwardCompleteFunc) {
	if fn != nil {
		c.forwardComplete = append(c.forwardComplete, fn)
	}
}

// ForwardOption configures a forwarded sub-request.
type ForwardOption func(*forwardConfig)

type forwardConfig struct {
	method string
	body   io.Reader
	header http.Header
}

// WithMethod overrides the forwarded request method. Defaults to GET.
func WithMethod(method string) ForwardOption {
	return func(fc *forwardConfig) { fc.method = method }
}

// WithBody sets the forwarded request body.
func WithBody(body io.Reader) ForwardOption {
	return func(fc *forwardConfig) { fc.body = body }
}

// WithForm sets a form-encoded body and the matching content type.
func WithForm(values url.Values) ForwardOption {
	return func(fc *forwardConfig) {
		fc.body = strings.NewReader(values.Encode())
		if fc.header == nil {
			fc.header = make(http.Header)
		}
		fc.header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
}

// WithHeader adds a header to the forwarded request.
func WithHeader(key, value string) ForwardOption {
	return func(fc *forwardConfig) {
		if fc.header == nil {
			fc.header = make(http.Header)
		}
		fc.header.Add(key, value)
	}
}

// Forward issues a sub-request through the full application chain and
// returns its response without touching the network. The sub-request
// inherits the incoming request's headers, with caller-supplied headers
// merged over them, and carries the incoming cookies plus any cookies
// attached via SetForwardCookie, so session identity established during
// this dispatch propagates down. Registered forward-complete hooks run
// afterwards and may mutate the response, which lets session middlewares
// fold state written by the sub-request back into this context.
func (c *Context) Forward(path string, opts ...ForwardOption) (Response, error) {
	if c.dispatch == nil {
		return Response{}, ErrInternal("forwarding is not available outside a dispatch")
	}

	fc := forwardConfig{method: http.MethodGet}
	for _, opt := range opts {
		opt(&fc)
	}

	target := c.resolveForwardURL(path)
	req, err := http.NewRequestWithContext(c.req.Context(), fc.method, target, fc.body)
	if err != nil {
		return Response{}, err
	}
	// Cookie is rebuilt below from the incoming header and forward cookies.
	for key, values := range c.req.Header {
		if key == "Cookie" {
			continue
		}
		req.Header[key] = append([]string(nil), values...)
	}
	for key, values := range fc.header {
		req.Header.Del(key)
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if cookie := c.forwardCookieHeader(); cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	resp, err := c.dispatch(req)
	if err != nil {
		return Response{}, err
	}
	for _, fn := range c.forwardComplete {
		if err := fn(c, &resp); err != nil {
			return Response{}, err
		}
	}
	return resp, nil
}

// ForwardJSON forwards a sub-request and decodes its JSON body. A body
// carrying the validation result discriminator is rehydrated into a
// *validation.Result so callers can branch on failed validation without
// inspecting raw maps.
func (c *Context) ForwardJSON(path string, opts ...ForwardOption) (any, error) {
	resp, err := c.Forward(path, opts...)
	if err != nil {
		return nil, err
	}
	var payload any
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return nil, err
	}
	if result := validation.FromPayload(payload); result != nil {
		return result, nil
	}
	return payload, nil
}

// forwardCookieHeader joins the incoming Cookie header with the attached
// forward cookies. Incoming pairs come first so a sub-request sees the
// same identity the client presented, extended by what this dispatch
// established.
func (c *Context) forwardCookieHeader() string {
	var pairs []string
	if incoming := c.req.Header.Get("Cookie"); incoming != "" {
		pairs = append(pairs, incoming)
	}
	for _, cookie := range c.forwardCookies {
		pairs = append(pairs, cookie.Name+"="+cookie.Value)
	}
	return strings.Join(pairs, "; ")
}

func (c *Context) resolveForwardURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	base := url.URL{
		Scheme: "http",
		Host:   c.req.Host,
		Path:   path,
	}
	if c.req.TLS != nil {
		base.Scheme = "https"
	}
	if i := strings.IndexByte(path, '?'); i >= 0 {
		base.Path = path[:i]
		base.RawQuery = path[i+1:]
	}
	return base.String()
}
