package internal

import (
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
)

// Response is an immutable-by-convention value describing an HTTP response.
// Middlewares produce and inspect responses as values; nothing is written
// to the wire until the application serializes the final one.
type Response struct {
	Header     http.Header
	Body       []byte
	StatusCode int
}

// NewResponse creates an empty response with the given status code.
func NewResponse(code int) Response {
	return Response{StatusCode: code, Header: make(http.Header)}
}

// Text creates a plain text response.
func Text(code int, body string) Response {
	r := NewResponse(code)
	r.Header.Set("Content-Type", "text/plain; charset=utf-8")
	r.Body = []byte(body)
	return r
}

// HTML creates an HTML response.
func HTML(code int, body string) Response {
	r := NewResponse(code)
	r.Header.Set("Content-Type", "text/html; charset=utf-8")
	r.Body = []byte(body)
	return r
}

// JSON creates a JSON response by marshaling v.
func JSON(code int, v any) Response {
	r := NewResponse(code)
	r.Header.Set("Content-Type", "application/json; charset=utf-8")
	body, err := json.Marshal(v)
	if err != nil {
		r.StatusCode = http.StatusInternalServerError
		r.Body = fmt.Appendf(nil, `{"message":%q}`, "failed to serialize response")
		return r
	}
	r.Body = body
	return r
}

// Redirect creates a redirect response to the given location.
func Redirect(code int, location string) Response {
	r := NewResponse(code)
	r.Header.Set("Location", location)
	return r
}

// NoContent creates an empty 204 response.
func NoContent() Response {
	return NewResponse(http.StatusNoContent)
}

// Clone returns a deep copy. Mutating the clone's headers or body leaves
// the original untouched.
func (r Response) Clone() Response {
	out := Response{StatusCode: r.StatusCode, Header: make(http.Header, len(r.Header))}
	maps.Copy(out.Header, r.Header)
	if r.Body != nil {
		out.Body = make([]byte, len(r.Body))
		copy(out.Body, r.Body)
	}
	return out
}

// Write serializes the response to w. Headers already present on w are
// preserved; response headers are added on top so Set-Cookie values from
// both sources survive.
func (r Response) Write(w http.ResponseWriter) error {
	for key, values := range r.Header {
		for _, v := range values {
			w.Header().Add(key, v)
		}
	}
	code := r.StatusCode
	if code == 0 {
		code = http.StatusOK
	}
	w.WriteHeader(code)
	if len(r.Body) > 0 {
		if _, err := w.Write(r.Body); err != nil {
			return err
		}
	}
	return nil
}
