package internal

import "net/http"

// SafeError is an error whose message is safe to expose to clients.
// Anything else that escapes the pipeline is logged and replaced with a
// generic 500 body before leaving the process.
type SafeError struct {
	// Err is the underlying cause (for logging, not exposed to users).
	Err error

	// Message is the user-facing error message.
	Message string

	// Detail is an optional extended description.
	Detail string

	// Code is the HTTP status code (e.g. 404, 500).
	Code int
}

func (e *SafeError) Error() string {
	return e.Message
}

func (e *SafeError) Unwrap() error {
	return e.Err
}

func (e *SafeError) StatusCode() int {
	return e.Code
}

func (e *SafeError) StatusText() string {
	return http.StatusText(e.Code)
}

// SafeErrorOption configures a SafeError.
type SafeErrorOption func(*SafeError)

// NewSafeError creates a SafeError with the given status code and message.
func NewSafeError(code int, message string, opts ...SafeErrorOption) *SafeError {
	e := &SafeError{Code: code, Message: message}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func WithDetail(detail string) SafeErrorOption {
	return func(e *SafeError) {
		e.Detail = detail
	}
}

func WithCause(err error) SafeErrorOption {
	return func(e *SafeError) {
		e.Err = err
	}
}

// Convenience constructors for the statuses the pipeline raises itself.

func ErrNotFound(message string, opts ...SafeErrorOption) *SafeError {
	return NewSafeError(http.StatusNotFound, message, opts...)
}

func ErrMethodNotAllowed(message string, opts ...SafeErrorOption) *SafeError {
	return NewSafeError(http.StatusMethodNotAllowed, message, opts...)
}

func ErrUnsupportedMediaType(message string, opts ...SafeErrorOption) *SafeError {
	return NewSafeError(http.StatusUnsupportedMediaType, message, opts...)
}

func ErrBadRequest(message string, opts ...SafeErrorOption) *SafeError {
	return NewSafeError(http.StatusBadRequest, message, opts...)
}

func ErrUnauthorized(message string, opts ...SafeErrorOption) *SafeError {
	return NewSafeError(http.StatusUnauthorized, message, opts...)
}

func ErrForbidden(message string, opts ...SafeErrorOption) *SafeError {
	return NewSafeError(http.StatusForbidden, message, opts...)
}

func ErrInternal(message string, opts ...SafeErrorOption) *SafeError {
	return NewSafeError(http.StatusInternalServerError, message, opts...)
}

// IsSafeError reports whether err is a SafeError.
func IsSafeError(err error) bool {
	_, ok := err.(*SafeError)
	return ok
}

// AsSafeError extracts the SafeError from err if present.
// Returns nil otherwise.
func AsSafeError(err error) *SafeError {
	if err == nil {
		return nil
	}
	if safeErr, ok := err.(*SafeError); ok {
		return safeErr
	}
	return nil
}
