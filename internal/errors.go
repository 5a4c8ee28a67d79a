package internal

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/sitekit/pkg/errreport"
)

// ErrorRecord is the reduced error shape handed to reporters and renderers.
type ErrorRecord = errreport.Record

// DefaultErrorMessage is the message exposed for errors that carry no
// user-facing message of their own (plain errors, recovered panics).
const DefaultErrorMessage = "Internal Error"

// HTTPError is an error with a status code and a user-facing message.
// The message is what survives normalization; the wrapped error is kept
// for errors.Is/As checks only and is never reported.
type HTTPError struct {
	// Err is the underlying error.
	Err error

	// Message is the user-facing error message.
	Message string

	// Code is the HTTP status code (e.g., 404, 500).
	Code int
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func (e *HTTPError) StatusCode() int {
	return e.Code
}

func (e *HTTPError) StatusText() string {
	return http.StatusText(e.Code)
}

// HTTPErrorOption configures an HTTPError.
type HTTPErrorOption func(*HTTPError)

// NewHTTPError creates a new HTTPError with the given status code and message.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	e := &HTTPError{
		Code:    code,
		Message: message,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WithError attaches the underlying cause.
func WithError(err error) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Err = err
	}
}

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message, opts...)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message, opts...)
}

func ErrMethodNotAllowed(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusMethodNotAllowed, message, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, message, opts...)
}

// IsHTTPError reports whether err is or wraps an HTTPError.
func IsHTTPError(err error) bool {
	var he *HTTPError
	return errors.As(err, &he)
}

// AsHTTPError extracts the HTTPError from an error chain.
// Returns nil if none is present.
func AsHTTPError(err error) *HTTPError {
	var he *HTTPError
	if errors.As(err, &he) {
		return he
	}
	return nil
}

// errorInput describes err the way the server normalizer expects it.
func errorInput(err error, requestID string) errreport.Input {
	in := errreport.Input{
		Err:       err,
		Status:    http.StatusInternalServerError,
		Message:   DefaultErrorMessage,
		RequestID: requestID,
	}
	if he := AsHTTPError(err); he != nil {
		in.Status = he.Code
		in.Message = he.Message
	}
	var st interface{ StackTrace() []byte }
	if errors.As(err, &st) {
		in.Stack = st.StackTrace()
	}
	return in
}
