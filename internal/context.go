package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/sitekit/pkg/locale"
)

// Component is the interface for renderable templates.
// This is compatible with templ.Component.
type Component interface {
	Render(ctx context.Context, w io.Writer) error
}

// Context provides request/response access and helper methods.
// It also implements context.Context by delegating to the current request context.
type Context interface {
	context.Context

	// Request returns the current *http.Request.
	Request() *http.Request

	// SetRequest replaces the request observed by this and every downstream handler.
	// Middleware uses it to hand a rewritten request to the rest of the pipeline.
	SetRequest(r *http.Request)

	// Response returns the underlying http.ResponseWriter.
	Response() http.ResponseWriter

	// Context returns the request's context.Context.
	Context() context.Context

	// Param returns the URL parameter value by name.
	Param(name string) string

	// Query returns the query parameter value by name.
	Query(name string) string

	// Header returns the request header value by name.
	Header(name string) string

	// SetHeader sets a response header.
	SetHeader(name, value string)

	// Cookie returns a plain cookie value.
	Cookie(name string) (string, error)

	// SetCookie sets a cookie on the response.
	SetCookie(cookie *http.Cookie)

	// Locale returns the locale negotiated for this request.
	// Returns an empty string if the locale middleware is not used.
	Locale() string

	// WantsJSON reports whether the client prefers a JSON response.
	WantsJSON() bool

	// JSON writes a JSON response with the given status code.
	JSON(code int, v any) error

	// String writes a plain text response with the given status code.
	String(code int, s string) error

	// NoContent writes a response with no body.
	NoContent(code int) error

	// Redirect redirects to the given URL with the given status code.
	Redirect(code int, url string) error

	// Render renders component into the app's document shell, applies every
	// registered page transform and writes the result with the given status code.
	Render(code int, component Component) error

	// TransformPage registers a transform applied to HTML documents produced by Render.
	// Transforms run in registration order and live for the rest of the request.
	TransformPage(fn PageTransform)

	// Error creates and returns an HTTPError without writing a response.
	Error(code int, message string, opts ...HTTPErrorOption) *HTTPError

	// Written returns true if a response has already been written.
	Written() bool

	// Logger returns the logger for advanced usage.
	Logger() *slog.Logger

	LogDebug(msg string, attrs ...any)
	LogInfo(msg string, attrs ...any)
	LogWarn(msg string, attrs ...any)
	LogError(msg string, attrs ...any)

	// Set stores a value in the request context.
	Set(key any, value any)

	// Get retrieves a value from the request context.
	Get(key any) any
}

// pageTransformsKey is the context key for the per-request transform list.
type pageTransformsKey struct{}

// pageTransforms is shared by pointer so transforms registered in a middleware
// are visible to the handler context created further down the chain.
type pageTransforms struct {
	fns []PageTransform
}

// withPageTransforms attaches an empty transform list unless r already has one.
func withPageTransforms(r *http.Request) *http.Request {
	if _, ok := r.Context().Value(pageTransformsKey{}).(*pageTransforms); ok {
		return r
	}
	return r.WithContext(context.WithValue(r.Context(), pageTransformsKey{}, &pageTransforms{}))
}

// requestContext implements the Context interface.
type requestContext struct {
	request  *http.Request
	response *ResponseWriter
	app      *App
}

// newContext creates a new context sharing the request's response wrapper.
func newContext(w http.ResponseWriter, r *http.Request, app *App) *requestContext {
	return &requestContext{
		request:  r,
		response: NewResponseWriter(w),
		app:      app,
	}
}

func (c *requestContext) Request() *http.Request {
	return c.request
}

func (c *requestContext) SetRequest(r *http.Request) {
	if r != nil {
		c.request = r
	}
}

func (c *requestContext) Response() http.ResponseWriter {
	return c.response
}

func (c *requestContext) Context() context.Context {
	return c.request.Context()
}

func (c *requestContext) Deadline() (time.Time, bool) {
	return c.request.Context().Deadline()
}

func (c *requestContext) Done() <-chan struct{} {
	return c.request.Context().Done()
}

func (c *requestContext) Err() error {
	return c.request.Context().Err()
}

func (c *requestContext) Value(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) Param(name string) string {
	return chi.URLParam(c.request, name)
}

func (c *requestContext) Query(name string) string {
	return c.request.URL.Query().Get(name)
}

func (c *requestContext) Header(name string) string {
	return c.request.Header.Get(name)
}

func (c *requestContext) SetHeader(name, value string) {
	c.response.Header().Set(name, value)
}

func (c *requestContext) Cookie(name string) (string, error) {
	ck, err := c.request.Cookie(name)
	if err != nil {
		return "", err
	}
	return ck.Value, nil
}

func (c *requestContext) SetCookie(cookie *http.Cookie) {
	http.SetCookie(c.response, cookie)
}

func (c *requestContext) Locale() string {
	l, _ := locale.FromContext(c.request.Context())
	return l
}

func (c *requestContext) WantsJSON() bool {
	if strings.Contains(c.request.Header.Get("Accept"), "application/json") {
		return true
	}
	return strings.HasPrefix(c.request.Header.Get("Content-Type"), "application/json")
}

func (c *requestContext) JSON(code int, v any) error {
	c.response.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.response.WriteHeader(code)
	return json.NewEncoder(c.response).Encode(v)
}

func (c *requestContext) String(code int, s string) error {
	c.response.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.response.WriteHeader(code)
	_, err := io.WriteString(c.response, s)
	return err
}

func (c *requestContext) NoContent(code int) error {
	c.response.WriteHeader(code)
	return nil
}

func (c *requestContext) Redirect(code int, url string) error {
	http.Redirect(c.response, c.request, url, code)
	return nil
}

func (c *requestContext) Render(code int, component Component) error {
	ctx := c.request.Context()

	var body strings.Builder
	if err := component.Render(ctx, &body); err != nil {
		return fmt.Errorf("render body: %w", err)
	}

	var head strings.Builder
	for _, h := range c.app.head {
		if err := h.Render(ctx, &head); err != nil {
			return fmt.Errorf("render head: %w", err)
		}
	}

	html := c.app.document.Assemble(head.String(), body.String())
	if pt, ok := ctx.Value(pageTransformsKey{}).(*pageTransforms); ok {
		for _, fn := range pt.fns {
			html = fn(html)
		}
	}

	c.response.Header().Set("Content-Type", "text/html; charset=utf-8")
	c.response.WriteHeader(code)
	_, err := io.WriteString(c.response, html)
	return err
}

func (c *requestContext) TransformPage(fn PageTransform) {
	if fn == nil {
		return
	}
	pt, ok := c.Get(pageTransformsKey{}).(*pageTransforms)
	if !ok {
		pt = &pageTransforms{}
		c.Set(pageTransformsKey{}, pt)
	}
	pt.fns = append(pt.fns, fn)
}

func (c *requestContext) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(code, message, opts...)
}

func (c *requestContext) Written() bool {
	return c.response.Written()
}

func (c *requestContext) Logger() *slog.Logger {
	return c.app.logger
}

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.app.logger.DebugContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.app.logger.InfoContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.app.logger.WarnContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.app.logger.ErrorContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) Set(key, value any) {
	ctx := context.WithValue(c.request.Context(), key, value)
	c.request = c.request.WithContext(ctx)
}

func (c *requestContext) Get(key any) any {
	return c.request.Context().Value(key)
}
