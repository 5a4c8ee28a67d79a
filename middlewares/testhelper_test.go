package middlewares_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrymomot/sitekit/internal"
	"github.com/dmitrymomot/sitekit/pkg/locale"
)

type testContext struct {
	response   http.ResponseWriter
	request    *http.Request
	values     map[any]any
	transforms []internal.PageTransform
	logs       []string
	written    bool
}

func newTestContext(w http.ResponseWriter, r *http.Request) *testContext {
	return &testContext{
		response: w,
		request:  r,
		values:   make(map[any]any),
	}
}

func (c *testContext) Deadline() (time.Time, bool) { return c.request.Context().Deadline() }
func (c *testContext) Done() <-chan struct{}       { return c.request.Context().Done() }
func (c *testContext) Err() error                  { return c.request.Context().Err() }
func (c *testContext) Value(key any) any           { return c.request.Context().Value(key) }

func (c *testContext) Request() *http.Request        { return c.request }
func (c *testContext) SetRequest(r *http.Request)    { c.request = r }
func (c *testContext) Response() http.ResponseWriter { return c.response }
func (c *testContext) Context() context.Context      { return c.request.Context() }
func (c *testContext) Param(string) string           { return "" }
func (c *testContext) Query(name string) string      { return c.request.URL.Query().Get(name) }
func (c *testContext) Header(name string) string     { return c.request.Header.Get(name) }
func (c *testContext) SetHeader(name, value string)  { c.response.Header().Set(name, value) }

func (c *testContext) Cookie(name string) (string, error) {
	ck, err := c.request.Cookie(name)
	if err != nil {
		return "", err
	}
	return ck.Value, nil
}

func (c *testContext) SetCookie(cookie *http.Cookie) { http.SetCookie(c.response, cookie) }

func (c *testContext) Locale() string {
	l, _ := locale.FromContext(c.request.Context())
	return l
}

func (c *testContext) WantsJSON() bool {
	return strings.Contains(c.request.Header.Get("Accept"), "application/json")
}

func (c *testContext) JSON(code int, v any) error {
	c.written = true
	c.response.Header().Set("Content-Type", "application/json")
	c.response.WriteHeader(code)
	return json.NewEncoder(c.response).Encode(v)
}

func (c *testContext) String(code int, s string) error {
	c.written = true
	c.response.WriteHeader(code)
	_, err := io.WriteString(c.response, s)
	return err
}

func (c *testContext) NoContent(code int) error {
	c.written = true
	c.response.WriteHeader(code)
	return nil
}

func (c *testContext) Redirect(code int, url string) error {
	c.written = true
	http.Redirect(c.response, c.request, url, code)
	return nil
}

func (c *testContext) Render(code int, component internal.Component) error {
	var sb strings.Builder
	if err := component.Render(c.request.Context(), &sb); err != nil {
		return err
	}
	html := sb.String()
	for _, fn := range c.transforms {
		html = fn(html)
	}
	c.written = true
	c.response.WriteHeader(code)
	_, err := io.WriteString(c.response, html)
	return err
}

func (c *testContext) TransformPage(fn internal.PageTransform) {
	c.transforms = append(c.transforms, fn)
}

func (c *testContext) Error(code int, message string, opts ...internal.HTTPErrorOption) *internal.HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

func (c *testContext) Written() bool                 { return c.written }
func (c *testContext) Logger() *slog.Logger          { return slog.New(slog.DiscardHandler) }
func (c *testContext) LogDebug(string, ...any)       {}
func (c *testContext) LogInfo(string, ...any)        {}
func (c *testContext) LogWarn(string, ...any)        {}
func (c *testContext) LogError(msg string, _ ...any) { c.logs = append(c.logs, msg) }

func (c *testContext) Set(key, value any) {
	c.values[key] = value
	// mirror into the request context for context extractors
	c.request = c.request.WithContext(context.WithValue(c.request.Context(), key, value))
}

func (c *testContext) Get(key any) any {
	return c.values[key]
}

// page renders a fixed HTML document.
type page string

func (p page) Render(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, string(p))
	return err
}
