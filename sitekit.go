package sitekit

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/sitekit/internal"
	"github.com/dmitrymomot/sitekit/pkg/errreport"
	"github.com/dmitrymomot/sitekit/pkg/health"
	"github.com/dmitrymomot/sitekit/pkg/logger"
)

// Type aliases - public API
type (
	// App orchestrates the application lifecycle.
	App = internal.App

	// Router is the interface handlers use to declare routes.
	Router = internal.Router

	// Context provides request/response access and helper methods.
	Context = internal.Context

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// PageFunc builds the body of an HTML page.
	PageFunc = internal.PageFunc

	// Middleware wraps a HandlerFunc to add cross-cutting concerns.
	Middleware = internal.Middleware

	// ErrorHandler renders the response for an error that escaped a handler.
	ErrorHandler = internal.ErrorHandler

	// ErrorPage builds the component shown to HTML clients on errors.
	ErrorPage = internal.ErrorPage

	// ErrorRecord is the normalized error: only the message survives.
	ErrorRecord = internal.ErrorRecord

	// PageTransform rewrites a fully assembled HTML document.
	PageTransform = internal.PageTransform

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// Component is the interface for renderable templates.
	Component = internal.Component

	// Document is a parsed HTML shell.
	Document = internal.Document

	// HealthOption configures health check endpoints.
	HealthOption = internal.HealthOption

	// HTTPError is an error with a status code and a user-facing message.
	HTTPError = internal.HTTPError

	// HTTPErrorOption configures an HTTPError.
	HTTPErrorOption = internal.HTTPErrorOption

	// ContextExtractor extracts a slog attribute from context.
	ContextExtractor = logger.ContextExtractor

	// ResponseWriter wraps http.ResponseWriter and tracks what was written.
	ResponseWriter = internal.ResponseWriter
)

// Document placeholders.
const (
	HeadPlaceholder     = internal.HeadPlaceholder
	BodyPlaceholder     = internal.BodyPlaceholder
	DefaultDocument     = internal.DefaultDocument
	DefaultErrorMessage = internal.DefaultErrorMessage
)

// ErrInvalidDocument is returned for shells with missing or repeated placeholders.
var ErrInvalidDocument = internal.ErrInvalidDocument

// New creates a new application with the given options.
// The App is immutable after creation.
//
// Example:
//
//	app := sitekit.New(
//	    sitekit.WithLogger(log, middlewares.RequestIDExtractor()),
//	    sitekit.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.Recover(),
//	        middlewares.Locale(resolver),
//	    ),
//	    sitekit.WithHandlers(handlers.NewPages(catalog)),
//	)
//
//	err := app.Run(":8080", sitekit.Logger(log))
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// ParseDocument validates an HTML shell.
func ParseDocument(src string) (*Document, error) {
	return internal.ParseDocument(src)
}

// App options

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithHandlers registers handlers that declare routes.
func WithHandlers(h ...Handler) Option {
	return internal.WithHandlers(h...)
}

// WithMount attaches a plain http.Handler at pattern.
func WithMount(pattern string, h http.Handler) Option {
	return internal.WithMount(pattern, h)
}

// WithStaticFiles mounts a static file handler at the given pattern.
// Directory listings are disabled.
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return internal.WithStaticFiles(pattern, fsys, subDir)
}

// WithDocument replaces the HTML shell. It must contain %sitekit.head% and
// %sitekit.body% exactly once.
func WithDocument(src string) Option {
	return internal.WithDocument(src)
}

// WithHead adds components rendered into the head of every page.
func WithHead(components ...Component) Option {
	return internal.WithHead(components...)
}

// WithErrorHandler sets a custom error handler.
// It runs after the error has been normalized and reported.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithErrorPage sets the page rendered for HTML clients on errors.
func WithErrorPage(p ErrorPage) Option {
	return internal.WithErrorPage(p)
}

// WithErrorNormalizer replaces the server-side error normalizer.
func WithErrorNormalizer(n errreport.Normalizer) Option {
	return internal.WithErrorNormalizer(n)
}

// WithErrorReporter sets the sink for normalized error records.
func WithErrorReporter(r errreport.Reporter) Option {
	return internal.WithErrorReporter(r)
}

// WithNotFoundHandler sets a custom 404 handler.
func WithNotFoundHandler(h HandlerFunc) Option {
	return internal.WithNotFoundHandler(h)
}

// WithMethodNotAllowedHandler sets a custom 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return internal.WithMethodNotAllowedHandler(h)
}

// WithHealthChecks enables health check endpoints.
//
// Example:
//
//	sitekit.WithHealthChecks(
//	    sitekit.WithReadinessCheck("analytics", analytics.UpstreamCheck(nil, analytics.DefaultUpstream)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// WithLogger sets the application logger.
// Extractors pull request-scoped values into every entry.
func WithLogger(l *slog.Logger, extractors ...ContextExtractor) Option {
	return internal.WithLogger(l, extractors...)
}

// Health options

// WithLivenessPath sets a custom liveness endpoint path.
func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

// WithReadinessPath sets a custom readiness endpoint path.
func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

// WithReadinessCheck adds a named readiness check.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// Run options

// Logger sets the logger for server lifecycle events.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout sets the graceful shutdown timeout.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// StartupHook registers a function run before the server starts listening.
func StartupHook(fn func(context.Context) error) RunOption {
	return internal.StartupHook(fn)
}

// ShutdownHook registers a function run after the server stopped accepting requests.
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// WithContext sets the base context; cancelling it shuts the server down.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// Errors

// NewHTTPError creates an HTTPError. Its message is what clients see.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

// WithError attaches the underlying cause to an HTTPError.
func WithError(err error) HTTPErrorOption {
	return internal.WithError(err)
}

// IsHTTPError reports whether err is or wraps an HTTPError.
func IsHTTPError(err error) bool {
	return internal.IsHTTPError(err)
}

// AsHTTPError extracts the HTTPError from an error chain, or nil.
func AsHTTPError(err error) *HTTPError {
	return internal.AsHTTPError(err)
}

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrBadRequest(message, opts...)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrNotFound(message, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrInternal(message, opts...)
}
