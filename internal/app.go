package internal

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/sitekit/pkg/errreport"
	"github.com/dmitrymomot/sitekit/pkg/health"
	"github.com/dmitrymomot/sitekit/pkg/logger"
)

// Default server timeouts (hardcoded, opinionated).
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second
)

// RequestIDKey is the context key used to store the request ID.
type RequestIDKey struct{}

// ErrorPage builds the component rendered for an error response.
type ErrorPage func(status int, rec ErrorRecord) Component

// App orchestrates the application lifecycle.
// It manages HTTP routing, middleware, document rendering, the error path
// and graceful shutdown. App is immutable after creation.
type App struct {
	router                  chi.Router
	errorHandler            ErrorHandler
	errorPage               ErrorPage
	notFoundHandler         HandlerFunc
	methodNotAllowedHandler HandlerFunc
	normalizer              errreport.Normalizer
	reporter                errreport.Reporter
	healthConfig            *healthConfig
	logger                  *slog.Logger
	document                *Document
	head                    []Component
	middlewares             []Middleware
	handlers                []Handler
	mounts                  []mount
}

// mount represents an http.Handler attached at a pattern.
type mount struct {
	handler http.Handler
	pattern string
}

// New creates a new application with the given options.
//
// Example:
//
//	app := sitekit.New(
//	    sitekit.WithLogger(log),
//	    sitekit.WithMiddleware(middlewares.Locale(resolver)),
//	    sitekit.WithHandlers(handlers.NewPages(catalog)),
//	)
func New(opts ...Option) *App {
	a := &App{
		router:     chi.NewRouter(),
		logger:     logger.NewNope(),
		document:   MustParseDocument(DefaultDocument),
		normalizer: errreport.Server(),
		errorPage:  defaultErrorPage,
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.reporter == nil {
		a.reporter = errreport.NewLogReporter(a.logger)
	}

	a.setupRoutes()
	return a
}

// Router returns the underlying chi.Router.
func (a *App) Router() chi.Router {
	return a.router
}

// ServeHTTP makes the App usable as an http.Handler.
// Every context of the request shares one transform list, so documents
// rendered by an outer middleware (Recover) get the transforms registered
// by an inner one (Locale).
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, withPageTransforms(r))
}

// Run starts the HTTP server and blocks until shutdown.
//
// Example:
//
//	err := app.Run(":8080", sitekit.Logger(log))
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := buildRunConfig(opts...)

	return runServer(runtimeConfig{
		handler:         a,
		address:         addr,
		logger:          cfg.logger,
		shutdownTimeout: cfg.shutdownTimeout,
		startupHooks:    cfg.startupHooks,
		shutdownHooks:   cfg.shutdownHooks,
		baseCtx:         cfg.baseCtx,
	})
}

// setupRoutes configures the router with middleware and handlers.
func (a *App) setupRoutes() {
	notFound := a.notFoundHandler
	if notFound == nil {
		notFound = func(Context) error { return ErrNotFound(http.StatusText(http.StatusNotFound)) }
	}
	methodNotAllowed := a.methodNotAllowedHandler
	if methodNotAllowed == nil {
		methodNotAllowed = func(Context) error {
			return ErrMethodNotAllowed(http.StatusText(http.StatusMethodNotAllowed))
		}
	}

	// chi requires middleware before any route
	for _, mw := range a.middlewares {
		a.router.Use(a.adaptMiddleware(mw))
	}

	a.router.NotFound(a.wrapHandler(notFound))
	a.router.MethodNotAllowed(a.wrapHandler(methodNotAllowed))

	for _, m := range a.mounts {
		a.router.Mount(m.pattern, m.handler)
	}

	if a.healthConfig != nil {
		a.router.Get(a.healthConfig.livenessPath, health.LivenessHandler())
		a.router.Get(a.healthConfig.readinessPath, health.ReadinessHandler(a.healthConfig.checks, health.WithLogger(a.logger)))
	}

	r := &routerAdapter{router: a.router, app: a}
	for _, h := range a.handlers {
		h.Routes(r)
	}
}

// wrapHandler converts a HandlerFunc to http.HandlerFunc using the app's error path.
func (a *App) wrapHandler(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := newContext(w, r, a)
		if err := h(c); err != nil {
			a.handleError(c, err)
		}
	}
}

// handleError normalizes err, reports the record and renders the response.
// Only the normalized record leaves this function; the raw error is used
// for status selection and for the custom error handler.
func (a *App) handleError(c Context, err error) {
	reqID, _ := c.Get(RequestIDKey{}).(string)
	in := errorInput(err, reqID)
	rec := a.normalizer(c, in)
	a.reporter.Report(c, errreport.SourceServer, rec)

	if c.Written() {
		return
	}

	if a.errorHandler != nil {
		if herr := a.errorHandler(c, err, rec); herr != nil {
			a.logger.ErrorContext(c, "error handler failed", slog.Any("error", herr))
			if !c.Written() {
				http.Error(c.Response(), rec.Message, in.Status)
			}
		}
		return
	}

	if c.WantsJSON() {
		_ = c.JSON(in.Status, rec)
		return
	}
	if rerr := c.Render(in.Status, a.errorPage(in.Status, rec)); rerr != nil {
		a.logger.ErrorContext(c, "render error page", slog.Any("error", rerr))
		if !c.Written() {
			http.Error(c.Response(), rec.Message, in.Status)
		}
	}
}

// defaultErrorPage renders the status code and the normalized message.
func defaultErrorPage(status int, rec ErrorRecord) Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, "<h1>%d</h1>\n<p>%s</p>\n", status, templ.EscapeString(rec.Message))
		return err
	})
}

// healthConfig holds health check endpoint configuration.
type healthConfig struct {
	checks        health.Checks
	livenessPath  string
	readinessPath string
}

// Default health check paths.
const (
	defaultLivenessPath  = "/health/live"
	defaultReadinessPath = "/health/ready"
)

// HealthOption configures health check endpoints.
type HealthOption func(*healthConfig)

// WithLivenessPath sets a custom liveness endpoint path.
func WithLivenessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.livenessPath = path
		}
	}
}

// WithReadinessPath sets a custom readiness endpoint path.
func WithReadinessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.readinessPath = path
		}
	}
}

// WithReadinessCheck adds a named readiness check.
//
// Example:
//
//	sitekit.WithReadinessCheck("analytics", analytics.UpstreamCheck(nil, analytics.DefaultUpstream))
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return func(c *healthConfig) {
		if c.checks == nil {
			c.checks = make(health.Checks)
		}
		c.checks[name] = fn
	}
}
