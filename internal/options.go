package internal

import (
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/sitekit/pkg/errreport"
	"github.com/dmitrymomot/sitekit/pkg/logger"
)

// Option configures the application.
type Option func(*App)

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithHandlers registers handlers that declare routes.
func WithHandlers(h ...Handler) Option {
	return func(a *App) {
		a.handlers = append(a.handlers, h...)
	}
}

// WithMount attaches an http.Handler at the given pattern.
// Global middleware applies to mounted handlers as well.
//
// Example:
//
//	sitekit.WithMount(analytics.RelayPath, analytics.Relay())
func WithMount(pattern string, h http.Handler) Option {
	return func(a *App) {
		if pattern != "" && h != nil {
			a.mounts = append(a.mounts, mount{handler: h, pattern: pattern})
		}
	}
}

// WithStaticFiles mounts a static file handler at the given pattern.
// Directory listings are disabled.
//
// Example:
//
//	//go:embed static
//	var assets embed.FS
//
//	sitekit.New(
//	    sitekit.WithStaticFiles("/_app/static/", assets, "static"),
//	)
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return func(a *App) {
		subFS, err := fs.Sub(fsys, subDir)
		if err != nil {
			panic(err)
		}

		fileServer := http.StripPrefix(strings.TrimSuffix(pattern, "/"), http.FileServerFS(subFS))

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/") {
				http.NotFound(w, r)
				return
			}

			w.Header().Set("Cache-Control", "public, max-age=3600")
			w.Header().Set("X-Content-Type-Options", "nosniff")

			fileServer.ServeHTTP(w, r)
		})

		a.mounts = append(a.mounts, mount{handler: handler, pattern: pattern})
	}
}

// WithDocument replaces the default HTML document shell.
// The shell must contain %sitekit.head% and %sitekit.body% exactly once;
// it panics otherwise, since a broken shell is a programming error.
func WithDocument(src string) Option {
	return func(a *App) {
		a.document = MustParseDocument(src)
	}
}

// WithHead adds components rendered into the document head of every page.
func WithHead(components ...Component) Option {
	return func(a *App) {
		for _, c := range components {
			if c != nil {
				a.head = append(a.head, c)
			}
		}
	}
}

// WithErrorHandler sets a custom error handler.
// It runs after the error has been normalized and reported.
//
// Example:
//
//	sitekit.WithErrorHandler(func(c sitekit.Context, err error, rec sitekit.ErrorRecord) error {
//	    return c.JSON(http.StatusInternalServerError, rec)
//	})
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		a.errorHandler = h
	}
}

// WithErrorPage sets the component used by the default error handler for HTML clients.
func WithErrorPage(p ErrorPage) Option {
	return func(a *App) {
		if p != nil {
			a.errorPage = p
		}
	}
}

// WithErrorNormalizer replaces the server-side error normalizer.
func WithErrorNormalizer(n errreport.Normalizer) Option {
	return func(a *App) {
		if n != nil {
			a.normalizer = n
		}
	}
}

// WithErrorReporter sets the sink receiving normalized error records.
// Defaults to a LogReporter on the app logger.
func WithErrorReporter(r errreport.Reporter) Option {
	return func(a *App) {
		if r != nil {
			a.reporter = r
		}
	}
}

// WithNotFoundHandler sets a custom 404 handler.
func WithNotFoundHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.notFoundHandler = h
	}
}

// WithMethodNotAllowedHandler sets a custom 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.methodNotAllowedHandler = h
	}
}

// WithHealthChecks enables health check endpoints with optional configuration.
// Liveness (/health/live) always returns OK while the process runs.
// Readiness (/health/ready) runs all configured checks.
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			livenessPath:  defaultLivenessPath,
			readinessPath: defaultReadinessPath,
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.healthConfig = cfg
	}
}

// WithLogger sets the application logger.
// Extractors pull request-scoped values (request_id, locale) into every entry.
//
// Example:
//
//	sitekit.WithLogger(log, middlewares.RequestIDExtractor(), middlewares.LocaleExtractor())
func WithLogger(l *slog.Logger, extractors ...logger.ContextExtractor) Option {
	return func(a *App) {
		if l == nil {
			return
		}
		if len(extractors) > 0 {
			l = slog.New(logger.NewLogHandlerDecorator(l.Handler(), extractors...))
		}
		a.logger = l
	}
}
