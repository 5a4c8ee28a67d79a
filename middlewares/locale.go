package middlewares

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/sitekit/internal"
	"github.com/dmitrymomot/sitekit/pkg/locale"
	"github.com/dmitrymomot/sitekit/pkg/logger"
)

// LocaleConfig configures the Locale middleware.
type LocaleConfig struct {
	Redirect     bool // Redirect document navigations to their localized URL
	RedirectCode int  // Status used for redirects (default: 307)
}

// LocaleOption configures LocaleConfig.
type LocaleOption func(*LocaleConfig)

// WithLocaleRedirect enables redirecting document navigations to the URL of
// the negotiated locale, e.g. "/about" to "/de/about" for a German browser.
// Requires the url strategy.
func WithLocaleRedirect() LocaleOption {
	return func(cfg *LocaleConfig) {
		cfg.Redirect = true
	}
}

// WithLocaleRedirectCode sets the redirect status code.
func WithLocaleRedirectCode(code int) LocaleOption {
	return func(cfg *LocaleConfig) {
		if code >= 300 && code < 400 {
			cfg.RedirectCode = code
		}
	}
}

// Locale returns middleware that negotiates the request locale with res.
//
// Downstream handlers see the rewritten request: it carries the locale in its
// context and, with the url strategy, has the locale prefix removed from its path.
// Every HTML document rendered for the request gets its %lang% placeholder
// replaced with the same locale. Negotiation errors go to the app's error path;
// the error page then carries the base locale.
func Locale(res *locale.Resolver, opts ...LocaleOption) internal.Middleware {
	cfg := &LocaleConfig{
		RedirectCode: http.StatusTemporaryRedirect,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			original := c.Request()
			negotiated := false
			err := res.Middleware(original, func(r *http.Request, tag string) error {
				negotiated = true
				if cfg.Redirect {
					if target, ok := res.Redirect(original, tag); ok {
						return c.Redirect(cfg.RedirectCode, target)
					}
				}

				c.SetRequest(r)
				c.TransformPage(func(html string) string {
					return locale.Substitute(html, tag)
				})
				return next(c)
			})
			if err != nil && !negotiated {
				base := res.BaseLocale()
				c.TransformPage(func(html string) string {
					return locale.Substitute(html, base)
				})
			}
			return err
		}
	}
}

// GetLocale returns the locale negotiated for the request.
// Returns an empty string if the Locale middleware did not run.
func GetLocale(c internal.Context) string {
	l, _ := locale.FromContext(c.Context())
	return l
}

// LocaleExtractor returns a ContextExtractor for use with WithLogger.
// Adds "locale" to log entries of localized requests.
func LocaleExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if l, ok := locale.FromContext(ctx); ok {
			return slog.String("locale", l), true
		}
		return slog.Attr{}, false
	}
}
