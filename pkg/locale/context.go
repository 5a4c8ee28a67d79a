package locale

import (
	"context"
	"strings"
)

// Placeholder is the token in rendered documents replaced with the negotiated locale.
const Placeholder = "%lang%"

type contextKey struct{}

// WithLocale returns a copy of ctx carrying locale.
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, contextKey{}, locale)
}

// FromContext returns the locale stored in ctx, if any.
func FromContext(ctx context.Context) (string, bool) {
	l, ok := ctx.Value(contextKey{}).(string)
	return l, ok && l != ""
}

// Substitute replaces the first Placeholder in html with locale.
// A document without the placeholder is returned unchanged; later
// occurrences are left in place.
func Substitute(html, locale string) string {
	return strings.Replace(html, Placeholder, locale, 1)
}
