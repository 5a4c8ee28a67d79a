package locale

import (
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// Result is the outcome of negotiating one request.
type Result struct {
	// Request is a clone of the negotiated request carrying Locale in its
	// context, with the locale prefix removed from its path when the url
	// strategy is enabled.
	Request *http.Request
	// Locale is the negotiated locale tag.
	Locale string
}

// cookieMaxAge keeps an explicit language choice for a year.
const cookieMaxAge = 365 * 24 * 60 * 60

// Next continues the response pipeline with the rewritten request and its locale.
type Next func(r *http.Request, locale string) error

// Resolver picks one locale per request from a fixed set.
// It is safe for concurrent use; nothing changes after New.
type Resolver struct {
	matcher    language.Matcher
	index      map[string]string // lowercased tag -> canonical tag
	base       string
	cookieName string
	locales    []string
	strategies []Strategy
	urlEnabled bool
}

// New builds a Resolver.
//
// Example:
//
//	res, err := locale.New(
//	    locale.WithBaseLocale("en"),
//	    locale.WithLocales("en", "de"),
//	)
func New(opts ...Option) (*Resolver, error) {
	cfg := &config{
		baseLocale: "en",
		cookieName: DefaultCookieName,
		strategies: DefaultStrategies,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.locales == nil {
		cfg.locales = []string{cfg.baseLocale}
	}
	if len(cfg.locales) == 0 {
		return nil, ErrNoLocales
	}

	res := &Resolver{
		index:      make(map[string]string, len(cfg.locales)),
		cookieName: cfg.cookieName,
		strategies: cfg.strategies,
	}

	tags := make([]language.Tag, 0, len(cfg.locales))
	for _, l := range cfg.locales {
		tag, err := language.Parse(strings.TrimSpace(l))
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidLocale, l)
		}
		canonical := tag.String()
		key := strings.ToLower(canonical)
		if _, dup := res.index[key]; dup {
			continue
		}
		res.index[key] = canonical
		res.locales = append(res.locales, canonical)
		tags = append(tags, tag)
	}

	base, ok := res.lookup(cfg.baseLocale)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBaseLocale, cfg.baseLocale)
	}
	res.base = base

	for _, s := range res.strategies {
		if !s.valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
		}
		if s == StrategyURL {
			res.urlEnabled = true
		}
	}

	res.matcher = language.NewMatcher(tags)
	return res, nil
}

// Locales returns the supported locales in canonical form.
func (res *Resolver) Locales() []string {
	return slices.Clone(res.locales)
}

// BaseLocale returns the fallback locale.
func (res *Resolver) BaseLocale() string {
	return res.base
}

// IsSupported reports whether l is a configured locale and returns its canonical form.
func (res *Resolver) IsSupported(l string) (string, bool) {
	return res.lookup(l)
}

// Negotiate resolves the locale of r and returns it with the rewritten request.
// A nil request or a request without URL yields ErrMalformedRequest.
func (res *Resolver) Negotiate(r *http.Request) (Result, error) {
	if r == nil || r.URL == nil {
		return Result{}, ErrMalformedRequest
	}

	l := res.resolve(r)

	out := r.Clone(WithLocale(r.Context(), l))
	if res.urlEnabled {
		out.URL.Path = res.Delocalize(r.URL.Path)
		out.URL.RawPath = ""
	}

	return Result{Request: out, Locale: l}, nil
}

// Middleware negotiates r and hands the rewritten request and its locale to next.
// Negotiation errors are returned as is and next is not called.
func (res *Resolver) Middleware(r *http.Request, next Next) error {
	result, err := res.Negotiate(r)
	if err != nil {
		return err
	}
	return next(result.Request, result.Locale)
}

// Localize returns path as seen by locale: unprefixed for the base locale,
// "/<locale>/..." for the others.
func (res *Resolver) Localize(path, locale string) string {
	p := res.Delocalize(path)
	l, ok := res.lookup(locale)
	if !ok || l == res.base {
		return p
	}
	if p == "/" {
		return "/" + l
	}
	return "/" + l + p
}

// Delocalize strips a leading locale segment from path.
func (res *Resolver) Delocalize(path string) string {
	if path == "" {
		return "/"
	}
	trimmed := strings.TrimPrefix(path, "/")
	seg, rest, hasRest := strings.Cut(trimmed, "/")
	if _, ok := res.lookup(seg); !ok {
		return path
	}
	if !hasRest {
		return "/"
	}
	return "/" + rest
}

// Redirect reports where a document navigation should go so its URL carries locale.
// Only document requests (Sec-Fetch-Dest: document) are redirected and only
// when the url strategy is enabled.
func (res *Resolver) Redirect(r *http.Request, locale string) (string, bool) {
	if !res.urlEnabled || r == nil || r.URL == nil {
		return "", false
	}
	if r.Header.Get("Sec-Fetch-Dest") != "document" {
		return "", false
	}

	path := r.URL.Path
	if path == "" {
		path = "/"
	}
	target := res.Localize(path, locale)
	if target == path {
		return "", false
	}
	return (&url.URL{Path: target, RawQuery: r.URL.RawQuery}).String(), true
}

// Cookie returns the cookie that pins l for the cookie strategy.
// It reports false for locales that are not configured.
func (res *Resolver) Cookie(l string) (*http.Cookie, bool) {
	canonical, ok := res.lookup(l)
	if !ok {
		return nil, false
	}
	return &http.Cookie{
		Name:     res.cookieName,
		Value:    canonical,
		Path:     "/",
		MaxAge:   cookieMaxAge,
		SameSite: http.SameSiteLaxMode,
	}, true
}

// resolve walks the strategies in order; the base locale is the final fallback.
func (res *Resolver) resolve(r *http.Request) string {
	for _, s := range res.strategies {
		var (
			l  string
			ok bool
		)
		switch s {
		case StrategyURL:
			l, ok = res.fromPath(r.URL.Path)
		case StrategyCookie:
			l, ok = res.fromCookie(r)
		case StrategyPreferredLanguage:
			l, ok = res.fromAcceptLanguage(r.Header.Get("Accept-Language"))
		case StrategyBaseLocale:
			l, ok = res.base, true
		}
		if ok {
			return l
		}
	}
	return res.base
}

func (res *Resolver) fromPath(path string) (string, bool) {
	seg, _, _ := strings.Cut(strings.TrimPrefix(path, "/"), "/")
	return res.lookup(seg)
}

func (res *Resolver) fromCookie(r *http.Request) (string, bool) {
	ck, err := r.Cookie(res.cookieName)
	if err != nil {
		return "", false
	}
	return res.lookup(ck.Value)
}

func (res *Resolver) fromAcceptLanguage(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return "", false
	}
	_, idx, conf := res.matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(res.locales) {
		return "", false
	}
	return res.locales[idx], true
}

func (res *Resolver) lookup(l string) (string, bool) {
	l = strings.TrimSpace(l)
	if l == "" {
		return "", false
	}
	canonical, ok := res.index[strings.ToLower(l)]
	return canonical, ok
}
