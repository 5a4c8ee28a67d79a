package locale

// Strategy names a source the resolver consults for the request locale.
type Strategy string

const (
	// StrategyURL reads the locale from the first path segment ("/de/about").
	StrategyURL Strategy = "url"
	// StrategyCookie reads the locale from the locale cookie.
	StrategyCookie Strategy = "cookie"
	// StrategyPreferredLanguage matches the Accept-Language header.
	StrategyPreferredLanguage Strategy = "preferredLanguage"
	// StrategyBaseLocale always yields the base locale.
	StrategyBaseLocale Strategy = "baseLocale"
)

// DefaultCookieName is the cookie consulted by StrategyCookie.
const DefaultCookieName = "SITEKIT_LOCALE"

// DefaultStrategies is the order used when none is configured.
var DefaultStrategies = []Strategy{
	StrategyURL,
	StrategyCookie,
	StrategyPreferredLanguage,
	StrategyBaseLocale,
}

func (s Strategy) valid() bool {
	switch s {
	case StrategyURL, StrategyCookie, StrategyPreferredLanguage, StrategyBaseLocale:
		return true
	}
	return false
}

type config struct {
	baseLocale string
	cookieName string
	locales    []string
	strategies []Strategy
}

// Option configures a Resolver.
type Option func(*config)

// WithBaseLocale sets the fallback locale. Defaults to "en".
func WithBaseLocale(l string) Option {
	return func(c *config) {
		if l != "" {
			c.baseLocale = l
		}
	}
}

// WithLocales sets the supported locales.
// The base locale must be one of them.
func WithLocales(locales ...string) Option {
	return func(c *config) {
		c.locales = append(make([]string, 0, len(locales)), locales...)
	}
}

// WithStrategies sets the strategy order.
func WithStrategies(strategies ...Strategy) Option {
	return func(c *config) {
		if len(strategies) > 0 {
			c.strategies = append([]Strategy(nil), strategies...)
		}
	}
}

// WithCookieName sets the cookie consulted by StrategyCookie.
func WithCookieName(name string) Option {
	return func(c *config) {
		if name != "" {
			c.cookieName = name
		}
	}
}
