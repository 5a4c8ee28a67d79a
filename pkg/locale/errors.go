package locale

import "errors"

var (
	// ErrNoLocales is returned when a resolver is built without locales.
	ErrNoLocales = errors.New("locale: no locales configured")

	// ErrInvalidLocale is returned for a locale that is not a valid BCP 47 tag.
	ErrInvalidLocale = errors.New("locale: invalid locale tag")

	// ErrUnknownBaseLocale is returned when the base locale is not among the locales.
	ErrUnknownBaseLocale = errors.New("locale: base locale is not a configured locale")

	// ErrUnknownStrategy is returned for an unsupported strategy name.
	ErrUnknownStrategy = errors.New("locale: unknown strategy")

	// ErrMalformedRequest is returned when a request cannot be negotiated.
	ErrMalformedRequest = errors.New("locale: malformed request")
)
