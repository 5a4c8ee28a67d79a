// Package locale negotiates one locale per HTTP request.
//
// A [Resolver] walks an ordered list of strategies (URL prefix, cookie,
// Accept-Language, base locale) and returns the first supported locale,
// together with a clone of the request that carries the locale in its
// context and, when the URL strategy is on, a path without the locale prefix.
//
//	res, _ := locale.New(locale.WithLocales("en", "de"))
//	err := res.Middleware(r, func(r *http.Request, l string) error {
//	    // r.URL.Path is "/about" for "/de/about", l is "de"
//	    return render(r, l)
//	})
//
// Rendered documents mark the locale position with [Placeholder]; [Substitute]
// fills the first occurrence.
//
// Tag matching for Accept-Language is delegated to golang.org/x/text/language.
package locale
