// Package middlewares provides the request middleware of sitekit applications.
//
// # Locale
//
// Locale negotiates the request locale with a [locale.Resolver], hands the
// rewritten request to the rest of the chain and fills the %lang% placeholder
// of every rendered document with the same locale.
//
//	res, err := locale.New(
//	    locale.WithBaseLocale("en"),
//	    locale.WithLocales("en", "de"),
//	)
//	if err != nil {
//	    return err
//	}
//
//	app := sitekit.New(
//	    sitekit.WithLogger(log, middlewares.LocaleExtractor()),
//	    sitekit.WithMiddleware(
//	        middlewares.Locale(res, middlewares.WithLocaleRedirect()),
//	    ),
//	)
//
// Handlers read the negotiated locale with GetLocale or Context.Locale.
//
// # Request ID
//
// RequestID assigns an ID to each request, reusing X-Request-ID when the
// caller sent a well-formed one (see ValidRequestID). Use RequestIDExtractor
// with WithLogger to get request_id in every log entry.
//
// # Recover
//
// Recover converts panics into a PanicError. The app's error path reports it
// and answers with the generic "Internal Error" message; the value and the
// stack only reach the log.
//
//	app := sitekit.New(
//	    sitekit.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.Recover(),
//	        middlewares.Locale(res),
//	    ),
//	)
package middlewares
