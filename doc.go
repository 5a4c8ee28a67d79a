// Package sitekit is a small framework for server-rendered, localized web
// applications.
//
// It wires a chi router, an HTML document shell, per-request locale
// negotiation and a data-minimizing error path into one [App]. Handlers stay
// plain Go functions that return errors.
//
// # Quick Start
//
//	res, err := locale.New(locale.WithLocales("en", "de"))
//	if err != nil {
//	    return err
//	}
//
//	app := sitekit.New(
//	    sitekit.WithLogger(log, middlewares.RequestIDExtractor(), middlewares.LocaleExtractor()),
//	    sitekit.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.Recover(),
//	        middlewares.Locale(res),
//	    ),
//	    sitekit.WithHandlers(handlers.NewPages(catalog)),
//	)
//
//	if err := app.Run(":8080", sitekit.Logger(log)); err != nil {
//	    log.Error("server stopped", "error", err)
//	}
//
// # Handlers
//
// Handlers implement the [Handler] interface to declare routes:
//
//	type Pages struct{}
//
//	func (h *Pages) Routes(r sitekit.Router) {
//	    r.Page("/", h.home)
//	    r.GET("/api/presets", h.presets)
//	}
//
//	func (h *Pages) home(c sitekit.Context) (sitekit.Component, error) {
//	    return views.Home(c.Locale()), nil
//	}
//
// Page routes answer GET and HEAD with the component rendered into the
// document shell. Plain routes write their own response.
//
// # Documents
//
// Render places the component into the document shell. The default shell
// carries <html lang="%lang%">, which the locale middleware fills with the
// negotiated locale. Replace it with [WithDocument]; the shell must contain
// %sitekit.head% and %sitekit.body% exactly once.
//
// Middleware can register further document rewrites with Context.TransformPage.
// They apply to HTML produced by Render only, never to JSON or text.
//
// # Errors
//
// Every error that escapes a handler is reduced to an [ErrorRecord] holding
// only a message, reported, and rendered as JSON or as the error page.
// An [HTTPError] keeps its status and message; any other error, recovered
// panics included, is answered with 500 and "Internal Error".
//
//	return sitekit.ErrNotFound("No such preset")
//
// # Shutdown
//
// Run handles SIGINT/SIGTERM and runs shutdown hooks after the server stopped:
//
//	app.Run(":8080", sitekit.ShutdownHook(logger.FlushSentry))
package sitekit
