package internal

// Handler declares routes on a router.
//
// Example:
//
//	type PagesHandler struct {
//	    catalog *messages.Catalog
//	}
//
//	func (h *PagesHandler) Routes(r sitekit.Router) {
//	    r.GET("/", h.home)
//	    r.GET("/about", h.about)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers.
// Returning a non-nil error sends the request down the app's error path.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
// Middleware can swap the request, register page transforms,
// short-circuit processing, or wrap the response.
//
// Example:
//
//	func Secure(next sitekit.HandlerFunc) sitekit.HandlerFunc {
//	    return func(c sitekit.Context) error {
//	        c.SetHeader("X-Frame-Options", "DENY")
//	        return next(c)
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler renders the response for an error that escaped a handler.
// It receives the original error and the normalized record that was reported.
type ErrorHandler func(c Context, err error, rec ErrorRecord) error

// PageTransform rewrites a fully assembled HTML document before it is written.
type PageTransform func(html string) string
