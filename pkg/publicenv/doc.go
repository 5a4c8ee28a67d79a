// Package publicenv moves public configuration from the server to the browser.
//
// The server collects PUBLIC_* variables with [FromEnviron] and renders them
// into the document head with [Script]. Code compiled for the browser
// (GOOS=js) reads them back with [Browser]. Deployments that never render the
// script simply get [ErrUnavailable].
package publicenv
