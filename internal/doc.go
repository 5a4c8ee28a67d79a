// Package internal provides the core types and implementation of sitekit.
//
// This package is internal and should not be used directly. Import
// "github.com/dmitrymomot/sitekit" instead, which re-exports the public API.
//
// # Core Types
//
//   - App: routing, middleware, the document shell, the error path and graceful shutdown
//   - Context: request/response access, rendering and page transforms
//   - Router: interface handlers use to declare routes
//   - Handler: types that declare routes on a router
//   - Middleware: wraps handlers; may swap the request or register page transforms
//
// # Request flow
//
// Middleware runs through chi. Each layer gets its own Context, but the
// request it leaves behind (SetRequest) is what the next layer receives, and
// the page transforms registered on the way are shared by the whole chain.
// Render assembles the document from the shell, the head components and the
// body, then applies the transforms in registration order:
//
//	<html lang="%lang%">  --Locale middleware-->  <html lang="de">
//
// # Error path
//
// An error returned by a handler or middleware is reduced to an ErrorRecord by
// the configured normalizer and reported before anything is rendered. Only the
// record reaches the client: an HTTPError keeps its status and message, any
// other error becomes 500 "Internal Error".
package internal
