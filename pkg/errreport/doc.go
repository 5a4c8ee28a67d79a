// Package errreport reduces uncaught errors to a minimal record.
//
// Whatever the origin (a handler on the server, an exception in the browser),
// an error is described by an [Input] and reduced by a [Normalizer] to a
// [Record] holding only the message. Stack traces, request ids and any other
// detail are dropped on purpose: the Record is the only error data that
// reaches a [Reporter] or a client.
//
// The server variant is wired into the app's error path. The client variant
// backs [ClientHandler], mounted at [ClientPath]:
//
//	r.Mount(errreport.ClientPath, errreport.ClientHandler(errreport.Client(), reporter))
package errreport
