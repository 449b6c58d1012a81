// Package api defines the shared wire types and the error taxonomy for the
// frage client library.
//
// Every failure surfaced by frage is an [*Error] carrying one of four kinds:
//
//   - [ErrorKindConfig]: the client could not be constructed (e.g. missing
//     API key).
//   - [ErrorKindTransport]: the HTTP request failed at the network level
//     (connect, TLS, timeout, dropped stream).
//   - [ErrorKindDecode]: the backend answered 2xx but the body did not match
//     the expected response shape.
//   - [ErrorKindAPI]: the backend explicitly reported an error in its
//     response body.
//
// The package has zero external dependencies (Go standard library only) and
// performs no I/O beyond consuming an *http.Response body handed to
// [ErrorFromResponse].
package api
