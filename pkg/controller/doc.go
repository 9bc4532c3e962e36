// Package controller contains HTTP middlewares and helper handlers used by the API server.
//
// Provided middlewares:
//   - WithCORS: Lets any origin issue GET requests and handles OPTIONS preflight.
//   - WithLogger: Attaches a request-scoped logger and request ID to the context,
//     echoes the ID in the X-Request-Id response header and logs access info.
//
// Provided helpers:
//   - PprofMux: Returns a ServeMux exposing net/http/pprof handlers under PprofPrefix.
package controller
