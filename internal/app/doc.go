// Package app assembles the server: it builds the stores and services,
// registers the controllers with the prefix router, wraps the dispatcher in
// a chi mux with request ids and the Prometheus endpoint, and runs the
// net/http server until it is told to stop.
package app
