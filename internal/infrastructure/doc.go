// Package infrastructure provides the process-level plumbing shared by the
// server: structured logging with trace ids, and OpenTelemetry tracing.
//
// Nothing here is a global. The application builds one Logger and one
// Tracing at startup and passes them down.
package infrastructure
