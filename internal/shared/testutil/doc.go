// Package testutil provides shared helpers for tests: an in-memory slog
// handler for asserting on log output.
package testutil
