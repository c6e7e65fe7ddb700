// Package logging assembles the structured slog loggers used by imgbatch.
//
// It owns the console and JSON handlers, parses level names, and defines the
// standard field keys (component, run_id, entry, position). A no-op logger is provided for tests and
// for wiring code that cannot fail.
package logging
