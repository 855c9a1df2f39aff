// Package logging assembles structured slog loggers and formatting helpers used
// across stationcat commands.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so import runs can tag every log
// line with the run's correlation ID. The package also provides a no-op logger
// for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so extraction warnings
// carry the same event_type/error_hint/impact shape everywhere.
package logging
