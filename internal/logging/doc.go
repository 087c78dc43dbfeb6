// Package logging assembles structured slog loggers and formatting helpers used
// across takeplan.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so planner code can tag log lines
// with run identifiers. The package also provides a no-op logger for tests and
// wiring code that cannot fail.
//
// Logs go to stderr by default so that reports written to stdout stay clean.
package logging
