// Package logging builds the structured slog loggers used across mealmate.
//
// It owns the console/JSON handler choice, level parsing, and output routing
// (stderr, log files, or both), and exposes context helpers so every request
// issued on behalf of a controller action carries the same correlation id.
// NewNop returns a discarding logger for tests and optional wiring.
package logging
