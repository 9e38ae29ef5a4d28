// Package logging constructs the application's slog loggers and provides
// typed attribute helpers so call sites stay terse and consistent.
//
// Two output formats are supported: a compact console format for interactive
// use and JSON for machine consumption. Construction goes through Options or
// NewFromConfig; components attach themselves with NewComponentLogger.
package logging
