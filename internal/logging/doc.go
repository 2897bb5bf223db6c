// Package logging assembles the structured slog loggers used across chorale.
//
// It owns the console and JSON handlers, centralizes level plumbing, and
// exposes a no-op logger for tests and wiring code that cannot fail. Prefer
// these constructors over hand-rolled slog setup so every component emits
// lines with the same shape.
package logging
