// Package logging builds the slog loggers used across bingelog and houses
// the shared attribute helpers and field-name conventions. Components never
// construct handlers themselves; they receive a *slog.Logger and scope it
// with NewComponentLogger.
package logging
