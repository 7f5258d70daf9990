// Package logger provides structured logging for the application using
// Go's standard library log/slog package, plus helpers for carrying a
// request-scoped logger in a context.Context.
package logger
