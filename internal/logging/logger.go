// Package logging defines the structured logger the client and the note
// authority share. Both sides log through this interface so components can
// be tested with a no-op or buffer-backed implementation.
package logging

import "context"

// Logger is a context-aware, structured logger. The variadic args are
// key-value pairs:
//
//	log.Info(ctx, "authority listening", "addr", addr)
type Logger interface {
	// Debug logs fine-grained diagnostics, usually discarded in production.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs unusual but non-fatal conditions, like a snapshot that
	// could not be restored.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given
	// key-value pairs.
	With(args ...any) Logger
}
