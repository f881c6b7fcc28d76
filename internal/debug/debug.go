// Package debug gates the client's slog output behind a debug switch
// carried in the context.
package debug

import (
	"context"
	"io"
	"log/slog"
	"os"
)

type ctxKey struct{}

// WithDebug returns a context with the debug flag set.
func WithDebug(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, ctxKey{}, enabled)
}

// IsEnabled reports whether the context carries an enabled debug flag.
func IsEnabled(ctx context.Context) bool {
	enabled, _ := ctx.Value(ctxKey{}).(bool)
	return enabled
}

// Log emits a debug record when the context has debugging enabled.
func Log(ctx context.Context, msg string, args ...any) {
	if IsEnabled(ctx) {
		slog.DebugContext(ctx, msg, args...)
	}
}

// SetupLogger points the default slog logger at stderr, at debug level
// when enabled and warn level otherwise.
func SetupLogger(debugEnabled bool) {
	slog.SetDefault(slog.New(NewHandler(os.Stderr, debugEnabled)))
}

// NewHandler builds the text handler SetupLogger installs. Split out
// so tests can capture the output.
func NewHandler(w io.Writer, debugEnabled bool) slog.Handler {
	level := slog.LevelWarn
	if debugEnabled {
		level = slog.LevelDebug
	}
	return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
}
