// Package logger provides the structured, levelled logger built on log/slog.
//
// Handlers attach a per-request logger to the context via InjectLogger, and
// service code picks it up with WithCtx:
//
//	log := logger.WithCtx(ctx)
//	log.Info("product added", "barcode", barcode)
//	// → time=... level=INFO msg="product added" request_id=... barcode=111
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/shashiranjanraj/inventory/config"
)

var L *slog.Logger

func init() {
	L = New(os.Stderr, config.AppEnv())
	slog.SetDefault(L)
}

// New builds a logger for env: JSON at info level in production, text at
// debug level everywhere else. CLI output goes to stdout, so logs default to
// stderr.
func New(w io.Writer, env string) *slog.Logger {
	switch env {
	case "production", "prod":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

// SetOutput replaces the base logger. Used by the CLI --quiet flag and tests.
func SetOutput(w io.Writer, env string) {
	L = New(w, env)
	slog.SetDefault(L)
}

type ctxKey struct{}

// WithCtx returns the logger stored in ctx, or the base logger.
func WithCtx(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return L
	}
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores log in ctx. Called by the request logging middleware.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

func Debug(msg string, args ...any) { L.Debug(msg, args...) }
func Info(msg string, args ...any)  { L.Info(msg, args...) }
func Warn(msg string, args ...any)  { L.Warn(msg, args...) }
func Error(msg string, args ...any) { L.Error(msg, args...) }
