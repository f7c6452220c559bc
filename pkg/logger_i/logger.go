package logger_i

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/akolanti/ClaimAPI/internal/config"
)

type Logger struct {
	inner *slog.Logger
}

func Init(isProd bool) {
	InitWithWriter(os.Stdout, isProd)
}

// InitWithWriter swaps the default handler. The CLI logs to stderr so stdout stays JSON.
func InitWithWriter(w io.Writer, isProd bool) {
	options := &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: true,
	}

	var handler slog.Handler
	if isProd {
		options.Level = config.LOG_LEVEL_PROD
		handler = slog.NewJSONHandler(w, options)
	} else {
		handler = slog.NewTextHandler(w, options)
	}
	slog.SetDefault(slog.New(handler))
}

func NewLogger(section string) *Logger {
	return &Logger{
		inner: slog.Default().With("component", section),
	}
}

// FromContext tags the logger with the trace id carried by ctx, if any.
func (l *Logger) FromContext(ctx context.Context) *Logger {
	if trace, ok := ctx.Value(config.TRACE_ID_KEY).(string); ok && trace != "" {
		return l.With("traceId", trace)
	}
	return l
}

func (l *Logger) Info(msg string, args ...any) {
	l.logWithSource(slog.LevelInfo, msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.logWithSource(slog.LevelError, msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.logWithSource(slog.LevelWarn, msg, args...)
}

func (l *Logger) Debug(msg string, args ...any) {
	l.logWithSource(slog.LevelDebug, msg, args...)
}

// logWithSource reports the caller of Info/Error/... as the source, not this file.
func (l *Logger) logWithSource(level slog.Level, msg string, args ...any) {
	ctx := context.Background()
	if !l.inner.Enabled(ctx, level) {
		return
	}
	var pcs [1]uintptr
	// skip runtime.Callers, logWithSource and the level wrapper
	runtime.Callers(3, pcs[:])
	record := slog.NewRecord(time.Now(), level, msg, pcs[0])
	record.Add(args...)
	_ = l.inner.Handler().Handle(ctx, record)
}

func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		inner: l.inner.With(args...),
	}
}
