package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"
)

type contextKey string

const (
	RequestIDKey contextKey = "request_id"
	DocumentKey  contextKey = "document"
)

// StackTraceHandler is a handler that adds stack trace to error records
// and extracts request_id and document from context
type StackTraceHandler struct {
	slog.Handler
}

func (h *StackTraceHandler) Handle(ctx context.Context, r slog.Record) error {
	if ctx != nil {
		if reqID, ok := ctx.Value(RequestIDKey).(string); ok {
			r.AddAttrs(slog.String("request_id", reqID))
		}

		if doc, ok := ctx.Value(DocumentKey).(string); ok {
			r.AddAttrs(slog.String("document", doc))
		}
	}

	if r.Level >= slog.LevelError {
		buf := make([]byte, 4096)
		n := runtime.Stack(buf, false)
		r.AddAttrs(slog.String("stack_trace", string(buf[:n])))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *StackTraceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &StackTraceHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *StackTraceHandler) WithGroup(name string) slog.Handler {
	return &StackTraceHandler{Handler: h.Handler.WithGroup(name)}
}

// WithDocument tags every record logged with ctx with the document being converted.
func WithDocument(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, DocumentKey, name)
}

// InitStructuredLogger initialize structured logger on stderr,
// leaving stdout to the command line status messages.
func InitStructuredLogger(level slog.Leveler) {
	InitStructuredLoggerTo(os.Stderr, level)
}

func InitStructuredLoggerTo(w io.Writer, level slog.Leveler) {
	opts := &slog.HandlerOptions{
		Level: level,
	}

	if level.Level() == slog.LevelDebug {
		opts.AddSource = true
	}

	jsonHandler := slog.NewJSONHandler(w, opts)
	handler := &StackTraceHandler{Handler: jsonHandler}

	slog.SetDefault(slog.New(handler))
}
