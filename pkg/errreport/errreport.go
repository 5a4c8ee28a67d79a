package errreport

import (
	"context"
	"log/slog"
)

// Record is the only error shape that reaches a reporting sink or a client.
type Record struct {
	Message string `json:"message"`
}

// Input describes one uncaught error as the framework sees it.
// Every field except Message is dropped by normalization.
type Input struct {
	Err       error
	Extra     map[string]any
	Message   string
	RequestID string
	Stack     []byte
	Status    int
}

// Normalizer reduces an error description to a Record.
// Implementations must not panic.
type Normalizer func(ctx context.Context, in Input) Record

// Normalize keeps the message and nothing else.
func Normalize(in Input) Record {
	return Record{Message: in.Message}
}

// Server returns the normalizer for errors escaping server-side handlers.
func Server() Normalizer {
	return func(_ context.Context, in Input) Record {
		return Normalize(in)
	}
}

// Client returns the normalizer for errors reported by the browser.
func Client() Normalizer {
	return func(_ context.Context, in Input) Record {
		return Normalize(in)
	}
}

// Source tells a Reporter on which side the error happened.
type Source string

const (
	SourceServer Source = "server"
	SourceClient Source = "client"
)

// Reporter receives normalized records.
type Reporter interface {
	Report(ctx context.Context, source Source, rec Record)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(ctx context.Context, source Source, rec Record)

func (f ReporterFunc) Report(ctx context.Context, source Source, rec Record) {
	f(ctx, source, rec)
}

// LogReporter writes records to a slog.Logger at warn level, which the
// Sentry-enabled logger forwards as searchable logs.
type LogReporter struct {
	logger *slog.Logger
}

// NewLogReporter creates a LogReporter. A nil logger discards records.
func NewLogReporter(l *slog.Logger) *LogReporter {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	return &LogReporter{logger: l}
}

func (r *LogReporter) Report(ctx context.Context, source Source, rec Record) {
	r.logger.WarnContext(ctx, "uncaught error",
		slog.String("source", string(source)),
		slog.String("message", rec.Message),
	)
}
