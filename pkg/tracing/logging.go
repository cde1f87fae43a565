package tracing

import (
	"context"
	"log/slog"
	"time"
)

var (
	_ Tracer = LoggingTracer{}
	_ Span   = (*loggingSpan)(nil)
	_ Tracer = NopTracer{}
)

// Tracer starts spans.
type Tracer interface {
	StartSpan(operationName string) Span
}

// Span is a timed operation. Finish must be called exactly once.
type Span interface {
	SetBaggageItem(key string, value any)
	Finish()
}

// LoggingTracer writes finished spans to a [slog.Logger] at debug level.
type LoggingTracer struct {
	logger *slog.Logger
}

func NewLoggingTracer(logger *slog.Logger) *LoggingTracer {
	return &LoggingTracer{
		logger: logger,
	}
}

//nolint:ireturn
func (l LoggingTracer) StartSpan(operationName string) Span {
	logger := l.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &loggingSpan{
		logger:        logger,
		operationName: operationName,
		start:         time.Now(),
	}
}

type loggingSpan struct {
	start         time.Time
	logger        *slog.Logger
	operationName string
	baggage       []any
}

func (s *loggingSpan) Finish() {
	attrs := make([]any, 0, len(s.baggage)+4)
	attrs = append(attrs, s.baggage...)
	attrs = append(attrs, "operation_name", s.operationName, "time_ms", time.Since(s.start).Seconds()*1e3)
	s.logger.Log(context.Background(), slog.LevelDebug, "trace", attrs...)
}

func (s *loggingSpan) SetBaggageItem(key string, value any) {
	s.baggage = append(s.baggage, key, value)
}

// NopTracer discards spans.
type NopTracer struct{}

//nolint:ireturn
func (NopTracer) StartSpan(string) Span { return nopSpan{} }

type nopSpan struct{}

func (nopSpan) SetBaggageItem(string, any) {}

func (nopSpan) Finish() {}
