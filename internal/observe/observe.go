package observe

import (
	"context"
	"io"

	"github.com/felixgeelhaar/bolt/v3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("shotsort")

// Observer handles logging and tracing for a run.
type Observer struct {
	log *bolt.Logger
}

// New creates an Observer with console output. If verbose is false,
// only warnings and errors are shown; degradations (failed OCR calls,
// provider fallbacks) log at INFO and surface only in verbose mode.
func New(out io.Writer, verbose bool) *Observer {
	handler := bolt.NewConsoleHandler(out)
	l := bolt.New(handler)

	if !verbose {
		l.SetLevel(bolt.WARN)
	}

	return &Observer{log: l}
}

// NewJSON creates an Observer with JSON output for non-interactive
// runs.
func NewJSON(out io.Writer, verbose bool) *Observer {
	handler := bolt.NewJSONHandler(out)
	l := bolt.New(handler)

	if !verbose {
		l.SetLevel(bolt.WARN)
	}

	return &Observer{log: l}
}

// Log returns the underlying logger.
func (o *Observer) Log() *bolt.Logger {
	return o.log
}

// StartSpan starts an OTel span for a pipeline stage.
func (o *Observer) StartSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name)
}

// Warn logs a degradation: something was skipped or fell back, the run
// continues.
func (o *Observer) Warn(msg string, err error) {
	o.log.Info().Err(err).Msg(msg)
}

// Close flushes any buffered output.
func (o *Observer) Close() error {
	return nil
}
