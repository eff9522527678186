package service

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// UseCaseEvent is one timed journal operation.
type UseCaseEvent struct {
	Name     string
	Duration time.Duration
	Err      error
	Fields   map[string]any
}

// Success reports whether the operation returned no error.
func (e UseCaseEvent) Success() bool { return e.Err == nil }

// UseCaseObserver receives use-case execution events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger *slog.Logger
}

// NewLogUseCaseObserver writes journal use-case events to w as slog text.
func NewLogUseCaseObserver(w io.Writer) UseCaseObserver {
	if w == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	attrs := []any{"op", event.Name, "duration_ms", event.Duration.Milliseconds()}
	for k, v := range event.Fields {
		attrs = append(attrs, k, v)
	}
	if !event.Success() {
		o.logger.WarnContext(ctx, "journal_op_failed", append(attrs, "error", event.Err.Error())...)
		return
	}
	o.logger.InfoContext(ctx, "journal_op", attrs...)
}

// observe times fn and reports it to obs.
func observe(ctx context.Context, obs UseCaseObserver, name string, fields map[string]any, fn func() error) error {
	start := time.Now()
	err := fn()
	obs.ObserveUseCase(ctx, UseCaseEvent{Name: name, Duration: time.Since(start), Err: err, Fields: fields})
	return err
}

// observers fans one event out to several observers.
type observers []UseCaseObserver

func (obs observers) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	for _, o := range obs {
		o.ObserveUseCase(ctx, event)
	}
}

// useCaseObserverOrNoop combines the non-nil observers.
func useCaseObserverOrNoop(list []UseCaseObserver) UseCaseObserver {
	var live observers
	for _, o := range list {
		if o != nil {
			live = append(live, o)
		}
	}
	switch len(live) {
	case 0:
		return NoopUseCaseObserver{}
	case 1:
		return live[0]
	}
	return live
}
