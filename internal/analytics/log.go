package analytics

import (
	"context"
	"io"
	"log/slog"

	"github.com/alexanderramin/giftbox/internal/domain"
)

// LogSink writes events as structured log lines.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink writes to w with a text handler.
func NewLogSink(w io.Writer) *LogSink {
	return &LogSink{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (s *LogSink) Name() string { return "log" }

func (s *LogSink) Write(ctx context.Context, event domain.AnalyticsEvent) error {
	attrs := make([]any, 0, 6+len(event.Attrs)*2)
	attrs = append(attrs,
		"event", event.Name,
		"session_id", event.SessionID,
		"event_id", event.ID,
	)
	for k, v := range event.Attrs {
		attrs = append(attrs, k, v)
	}
	s.logger.InfoContext(ctx, "analytics_event", attrs...)
	return nil
}
