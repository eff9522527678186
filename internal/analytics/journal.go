package analytics

import (
	"context"
	"fmt"

	"github.com/alexanderramin/giftbox/internal/domain"
)

// EventWriter stores events. Implemented by repository.SQLiteEventRepo.
type EventWriter interface {
	Insert(ctx context.Context, e *domain.AnalyticsEvent) error
}

// JournalSink appends events to a local store.
type JournalSink struct {
	repo EventWriter
}

// NewJournalSink wraps repo.
func NewJournalSink(repo EventWriter) *JournalSink {
	return &JournalSink{repo: repo}
}

func (s *JournalSink) Name() string { return "journal" }

func (s *JournalSink) Write(ctx context.Context, event domain.AnalyticsEvent) error {
	if err := s.repo.Insert(ctx, &event); err != nil {
		return fmt.Errorf("journaling event: %w", err)
	}
	return nil
}
