package service

import (
	"context"

	"github.com/alexanderramin/giftbox/internal/domain"
	"github.com/alexanderramin/giftbox/internal/repository"
)

// JournalStats summarizes the local analytics journal.
type JournalStats struct {
	Total    int
	Sessions int
	ByName   []repository.EventCount
	Unlocked [domain.GiftCount]bool
}

type JournalService interface {
	Recent(ctx context.Context, f repository.EventFilter) ([]*domain.AnalyticsEvent, error)
	Stats(ctx context.Context, sessionID string) (*JournalStats, error)
	Prune(ctx context.Context, keep int) (int64, error)
	SessionID(ctx context.Context) (string, error)
}
