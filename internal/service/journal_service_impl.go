package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/giftbox/internal/db"
	"github.com/alexanderramin/giftbox/internal/domain"
	"github.com/alexanderramin/giftbox/internal/repository"
)

// LastPrunedKey records when the journal was last pruned.
const LastPrunedKey = "journal_last_pruned"

type journalService struct {
	events   repository.EventRepo
	settings repository.SettingsRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

// NewJournalService reads and maintains the analytics journal.
func NewJournalService(events repository.EventRepo, settings repository.SettingsRepo, uow db.UnitOfWork, observers ...UseCaseObserver) JournalService {
	return &journalService{
		events:   events,
		settings: settings,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *journalService) Recent(ctx context.Context, f repository.EventFilter) ([]*domain.AnalyticsEvent, error) {
	var out []*domain.AnalyticsEvent
	err := observe(ctx, s.observer, "journal.recent", map[string]any{"name": f.Name, "limit": f.Limit}, func() error {
		var err error
		out, err = s.events.ListRecent(ctx, f)
		return err
	})
	return out, err
}

// Stats tallies events and replays gift_unlocked and dev_set_gift_unlock
// to show which gifts the session reached.
func (s *journalService) Stats(ctx context.Context, sessionID string) (*JournalStats, error) {
	stats := &JournalStats{}
	err := observe(ctx, s.observer, "journal.stats", map[string]any{"session": sessionID}, func() error {
		counts, err := s.events.CountByName(ctx, sessionID)
		if err != nil {
			return err
		}
		stats.ByName = counts
		for _, c := range counts {
			stats.Total += c.Count
		}

		all, err := s.events.ListRecent(ctx, repository.EventFilter{SessionID: sessionID})
		if err != nil {
			return err
		}
		sessions := map[string]struct{}{}
		// oldest first so later overrides win
		for i := len(all) - 1; i >= 0; i-- {
			e := all[i]
			sessions[e.SessionID] = struct{}{}
			applyUnlockEvent(&stats.Unlocked, e)
		}
		stats.Sessions = len(sessions)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func applyUnlockEvent(state *[domain.GiftCount]bool, e *domain.AnalyticsEvent) {
	gift, ok := attrInt(e.Attrs, "gift")
	if !ok {
		return
	}
	g, err := domain.ParseGiftID(gift)
	if err != nil {
		return
	}
	switch e.Name {
	case domain.EventGiftUnlocked:
		state[g-1] = true
	case domain.EventDevSetGiftUnlock:
		value, _ := e.Attrs["value"].(bool)
		if value {
			state[g-1] = true
			return
		}
		for later := g; later <= domain.Gift4; later++ {
			state[later-1] = false
		}
	}
}

func attrInt(attrs map[string]any, key string) (int, bool) {
	switch v := attrs[key].(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	}
	return 0, false
}

// Prune keeps the newest keep events and stamps LastPrunedKey, atomically.
func (s *journalService) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		return 0, fmt.Errorf("keep must be non-negative, got %d", keep)
	}
	var removed int64
	err := observe(ctx, s.observer, "journal.prune", map[string]any{"keep": keep}, func() error {
		return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			n, err := repository.NewSQLiteEventRepo(tx).PruneKeepLatest(ctx, keep)
			if err != nil {
				return err
			}
			if err := repository.NewSQLiteSettingsRepo(tx).Set(ctx, LastPrunedKey, fmt.Sprintf("kept=%d removed=%d", keep, n)); err != nil {
				return err
			}
			removed = n
			return nil
		})
	})
	if err != nil {
		return 0, fmt.Errorf("pruning journal: %w", err)
	}
	return removed, nil
}

func (s *journalService) SessionID(ctx context.Context) (string, error) {
	var id string
	err := observe(ctx, s.observer, "journal.session_id", nil, func() error {
		var err error
		id, err = s.settings.GetOrCreateSessionID(ctx)
		return err
	})
	return id, err
}
