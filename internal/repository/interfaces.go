package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/giftbox/internal/domain"
)

// ErrNotFound is wrapped by lookups that match no row.
var ErrNotFound = errors.New("not found")

// EventFilter narrows a journal listing. Zero values mean "any".
type EventFilter struct {
	Name      string
	SessionID string
	Since     time.Time
	Limit     int
}

// EventCount is one row of the per-name tally.
type EventCount struct {
	Name  string
	Count int
	Last  time.Time
}

type EventRepo interface {
	Insert(ctx context.Context, e *domain.AnalyticsEvent) error
	ListRecent(ctx context.Context, f EventFilter) ([]*domain.AnalyticsEvent, error)
	CountByName(ctx context.Context, sessionID string) ([]EventCount, error)
	Count(ctx context.Context) (int, error)
	PruneKeepLatest(ctx context.Context, keep int) (int64, error)
}

type SettingsRepo interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	GetOrCreateSessionID(ctx context.Context) (string, error)
}
