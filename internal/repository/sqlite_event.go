package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/giftbox/internal/db"
	"github.com/alexanderramin/giftbox/internal/domain"
	"github.com/google/uuid"
)

// SQLiteEventRepo implements EventRepo on the analytics_events table.
type SQLiteEventRepo struct {
	db db.DBTX
}

// NewSQLiteEventRepo creates a new SQLiteEventRepo.
func NewSQLiteEventRepo(conn db.DBTX) *SQLiteEventRepo {
	return &SQLiteEventRepo{db: conn}
}

// Insert appends e to the journal. A missing ID or timestamp is filled in.
func (r *SQLiteEventRepo) Insert(ctx context.Context, e *domain.AnalyticsEvent) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.RecordedAt.IsZero() {
		e.RecordedAt = time.Now().UTC()
	}
	attrs, err := marshalAttrs(e.Attrs)
	if err != nil {
		return fmt.Errorf("inserting analytics event %s: %w", e.Name, err)
	}

	query := `INSERT INTO analytics_events (id, session_id, name, attrs, recorded_at, seq)
		VALUES (?, ?, ?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM analytics_events))`
	_, err = r.db.ExecContext(ctx, query,
		e.ID,
		e.SessionID,
		e.Name,
		attrs,
		formatTime(e.RecordedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting analytics event: %w", err)
	}
	return nil
}

// ListRecent returns events newest first.
func (r *SQLiteEventRepo) ListRecent(ctx context.Context, f EventFilter) ([]*domain.AnalyticsEvent, error) {
	var (
		where []string
		args  []any
	)
	if f.Name != "" {
		where = append(where, "name = ?")
		args = append(args, f.Name)
	}
	if f.SessionID != "" {
		where = append(where, "session_id = ?")
		args = append(args, f.SessionID)
	}
	if !f.Since.IsZero() {
		where = append(where, "recorded_at >= ?")
		args = append(args, formatTime(f.Since))
	}

	query := `SELECT id, session_id, name, attrs, recorded_at FROM analytics_events`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY seq DESC"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing analytics events: %w", err)
	}
	defer rows.Close()
	return r.scanEvents(rows)
}

// CountByName tallies events per name, most frequent first. An empty
// sessionID counts every session.
func (r *SQLiteEventRepo) CountByName(ctx context.Context, sessionID string) ([]EventCount, error) {
	query := `SELECT name, COUNT(*), MAX(recorded_at) FROM analytics_events`
	var args []any
	if sessionID != "" {
		query += ` WHERE session_id = ?`
		args = append(args, sessionID)
	}
	query += ` GROUP BY name ORDER BY COUNT(*) DESC, name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("counting analytics events: %w", err)
	}
	defer rows.Close()

	var out []EventCount
	for rows.Next() {
		var c EventCount
		var last string
		if err := rows.Scan(&c.Name, &c.Count, &last); err != nil {
			return nil, fmt.Errorf("scanning event count: %w", err)
		}
		if c.Last, err = parseTime(last); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Count returns the journal size.
func (r *SQLiteEventRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM analytics_events`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting analytics events: %w", err)
	}
	return n, nil
}

// PruneKeepLatest deletes everything but the newest keep events.
func (r *SQLiteEventRepo) PruneKeepLatest(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	query := `DELETE FROM analytics_events WHERE id NOT IN (
		SELECT id FROM analytics_events ORDER BY seq DESC LIMIT ?)`
	res, err := r.db.ExecContext(ctx, query, keep)
	if err != nil {
		return 0, fmt.Errorf("pruning analytics events: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("pruning analytics events: %w", err)
	}
	return n, nil
}

func (r *SQLiteEventRepo) scanEvents(rows *sql.Rows) ([]*domain.AnalyticsEvent, error) {
	var events []*domain.AnalyticsEvent
	for rows.Next() {
		var e domain.AnalyticsEvent
		var attrs, recordedAt string
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Name, &attrs, &recordedAt); err != nil {
			return nil, fmt.Errorf("scanning analytics event: %w", err)
		}
		var err error
		if e.Attrs, err = unmarshalAttrs(attrs); err != nil {
			return nil, fmt.Errorf("analytics event %s: %w", e.ID, err)
		}
		if e.RecordedAt, err = parseTime(recordedAt); err != nil {
			return nil, fmt.Errorf("analytics event %s: %w", e.ID, err)
		}
		events = append(events, &e)
	}
	return events, rows.Err()
}
