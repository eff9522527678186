package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/giftbox/internal/domain"
	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the list events are pushed onto.
const DefaultRedisKey = "giftbox:events"

// RedisSink pushes JSON-encoded events onto a capped Redis list.
type RedisSink struct {
	client redis.Cmdable
	key    string
	maxLen int64
}

// NewRedisSink returns a sink writing to key, trimmed to the newest maxLen
// entries when maxLen > 0.
func NewRedisSink(client redis.Cmdable, key string, maxLen int64) *RedisSink {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisSink{client: client, key: key, maxLen: maxLen}
}

// NewRedisClient builds a client for addr with the timeouts used elsewhere.
func NewRedisClient(addr, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
}

type redisEvent struct {
	ID         string         `json:"id"`
	SessionID  string         `json:"session_id"`
	Name       string         `json:"name"`
	Attrs      map[string]any `json:"attrs"`
	RecordedAt time.Time      `json:"recorded_at"`
}

func (s *RedisSink) Name() string { return "redis" }

func (s *RedisSink) Write(ctx context.Context, event domain.AnalyticsEvent) error {
	data, err := json.Marshal(redisEvent{
		ID:         event.ID,
		SessionID:  event.SessionID,
		Name:       event.Name,
		Attrs:      event.Attrs,
		RecordedAt: event.RecordedAt,
	})
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, s.key, data)
	if s.maxLen > 0 {
		pipe.LTrim(ctx, s.key, -s.maxLen, -1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("pushing event to %s: %w", s.key, err)
	}
	return nil
}
