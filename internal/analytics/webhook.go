package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"time"

	"github.com/alexanderramin/giftbox/internal/domain"
	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"
)

// WebhookConfig configures a WebhookSink.
type WebhookConfig struct {
	URL        string
	Secret     string
	Page       string
	UserAgent  string
	MaxRetries uint64
	// RatePerSec limits outgoing requests. Zero disables limiting.
	RatePerSec float64
	Client     *http.Client
}

// WebhookSink posts each event as JSON to a collector endpoint.
type WebhookSink struct {
	cfg     WebhookConfig
	client  *http.Client
	limiter *rate.Limiter
}

type webhookBody struct {
	Secret    string         `json:"secret"`
	TS        string         `json:"ts"`
	SessionID string         `json:"sessionId"`
	Event     string         `json:"event"`
	Payload   map[string]any `json:"payload"`
	Page      string         `json:"page"`
	UserAgent string         `json:"userAgent"`
}

// NewWebhookSink returns nil when URL or Secret is empty, which callers
// treat as "not configured".
func NewWebhookSink(cfg WebhookConfig) *WebhookSink {
	if cfg.URL == "" || cfg.Secret == "" {
		return nil
	}
	if cfg.Page == "" {
		cfg.Page = "/"
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = fmt.Sprintf("giftbox (%s/%s)", runtime.GOOS, runtime.GOARCH)
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: 4 * time.Second}
	}
	s := &WebhookSink{cfg: cfg, client: client}
	if cfg.RatePerSec > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSec), 5)
	}
	return s
}

func (s *WebhookSink) Name() string { return "webhook" }

func (s *WebhookSink) Write(ctx context.Context, event domain.AnalyticsEvent) error {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}

	body, err := json.Marshal(webhookBody{
		Secret:    s.cfg.Secret,
		TS:        event.RecordedAt.UTC().Format(time.RFC3339Nano),
		SessionID: event.SessionID,
		Event:     event.Name,
		Payload:   event.Attrs,
		Page:      s.cfg.Page,
		UserAgent: s.cfg.UserAgent,
	})
	if err != nil {
		return fmt.Errorf("encoding webhook body: %w", err)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxInterval = time.Second
	policy := backoff.WithContext(backoff.WithMaxRetries(b, s.cfg.MaxRetries), ctx)

	return backoff.Retry(func() error {
		return s.post(ctx, body)
	}, policy)
}

func (s *WebhookSink) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return backoff.Permanent(fmt.Errorf("building webhook request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", s.cfg.UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting event: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("collector returned %d", resp.StatusCode)
	case resp.StatusCode >= 400:
		return backoff.Permanent(fmt.Errorf("collector rejected event: %d", resp.StatusCode))
	}
	return nil
}
