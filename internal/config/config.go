// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every tunable. Fields map to GIFTBOX_* variables.
type Config struct {
	Name        string `env:"GIFTBOX_NAME" envDefault:"you"`
	DevControls bool   `env:"GIFTBOX_DEV_CONTROLS"`
	SkipIntro   bool   `env:"GIFTBOX_SKIP_INTRO"`

	// DBPath defaults to ~/.giftbox/giftbox.db when empty.
	DBPath string `env:"GIFTBOX_DB"`

	LogURL    string `env:"GIFTBOX_LOG_URL"`
	LogSecret string `env:"GIFTBOX_LOG_SECRET"`
	LogEvents bool   `env:"GIFTBOX_LOG_EVENTS"`
	LogFile   string `env:"GIFTBOX_LOG_FILE"`

	RedisAddr     string `env:"GIFTBOX_REDIS_ADDR"`
	RedisPassword string `env:"GIFTBOX_REDIS_PASSWORD"`
	RedisKey      string `env:"GIFTBOX_REDIS_KEY" envDefault:"giftbox:events"`
	RedisMaxLen   int64  `env:"GIFTBOX_REDIS_MAXLEN" envDefault:"10000"`

	MetricsAddr string `env:"GIFTBOX_METRICS_ADDR"`

	WebhookRetries int     `env:"GIFTBOX_WEBHOOK_RETRIES" envDefault:"3"`
	WebhookRate    float64 `env:"GIFTBOX_WEBHOOK_RATE" envDefault:"10"`
	QueueSize      int     `env:"GIFTBOX_QUEUE_SIZE" envDefault:"256"`

	ReplyDelay          time.Duration `env:"GIFTBOX_REPLY_DELAY" envDefault:"450ms"`
	SolveDelay          time.Duration `env:"GIFTBOX_SOLVE_DELAY" envDefault:"600ms"`
	LineDelay           time.Duration `env:"GIFTBOX_LINE_DELAY" envDefault:"3s"`
	LinePolicy          string        `env:"GIFTBOX_LINE_POLICY" envDefault:"stack"`
	CelebrationDuration time.Duration `env:"GIFTBOX_CELEBRATION_DURATION" envDefault:"3s"`
}

// Load reads an optional .env file from the working directory (or the
// given files), then parses the environment.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// FromMap parses cfg from an explicit variable set instead of the process
// environment.
func FromMap(vars map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks value ranges and cross-field rules.
func (c Config) Validate() error {
	var errs []error
	if c.LogURL != "" && c.LogSecret == "" {
		errs = append(errs, errors.New("GIFTBOX_LOG_SECRET is required when GIFTBOX_LOG_URL is set"))
	}
	if c.ReplyDelay < 0 || c.SolveDelay < 0 {
		errs = append(errs, fmt.Errorf("chess delays must be non-negative (reply %s, solve %s)", c.ReplyDelay, c.SolveDelay))
	}
	if c.LineDelay <= 0 {
		errs = append(errs, fmt.Errorf("invalid GIFTBOX_LINE_DELAY: %s (must be positive)", c.LineDelay))
	}
	if c.CelebrationDuration <= 0 {
		errs = append(errs, fmt.Errorf("invalid GIFTBOX_CELEBRATION_DURATION: %s (must be positive)", c.CelebrationDuration))
	}
	if c.LinePolicy != "stack" && c.LinePolicy != "replace" {
		errs = append(errs, fmt.Errorf("invalid GIFTBOX_LINE_POLICY: %q (must be stack or replace)", c.LinePolicy))
	}
	if c.QueueSize < 1 {
		errs = append(errs, fmt.Errorf("invalid GIFTBOX_QUEUE_SIZE: %d (must be at least 1)", c.QueueSize))
	}
	if c.WebhookRetries < 0 {
		errs = append(errs, fmt.Errorf("invalid GIFTBOX_WEBHOOK_RETRIES: %d", c.WebhookRetries))
	}
	if c.RedisMaxLen < 0 {
		errs = append(errs, fmt.Errorf("invalid GIFTBOX_REDIS_MAXLEN: %d", c.RedisMaxLen))
	}
	return errors.Join(errs...)
}

// ResolveDBPath returns DBPath, or ~/.giftbox/giftbox.db when unset.
func (c Config) ResolveDBPath() (string, error) {
	if c.DBPath != "" {
		return c.DBPath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".giftbox", "giftbox.db"), nil
}
