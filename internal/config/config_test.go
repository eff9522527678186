package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromMap_Defaults(t *testing.T) {
	cfg, err := FromMap(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "you", cfg.Name)
	assert.False(t, cfg.DevControls)
	assert.Equal(t, 450*time.Millisecond, cfg.ReplyDelay)
	assert.Equal(t, 600*time.Millisecond, cfg.SolveDelay)
	assert.Equal(t, 3*time.Second, cfg.LineDelay)
	assert.Equal(t, 3*time.Second, cfg.CelebrationDuration)
	assert.Equal(t, "stack", cfg.LinePolicy)
	assert.Equal(t, "giftbox:events", cfg.RedisKey)
	assert.Equal(t, 256, cfg.QueueSize)
	assert.NoError(t, cfg.Validate())
}

func TestFromMap_Overrides(t *testing.T) {
	cfg, err := FromMap(map[string]string{
		"GIFTBOX_NAME":         "Asha",
		"GIFTBOX_DEV_CONTROLS": "true",
		"GIFTBOX_LINE_DELAY":   "1500ms",
		"GIFTBOX_LINE_POLICY":  "replace",
		"GIFTBOX_REDIS_ADDR":   "localhost:6379",
	})
	require.NoError(t, err)
	assert.Equal(t, "Asha", cfg.Name)
	assert.True(t, cfg.DevControls)
	assert.Equal(t, 1500*time.Millisecond, cfg.LineDelay)
	assert.Equal(t, "replace", cfg.LinePolicy)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.NoError(t, cfg.Validate())
}

func TestFromMap_BadDuration(t *testing.T) {
	_, err := FromMap(map[string]string{"GIFTBOX_REPLY_DELAY": "soon"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env")
}

func TestValidate(t *testing.T) {
	base, err := FromMap(map[string]string{})
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"url without secret", func(c *Config) { c.LogURL = "https://example.test/log" }, "GIFTBOX_LOG_SECRET"},
		{"negative reply", func(c *Config) { c.ReplyDelay = -1 }, "chess delays"},
		{"zero line delay", func(c *Config) { c.LineDelay = 0 }, "GIFTBOX_LINE_DELAY"},
		{"zero celebration", func(c *Config) { c.CelebrationDuration = 0 }, "GIFTBOX_CELEBRATION_DURATION"},
		{"bad policy", func(c *Config) { c.LinePolicy = "shuffle" }, "GIFTBOX_LINE_POLICY"},
		{"empty queue", func(c *Config) { c.QueueSize = 0 }, "GIFTBOX_QUEUE_SIZE"},
		{"negative retries", func(c *Config) { c.WebhookRetries = -2 }, "GIFTBOX_WEBHOOK_RETRIES"},
		{"negative maxlen", func(c *Config) { c.RedisMaxLen = -1 }, "GIFTBOX_REDIS_MAXLEN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_JoinsErrors(t *testing.T) {
	cfg, err := FromMap(map[string]string{})
	require.NoError(t, err)
	cfg.LineDelay = 0
	cfg.LinePolicy = "x"
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GIFTBOX_LINE_DELAY")
	assert.Contains(t, err.Error(), "GIFTBOX_LINE_POLICY")
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("GIFTBOX_NAME=FromFile\nGIFTBOX_SKIP_INTRO=true\n"), 0o600))

	// godotenv never overrides variables that are already set
	t.Setenv("GIFTBOX_SKIP_INTRO", "false")
	t.Setenv("GIFTBOX_NAME", "")
	os.Unsetenv("GIFTBOX_NAME")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "FromFile", cfg.Name)
	assert.False(t, cfg.SkipIntro)
}

func TestLoad_MissingFileIsFine(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.LinePolicy)
}

func TestResolveDBPath(t *testing.T) {
	cfg := Config{DBPath: "/tmp/x.db"}
	p, err := cfg.ResolveDBPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.db", p)

	t.Setenv("HOME", "/home/tester")
	p, err = Config{}.ResolveDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/tester", ".giftbox", "giftbox.db"), p)
}
