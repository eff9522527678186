package cli

import (
	"bytes"
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/alexanderramin/giftbox/internal/analytics"
	"github.com/alexanderramin/giftbox/internal/domain"
	"github.com/alexanderramin/giftbox/internal/repository"
	"github.com/alexanderramin/giftbox/internal/service"
	"github.com/alexanderramin/giftbox/internal/testutil"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)

// testDeps exposes the collaborators behind a test App.
type testDeps struct {
	events *repository.SQLiteEventRepo
	rec    *analytics.Memory
}

// testApp wires a full App backed by an in-memory DB and a memory recorder.
func testApp(t *testing.T) (*App, testDeps) {
	t.Helper()
	database, uow := testutil.NewTestJournal(t)

	events := repository.NewSQLiteEventRepo(database)
	settings := repository.NewSQLiteSettingsRepo(database)
	rec := analytics.NewMemory()

	app := &App{
		Journal:  service.NewJournalService(events, settings, uow),
		Recorder: rec,
		Options: PlayOptions{
			Name:       "Mira",
			LinePolicy: domain.LinesStack,
		},
		IsInteractive: func() bool { return true },
		Rand:          rand.New(rand.NewPCG(7, 11)),
		Now:           func() time.Time { return testNow },
	}
	return app, testDeps{events: events, rec: rec}
}

// seedEvent inserts a journal event for CLI tests.
func seedEvent(t *testing.T, deps testDeps, name string, attrs map[string]any, opts ...testutil.EventOption) {
	t.Helper()
	opts = append(opts, testutil.WithAttrs(attrs))
	require.NoError(t, deps.events.Insert(context.Background(), testutil.NewTestEvent(name, opts...)))
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// --- Play ---

func TestRootCmd_RefusesNonInteractiveStdin(t *testing.T) {
	app, _ := testApp(t)
	app.IsInteractive = func() bool { return false }

	_, err := executeCmd(t, app)
	require.ErrorIs(t, err, ErrNotInteractive)
}

func TestRootCmd_RejectsUnknownLinePolicy(t *testing.T) {
	app, _ := testApp(t)
	app.IsInteractive = func() bool { return false }

	_, err := executeCmd(t, app, "--lines", "sideways")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be stack or replace")
}

func TestRootCmd_RejectsPositionalArgs(t *testing.T) {
	app, _ := testApp(t)
	_, err := executeCmd(t, app, "surprise")
	require.Error(t, err)
}

func TestBindPlayFlags_OverridesDefaults(t *testing.T) {
	opts := PlayOptions{Name: "you", LinePolicy: domain.LinesStack, LineDelay: 3 * time.Second}
	fs := pflag.NewFlagSet("play", pflag.ContinueOnError)
	bindPlayFlags(fs, &opts)

	require.NoError(t, fs.Parse([]string{"--name", "Mira", "--dev", "--no-intro", "--lines", "replace", "--line-delay", "500ms"}))
	assert.Equal(t, "Mira", opts.Name)
	assert.True(t, opts.Dev)
	assert.True(t, opts.SkipIntro)
	assert.Equal(t, domain.LinesReplace, opts.LinePolicy)
	assert.Equal(t, 500*time.Millisecond, opts.LineDelay)
}

func TestBindPlayFlags_KeepsDefaultsWhenUnset(t *testing.T) {
	opts := PlayOptions{Name: "you", LinePolicy: domain.LinesReplace}
	fs := pflag.NewFlagSet("play", pflag.ContinueOnError)
	bindPlayFlags(fs, &opts)

	require.NoError(t, fs.Parse(nil))
	assert.Equal(t, "you", opts.Name)
	assert.Equal(t, domain.LinesReplace, opts.LinePolicy)
	assert.Equal(t, "replace", fs.Lookup("lines").DefValue)
}

func TestPlayOptions_WithDefaults(t *testing.T) {
	o := PlayOptions{LinePolicy: "diagonal"}.withDefaults()
	assert.Equal(t, "you", o.Name)
	assert.Equal(t, domain.LinesStack, o.LinePolicy)
	assert.Positive(t, o.ReplyDelay)
	assert.Positive(t, o.SolveDelay)
}

// --- Events ---

func TestEventsCmd_ListsNewestFirst(t *testing.T) {
	app, deps := testApp(t)
	seedEvent(t, deps, domain.EventPageView, nil)
	seedEvent(t, deps, domain.EventGiftUnlocked, map[string]any{"gift": 1})

	out, err := executeCmd(t, app, "events")
	require.NoError(t, err)

	assert.Contains(t, out, "page_view")
	assert.Contains(t, out, "gift=1")
	assert.Less(t, bytes.Index([]byte(out), []byte("gift_unlocked")), bytes.Index([]byte(out), []byte("page_view")))
}

func TestEventsCmd_FiltersByName(t *testing.T) {
	app, deps := testApp(t)
	seedEvent(t, deps, domain.EventPageView, nil)
	seedEvent(t, deps, domain.EventGiftUnlocked, map[string]any{"gift": 2})

	out, err := executeCmd(t, app, "events", "--name", domain.EventGiftUnlocked)
	require.NoError(t, err)
	assert.Contains(t, out, "gift_unlocked")
	assert.NotContains(t, out, "page_view")
}

func TestEventsCmd_CurrentSessionOnly(t *testing.T) {
	app, deps := testApp(t)
	current, err := app.Journal.SessionID(context.Background())
	require.NoError(t, err)

	seedEvent(t, deps, domain.EventIntroDone, nil, testutil.WithSession(current))
	seedEvent(t, deps, domain.EventReplayClicked, nil, testutil.WithSession("someone-else"))

	out, err := executeCmd(t, app, "events", "--current")
	require.NoError(t, err)
	assert.Contains(t, out, "intro_done")
	assert.NotContains(t, out, "replay_clicked")
}

func TestEventsCmd_EmptyJournal(t *testing.T) {
	app, _ := testApp(t)
	out, err := executeCmd(t, app, "events")
	require.NoError(t, err)
	assert.Contains(t, out, "No events recorded yet.")
}

func TestEventsCmd_WithoutJournal(t *testing.T) {
	app, _ := testApp(t)
	app.Journal = nil
	_, err := executeCmd(t, app, "events")
	require.ErrorIs(t, err, errNoJournal)
}

func TestEventsStatsCmd_ShowsCountsAndReachedGifts(t *testing.T) {
	app, deps := testApp(t)
	seedEvent(t, deps, domain.EventPageView, nil)
	seedEvent(t, deps, domain.EventGiftUnlocked, map[string]any{"gift": 1})
	seedEvent(t, deps, domain.EventGiftUnlocked, map[string]any{"gift": 2})

	out, err := executeCmd(t, app, "events", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "JOURNAL")
	assert.Contains(t, out, "2/4 unlocked")
	assert.Contains(t, out, "gift_unlocked")
}

func TestEventsPruneCmd_KeepsNewest(t *testing.T) {
	app, deps := testApp(t)
	for range 5 {
		seedEvent(t, deps, domain.EventPageView, nil)
	}

	out, err := executeCmd(t, app, "events", "prune", "--keep", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Pruned 3 events")

	n, err := deps.events.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestEventsPruneCmd_NegativeKeepFails(t *testing.T) {
	app, _ := testApp(t)
	_, err := executeCmd(t, app, "events", "prune", "--keep", "-1")
	require.Error(t, err)
}
