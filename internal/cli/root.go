package cli

import (
	"math/rand/v2"
	"time"

	"github.com/alexanderramin/giftbox/internal/analytics"
	"github.com/alexanderramin/giftbox/internal/service"
	"github.com/spf13/cobra"
)

// App holds the collaborators used by CLI commands and the TUI.
type App struct {
	Journal  service.JournalService
	Recorder analytics.Recorder

	// Options are the play defaults resolved from configuration; root
	// command flags override them per run.
	Options PlayOptions

	// IsInteractive reports whether stdin is a terminal. Nil means yes.
	IsInteractive func() bool

	// Rand seeds the shuffle and confetti layout. Nil picks a random seed.
	Rand *rand.Rand

	// Now is the clock used for journal listings. Nil means time.Now.
	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "giftbox" command. Without a subcommand
// it starts the interactive experience.
func NewRootCmd(app *App) *cobra.Command {
	opts := app.Options

	root := &cobra.Command{
		Use:   "giftbox",
		Short: "Four gifts, four puzzles, one terminal",
		Long: `Walk through four gated gifts. Each one opens with a small puzzle,
and the next stays locked until the previous one is unlocked.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			run := *app
			run.Options = opts
			return runPlay(cmd, &run)
		},
	}

	bindPlayFlags(root.Flags(), &opts)

	root.AddCommand(
		newEventsCmd(app),
	)

	return root
}
