package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/giftbox/internal/cli/formatter"
	"github.com/alexanderramin/giftbox/internal/repository"
	"github.com/spf13/cobra"
)

var errNoJournal = errors.New("analytics journal is not configured")

func newEventsCmd(app *App) *cobra.Command {
	var limit int
	var name, session string
	var current bool

	cmd := &cobra.Command{
		Use:   "events",
		Short: "List the local analytics journal, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Journal == nil {
				return errNoJournal
			}
			ctx := cmd.Context()
			if current {
				id, err := app.Journal.SessionID(ctx)
				if err != nil {
					return err
				}
				session = id
			}

			events, err := app.Journal.Recent(ctx, repository.EventFilter{
				Name:      name,
				SessionID: session,
				Limit:     limit,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEvents(events, app.now()))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of events to show (0 for all)")
	cmd.Flags().StringVar(&name, "name", "", "Only show events with this name")
	cmd.Flags().StringVar(&session, "session", "", "Only show events from this session ID")
	cmd.Flags().BoolVar(&current, "current", false, "Only show events from this machine's session")
	cmd.MarkFlagsMutuallyExclusive("session", "current")

	cmd.AddCommand(
		newEventsStatsCmd(app),
		newEventsPruneCmd(app),
	)
	return cmd
}

func newEventsStatsCmd(app *App) *cobra.Command {
	var session string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show event counts and which gifts were reached",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Journal == nil {
				return errNoJournal
			}
			stats, err := app.Journal.Stats(cmd.Context(), session)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatJournalStats(stats, app.now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&session, "session", "", "Scope to a single session ID (default: all sessions)")
	return cmd
}

func newEventsPruneCmd(app *App) *cobra.Command {
	var keep int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete all but the newest events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Journal == nil {
				return errNoJournal
			}
			removed, err := app.Journal.Prune(cmd.Context(), keep)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Pruned %d events (kept newest %d).\n",
				formatter.StyleGreen.Render("✔"), removed, keep)
			return nil
		},
	}

	cmd.Flags().IntVar(&keep, "keep", 1000, "Number of newest events to keep")
	return cmd
}
