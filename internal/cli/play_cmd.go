package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/giftbox/internal/config"
	"github.com/alexanderramin/giftbox/internal/domain"
	"github.com/alexanderramin/giftbox/internal/puzzle"
	"github.com/alexanderramin/giftbox/internal/timer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ErrNotInteractive is returned when the TUI is started without a terminal.
var ErrNotInteractive = errors.New("giftbox needs an interactive terminal (try `giftbox events` instead)")

// PlayOptions tune one run of the experience.
type PlayOptions struct {
	Name      string
	Dev       bool
	SkipIntro bool

	ReplyDelay          time.Duration
	SolveDelay          time.Duration
	LineDelay           time.Duration
	LinePolicy          domain.LinePolicy
	CelebrationDuration time.Duration
}

// PlayOptionsFrom maps configuration onto play options.
func PlayOptionsFrom(cfg config.Config) PlayOptions {
	return PlayOptions{
		Name:                cfg.Name,
		Dev:                 cfg.DevControls,
		SkipIntro:           cfg.SkipIntro,
		ReplyDelay:          cfg.ReplyDelay,
		SolveDelay:          cfg.SolveDelay,
		LineDelay:           cfg.LineDelay,
		LinePolicy:          domain.LinePolicy(cfg.LinePolicy),
		CelebrationDuration: cfg.CelebrationDuration,
	}
}

// withDefaults fills unset fields.
func (o PlayOptions) withDefaults() PlayOptions {
	if o.Name == "" {
		o.Name = "you"
	}
	if o.ReplyDelay <= 0 {
		o.ReplyDelay = puzzle.DefaultReplyDelay
	}
	if o.SolveDelay <= 0 {
		o.SolveDelay = puzzle.DefaultSolveDelay
	}
	if !domain.ValidLinePolicies[string(o.LinePolicy)] {
		o.LinePolicy = domain.LinesStack
	}
	return o
}

// bindPlayFlags registers the flags that override PlayOptions.
func bindPlayFlags(fs *pflag.FlagSet, opts *PlayOptions) {
	fs.StringVar(&opts.Name, "name", opts.Name, "Name shown on the hero screen")
	fs.BoolVar(&opts.Dev, "dev", opts.Dev, "Enable operator keys (U unlock, L lock) on gift views")
	fs.BoolVar(&opts.SkipIntro, "no-intro", opts.SkipIntro, "Skip the opening beats")
	fs.DurationVar(&opts.LineDelay, "line-delay", opts.LineDelay, "Delay between reveal lines after gift 3")
	fs.Var(&linePolicyValue{p: &opts.LinePolicy}, "lines", "Reveal line policy: stack or replace")
}

// linePolicyValue adapts domain.LinePolicy to pflag.Value.
type linePolicyValue struct {
	p *domain.LinePolicy
}

func (v *linePolicyValue) String() string {
	if v.p == nil || *v.p == "" {
		return string(domain.LinesStack)
	}
	return string(*v.p)
}

func (v *linePolicyValue) Set(s string) error {
	if !domain.ValidLinePolicies[s] {
		return fmt.Errorf("must be stack or replace, got %q", s)
	}
	*v.p = domain.LinePolicy(s)
	return nil
}

func (v *linePolicyValue) Type() string { return "policy" }

// runPlay starts the TUI. Timer callbacks are delivered through the program
// so they run on the event loop like any other message.
func runPlay(cmd *cobra.Command, app *App) error {
	if app.IsInteractive != nil && !app.IsInteractive() {
		return ErrNotInteractive
	}

	var p *tea.Program
	loop := timer.NewLoop(func(f timer.Fired) { p.Send(f) })
	m := newAppModel(app, loop)

	p = tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	final, err := p.Run()
	if fm, ok := final.(appModel); ok {
		fm.shutdown()
	} else {
		m.shutdown()
	}
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running tui: %w", err)
	}
	return nil
}
