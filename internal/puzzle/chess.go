package puzzle

import (
	"time"

	"github.com/alexanderramin/giftbox/internal/analytics"
	"github.com/alexanderramin/giftbox/internal/domain"
	"github.com/alexanderramin/giftbox/internal/timer"
)

// Move is a from→to pair on the board.
type Move struct {
	From domain.Square
	To   domain.Square
}

// Stage is one scripted player move with the opponent's answer.
// A nil Reply marks the mating move.
type Stage struct {
	Player Move
	Reply  *Move
	Hint   string
	Toast  string
}

// MateInThree is the gift 3 script.
var MateInThree = []Stage{
	{Player: Move{"c4", "f7"}, Reply: &Move{"g8", "f7"}, Hint: "Try a checking move with the bishop.", Toast: "Nice. Again."},
	{Player: Move{"e4", "g5"}, Reply: &Move{"f7", "f6"}, Hint: "Knight jumps are sneaky.", Toast: "One last move."},
	{Player: Move{"e2", "e6"}, Hint: "Queen finishes it.", Toast: "CHECKMATE ♡"},
}

// Default chess delays.
const (
	DefaultReplyDelay = 450 * time.Millisecond
	DefaultSolveDelay = 600 * time.Millisecond
)

// TapResult describes what a Tap did.
type TapResult int

const (
	TapIgnored TapResult = iota
	TapSelected
	TapWrongPiece
	TapWrongMove
	TapMoved
)

// ChessOption configures a Chess puzzle.
type ChessOption func(*Chess)

// WithDelays overrides the reply and solve delays.
func WithDelays(reply, solve time.Duration) ChessOption {
	return func(c *Chess) {
		c.replyDelay = reply
		c.solveDelay = solve
	}
}

// WithScript replaces the stage list and starting board.
func WithScript(stages []Stage, board domain.Board) ChessOption {
	return func(c *Chess) {
		c.stages = stages
		c.start = board.Clone()
	}
}

// Chess is the gift 3 scripted mate puzzle.
type Chess struct {
	base
	stages     []Stage
	start      domain.Board
	board      domain.Board
	stage      int
	selected   domain.Square
	pending    bool
	timers     *timer.Group
	replyDelay time.Duration
	solveDelay time.Duration
}

// NewChess starts a session on the scripted start position.
func NewChess(sched timer.Scheduler, unlock UnlockFunc, rec analytics.Recorder, opts ...ChessOption) *Chess {
	c := &Chess{
		base:       newBase(domain.Gift3, unlock, rec, "Tap a piece, then a square. Hint: give check."),
		stages:     MateInThree,
		start:      domain.StartPosition(),
		timers:     timer.NewGroup(sched),
		replyDelay: DefaultReplyDelay,
		solveDelay: DefaultSolveDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.board = c.start.Clone()
	c.rec.Record(domain.EventGift3StageViewed, analytics.Attrs{"stage": c.Stage()})
	return c
}

// Stage returns the 1-based current stage.
func (c *Chess) Stage() int { return c.stage + 1 }

// Stages returns how many player moves the script has.
func (c *Chess) Stages() int { return len(c.stages) }

// Board returns a copy of the position.
func (c *Chess) Board() domain.Board { return c.board.Clone() }

// Selected returns the held square, or "" when nothing is selected.
func (c *Chess) Selected() domain.Square { return c.selected }

// Pending reports whether an opponent reply or the solve is scheduled.
func (c *Chess) Pending() bool { return c.pending }

// Tap handles a click on sq.
func (c *Chess) Tap(sq domain.Square) TapResult {
	if c.solved || c.pending {
		return TapIgnored
	}
	want := c.stages[c.stage].Player

	if c.selected == "" {
		if !c.board.Occupied(sq) {
			return TapIgnored
		}
		if sq != want.From {
			c.msg = "Try a stronger piece 😉"
			c.rec.Record(domain.EventGift3WrongPiece, analytics.Attrs{"sq": string(sq), "stage": c.Stage()})
			return TapWrongPiece
		}
		c.selected = sq
		c.msg = "Now choose the destination square ✨"
		c.rec.Record(domain.EventGift3PieceSelected, analytics.Attrs{"sq": string(sq), "stage": c.Stage()})
		return TapSelected
	}

	from := c.selected
	c.selected = ""
	attempt := analytics.Attrs{"from": string(from), "to": string(sq), "stage": c.Stage()}
	if from != want.From || sq != want.To {
		c.msg = "Almost… give a sharper check ♡"
		attempt["correct"] = false
		c.rec.Record(domain.EventGift3MoveAttempt, attempt)
		return TapWrongMove
	}
	attempt["correct"] = true
	c.rec.Record(domain.EventGift3MoveAttempt, attempt)

	c.board.Move(from, sq)
	c.pending = true
	c.timers.After(c.replyDelay, c.reply)
	return TapMoved
}

// reply plays the opponent move for the current stage and advances,
// or schedules the solve after the last stage.
func (c *Chess) reply() {
	st := c.stages[c.stage]
	c.msg = st.Toast
	if st.Reply == nil {
		c.timers.After(c.solveDelay, func() {
			c.pending = false
			if !c.finish(nil) {
				c.restart()
			}
		})
		return
	}
	c.board.Move(st.Reply.From, st.Reply.To)
	c.rec.Record(domain.EventGift3OpponentMove, analytics.Attrs{
		"from": string(st.Reply.From),
		"to":   string(st.Reply.To),
	})
	c.stage++
	c.pending = false
	c.rec.Record(domain.EventGift3StageViewed, analytics.Attrs{"stage": c.Stage()})
}

// restart puts the script back on its first stage, keeping the message.
func (c *Chess) restart() {
	c.board = c.start.Clone()
	c.stage = 0
	c.selected = ""
}

// Hint sets and returns the coaching text for the current stage.
func (c *Chess) Hint() string {
	if c.solved {
		return ""
	}
	h := c.stages[c.stage].Hint
	c.msg = h
	c.rec.Record(domain.EventGift3HintClicked, analytics.Attrs{"stage": c.Stage()})
	return h
}

// Sync freezes the puzzle when the gift was unlocked elsewhere.
func (c *Chess) Sync(unlocked bool) {
	if unlocked && c.markSolved() {
		c.Close()
		c.pending = false
		c.selected = ""
		c.msg = "CHECKMATE (solved ✅)"
	}
}

// Close cancels any scheduled reply or solve.
func (c *Chess) Close() {
	c.timers.StopAll()
}
