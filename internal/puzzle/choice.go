package puzzle

import (
	"slices"

	"github.com/alexanderramin/giftbox/internal/analytics"
	"github.com/alexanderramin/giftbox/internal/domain"
)

// Choice is the gift 4 questionnaire. Answers are recorded, never judged.
type Choice struct {
	base
	questions []Question
	idx       int
	answers   map[int]string
}

// NewChoice starts a session over questions.
func NewChoice(questions []Question, unlock UnlockFunc, rec analytics.Recorder) *Choice {
	return &Choice{
		base:      newBase(domain.Gift4, unlock, rec, ""),
		questions: questions,
		answers:   make(map[int]string, len(questions)),
	}
}

// Current returns the question awaiting an answer. ok is false once solved.
func (c *Choice) Current() (Question, bool) {
	if c.solved || c.idx >= len(c.questions) {
		return Question{}, false
	}
	return c.questions[c.idx], true
}

// Index returns the zero-based position of the current question.
func (c *Choice) Index() int { return c.idx }

// Len returns the number of questions.
func (c *Choice) Len() int { return len(c.questions) }

// Answers returns a copy of the recorded answers keyed by question id.
func (c *Choice) Answers() map[int]string {
	out := make(map[int]string, len(c.answers))
	for k, v := range c.answers {
		out[k] = v
	}
	return out
}

// Choose records answer for the current question and advances. It declines
// answers that are not offered by the current question.
func (c *Choice) Choose(answer string) bool {
	q, ok := c.Current()
	if !ok || !slices.Contains(q.Answers, answer) {
		return false
	}
	c.answers[q.ID] = answer
	c.rec.Record(domain.EventGift4Choice, analytics.Attrs{"q": q.ID, "answer": answer})
	c.idx++
	if c.idx == len(c.questions) {
		c.msg = "Perfect ✅"
		if !c.finish(analytics.Attrs{"answers": c.Answers()}) {
			// Stay on the last question so it can be answered again.
			c.idx--
		}
	}
	return true
}

// Sync freezes the puzzle when the gift was unlocked elsewhere.
func (c *Choice) Sync(unlocked bool) {
	if unlocked {
		c.markSolved()
	}
}
