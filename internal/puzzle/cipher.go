package puzzle

import (
	"strings"
	"unicode"

	"github.com/alexanderramin/giftbox/internal/analytics"
	"github.com/alexanderramin/giftbox/internal/domain"
)

// Cipher is the gift 2 decode puzzle.
type Cipher struct {
	base
	target string
	answer string
	input  string
	hint   bool
}

// NewCipher starts a session checking against target, displaying answer once solved.
func NewCipher(target, answer string, unlock UnlockFunc, rec analytics.Recorder) *Cipher {
	return &Cipher{
		base:   newBase(domain.Gift2, unlock, rec, "Decode it and type the message."),
		target: Normalize(target),
		answer: answer,
	}
}

// Normalize trims, removes all whitespace and upper-cases s.
func Normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// Input returns the current text.
func (c *Cipher) Input() string { return c.input }

// SetInput replaces the text. Ignored once solved.
func (c *Cipher) SetInput(s string) {
	if c.solved || s == c.input {
		return
	}
	c.input = s
	c.rec.Record(domain.EventGift2InputChange, analytics.Attrs{"len": len(s)})
}

// Submit checks the input. On success the input is locked to the decoded
// answer and gift 2 unlocks.
func (c *Cipher) Submit() bool {
	if c.solved {
		return false
	}
	cleaned := Normalize(c.input)
	ok := cleaned == c.target
	c.rec.Record(domain.EventGift2CipherSubmit, analytics.Attrs{
		"input":   c.input,
		"cleaned": cleaned,
		"ok":      ok,
	})
	if !ok {
		c.msg = "Not yet 😼 (try replacing numbers with letters)"
		return false
	}
	c.msg = "Perfect ✅"
	if !c.finish(nil) {
		return false
	}
	c.input = c.answer
	return true
}

// RevealHint turns the hint on. It never affects correctness.
func (c *Cipher) RevealHint() {
	if c.solved || c.hint {
		return
	}
	c.hint = true
	c.rec.Record(domain.EventGift2HintClicked, nil)
}

// HintVisible reports whether the hint should be displayed.
func (c *Cipher) HintVisible() bool {
	return c.hint && !c.solved
}

// Sync freezes the puzzle when the gift was unlocked elsewhere.
func (c *Cipher) Sync(unlocked bool) {
	if unlocked && c.markSolved() {
		c.input = c.answer
	}
}
