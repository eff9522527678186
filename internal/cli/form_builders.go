package cli

import (
	"github.com/alexanderramin/giftbox/internal/puzzle"
	"github.com/charmbracelet/huh"
)

// questionForm returns a themed single-select form for one gift 4 question.
func questionForm(q puzzle.Question, value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(q.Prompt).
				Options(huh.NewOptions(q.Answers...)...).
				Value(value),
		),
	).WithTheme(giftboxHuhTheme()).WithShowHelp(false)
}
