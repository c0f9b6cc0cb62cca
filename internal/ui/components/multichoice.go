package components

import (
	"fmt"
	"slices"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnloop/internal/ui/theme"
)

// Choice is one lettered option.
type Choice struct {
	Letter string
	Text   string
}

// MultiChoice renders a lettered multiple-choice question. It holds no
// selection of its own; the caller passes in the selected letter and,
// once the answer is evaluated, the chosen and correct letters.
type MultiChoice struct {
	Question string
	Choices  []Choice
	Selected string
	Revealed bool
	Chosen   string
	Correct  string
}

// NewMultiChoice creates a component for the given question and options.
// letters fixes the display order.
func NewMultiChoice(question string, letters []string, options map[string]string) MultiChoice {
	choices := make([]Choice, 0, len(letters))
	for _, l := range letters {
		choices = append(choices, Choice{Letter: l, Text: options[l]})
	}
	return MultiChoice{Question: question, Choices: choices}
}

// Move returns the letter delta positions away from the selected one,
// clamped to the ends. With nothing selected it starts from the top.
func (m MultiChoice) Move(delta int) string {
	if len(m.Choices) == 0 {
		return ""
	}
	idx := slices.IndexFunc(m.Choices, func(c Choice) bool { return c.Letter == m.Selected })
	if idx < 0 {
		return m.Choices[0].Letter
	}
	idx = min(max(idx+delta, 0), len(m.Choices)-1)
	return m.Choices[idx].Letter
}

// Has reports whether letter is one of the choices.
func (m MultiChoice) Has(letter string) bool {
	return slices.ContainsFunc(m.Choices, func(c Choice) bool { return c.Letter == letter })
}

// View renders the question and its options.
func (m MultiChoice) View(width int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(width).Render(m.Question))
	b.WriteString("\n\n")

	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	for _, c := range m.Choices {
		prefix := "  "
		if c.Letter == m.Selected && !m.Revealed {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, c.Letter, c.Text)

		switch {
		case m.Revealed && c.Letter == m.Correct:
			line = theme.Correct.Render(line + "  ✓")
		case m.Revealed && c.Letter == m.Chosen:
			line = theme.Incorrect.Render(line + "  ✗")
		case m.Revealed:
			line = dim.Render(line)
		case c.Letter == m.Selected:
			line = theme.Selected.Render(line)
		default:
			line = theme.Unselected.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
