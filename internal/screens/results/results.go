package results

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnloop/internal/screen"
	"github.com/abhisek/learnloop/internal/session"
	"github.com/abhisek/learnloop/internal/ui/components"
	"github.com/abhisek/learnloop/internal/ui/layout"
	"github.com/abhisek/learnloop/internal/ui/theme"
)

// ResultsScreen shows the scored quiz and what to do next.
type ResultsScreen struct {
	ctx  context.Context
	ctrl *session.Controller
	menu components.Menu
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates the results screen.
func New(ctx context.Context, ctrl *session.Controller) *ResultsScreen {
	s := &ResultsScreen{ctx: ctx, ctrl: ctrl}
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: "Retake the quiz", Hint: "r", Action: s.retake},
		{Label: "Review the explanation", Hint: "e", Action: s.review},
		{Label: "Learn another topic", Hint: "t", Action: s.learnAnother},
	})
	return s
}

// Init puts the cursor back on the first action.
func (s *ResultsScreen) Init() tea.Cmd {
	s.menu.Selected = 0
	return nil
}

func (s *ResultsScreen) Title() string {
	return "Results: " + s.ctrl.State().Topic
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Select"},
		{Key: "R/E/T", Description: "Shortcuts"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || s.ctrl.Busy() {
		return s, nil
	}

	switch kmsg.String() {
	case "r":
		return s, s.retake()
	case "e":
		return s, s.review()
	case "t":
		return s, s.learnAnother()
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *ResultsScreen) retake() tea.Cmd {
	return screen.Async(func() error {
		return s.ctrl.Retake(s.ctx)
	})
}

func (s *ResultsScreen) review() tea.Cmd {
	_ = s.ctrl.ReviewExplanation()
	return nil
}

func (s *ResultsScreen) learnAnother() tea.Cmd {
	_ = s.ctrl.LearnAnother()
	return nil
}

func (s *ResultsScreen) View(width, height int) string {
	state := s.ctrl.State()
	r := state.Result
	if r == nil {
		// A failed retake has already discarded the previous attempt.
		return lipgloss.NewStyle().Padding(1, 2).Width(width).Render(
			theme.Hint.Render("No results to show.") + "\n\n" + s.menu.View())
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render(fmt.Sprintf("You scored %d / %d  (%d%%)", r.Score, r.Total, r.Percentage())))
	b.WriteString("\n\n")
	b.WriteString(masteryStyle(r.MasteryLevel).Render("Mastery: " + string(r.MasteryLevel)))
	b.WriteString("\n")
	b.WriteString(theme.Body.Width(max(width-8, 20)).Render(r.MasteryLevel.Encouragement()))
	b.WriteString("\n\n")

	b.WriteString(theme.Label.Render("Breakdown"))
	b.WriteString("\n")
	for _, a := range r.Answers {
		mark := theme.Incorrect.Render("✗")
		if a.IsCorrect {
			mark = theme.Correct.Render("✓")
		}
		fmt.Fprintf(&b, "  %s Q%d  answered %s\n", mark, a.QuestionNumber, a.StudentAnswer)
	}
	b.WriteString("\n")

	if state.Loading {
		b.WriteString(theme.Hint.Render("Generating a fresh quiz..."))
	} else {
		b.WriteString(s.menu.View())
	}

	return lipgloss.NewStyle().Padding(1, 2).Width(width).Render(b.String())
}

func masteryStyle(m session.MasteryLevel) lipgloss.Style {
	switch m {
	case session.MasteryAdvanced:
		return theme.Correct
	case session.MasteryIntermediate:
		return lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	default:
		return theme.Incorrect
	}
}
