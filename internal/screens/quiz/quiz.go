package quiz

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

// QuizScreen shows one question at a time: choose, submit, read the
// feedback, move on.
type QuizScreen struct {
	ctx  context.Context
	ctrl *session.Controller
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates the quiz screen.
func New(ctx context.Context, ctrl *session.Controller) *QuizScreen {
	return &QuizScreen{ctx: ctx, ctrl: ctrl}
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	return "Quiz: " + s.ctrl.State().Topic
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	state := s.ctrl.State()
	if state.Feedback != nil {
		next := "Next question"
		if state.IsLastQuestion() {
			next = "See results"
		}
		return []layout.KeyHint{
			{Key: "Enter", Description: next},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓ / A-D", Description: "Choose"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || s.ctrl.Busy() {
		return s, nil
	}

	state := s.ctrl.State()
	if state.Feedback != nil {
		if kmsg.String() == "enter" {
			return s, screen.Async(func() error {
				return s.ctrl.Advance(s.ctx)
			})
		}
		return s, nil
	}

	mc, ok := choices(state)
	if !ok {
		return s, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		return s, s.selectOption(mc.Move(-1))
	case "down", "j":
		return s, s.selectOption(mc.Move(1))
	case "enter":
		// An empty selection is reported in the banner without a request.
		return s, screen.Async(func() error {
			return s.ctrl.SubmitSelected(s.ctx)
		})
	default:
		if letter := strings.ToUpper(key); mc.Has(letter) {
			return s, s.selectOption(letter)
		}
	}
	return s, nil
}

// selectOption applies a choice locally. A failure is handed to the app as
// an ActionDoneMsg so it is logged; validation failures also land in the
// banner.
func (s *QuizScreen) selectOption(letter string) tea.Cmd {
	if err := s.ctrl.SelectOption(letter); err != nil {
		return func() tea.Msg { return screen.ActionDoneMsg{Err: err} }
	}
	return nil
}

func choices(state session.State) (components.MultiChoice, bool) {
	q, ok := state.CurrentQuestion()
	if !ok {
		return components.MultiChoice{}, false
	}
	mc := components.NewMultiChoice(q.QuestionText, q.Letters(), q.Options)
	mc.Selected = state.Selected
	if state.Feedback != nil {
		mc.Revealed = true
		mc.Chosen = state.Feedback.StudentAnswer
		mc.Correct = q.CorrectAnswer
	}
	return mc, true
}

func (s *QuizScreen) View(width, height int) string {
	state := s.ctrl.State()
	inner := max(width-8, 20)

	mc, ok := choices(state)
	if !ok {
		return lipgloss.NewStyle().Padding(1, 2).Render(theme.Hint.Render("No questions yet."))
	}

	progress := session.Progress(state)
	q, _ := state.CurrentQuestion()

	var b strings.Builder
	header := theme.Title.Render(fmt.Sprintf("Question %d of %d", progress.Current, progress.Total))
	if q.Difficulty != "" {
		header += theme.Subtitle.Render("  · " + q.Difficulty)
	}
	score := theme.Label.Render(fmt.Sprintf("Score: %d/%d", progress.Correct, progress.Total))
	gap := max(inner-lipgloss.Width(header)-lipgloss.Width(score), 1)
	b.WriteString(header + strings.Repeat(" ", gap) + score)
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("", progress.Fraction(state.Feedback != nil), true, inner).View())
	b.WriteString("\n\n")
	b.WriteString(mc.View(inner))
	b.WriteString("\n")

	switch {
	case state.Loading:
		b.WriteString(theme.Hint.Render("Checking your answer..."))
	case state.Feedback != nil:
		b.WriteString(renderFeedback(state.Feedback, inner))
	}

	return lipgloss.NewStyle().Padding(1, 2).Width(width).Render(b.String())
}

func renderFeedback(fb *session.Feedback, width int) string {
	verdict := theme.Incorrect.Render("✗ Not quite")
	if fb.IsCorrect {
		verdict = theme.Correct.Render("✓ Correct!")
	}
	return theme.Card.Width(width).Render(verdict + "\n" + theme.Body.Render(fb.Feedback))
}
