package explanation

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnloop/internal/agent"
	"github.com/abhisek/learnloop/internal/screen"
	"github.com/abhisek/learnloop/internal/session"
	"github.com/abhisek/learnloop/internal/ui/components"
	"github.com/abhisek/learnloop/internal/ui/layout"
	"github.com/abhisek/learnloop/internal/ui/theme"
)

// ExplanationScreen pages through the explanation one section at a time.
type ExplanationScreen struct {
	ctx   context.Context
	ctrl  *session.Controller
	page  int
	start components.Button
}

var _ screen.Screen = (*ExplanationScreen)(nil)
var _ screen.KeyHintProvider = (*ExplanationScreen)(nil)

// New creates the explanation screen.
func New(ctx context.Context, ctrl *session.Controller) *ExplanationScreen {
	s := &ExplanationScreen{ctx: ctx, ctrl: ctrl}
	s.start = components.NewButton("Take the quiz", true, s.startQuiz)
	return s
}

// Init rewinds to the first section.
func (s *ExplanationScreen) Init() tea.Cmd {
	s.page = 0
	return nil
}

func (s *ExplanationScreen) Title() string {
	return s.ctrl.State().Topic
}

func (s *ExplanationScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Sections"},
		{Key: "Enter", Description: "Take the quiz"},
		{Key: "T", Description: "New topic"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *ExplanationScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || s.ctrl.Busy() {
		return s, nil
	}

	sections := s.ctrl.State().Explanation
	switch kmsg.String() {
	case "right", "l", "n":
		s.page = min(s.page+1, max(len(sections)-1, 0))
	case "left", "h", "p":
		s.page = max(s.page-1, 0)
	case "t":
		// Rejections leave the state as is; nothing to show.
		_ = s.ctrl.LearnAnother()
	case "enter":
		var cmd tea.Cmd
		s.start, cmd = s.start.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *ExplanationScreen) startQuiz() tea.Cmd {
	return screen.Async(func() error {
		return s.ctrl.StartQuiz(s.ctx)
	})
}

func (s *ExplanationScreen) View(width, height int) string {
	state := s.ctrl.State()
	inner := max(width-8, 20)

	var b strings.Builder
	if len(state.Explanation) == 0 {
		b.WriteString(theme.Hint.Render("No explanation yet."))
	} else {
		page := min(s.page, len(state.Explanation)-1)
		b.WriteString(renderSection(state.Explanation[page], page, len(state.Explanation), inner))
	}
	b.WriteString("\n\n")

	if state.Loading {
		b.WriteString(theme.Hint.Render("Generating quiz questions..."))
	} else {
		b.WriteString(s.start.View())
	}

	return lipgloss.NewStyle().Padding(1, 2).Width(width).Render(b.String())
}

func renderSection(sec agent.Section, page, total, width int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(fmt.Sprintf("Section %d of %d: %s", page+1, total, sec.Title)))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Width(width).Render(sec.Content))

	if sec.Example != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Card.Width(width).Render(
			theme.Label.Render("Example") + "\n" + theme.Body.Render(sec.Example)))
	}
	if sec.VisualDescription != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Card.Width(width).Render(
			theme.Label.Render("Picture it") + "\n" + theme.Hint.Render(sec.VisualDescription)))
	}
	return b.String()
}
