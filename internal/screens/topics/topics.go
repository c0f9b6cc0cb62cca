package topics

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

const maxTopicLength = 80

// TopicsScreen lets the learner search the suggested topics, reopen a
// recent one, or study whatever they typed.
type TopicsScreen struct {
	ctx   context.Context
	ctrl  *session.Controller
	input components.TextInput
	menu  components.Menu
	query string
}

var _ screen.Screen = (*TopicsScreen)(nil)
var _ screen.KeyHintProvider = (*TopicsScreen)(nil)

// New creates the topic selection screen.
func New(ctx context.Context, ctrl *session.Controller) *TopicsScreen {
	s := &TopicsScreen{
		ctx:   ctx,
		ctrl:  ctrl,
		input: components.NewTextInput("Search or type any topic...", maxTopicLength),
	}
	s.rebuild()
	return s
}

// Init clears the search and reloads the recent topics.
func (s *TopicsScreen) Init() tea.Cmd {
	s.input.Reset()
	s.query = ""
	s.rebuild()
	return s.input.Init()
}

func (s *TopicsScreen) Title() string {
	return "Choose a Topic"
}

func (s *TopicsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "type", Description: "Search"},
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Learn"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *TopicsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "up", "down", "enter":
			if s.ctrl.Busy() {
				return s, nil
			}
			var cmd tea.Cmd
			s.menu, cmd = s.menu.Update(msg)
			return s, cmd
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if q := s.input.Value(); q != s.query {
		s.query = q
		s.rebuild()
	}
	return s, cmd
}

// rebuild recomputes the menu from the query. With a query the first item
// studies the query verbatim; without one the recent topics lead.
func (s *TopicsScreen) rebuild() {
	var items []components.MenuItem
	if s.query != "" {
		items = append(items, components.MenuItem{
			Label:  fmt.Sprintf("Learn about %q", s.query),
			Action: s.start(s.query),
		})
	} else {
		for _, t := range s.ctrl.State().Recent {
			items = append(items, components.MenuItem{
				Label:  t,
				Hint:   "recent",
				Action: s.start(t),
			})
		}
	}
	for _, t := range session.FilterTopics(session.SuggestedTopics(), s.query) {
		items = append(items, components.MenuItem{
			Label:  t.Name,
			Hint:   t.Category,
			Action: s.start(t.Name),
		})
	}
	s.menu = components.NewMenu(items)
}

func (s *TopicsScreen) start(topic string) func() tea.Cmd {
	return func() tea.Cmd {
		return screen.Async(func() error {
			return s.ctrl.StartTopic(s.ctx, topic)
		})
	}
}

func (s *TopicsScreen) View(width, height int) string {
	state := s.ctrl.State()

	var b strings.Builder
	b.WriteString(theme.Title.Render("What would you like to learn today?"))
	b.WriteString("\n\n")
	b.WriteString(s.input.View())
	b.WriteString("\n\n")

	if state.Loading {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("Preparing an explanation of %s...", state.Topic)))
		b.WriteString("\n")
	} else {
		b.WriteString(s.menu.View())
	}

	return lipgloss.NewStyle().Padding(1, 2).Width(width).Render(b.String())
}
