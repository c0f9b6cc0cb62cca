package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnloop/internal/router"
	"github.com/abhisek/learnloop/internal/screen"
	"github.com/abhisek/learnloop/internal/screens/explanation"
	"github.com/abhisek/learnloop/internal/screens/quiz"
	"github.com/abhisek/learnloop/internal/screens/results"
	"github.com/abhisek/learnloop/internal/screens/topics"
	"github.com/abhisek/learnloop/internal/session"
	"github.com/abhisek/learnloop/internal/ui/layout"
)

const spinnerInterval = 120 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type spinnerTickMsg struct{}

// AppModel is the root Bubble Tea model. The visible screen always
// follows the controller's state.
type AppModel struct {
	ctrl     *session.Controller
	router   *router.Router[session.Screen]
	logger   *slog.Logger
	width    int
	height   int
	frame    int
	spinning bool
}

func newAppModel(ctx context.Context, ctrl *session.Controller, logger *slog.Logger) AppModel {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	screens := map[session.Screen]screen.Screen{
		session.ScreenTopicSelection: topics.New(ctx, ctrl),
		session.ScreenExplanation:    explanation.New(ctx, ctrl),
		session.ScreenQuiz:           quiz.New(ctx, ctrl),
		session.ScreenResults:        results.New(ctx, ctrl),
	}
	return AppModel{
		ctrl:   ctrl,
		router: router.New(ctrl.State().Screen, screens),
		logger: logger,
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.ctrl.State().Err != nil {
				m.ctrl.DismissError()
				return m, nil
			}
		}

	case screen.ActionStartedMsg:
		if m.spinning {
			return m, nil
		}
		m.spinning = true
		return m, tick()

	case spinnerTickMsg:
		if !m.ctrl.Busy() {
			m.spinning = false
			return m, nil
		}
		m.frame = (m.frame + 1) % len(spinnerFrames)
		return m, tick()

	case screen.ActionDoneMsg:
		m.logAction(msg.Err)
		return m, m.sync()
	}

	cmd := m.router.Update(msg)
	return m, tea.Batch(cmd, m.sync())
}

// sync shows the screen the controller is on.
func (m AppModel) sync() tea.Cmd {
	return m.router.Show(m.ctrl.State().Screen)
}

func (m AppModel) logAction(err error) {
	switch {
	case err == nil:
	case errors.Is(err, session.ErrRequestInFlight), errors.Is(err, session.ErrInvalidTransition):
		m.logger.Debug("action ignored", "error", err)
	case errors.As(err, new(*session.ValidationError)):
		m.logger.Info("action rejected", "error", err)
	default:
		m.logger.Warn("action failed", "error", err)
	}
}

func tick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(time.Time) tea.Msg {
		return spinnerTickMsg{}
	})
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	state := m.ctrl.State()

	title := ""
	var hints []layout.KeyHint
	if active := m.router.Active(); active != nil {
		title = active.Title()
		if p, ok := active.(screen.KeyHintProvider); ok {
			hints = p.KeyHints()
		}
	}
	if hints == nil {
		hints = []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	}

	status := ""
	if state.Loading {
		status = spinnerFrames[m.frame] + " Thinking..."
	}
	header := layout.RenderHeader(title, status, m.width)

	banner := ""
	if msg := state.ErrorMessage(); msg != "" {
		banner = layout.RenderBanner(msg, m.width)
	}

	footer := layout.RenderFooter(hints, m.width)

	used := lipgloss.Height(header) + lipgloss.Height(footer)
	if banner != "" {
		used += lipgloss.Height(banner)
	}

	content := m.router.View(m.width, max(m.height-used, 0))
	return layout.RenderFrame(header, banner, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program on top of ctrl.
func Run(ctx context.Context, ctrl *session.Controller, logger *slog.Logger) error {
	p := tea.NewProgram(newAppModel(ctx, ctrl, logger), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
