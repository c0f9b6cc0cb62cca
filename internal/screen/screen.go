package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/learnloop/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen becomes visible.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// ActionStartedMsg is sent when a screen kicks off a blocking session
// action, so the app can start animating the loading indicator.
type ActionStartedMsg struct{}

// ActionDoneMsg is sent when a session action returns.
type ActionDoneMsg struct {
	Err error
}

// Async runs fn off the update loop. The app re-renders from the session
// state when the ActionDoneMsg arrives.
func Async(fn func() error) tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return ActionStartedMsg{} },
		func() tea.Msg { return ActionDoneMsg{Err: fn()} },
	)
}
