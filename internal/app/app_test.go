package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/learnloop/internal/screens/screentest"
	"github.com/abhisek/learnloop/internal/session"
)

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(AppModel)
	require.True(t, ok)
	return am, cmd
}

func TestRouterFollowsControllerScreen(t *testing.T) {
	ctrl, _ := screentest.NewController(screentest.Explain("Intro"))
	m := newAppModel(context.Background(), ctrl, nil)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	assert.Equal(t, session.ScreenTopicSelection, m.router.ActiveKey())

	require.NoError(t, ctrl.StartTopic(context.Background(), "Verbs"))
	m, _ = update(t, m, struct{}{})

	assert.Equal(t, session.ScreenExplanation, m.router.ActiveKey())
	content := m.render()
	assert.Contains(t, content, "Section 1 of 1: Intro")
	assert.Contains(t, content, "Verbs")
}

func TestActionDoneSyncsScreen(t *testing.T) {
	ctrl, _ := screentest.NewController(screentest.Explain("Intro"))
	m := newAppModel(context.Background(), ctrl, nil)

	m, cmd := update(t, m, screentest.Special(tea.KeyEnter))
	for _, msg := range screentest.Drain(cmd) {
		if _, ok := msg.(spinnerTickMsg); ok {
			continue
		}
		m, _ = update(t, m, msg)
	}

	assert.Equal(t, session.ScreenExplanation, m.router.ActiveKey())
}

func TestEscDismissesBanner(t *testing.T) {
	ctrl, _ := screentest.NewController(screentest.Failure("Agent is busy"))
	m := newAppModel(context.Background(), ctrl, nil)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	_ = ctrl.StartTopic(context.Background(), "Verbs")
	require.Equal(t, "Agent is busy", ctrl.State().ErrorMessage())
	assert.Contains(t, m.render(), "Agent is busy")

	m, _ = update(t, m, screentest.Special(tea.KeyEscape))

	assert.Empty(t, ctrl.State().ErrorMessage())
	assert.NotContains(t, m.render(), "Agent is busy")
}

func TestTooSmallTerminal(t *testing.T) {
	ctrl, _ := screentest.NewController()
	m := newAppModel(context.Background(), ctrl, nil)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 30, Height: 10})

	assert.True(t, strings.Contains(m.render(), "Terminal too small"))
}

func TestCtrlCQuits(t *testing.T) {
	ctrl, _ := screentest.NewController()
	m := newAppModel(context.Background(), ctrl, nil)

	_, cmd := update(t, m, tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}
