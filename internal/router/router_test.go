package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/learnloop/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title    string
	initRuns int
	updates  int
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRuns++
	return nil
}

func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) {
	s.updates++
	return s, nil
}

func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }

func newTestRouter() (*Router[string], *stubScreen, *stubScreen) {
	first := &stubScreen{title: "first"}
	second := &stubScreen{title: "second"}
	r := New("first", map[string]screen.Screen{
		"first":  first,
		"second": second,
	})
	return r, first, second
}

func TestShow(t *testing.T) {
	r, _, second := newTestRouter()

	r.Show("second")

	if r.ActiveKey() != "second" {
		t.Errorf("expected active key 'second', got %q", r.ActiveKey())
	}
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if second.initRuns != 1 {
		t.Errorf("expected Init() to run once, ran %d times", second.initRuns)
	}
}

func TestShowActiveKeyIsNoop(t *testing.T) {
	r, first, _ := newTestRouter()

	r.Show("first")

	if first.initRuns != 0 {
		t.Errorf("expected no Init() for already active screen, ran %d times", first.initRuns)
	}
}

func TestShowUnknownKeyKeepsActive(t *testing.T) {
	r, _, _ := newTestRouter()

	r.Show("missing")

	if r.ActiveKey() != "first" {
		t.Errorf("expected active key 'first', got %q", r.ActiveKey())
	}
}

func TestShowAgainRerunsInit(t *testing.T) {
	r, first, _ := newTestRouter()

	r.Show("second")
	r.Show("first")

	if first.initRuns != 1 {
		t.Errorf("expected Init() on return to first, ran %d times", first.initRuns)
	}
}

func TestUpdateGoesToActiveOnly(t *testing.T) {
	r, first, second := newTestRouter()

	r.Update(struct{}{})
	r.Show("second")
	r.Update(struct{}{})
	r.Update(struct{}{})

	if first.updates != 1 || second.updates != 2 {
		t.Errorf("expected 1/2 updates, got %d/%d", first.updates, second.updates)
	}
}

func TestViewRendersActive(t *testing.T) {
	r, _, _ := newTestRouter()
	if got := r.View(80, 24); got != "first" {
		t.Errorf("expected 'first', got %q", got)
	}

	empty := New("none", map[string]screen.Screen{})
	if got := empty.View(80, 24); got != "" {
		t.Errorf("expected empty view, got %q", got)
	}
}
