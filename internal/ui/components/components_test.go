package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestMenuSkipsDisabledItems(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "off", Disabled: true},
		{Label: "one"},
		{Label: "two", Disabled: true},
		{Label: "three"},
	})
	if m.Selected != 1 {
		t.Fatalf("expected first enabled item selected, got %d", m.Selected)
	}

	m, _ = m.Update(key(tea.KeyDown))
	if m.Selected != 3 {
		t.Errorf("expected down to skip disabled item, got %d", m.Selected)
	}
	m, _ = m.Update(key(tea.KeyDown))
	if m.Selected != 3 {
		t.Errorf("expected down to stop at the last item, got %d", m.Selected)
	}
	m, _ = m.Update(key(tea.KeyUp))
	if m.Selected != 1 {
		t.Errorf("expected up to skip disabled item, got %d", m.Selected)
	}
}

func TestMenuEnterRunsAction(t *testing.T) {
	pressed := ""
	m := NewMenu([]MenuItem{
		{Label: "a", Action: func() tea.Cmd { pressed = "a"; return nil }},
		{Label: "b", Action: func() tea.Cmd { pressed = "b"; return nil }},
	})
	m, _ = m.Update(key(tea.KeyDown))
	m.Update(key(tea.KeyEnter))

	if pressed != "b" {
		t.Errorf("expected action b, got %q", pressed)
	}
}

func TestMenuIgnoresLetterKeys(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "a"}, {Label: "b"}})
	m, _ = m.Update(tea.KeyPressMsg{Code: 'j', Text: "j"})
	if m.Selected != 0 {
		t.Errorf("expected j to be left for text input, got selection %d", m.Selected)
	}
}

func TestMultiChoiceMove(t *testing.T) {
	mc := NewMultiChoice("Q?", []string{"A", "B", "C", "D"}, map[string]string{
		"A": "one", "B": "two", "C": "three", "D": "four",
	})

	if got := mc.Move(1); got != "A" {
		t.Errorf("expected first letter with nothing selected, got %q", got)
	}
	mc.Selected = "B"
	if got := mc.Move(1); got != "C" {
		t.Errorf("expected C, got %q", got)
	}
	mc.Selected = "D"
	if got := mc.Move(1); got != "D" {
		t.Errorf("expected clamp at D, got %q", got)
	}
	mc.Selected = "A"
	if got := mc.Move(-1); got != "A" {
		t.Errorf("expected clamp at A, got %q", got)
	}
	if !mc.Has("C") || mc.Has("E") {
		t.Error("unexpected Has result")
	}
}

func TestMultiChoiceViewMarksAnswer(t *testing.T) {
	mc := NewMultiChoice("What is 1+1?", []string{"A", "B"}, map[string]string{"A": "2", "B": "3"})
	mc.Revealed = true
	mc.Chosen = "B"
	mc.Correct = "A"

	out := mc.View(60)
	if !strings.Contains(out, "What is 1+1?") {
		t.Error("expected question text")
	}
	if !strings.Contains(out, "A)  2  ✓") {
		t.Error("expected correct option marked")
	}
	if !strings.Contains(out, "B)  3  ✗") {
		t.Error("expected chosen wrong option marked")
	}
}

func TestProgressBarFilled(t *testing.T) {
	tests := []struct {
		percent float64
		want    int
	}{
		{0, 0},
		{0.5, 10},
		{1, 20},
		{1.5, 20},
		{-1, 0},
	}
	for _, tt := range tests {
		p := NewProgressBar("", tt.percent, true, 30)
		if got := p.Filled(20); got != tt.want {
			t.Errorf("Filled(%v) = %d, want %d", tt.percent, got, tt.want)
		}
	}
}

func TestButtonPressOnlyWhenActive(t *testing.T) {
	pressed := 0
	b := NewButton("Go", false, func() tea.Cmd { pressed++; return nil })
	b.Update(key(tea.KeyEnter))
	b.Active = true
	b.Update(key(tea.KeyEnter))

	if pressed != 1 {
		t.Errorf("expected one press, got %d", pressed)
	}
	if !strings.Contains(b.View(), "Go") {
		t.Error("expected label in view")
	}
}
