package layout

import (
	"strings"
	"testing"
)

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(MinWidth-1, MinHeight) {
		t.Error("expected narrow terminal to be too small")
	}
	if !IsTooSmall(MinWidth, MinHeight-1) {
		t.Error("expected short terminal to be too small")
	}
	if IsTooSmall(MinWidth, MinHeight) {
		t.Error("expected minimum size to fit")
	}
}

func TestContentHeight(t *testing.T) {
	if got := ContentHeight(30); got != 30-HeaderHeight-FooterHeight {
		t.Errorf("unexpected content height %d", got)
	}
	if got := ContentHeight(2); got != 0 {
		t.Errorf("expected 0 for tiny terminal, got %d", got)
	}
}

func TestRenderHeaderShowsTitleAndStatus(t *testing.T) {
	out := RenderHeader("Fractions", "Thinking", 80)
	for _, want := range []string{"learnloop", "Fractions", "Thinking"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q", want)
		}
	}
}

func TestRenderFrameIncludesBanner(t *testing.T) {
	out := RenderFrame("HEAD", RenderBanner("Agent is busy", 60), "BODY", "FOOT", 60, 20)
	if !strings.Contains(out, "Agent is busy") {
		t.Error("expected banner text in frame")
	}
	if strings.Index(out, "HEAD") > strings.Index(out, "Agent is busy") {
		t.Error("expected banner below header")
	}
	if !strings.Contains(out, "BODY") || !strings.Contains(out, "FOOT") {
		t.Error("expected content and footer in frame")
	}
}
