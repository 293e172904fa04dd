package ui

import (
	"testing"

	"hackman-bot/config"
	"hackman-bot/history"
	"hackman-bot/types"
)

func TestFieldViewStepClamps(t *testing.T) {
	v := NewFieldView(config.DefaultTheme)
	if v.Current() != nil {
		t.Fatal("Current on empty view is not nil")
	}
	v.Step(1)

	v.SetFrames([]history.Frame{{Round: 1}, {Round: 2}, {Round: 3}})
	v.Step(-1)
	if got := v.Current().Round; got != 1 {
		t.Errorf("after Step(-1) round = %d, want 1", got)
	}
	v.Step(5)
	if got := v.Current().Round; got != 3 {
		t.Errorf("after Step(5) round = %d, want 3", got)
	}
	v.Seek(1)
	if got := v.Current().Round; got != 2 {
		t.Errorf("after Seek(1) round = %d, want 2", got)
	}
	v.Last()
	if got := v.Current().Round; got != 3 {
		t.Errorf("after Last round = %d, want 3", got)
	}
}

func TestFrameInfo(t *testing.T) {
	frame := &history.Frame{
		Round:    7,
		Timebank: 8200,
		Move:     types.Left,
		Answered: true,
		Players: map[string]types.PlayerState{
			"player1": {Snippets: 2, IsParalyzed: true},
			"player0": {Snippets: 4, HasWeapon: true},
		},
	}
	lines := frameInfo(frame, 2, 10)
	want := []string{
		"Round 7  [3/10]",
		"Move: left  Timebank: 8200ms",
		"player0: 4 snippets, armed",
		"player1: 2 snippets, paralyzed",
	}
	if len(lines) != len(want) {
		t.Fatalf("frameInfo = %q, want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}

	frame.Answered = false
	if got := frameInfo(frame, 0, 1)[1]; got != "Move: (no response)  Timebank: 8200ms" {
		t.Errorf("unanswered move line = %q", got)
	}
}

func TestStyleUsesTheme(t *testing.T) {
	v := NewFieldView(config.DefaultTheme)
	if r, _ := v.style("x", "0"); r != config.DefaultTheme.Cells["x"].Symbol {
		t.Errorf("wall symbol = %q", r)
	}
	if r, _ := v.style("?!", "0"); r != config.DefaultTheme.Unknown.Symbol {
		t.Errorf("unknown symbol = %q", r)
	}
}
