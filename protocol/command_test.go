package protocol

import (
	"errors"
	"testing"

	"hackman-bot/types"
)

func TestCommandName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"settings", "settings"},
		{"update", "update"},
		{"action", "action"},
		{"update_game", "updateGame"},
		{"action/move", "actionMove"},
		{"is_paralyzed", "isParalyzed"},
		{"a_B", "a_B"},
		{"trailing_", "trailing_"},
	}
	for _, tt := range tests {
		if got := CommandName(tt.in); got != tt.want {
			t.Errorf("CommandName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("  update  game\tround 5 \r")
	want := []string{"update", "game", "round", "5"}
	if len(got) != len(want) {
		t.Fatalf("Tokenize = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Tokenize[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		line string
		want Command
	}{
		{"settings field_width 10", Command{Kind: KindSettings, Key: "field_width", Value: "10"}},
		{"settings your_botid 0", Command{Kind: KindSettings, Key: "your_botid", Value: "0"}},
		{"update game round 5", Command{Kind: KindGameRound, Number: 5}},
		{"update p1 snippets 12", Command{Kind: KindPlayerSnippets, Player: "p1", Number: 12}},
		{"update p1 has_weapon true", Command{Kind: KindPlayerWeapon, Player: "p1", Flag: true}},
		{"update p1 has_weapon false", Command{Kind: KindPlayerWeapon, Player: "p1"}},
		{"update p2 is_paralyzed true", Command{Kind: KindPlayerParalyzed, Player: "p2", Flag: true}},
		{"update p2 is_paralyzed yes", Command{Kind: KindPlayerParalyzed, Player: "p2"}},
		{"action move 10000", Command{Kind: KindActionMove, Number: 10000}},
	}
	for _, tt := range tests {
		got, err := Parse(tt.line)
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.line, err)
			continue
		}
		if got.Kind != tt.want.Kind || got.Key != tt.want.Key || got.Value != tt.want.Value ||
			got.Player != tt.want.Player || got.Number != tt.want.Number || got.Flag != tt.want.Flag {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.line, got, tt.want)
		}
	}
}

func TestParseField(t *testing.T) {
	cmd, err := Parse("update game field a,b,c,d")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cmd.Kind != KindGameField {
		t.Fatalf("Kind = %s, want %s", cmd.Kind, KindGameField)
	}
	want := []string{"a", "b", "c", "d"}
	if len(cmd.Cells) != len(want) {
		t.Fatalf("Cells = %q, want %q", cmd.Cells, want)
	}
	for i := range want {
		if cmd.Cells[i] != want[i] {
			t.Errorf("Cells[%d] = %q, want %q", i, cmd.Cells[i], want[i])
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		line string
		want error
	}{
		{"", ErrEmptyLine},
		{"   ", ErrEmptyLine},
		{"dance now", ErrUnknownCommand},
		{"update game weather sunny", ErrUnknownCommand},
		{"update p1 mood happy", ErrUnknownCommand},
		{"action character 100", ErrUnknownCommand},
		{"settings timebank", ErrMissingArgument},
		{"update game round", ErrMissingArgument},
		{"action", ErrMissingArgument},
	}
	for _, tt := range tests {
		if _, err := Parse(tt.line); !errors.Is(err, tt.want) {
			t.Errorf("Parse(%q) err = %v, want %v", tt.line, err, tt.want)
		}
	}
}

func TestParseMalformedNumbers(t *testing.T) {
	for _, line := range []string{
		"update game round five",
		"update p1 snippets lots",
		"update p1 snippets -1",
	} {
		_, err := Parse(line)
		var perr *types.ParseError
		if !errors.As(err, &perr) {
			t.Errorf("Parse(%q) err = %v, want *ParseError", line, err)
		}
	}
}

func TestParseActionKeepsKindOnBadTimebank(t *testing.T) {
	for _, line := range []string{"action move soon", "action move"} {
		cmd, err := Parse(line)
		if err == nil {
			t.Errorf("Parse(%q) succeeded", line)
		}
		if cmd.Kind != KindActionMove {
			t.Errorf("Parse(%q).Kind = %s, want %s", line, cmd.Kind, KindActionMove)
		}
	}
}
