package types

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestSettingsRawStorage(t *testing.T) {
	s := NewSettings()
	if err := s.Set(KeyFieldWidth, "10"); err != nil {
		t.Fatalf("Set width: %v", err)
	}
	if err := s.Set(KeyFieldHeight, "8"); err != nil {
		t.Fatalf("Set height: %v", err)
	}
	if v, _ := s.Get(KeyFieldWidth); v != "10" {
		t.Errorf("field_width = %q, want %q", v, "10")
	}
	if v, _ := s.Get(KeyFieldHeight); v != "8" {
		t.Errorf("field_height = %q, want %q", v, "8")
	}
	if w, err := s.FieldWidth(); err != nil || w != 10 {
		t.Errorf("FieldWidth = %d, %v, want 10", w, err)
	}
}

func TestSettingsOverwrite(t *testing.T) {
	s := NewSettings()
	s.Set(KeyYourBotID, "0")
	s.Set(KeyYourBotID, "1")
	if got := s.BotID(); got != "1" {
		t.Errorf("BotID = %q, want %q", got, "1")
	}
	if keys := s.Keys(); len(keys) != 1 {
		t.Errorf("Keys = %v, want one key", keys)
	}
}

func TestSettingsUnknownKeyStored(t *testing.T) {
	var s Settings
	if err := s.Set("weather", "sunny"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, ok := s.Get("weather"); !ok || v != "sunny" {
		t.Errorf("weather = %q, %v, want sunny", v, ok)
	}
}

func TestSettingsRejectsMalformedNumber(t *testing.T) {
	s := NewSettings()
	s.Set(KeyFieldWidth, "20")

	err := s.Set(KeyFieldWidth, "wide")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Set err = %v, want *ParseError", err)
	}
	if perr.Key != KeyFieldWidth || perr.Value != "wide" {
		t.Errorf("ParseError = %+v", perr)
	}
	if w, _ := s.FieldWidth(); w != 20 {
		t.Errorf("FieldWidth = %d after bad set, want 20", w)
	}

	if err := s.Set(KeyFieldHeight, "0"); !errors.As(err, &perr) {
		t.Errorf("Set height 0 err = %v, want *ParseError", err)
	}
	if err := s.Set(KeyTimebank, "-5"); err != nil {
		t.Errorf("Set negative timebank: %v", err)
	}
}

func TestSettingsMissing(t *testing.T) {
	s := NewSettings()
	if _, err := s.FieldHeight(); !errors.Is(err, ErrMissingSetting) {
		t.Errorf("FieldHeight err = %v, want ErrMissingSetting", err)
	}
}

func TestPlayerNames(t *testing.T) {
	s := NewSettings()
	if names := s.PlayerNames(); names != nil {
		t.Errorf("PlayerNames = %v, want nil", names)
	}
	s.Set(KeyPlayerNames, "player0,player1")
	names := s.PlayerNames()
	if len(names) != 2 || names[0] != "player0" || names[1] != "player1" {
		t.Errorf("PlayerNames = %v", names)
	}
}

func TestGameStatePlayers(t *testing.T) {
	g := NewGameState()
	if _, err := g.Player("p1"); !errors.Is(err, ErrUnknownPlayer) {
		t.Errorf("Player err = %v, want ErrUnknownPlayer", err)
	}
	p := g.AddPlayer("p1")
	p.Snippets = 3
	if again := g.AddPlayer("p1"); again.Snippets != 3 {
		t.Errorf("AddPlayer replaced existing entry")
	}
	got, err := g.Player("p1")
	if err != nil || got != p {
		t.Errorf("Player(p1) = %v, %v", got, err)
	}
}

func TestGameStateRound(t *testing.T) {
	g := NewGameState()
	if err := g.SetRound(5); err != nil || g.Round != 5 {
		t.Fatalf("SetRound(5) = %v, round %d", err, g.Round)
	}
	if err := g.SetRound(5); err != nil {
		t.Errorf("SetRound(5) again: %v", err)
	}
	if err := g.SetRound(4); !errors.Is(err, ErrRoundRegression) {
		t.Errorf("SetRound(4) err = %v, want ErrRoundRegression", err)
	}
	if g.Round != 5 {
		t.Errorf("Round = %d after regression, want 5", g.Round)
	}
}

func TestMoveText(t *testing.T) {
	for _, m := range []Move{Pass, Up, Down, Left, Right} {
		parsed, err := ParseMove(m.String())
		if err != nil || parsed != m {
			t.Errorf("ParseMove(%q) = %v, %v", m.String(), parsed, err)
		}
	}
	if _, err := ParseMove("jump"); err == nil {
		t.Error("ParseMove(jump) succeeded")
	}

	b, err := json.Marshal(struct {
		Move Move `json:"move"`
	}{Left})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(b) != `{"move":"left"}` {
		t.Errorf("Marshal = %s", b)
	}
}

func TestMoveValid(t *testing.T) {
	for _, m := range []Move{Pass, Up, Down, Left, Right} {
		if !m.Valid() {
			t.Errorf("%s not valid", m)
		}
	}
	for _, m := range []Move{-1, 5, 9} {
		if m.Valid() {
			t.Errorf("Move(%d) valid", int(m))
		}
	}
}
