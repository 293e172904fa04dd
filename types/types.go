// Package types contains shared data structures for hackman-bot.
package types

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Recognized settings keys sent by the engine.
const (
	KeyTimebank    = "timebank"
	KeyTimePerMove = "time_per_move"
	KeyPlayerNames = "player_names"
	KeyYourBot     = "your_bot"
	KeyYourBotID   = "your_botid"
	KeyFieldWidth  = "field_width"
	KeyFieldHeight = "field_height"
	KeyMaxRounds   = "max_rounds"
)

// numericKeys must hold integer values; width and height must also be positive.
var numericKeys = map[string]bool{
	KeyTimebank:    false,
	KeyTimePerMove: false,
	KeyFieldWidth:  true,
	KeyFieldHeight: true,
	KeyMaxRounds:   false,
}

var (
	ErrMissingSetting  = errors.New("setting not set")
	ErrUnknownPlayer   = errors.New("unknown player")
	ErrRoundRegression = errors.New("round went backwards")
	errNotPositive     = errors.New("must be positive")
)

// ParseError reports a value that could not be parsed for a key.
type ParseError struct {
	Key   string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s %q: %v", e.Key, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseInt parses a base 10 integer, reporting failures as *ParseError.
func ParseInt(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, &ParseError{Key: key, Value: value, Err: errors.Unwrap(err)}
	}
	return n, nil
}

// Settings holds the raw key/value pairs sent during the configuration phase.
// The zero value is ready to use.
type Settings struct {
	values map[string]string
}

// NewSettings returns an empty settings record.
func NewSettings() *Settings {
	return &Settings{values: make(map[string]string)}
}

// Set stores value under key, overwriting any previous value.
// Numeric keys are validated first; on failure the previous value is kept.
func (s *Settings) Set(key, value string) error {
	if positive, ok := numericKeys[key]; ok {
		n, err := ParseInt(key, value)
		if err != nil {
			return err
		}
		if positive && n <= 0 {
			return &ParseError{Key: key, Value: value, Err: errNotPositive}
		}
	}
	if s.values == nil {
		s.values = make(map[string]string)
	}
	s.values[key] = value
	return nil
}

// Get returns the raw value stored for key.
func (s *Settings) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Int returns the value for key parsed as an integer.
func (s *Settings) Int(key string) (int, error) {
	v, ok := s.values[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingSetting, key)
	}
	return ParseInt(key, v)
}

// FieldWidth returns the field width. It fails if the engine has not sent it yet.
func (s *Settings) FieldWidth() (int, error) {
	return s.Int(KeyFieldWidth)
}

// FieldHeight returns the field height. It fails if the engine has not sent it yet.
func (s *Settings) FieldHeight() (int, error) {
	return s.Int(KeyFieldHeight)
}

// BotID returns the cell token identifying our own bot on the field.
func (s *Settings) BotID() string {
	return s.values[KeyYourBotID]
}

// PlayerNames returns the comma separated player_names setting as a slice.
func (s *Settings) PlayerNames() []string {
	v, ok := s.values[KeyPlayerNames]
	if !ok || v == "" {
		return nil
	}
	return strings.Split(v, ",")
}

// Keys returns all stored keys in sorted order.
func (s *Settings) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// PlayerState is the per-player status reported by the engine.
type PlayerState struct {
	Snippets    int  `json:"snippets"`
	HasWeapon   bool `json:"has_weapon"`
	IsParalyzed bool `json:"is_paralyzed"`
}

// GameState is the mutable game model updated every turn.
// Field is row-major with one cell token per entry.
type GameState struct {
	Round    int                     `json:"round"`
	Field    []string                `json:"field"`
	Players  map[string]*PlayerState `json:"players"`
	Timebank int                     `json:"timebank"`
}

// NewGameState creates an empty state at round 0.
func NewGameState() *GameState {
	return &GameState{
		Players: make(map[string]*PlayerState),
	}
}

// AddPlayer registers a player, returning the existing entry if present.
func (g *GameState) AddPlayer(id string) *PlayerState {
	if g.Players == nil {
		g.Players = make(map[string]*PlayerState)
	}
	if p, ok := g.Players[id]; ok {
		return p
	}
	p := &PlayerState{}
	g.Players[id] = p
	return p
}

// Player returns the entry for id, or ErrUnknownPlayer.
func (g *GameState) Player(id string) (*PlayerState, error) {
	p, ok := g.Players[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlayer, id)
	}
	return p, nil
}

// SetRound advances the round counter. Rounds never go backwards.
func (g *GameState) SetRound(round int) error {
	if round < g.Round {
		return fmt.Errorf("%w: %d after %d", ErrRoundRegression, round, g.Round)
	}
	g.Round = round
	return nil
}

// Coordinate is a 0-indexed position on the field.
type Coordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Move is one of the five answers to an action request.
type Move int

const (
	Pass Move = iota
	Up
	Down
	Left
	Right
)

// Directions lists the movement directions in enumeration order.
var Directions = []Move{Up, Down, Left, Right}

var moveNames = map[Move]string{
	Pass:  "pass",
	Up:    "up",
	Down:  "down",
	Left:  "left",
	Right: "right",
}

// String returns the wire token for the move.
func (m Move) String() string {
	if name, ok := moveNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Move(%d)", int(m))
}

// Valid reports whether m is one of the five moves the engine accepts.
func (m Move) Valid() bool {
	_, ok := moveNames[m]
	return ok
}

// ParseMove converts a wire token back into a Move.
func ParseMove(token string) (Move, error) {
	for m, name := range moveNames {
		if name == token {
			return m, nil
		}
	}
	return Pass, &ParseError{Key: "move", Value: token, Err: errors.New("unknown move")}
}

func (m Move) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Move) UnmarshalText(b []byte) error {
	parsed, err := ParseMove(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
