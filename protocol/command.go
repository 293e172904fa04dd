// Package protocol implements the client side of the Hack-man engine's line
// protocol: tokenizing input lines, parsing them into commands and applying
// them to the bot's settings and game state.
package protocol

import (
	"errors"
	"fmt"
	"strings"

	"hackman-bot/types"
)

var (
	ErrEmptyLine       = errors.New("empty line")
	ErrUnknownCommand  = errors.New("unknown command")
	ErrMissingArgument = errors.New("missing argument")
)

// Kind identifies a parsed command.
type Kind int

const (
	KindInvalid Kind = iota
	KindSettings
	KindGameRound
	KindGameField
	KindPlayerSnippets
	KindPlayerWeapon
	KindPlayerParalyzed
	KindActionMove
)

func (k Kind) String() string {
	switch k {
	case KindSettings:
		return "settings"
	case KindGameRound:
		return "update game round"
	case KindGameField:
		return "update game field"
	case KindPlayerSnippets:
		return "update player snippets"
	case KindPlayerWeapon:
		return "update player has_weapon"
	case KindPlayerParalyzed:
		return "update player is_paralyzed"
	case KindActionMove:
		return "action move"
	default:
		return "invalid"
	}
}

// Command is one parsed input line. Which fields are meaningful depends on Kind:
//
//	KindSettings         Key, Value
//	KindGameRound        Number
//	KindGameField        Cells
//	KindPlayerSnippets   Player, Number
//	KindPlayerWeapon     Player, Flag
//	KindPlayerParalyzed  Player, Flag
//	KindActionMove       Number (timebank in ms)
type Command struct {
	Kind Kind
	Name string   // internal command name, e.g. "settings"
	Args []string // tokens after the command name

	Key    string
	Value  string
	Player string
	Number int
	Flag   bool
	Cells  []string
}

// Tokenize splits a line on runs of whitespace.
func Tokenize(line string) []string {
	return strings.Fields(line)
}

// CommandName translates the engine's snake_case or slash/case spelling of a
// command into its internal name: "/" becomes "_" and every "_x" becomes "X".
func CommandName(token string) string {
	token = strings.Replace(token, "/", "_", 1)
	var b strings.Builder
	b.Grow(len(token))
	for i := 0; i < len(token); i++ {
		c := token[i]
		if c == '_' && i+1 < len(token) && token[i+1] >= 'a' && token[i+1] <= 'z' {
			b.WriteByte(token[i+1] - 'a' + 'A')
			i++
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// Parse turns an input line into a Command.
//
// For "action move" a malformed or missing timebank is reported as an error
// but the returned command still has KindActionMove, since the engine expects
// an answer either way.
func Parse(line string) (Command, error) {
	tokens := Tokenize(line)
	if len(tokens) == 0 {
		return Command{}, ErrEmptyLine
	}
	cmd := Command{Name: CommandName(tokens[0]), Args: tokens[1:]}

	switch cmd.Name {
	case "settings":
		return parseSettings(cmd)
	case "update":
		return parseUpdate(cmd)
	case "action":
		return parseAction(cmd)
	}
	return cmd, fmt.Errorf("%w: %s", ErrUnknownCommand, cmd.Name)
}

func parseSettings(cmd Command) (Command, error) {
	if len(cmd.Args) < 2 {
		return cmd, fmt.Errorf("%w: settings needs key and value, got %v", ErrMissingArgument, cmd.Args)
	}
	cmd.Kind = KindSettings
	cmd.Key = cmd.Args[0]
	cmd.Value = cmd.Args[1]
	return cmd, nil
}

func parseUpdate(cmd Command) (Command, error) {
	if len(cmd.Args) < 3 {
		return cmd, fmt.Errorf("%w: update needs target, field and value, got %v", ErrMissingArgument, cmd.Args)
	}
	target, name, value := cmd.Args[0], cmd.Args[1], cmd.Args[2]

	if target == "game" {
		switch name {
		case "round":
			n, err := types.ParseInt(name, value)
			if err != nil {
				return cmd, err
			}
			cmd.Kind = KindGameRound
			cmd.Number = n
			return cmd, nil
		case "field":
			cmd.Kind = KindGameField
			cmd.Cells = strings.Split(value, ",")
			return cmd, nil
		}
		return cmd, fmt.Errorf("%w: update game %s", ErrUnknownCommand, name)
	}

	cmd.Player = target
	switch name {
	case "snippets":
		n, err := types.ParseInt(name, value)
		if err != nil {
			return cmd, err
		}
		if n < 0 {
			return cmd, &types.ParseError{Key: name, Value: value, Err: errors.New("negative count")}
		}
		cmd.Kind = KindPlayerSnippets
		cmd.Number = n
		return cmd, nil
	case "has_weapon":
		cmd.Kind = KindPlayerWeapon
		cmd.Flag = value == "true"
		return cmd, nil
	case "is_paralyzed":
		cmd.Kind = KindPlayerParalyzed
		cmd.Flag = value == "true"
		return cmd, nil
	}
	return cmd, fmt.Errorf("%w: update %s %s", ErrUnknownCommand, target, name)
}

func parseAction(cmd Command) (Command, error) {
	if len(cmd.Args) < 1 {
		return cmd, fmt.Errorf("%w: action needs a type", ErrMissingArgument)
	}
	if cmd.Args[0] != "move" {
		return cmd, fmt.Errorf("%w: action %s", ErrUnknownCommand, cmd.Args[0])
	}
	cmd.Kind = KindActionMove
	if len(cmd.Args) < 2 {
		return cmd, fmt.Errorf("%w: action move needs a timebank", ErrMissingArgument)
	}
	n, err := types.ParseInt("timebank", cmd.Args[1])
	if err != nil {
		return cmd, err
	}
	cmd.Number = n
	return cmd, nil
}
