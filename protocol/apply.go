package protocol

import (
	"fmt"

	"hackman-bot/field"
	"hackman-bot/types"
)

// Apply performs the state change described by cmd. On error neither settings
// nor state are modified. KindActionMove only records the timebank; picking a
// move is up to the caller.
func Apply(settings *types.Settings, state *types.GameState, cmd Command) error {
	switch cmd.Kind {
	case KindSettings:
		if err := settings.Set(cmd.Key, cmd.Value); err != nil {
			return err
		}
		if cmd.Key == types.KeyPlayerNames {
			for _, name := range settings.PlayerNames() {
				state.AddPlayer(name)
			}
		}
		return nil

	case KindGameRound:
		return state.SetRound(cmd.Number)

	case KindGameField:
		grid, err := field.NewGrid(settings)
		if err != nil {
			return fmt.Errorf("field update before dimensions: %w", err)
		}
		if err := grid.CheckField(cmd.Cells); err != nil {
			return err
		}
		state.Field = cmd.Cells
		return nil

	case KindPlayerSnippets, KindPlayerWeapon, KindPlayerParalyzed:
		p, err := state.Player(cmd.Player)
		if err != nil {
			return err
		}
		switch cmd.Kind {
		case KindPlayerSnippets:
			p.Snippets = cmd.Number
		case KindPlayerWeapon:
			p.HasWeapon = cmd.Flag
		case KindPlayerParalyzed:
			p.IsParalyzed = cmd.Flag
		}
		return nil

	case KindActionMove:
		state.Timebank = cmd.Number
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd.Kind)
}
