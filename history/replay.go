package history

import (
	"hackman-bot/field"
	"hackman-bot/protocol"
	"hackman-bot/types"
)

// Frame is the game as the bot saw it when it was asked to move.
type Frame struct {
	Round    int
	Timebank int
	Grid     field.Grid
	Field    []string
	BotID    string
	Players  map[string]types.PlayerState
	Move     types.Move
	Answered bool // false when the session ended before a response was recorded
}

// Replay feeds the input lines through the protocol parser and captures one
// frame per action request, paired with the response that followed it.
// Updates the bot rejected while playing are rejected here as well.
func Replay(lines []Line) []Frame {
	settings := types.NewSettings()
	state := types.NewGameState()

	var frames []Frame
	for _, l := range lines {
		if l.Dir == Out {
			if n := len(frames); n > 0 && !frames[n-1].Answered {
				if m, err := types.ParseMove(l.Text); err == nil {
					frames[n-1].Move = m
					frames[n-1].Answered = true
				}
			}
			continue
		}

		cmd, err := protocol.Parse(l.Text)
		if err == nil {
			protocol.Apply(settings, state, cmd)
		}
		if cmd.Kind == protocol.KindActionMove {
			frames = append(frames, snapshot(settings, state))
		}
	}
	return frames
}

func snapshot(settings *types.Settings, state *types.GameState) Frame {
	grid, _ := field.NewGrid(settings)
	players := make(map[string]types.PlayerState, len(state.Players))
	for id, p := range state.Players {
		players[id] = *p
	}
	return Frame{
		Round:    state.Round,
		Timebank: state.Timebank,
		Grid:     grid,
		Field:    append([]string(nil), state.Field...),
		BotID:    settings.BotID(),
		Players:  players,
	}
}
