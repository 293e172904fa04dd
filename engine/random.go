package engine

import (
	"math/rand"

	"hackman-bot/field"
	"hackman-bot/types"
)

// Random picks uniformly among the available moves.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a random strategy drawing from rng.
func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

func (r *Random) Name() string { return "random" }

func (r *Random) Execute(settings *types.Settings, state *types.GameState) (types.Move, error) {
	moves, err := field.AvailableMoves(settings, state)
	if err != nil {
		return types.Pass, err
	}
	return moves[r.rng.Intn(len(moves))], nil
}
