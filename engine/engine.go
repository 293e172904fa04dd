// Package engine defines the move-selection strategies the bot can play with.
package engine

import (
	"fmt"
	"math/rand"
	"sort"

	"hackman-bot/types"
)

// Strategy picks a move for the current state. Implementations must only
// return moves that are legal for the state they were given.
type Strategy interface {
	// Name identifies the strategy in config and logs.
	Name() string

	// Execute returns the move to send for this turn.
	Execute(settings *types.Settings, state *types.GameState) (types.Move, error)
}

var registry = map[string]func(seed int64) Strategy{
	"random": func(seed int64) Strategy { return NewRandom(rand.New(rand.NewSource(seed))) },
	"pass":   func(int64) Strategy { return Pass{} },
}

// New builds the strategy registered under name.
func New(name string, seed int64) (Strategy, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q (have %v)", name, Names())
	}
	return ctor(seed), nil
}

// Names lists the registered strategy names.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Pass always passes. It never fails, so the bot also uses it as a fallback.
type Pass struct{}

func (Pass) Name() string { return "pass" }

func (Pass) Execute(*types.Settings, *types.GameState) (types.Move, error) {
	return types.Pass, nil
}
