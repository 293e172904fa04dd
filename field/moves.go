package field

import (
	"fmt"

	"hackman-bot/logging"
	"hackman-bot/types"
)

// Wall is the cell token that blocks movement.
const Wall = "x"

// step returns the coordinate one cell away from c in direction dir.
func step(c types.Coordinate, dir types.Move) types.Coordinate {
	switch dir {
	case types.Up:
		return types.Coordinate{X: c.X, Y: c.Y - 1}
	case types.Down:
		return types.Coordinate{X: c.X, Y: c.Y + 1}
	case types.Left:
		return types.Coordinate{X: c.X - 1, Y: c.Y}
	case types.Right:
		return types.Coordinate{X: c.X + 1, Y: c.Y}
	}
	return c
}

// Locate returns the coordinate of the first cell equal to botID.
func (g Grid) Locate(cells []string, botID string) (types.Coordinate, error) {
	for i, cell := range cells {
		if cell == botID {
			return g.IndexToCoordinate(i)
		}
	}
	return types.Coordinate{}, fmt.Errorf("%w: %q", ErrPositionNotFound, botID)
}

// Neighbors maps each in-bounds orthogonal direction around c to its cell token.
func (g Grid) Neighbors(cells []string, c types.Coordinate) map[types.Move]string {
	neighbors := make(map[types.Move]string, len(types.Directions))
	for _, dir := range types.Directions {
		next := step(c, dir)
		logging.Log.Debugf("%s: %s", dir, next)
		idx := g.CoordinateToIndex(next)
		if idx == InvalidIndex || idx >= len(cells) {
			continue
		}
		neighbors[dir] = cells[idx]
	}
	return neighbors
}

// CoordinateFor finds botID on the field using the dimensions in s.
func CoordinateFor(s *types.Settings, cells []string, botID string) (types.Coordinate, error) {
	g, err := NewGrid(s)
	if err != nil {
		return types.Coordinate{}, err
	}
	return g.Locate(cells, botID)
}

// NeighboringFields returns the cell tokens around c using the dimensions in s.
func NeighboringFields(s *types.Settings, cells []string, c types.Coordinate) (map[types.Move]string, error) {
	g, err := NewGrid(s)
	if err != nil {
		return nil, err
	}
	return g.Neighbors(cells, c), nil
}

// AvailableMoves lists the legal moves for our bot: pass first, then every
// direction whose neighbor exists and is not a wall, in Directions order.
func AvailableMoves(s *types.Settings, state *types.GameState) ([]types.Move, error) {
	g, err := NewGrid(s)
	if err != nil {
		return nil, err
	}
	pos, err := g.Locate(state.Field, s.BotID())
	if err != nil {
		return nil, err
	}
	neighbors := g.Neighbors(state.Field, pos)

	moves := []types.Move{types.Pass}
	for _, dir := range types.Directions {
		if cell, ok := neighbors[dir]; ok && cell != Wall {
			moves = append(moves, dir)
		}
	}
	return moves, nil
}
