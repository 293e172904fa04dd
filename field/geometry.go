// Package field implements grid geometry and legal move enumeration for the
// Hack-man field.
package field

import (
	"errors"
	"fmt"

	"hackman-bot/types"
)

// Field coordinate system:
// - X: 0..width-1 (left to right)
// - Y: 0..height-1 (top to bottom)
// - Index: y*width + x into the row-major cell list sent by the engine
//
// InBounds treats column 0 and row 0 as outside the field, same as the far
// edges. Cells there can still be located, they are just never neighbors.

// InvalidIndex is returned by CoordinateToIndex for out-of-bounds coordinates.
const InvalidIndex = -1

var (
	ErrIndexOutOfRange  = errors.New("index outside field")
	ErrPositionNotFound = errors.New("bot not on field")
	ErrFieldSize        = errors.New("field size does not match settings")
)

// Grid holds the field dimensions read from the settings.
type Grid struct {
	Width  int
	Height int
}

// NewGrid reads field_width and field_height from s.
func NewGrid(s *types.Settings) (Grid, error) {
	w, err := s.FieldWidth()
	if err != nil {
		return Grid{}, err
	}
	h, err := s.FieldHeight()
	if err != nil {
		return Grid{}, err
	}
	return Grid{Width: w, Height: h}, nil
}

// Size returns the number of cells on the field.
func (g Grid) Size() int {
	return g.Width * g.Height
}

// InBounds reports whether c lies strictly inside the field edges.
func (g Grid) InBounds(c types.Coordinate) bool {
	if 0 >= c.X || c.X >= g.Width {
		return false
	}
	if 0 >= c.Y || c.Y >= g.Height {
		return false
	}
	return true
}

// IndexToCoordinate converts a cell index into a coordinate.
func (g Grid) IndexToCoordinate(index int) (types.Coordinate, error) {
	if index < 0 || index >= g.Size() {
		return types.Coordinate{}, fmt.Errorf("%w: %d (size %d)", ErrIndexOutOfRange, index, g.Size())
	}
	return types.Coordinate{X: index % g.Width, Y: index / g.Width}, nil
}

// CoordinateToIndex converts c into a cell index, or InvalidIndex when c is
// not in bounds.
func (g Grid) CoordinateToIndex(c types.Coordinate) int {
	if !g.InBounds(c) {
		return InvalidIndex
	}
	return c.Y*g.Width + c.X
}

// CheckField verifies that cells has exactly one entry per grid cell.
func (g Grid) CheckField(cells []string) error {
	if len(cells) != g.Size() {
		return fmt.Errorf("%w: got %d cells, want %dx%d=%d", ErrFieldSize, len(cells), g.Width, g.Height, g.Size())
	}
	return nil
}

// IsInBounds reports whether c is in bounds for the dimensions in s.
// Missing dimensions count as out of bounds.
func IsInBounds(s *types.Settings, c types.Coordinate) bool {
	g, err := NewGrid(s)
	if err != nil {
		return false
	}
	return g.InBounds(c)
}

// IndexToCoordinate converts index using the dimensions in s.
func IndexToCoordinate(s *types.Settings, index int) (types.Coordinate, error) {
	g, err := NewGrid(s)
	if err != nil {
		return types.Coordinate{}, err
	}
	return g.IndexToCoordinate(index)
}

// CoordinateToIndex converts c using the dimensions in s.
func CoordinateToIndex(s *types.Settings, c types.Coordinate) int {
	g, err := NewGrid(s)
	if err != nil {
		return InvalidIndex
	}
	return g.CoordinateToIndex(c)
}

// FieldSize returns width*height from s.
func FieldSize(s *types.Settings) (int, error) {
	g, err := NewGrid(s)
	if err != nil {
		return 0, err
	}
	return g.Size(), nil
}
