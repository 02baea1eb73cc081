package game

import (
	"cmp"
	"fmt"
	"iter"
)

// Coordinates is a cell position on the board, x growing right and y growing up.
type Coordinates struct {
	X, Y uint16
}

// neighborOffsets are visited clockwise starting from the lower left corner.
var neighborOffsets = [maxNeighbors][2]int{
	{-1, -1},
	{0, -1},
	{1, -1},
	{1, 0},
	{1, 1},
	{0, 1},
	{-1, 1},
	{-1, 0},
}

func (coords Coordinates) String() string {
	return fmt.Sprintf("(%d, %d)", coords.X, coords.Y)
}

// Compare orders coordinates by Y, then X (row-major), the order in which
// TileMap.Cells walks a map and sorted reveal outcomes are reported. Equal
// coordinates compare as 0 and any two distinct ones are ordered.
func (coords Coordinates) Compare(other Coordinates) int {
	if c := cmp.Compare(coords.Y, other.Y); c != 0 {
		return c
	}
	return cmp.Compare(coords.X, other.X)
}

// Neighbors yields the up to eight coordinates around coords. Offsets that
// would underflow or overflow uint16 are skipped; map bounds are not checked.
func (coords Coordinates) Neighbors() iter.Seq[Coordinates] {
	return func(yield func(Coordinates) bool) {
		for _, offset := range neighborOffsets {
			x := int(coords.X) + offset[0]
			y := int(coords.Y) + offset[1]
			if x < 0 || y < 0 || x > 0xFFFF || y > 0xFFFF {
				continue
			}
			if !yield(Coordinates{X: uint16(x), Y: uint16(y)}) {
				return
			}
		}
	}
}
