package game

import "strconv"

// Tile classifies a single cell of a TileMap: a bomb, an empty cell, or a
// cell bordering between one and eight bombs.
type Tile int8

const (
	BombTile  Tile = -1
	EmptyTile Tile = 0
)

// NeighborTile returns the classification of a safe cell bordering count
// bombs. A count of zero is EmptyTile.
func NeighborTile(count uint8) Tile {
	if count > maxNeighbors {
		panic("game: a tile cannot border more than 8 bombs")
	}
	return Tile(count)
}

func (tile Tile) IsBomb() bool {
	return tile == BombTile
}

func (tile Tile) IsEmpty() bool {
	return tile == EmptyTile
}

// BombNeighbors returns the number of bordering bombs, or 0 for bomb and
// empty tiles.
func (tile Tile) BombNeighbors() uint8 {
	if tile <= EmptyTile {
		return 0
	}
	return uint8(tile)
}

// String renders the tile the way TileMap.String lays it out.
func (tile Tile) String() string {
	switch {
	case tile.IsBomb():
		return "*"
	case tile.IsEmpty():
		return "."
	default:
		return strconv.Itoa(int(tile))
	}
}
