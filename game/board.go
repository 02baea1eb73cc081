package game

import (
	"math/rand/v2"

	"github.com/sirupsen/logrus"

	"github.com/Rubixdarcy/minesweeper/util/collections"
)

// Board is the play state of one game. H is the presentation layer's handle
// for a covered cell (a sprite, an entity id, ...); the board only stores
// and hands it back.
//
// A Board is not safe for concurrent use.
type Board[H any] struct {
	tileMap  *TileMap
	geometry Geometry
	bounds   Bounds

	covered map[Coordinates]H
	flagged collections.Set[Coordinates]

	losingBomb *Coordinates

	// shuffle reorders each batch of neighbors queued by the flood fill
	shuffle func([]Coordinates)
}

// NewBoard covers every cell of tileMap. spawn is called once per cell in
// row-major order to obtain its handle; a nil spawn stores zero handles.
func NewBoard[H any](tileMap *TileMap, geometry Geometry, spawn func(Coordinates, Tile) H) *Board[H] {
	board := &Board[H]{
		tileMap:  tileMap,
		geometry: geometry,
		bounds:   geometry.bounds(tileMap.width, tileMap.height),
		covered:  make(map[Coordinates]H, tileMap.NumCells()),
		flagged:  make(collections.Set[Coordinates]),
	}

	for coords := range tileMap.Cells() {
		var handle H
		if spawn != nil {
			handle = spawn(coords, tileMap.tile(coords))
		}
		board.covered[coords] = handle
	}

	Log.WithFields(logrus.Fields{
		"width":  tileMap.width,
		"height": tileMap.height,
		"bombs":  tileMap.bombCount,
	}).Debug("Created board")

	return board
}

// GenerateBoard generates a random TileMap and wraps it in a new Board.
func GenerateBoard[H any](width, height uint16, bombCount int, geometry Geometry, rng *rand.Rand, spawn func(Coordinates, Tile) H) (*Board[H], error) {
	tileMap, err := GenerateTileMap(width, height, bombCount, rng)
	if err != nil {
		return nil, err
	}
	return NewBoard(tileMap, geometry, spawn), nil
}

// GenerateBoardAvoiding is GenerateBoard with bombs kept away from safe.
func GenerateBoardAvoiding[H any](width, height uint16, bombCount int, geometry Geometry, rng *rand.Rand, safe Coordinates, spawn func(Coordinates, Tile) H) (*Board[H], error) {
	tileMap, err := GenerateTileMapAvoiding(width, height, bombCount, rng, safe)
	if err != nil {
		return nil, err
	}
	return NewBoard(tileMap, geometry, spawn), nil
}

func (board *Board[H]) TileMap() *TileMap {
	return board.tileMap
}

func (board *Board[H]) Geometry() Geometry {
	return board.geometry
}

func (board *Board[H]) Bounds() Bounds {
	return board.bounds
}

// TileBounds returns the sprite rectangle of a cell of the board.
func (board *Board[H]) TileBounds(coords Coordinates) (Bounds, bool) {
	if !board.tileMap.Contains(coords) {
		return Bounds{}, false
	}
	return board.geometry.TileBounds(coords), true
}

func (board *Board[H]) Size() (width, height uint16) {
	return board.tileMap.width, board.tileMap.height
}

// TranslatePosition maps a position measured from the lower left corner of
// a viewport of the given size onto the board. The board's geometry is
// relative to the viewport's center.
func (board *Board[H]) TranslatePosition(position, viewport Vec2) (Coordinates, bool) {
	position = position.Sub(viewport.Scaled(0.5))
	if !board.bounds.Contains(position) {
		return Coordinates{}, false
	}

	relative := position.Sub(board.bounds.Position)
	coords := Coordinates{
		X: uint16(relative.X / board.geometry.TileSize),
		Y: uint16(relative.Y / board.geometry.TileSize),
	}
	if !board.tileMap.Contains(coords) {
		return Coordinates{}, false
	}
	return coords, true
}

func (board *Board[H]) IsCovered(coords Coordinates) bool {
	_, covered := board.covered[coords]
	return covered
}

func (board *Board[H]) IsFlagged(coords Coordinates) bool {
	return board.flagged.Contains(coords)
}

// Handle returns the handle of a covered cell.
func (board *Board[H]) Handle(coords Coordinates) (H, bool) {
	handle, covered := board.covered[coords]
	return handle, covered
}

func (board *Board[H]) CoveredCount() int {
	return len(board.covered)
}

func (board *Board[H]) FlagCount() int {
	return board.flagged.Len()
}

// RemainingBombs is the bomb count minus the number of flags, negative when
// the player has placed more flags than there are bombs.
func (board *Board[H]) RemainingBombs() int {
	return board.tileMap.bombCount - board.flagged.Len()
}

// AdjacentCovered returns the neighbors of coords that are still covered,
// flagged ones included.
func (board *Board[H]) AdjacentCovered(coords Coordinates) []Coordinates {
	adjacent := make([]Coordinates, 0, maxNeighbors)
	for neighbor := range coords.Neighbors() {
		if board.IsCovered(neighbor) {
			adjacent = append(adjacent, neighbor)
		}
	}
	return adjacent
}

// IsWon reports whether only bombs remain covered.
func (board *Board[H]) IsWon() bool {
	return board.losingBomb == nil && len(board.covered) == board.tileMap.bombCount
}

func (board *Board[H]) State() BoardState {
	switch {
	case board.losingBomb != nil:
		return Lost
	case board.IsWon():
		return Won
	default:
		return Ongoing
	}
}

// LosingBomb returns the bomb that ended the game, if any.
func (board *Board[H]) LosingBomb() (Coordinates, bool) {
	if board.losingBomb == nil {
		return Coordinates{}, false
	}
	return *board.losingBomb, true
}

// View returns what the player should see at coords.
func (board *Board[H]) View(coords Coordinates) CellState {
	if !board.tileMap.Contains(coords) {
		return Unrevealed
	}

	tile := board.tileMap.tile(coords)
	state := board.State()

	if !board.IsCovered(coords) {
		if tile.IsBomb() {
			return MineLosing
		}
		return CellState(tile)
	}

	switch {
	case board.IsFlagged(coords):
		if state == Lost && !tile.IsBomb() {
			return FlagWrong
		}
		return Flag
	case tile.IsBomb() && state == Lost:
		return MineUnrevealed
	case tile.IsBomb() && state == Won:
		return Mine
	default:
		return Unrevealed
	}
}

// RevealSafeStart reveals the first empty tile of the map, if there is one.
func (board *Board[H]) RevealSafeStart() (RevealOutcome[H], bool) {
	coords, ok := board.tileMap.SafeStart()
	if !ok {
		return RevealOutcome[H]{}, false
	}
	return board.Reveal(coords), true
}

// uncover removes coords from the covered set, returning its handle.
func (board *Board[H]) uncover(coords Coordinates) (H, bool) {
	handle, covered := board.covered[coords]
	if !covered {
		return handle, false
	}
	delete(board.covered, coords)
	// Flagged cells are never queued for reveal; keep the invariant anyway
	board.flagged.Remove(coords)
	return handle, true
}
