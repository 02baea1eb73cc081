package game

import (
	"fmt"
	"iter"
	"math/rand/v2"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Rubixdarcy/minesweeper/util/collections"
)

// TileMap is the immutable classification grid of a game. Rows are indexed
// by y, with y = 0 at the bottom of the board.
type TileMap struct {
	width, height uint16
	bombCount     int
	tiles         [][]Tile
}

func newTileMap(width, height uint16) (*TileMap, error) {
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, width, height)
	}

	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
	}

	return &TileMap{
		width:  width,
		height: height,
		tiles:  tiles,
	}, nil
}

// EmptyTileMap returns a map of the given size with no bombs.
func EmptyTileMap(width, height uint16) (*TileMap, error) {
	return newTileMap(width, height)
}

// GenerateTileMap places bombCount bombs uniformly at random and classifies
// every other cell. A nil rng is replaced by a randomly seeded one.
func GenerateTileMap(width, height uint16, bombCount int, rng *rand.Rand) (*TileMap, error) {
	tileMap, err := newTileMap(width, height)
	if err != nil {
		return nil, err
	}
	if err := tileMap.placeBombs(bombCount, rng, nil); err != nil {
		return nil, err
	}
	tileMap.computeNeighborCounts()
	return tileMap, nil
}

// GenerateTileMapAvoiding is GenerateTileMap with a safe start: safe and its
// neighbors are kept free of bombs so the first reveal at safe cascades. If
// the bombs do not fit outside that neighborhood, only safe itself is spared.
func GenerateTileMapAvoiding(width, height uint16, bombCount int, rng *rand.Rand, safe Coordinates) (*TileMap, error) {
	tileMap, err := newTileMap(width, height)
	if err != nil {
		return nil, err
	}
	if !tileMap.Contains(safe) {
		return nil, fmt.Errorf("safe start %v: %w", safe, ErrOutOfBounds)
	}

	exclude := collections.NewSet(safe)
	for neighbor := range tileMap.neighbors(safe) {
		exclude.Add(neighbor)
	}
	if bombCount > tileMap.NumCells()-exclude.Len() {
		Log.WithFields(logrus.Fields{
			"safe":  safe,
			"bombs": bombCount,
		}).Debug("Too many bombs to clear the safe start neighborhood")
		exclude = collections.NewSet(safe)
	}

	if err := tileMap.placeBombs(bombCount, rng, exclude); err != nil {
		return nil, err
	}
	tileMap.computeNeighborCounts()
	return tileMap, nil
}

// ParseLayout builds a TileMap from rows of '*' (bomb) and '.' (safe). Digits
// are accepted as safe cells and recomputed, so Layout output parses back.
// The first row is the top of the board. Blank lines are ignored.
func ParseLayout(layout string) (*TileMap, error) {
	var rows []string
	for _, line := range strings.Split(layout, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			rows = append(rows, line)
		}
	}
	if len(rows) == 0 || len(rows) > 0xFFFF || len(rows[0]) > 0xFFFF {
		return nil, fmt.Errorf("%w: layout has %d rows", ErrInvalidDimensions, len(rows))
	}

	tileMap, err := newTileMap(uint16(len(rows[0])), uint16(len(rows)))
	if err != nil {
		return nil, err
	}

	for i, row := range rows {
		if len(row) != int(tileMap.width) {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidDimensions, i, len(row), tileMap.width)
		}
		y := int(tileMap.height) - 1 - i
		for x, c := range row {
			switch {
			case c == '*':
				tileMap.tiles[y][x] = BombTile
				tileMap.bombCount++
			case c == '.', c >= '1' && c <= '8':
			default:
				return nil, fmt.Errorf("unexpected %q at row %d column %d", c, i, x)
			}
		}
	}

	tileMap.computeNeighborCounts()
	return tileMap, nil
}

// placeBombs must run once, on a freshly created map.
func (tileMap *TileMap) placeBombs(count int, rng *rand.Rand, exclude collections.Set[Coordinates]) error {
	if count < 0 {
		return fmt.Errorf("%w: negative bomb count %d", ErrBombCountExceedsCapacity, count)
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	// Store cell indexes, to shuffle later and fill bombs
	cellIndexes := make([]int, 0, tileMap.NumCells())
	for coords := range tileMap.Cells() {
		if !exclude.Contains(coords) {
			cellIndexes = append(cellIndexes, tileMap.index(coords))
		}
	}
	if count > len(cellIndexes) {
		return fmt.Errorf("%w: %d bombs for %d cells", ErrBombCountExceedsCapacity, count, len(cellIndexes))
	}

	rng.Shuffle(len(cellIndexes), func(i, j int) {
		cellIndexes[i], cellIndexes[j] = cellIndexes[j], cellIndexes[i]
	})
	for _, cellIdx := range cellIndexes[:count] {
		y, x := cellIdx/int(tileMap.width), cellIdx%int(tileMap.width)
		tileMap.tiles[y][x] = BombTile
	}
	tileMap.bombCount = count

	return nil
}

func (tileMap *TileMap) computeNeighborCounts() {
	for coords := range tileMap.Cells() {
		if tileMap.tile(coords).IsBomb() {
			continue
		}
		count := uint8(0)
		for neighbor := range tileMap.neighbors(coords) {
			if tileMap.tile(neighbor).IsBomb() {
				count++
			}
		}
		tileMap.tiles[coords.Y][coords.X] = NeighborTile(count)
	}
}

func (tileMap *TileMap) Width() uint16 {
	return tileMap.width
}

func (tileMap *TileMap) Height() uint16 {
	return tileMap.height
}

func (tileMap *TileMap) NumCells() int {
	return int(tileMap.width) * int(tileMap.height)
}

func (tileMap *TileMap) BombCount() int {
	return tileMap.bombCount
}

func (tileMap *TileMap) Contains(coords Coordinates) bool {
	return coords.X < tileMap.width && coords.Y < tileMap.height
}

func (tileMap *TileMap) TileAt(coords Coordinates) (Tile, error) {
	if !tileMap.Contains(coords) {
		return EmptyTile, fmt.Errorf("tile %v on %dx%d map: %w", coords, tileMap.width, tileMap.height, ErrOutOfBounds)
	}
	return tileMap.tile(coords), nil
}

func (tileMap *TileMap) tile(coords Coordinates) Tile {
	return tileMap.tiles[coords.Y][coords.X]
}

func (tileMap *TileMap) index(coords Coordinates) int {
	return int(coords.Y)*int(tileMap.width) + int(coords.X)
}

// Cells yields every coordinate of the map in row-major order.
func (tileMap *TileMap) Cells() iter.Seq[Coordinates] {
	return func(yield func(Coordinates) bool) {
		for y := uint16(0); y < tileMap.height; y++ {
			for x := uint16(0); x < tileMap.width; x++ {
				if !yield(Coordinates{X: x, Y: y}) {
					return
				}
			}
		}
	}
}

// neighbors yields the in-bounds neighbors of coords.
func (tileMap *TileMap) neighbors(coords Coordinates) iter.Seq[Coordinates] {
	return func(yield func(Coordinates) bool) {
		for neighbor := range coords.Neighbors() {
			if tileMap.Contains(neighbor) && !yield(neighbor) {
				return
			}
		}
	}
}

// SafeStart returns the first empty tile in row-major order.
func (tileMap *TileMap) SafeStart() (Coordinates, bool) {
	for coords := range tileMap.Cells() {
		if tileMap.tile(coords).IsEmpty() {
			return coords, true
		}
	}
	return Coordinates{}, false
}

// String dumps the map, top row first, with a header of its size and bombs.
func (tileMap *TileMap) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Map (%d, %d) with %d bombs:\n", tileMap.width, tileMap.height, tileMap.bombCount)
	b.WriteString(tileMap.Layout())
	return b.String()
}

// Layout renders the classification grid, top row first.
func (tileMap *TileMap) Layout() string {
	var b strings.Builder
	for y := int(tileMap.height) - 1; y >= 0; y-- {
		for _, tile := range tileMap.tiles[y] {
			b.WriteString(tile.String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
