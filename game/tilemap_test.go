package game

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// checkTileMap verifies bomb count and every neighbor count by brute force.
func checkTileMap(t *testing.T, tileMap *TileMap, wantBombs int) {
	t.Helper()

	width, height := int(tileMap.Width()), int(tileMap.Height())
	isBomb := func(x, y int) bool {
		return x >= 0 && y >= 0 && x < width && y < height &&
			tileMap.tiles[y][x] == BombTile
	}

	bombs := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if isBomb(x, y) {
				bombs++
				continue
			}
			want := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if (dx != 0 || dy != 0) && isBomb(x+dx, y+dy) {
						want++
					}
				}
			}
			tile, err := tileMap.TileAt(c(uint16(x), uint16(y)))
			if err != nil {
				t.Fatalf("TileAt(%d, %d) failed: %v", x, y, err)
			}
			if int(tile.BombNeighbors()) != want || tile.IsEmpty() != (want == 0) {
				t.Fatalf("tile (%d, %d) = %v, want %d bomb neighbors", x, y, tile, want)
			}
		}
	}

	if bombs != wantBombs || tileMap.BombCount() != wantBombs {
		t.Fatalf("map has %d bomb tiles and BombCount() %d, want %d", bombs, tileMap.BombCount(), wantBombs)
	}
}

func TestGenerateTileMap(t *testing.T) {
	tests := []struct {
		name          string
		width, height uint16
		bombs         int
	}{
		{"1x1 empty", 1, 1, 0},
		{"1x1 full", 1, 1, 1},
		{"9x9(10)", 9, 9, 10},
		{"16x16(40)", 16, 16, 40},
		{"30x16(99)", 30, 16, 99},
		{"5x3 full", 5, 3, 15},
		{"1x50(20)", 1, 50, 20},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			for seed := uint64(1); seed <= 5; seed++ {
				tileMap, err := GenerateTileMap(test.width, test.height, test.bombs, seeded(seed))
				if err != nil {
					t.Fatalf("GenerateTileMap() failed: %v", err)
				}
				if tileMap.Width() != test.width || tileMap.Height() != test.height {
					t.Fatalf("map is %dx%d, want %dx%d", tileMap.Width(), tileMap.Height(), test.width, test.height)
				}
				checkTileMap(t, tileMap, test.bombs)
			}
		})
	}
}

func TestGenerateTileMapIsDeterministic(t *testing.T) {
	a, err := GenerateTileMap(30, 16, 99, seeded(42))
	if err != nil {
		t.Fatal(err)
	}
	b, err := GenerateTileMap(30, 16, 99, seeded(42))
	if err != nil {
		t.Fatal(err)
	}
	if a.Layout() != b.Layout() {
		t.Fatalf("same seed produced different layouts:\n%s\n%s", a.Layout(), b.Layout())
	}

	other, err := GenerateTileMap(30, 16, 99, seeded(43))
	if err != nil {
		t.Fatal(err)
	}
	if a.Layout() == other.Layout() {
		t.Fatalf("different seeds produced the same layout")
	}
}

func TestGenerateTileMapErrors(t *testing.T) {
	tests := []struct {
		name          string
		width, height uint16
		bombs         int
		want          error
	}{
		{"zero width", 0, 5, 0, ErrInvalidDimensions},
		{"zero height", 5, 0, 0, ErrInvalidDimensions},
		{"too many bombs", 3, 3, 10, ErrBombCountExceedsCapacity},
		{"negative bombs", 3, 3, -1, ErrBombCountExceedsCapacity},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := GenerateTileMap(test.width, test.height, test.bombs, seeded(1))
			if !errors.Is(err, test.want) {
				t.Fatalf("GenerateTileMap() error = %v, want %v", err, test.want)
			}
		})
	}

	if _, err := EmptyTileMap(0, 0); !errors.Is(err, ErrInvalidDimensions) {
		t.Fatalf("EmptyTileMap(0, 0) error = %v, want %v", err, ErrInvalidDimensions)
	}
}

func TestEmptyTileMap(t *testing.T) {
	tileMap, err := EmptyTileMap(4, 2)
	if err != nil {
		t.Fatal(err)
	}
	checkTileMap(t, tileMap, 0)
	if tileMap.NumCells() != 8 {
		t.Fatalf("NumCells() = %d, want 8", tileMap.NumCells())
	}
}

func TestTileAtOutOfBounds(t *testing.T) {
	tileMap, err := EmptyTileMap(3, 2)
	if err != nil {
		t.Fatal(err)
	}

	for _, coords := range []Coordinates{c(3, 0), c(0, 2), c(100, 100)} {
		if _, err := tileMap.TileAt(coords); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("TileAt(%v) error = %v, want %v", coords, err, ErrOutOfBounds)
		}
	}
}

func TestParseLayout(t *testing.T) {
	tileMap := mustParseLayout(t, `
		...
		...
		*..
	`)

	tests := []struct {
		coords Coordinates
		want   Tile
	}{
		{c(0, 0), BombTile},
		{c(1, 1), NeighborTile(1)},
		{c(1, 0), NeighborTile(1)},
		{c(0, 1), NeighborTile(1)},
		{c(2, 2), EmptyTile},
		{c(2, 0), EmptyTile},
	}
	for _, test := range tests {
		if tile, _ := tileMap.TileAt(test.coords); tile != test.want {
			t.Errorf("TileAt(%v) = %v, want %v", test.coords, tile, test.want)
		}
	}

	if want := "...\n11.\n*1.\n"; tileMap.Layout() != want {
		t.Fatalf("Layout() = %q, want %q", tileMap.Layout(), want)
	}
	if !strings.HasPrefix(tileMap.String(), "Map (3, 3) with 1 bombs:\n") {
		t.Fatalf("String() = %q", tileMap.String())
	}
}

func TestParseLayoutRoundTrip(t *testing.T) {
	tileMap, err := GenerateTileMap(12, 7, 20, seeded(7))
	if err != nil {
		t.Fatal(err)
	}

	parsed := mustParseLayout(t, tileMap.Layout())
	if parsed.Layout() != tileMap.Layout() {
		t.Fatalf("round trip changed layout:\n%s\n%s", tileMap.Layout(), parsed.Layout())
	}
	checkTileMap(t, parsed, 20)
}

func TestParseLayoutErrors(t *testing.T) {
	tests := []struct {
		name   string
		layout string
	}{
		{"empty", "\n\n"},
		{"ragged", "...\n..\n"},
		{"unknown cell", ".?.\n...\n"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := ParseLayout(test.layout); err == nil {
				t.Fatalf("ParseLayout(%q) succeeded", test.layout)
			}
		})
	}
}

func TestGenerateTileMapAvoiding(t *testing.T) {
	tests := []struct {
		name          string
		width, height uint16
		bombs         int
		safe          Coordinates
		wantEmpty     bool
	}{
		{"center", 9, 9, 10, c(4, 4), true},
		{"corner", 9, 9, 10, c(0, 0), true},
		{"crowded neighborhood", 9, 9, 77, c(8, 8), true},
		{"only the cell fits", 3, 3, 8, c(1, 1), false},
		{"dense corner", 4, 4, 13, c(0, 0), false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			for seed := uint64(1); seed <= 10; seed++ {
				tileMap, err := GenerateTileMapAvoiding(test.width, test.height, test.bombs, seeded(seed), test.safe)
				if err != nil {
					t.Fatalf("GenerateTileMapAvoiding() failed: %v", err)
				}
				checkTileMap(t, tileMap, test.bombs)

				tile, _ := tileMap.TileAt(test.safe)
				if tile.IsBomb() {
					t.Fatalf("seed %d: safe start %v is a bomb", seed, test.safe)
				}
				if test.wantEmpty && !tile.IsEmpty() {
					t.Fatalf("seed %d: safe start %v = %v, want empty", seed, test.safe, tile)
				}
			}
		})
	}
}

func TestGenerateTileMapAvoidingErrors(t *testing.T) {
	if _, err := GenerateTileMapAvoiding(3, 3, 9, seeded(1), c(1, 1)); !errors.Is(err, ErrBombCountExceedsCapacity) {
		t.Fatalf("error = %v, want %v", err, ErrBombCountExceedsCapacity)
	}
	if _, err := GenerateTileMapAvoiding(3, 3, 1, seeded(1), c(3, 1)); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("error = %v, want %v", err, ErrOutOfBounds)
	}
}

func TestSafeStart(t *testing.T) {
	tileMap := mustParseLayout(t, `
		....
		....
		*...
		*...
	`)
	coords, ok := tileMap.SafeStart()
	if !ok || coords != c(2, 0) {
		t.Fatalf("SafeStart() = %v, %t, want (2, 0), true", coords, ok)
	}

	crowded := mustParseLayout(t, "*.\n**\n")
	if _, ok := crowded.SafeStart(); ok {
		t.Fatalf("SafeStart() found an empty tile on a map without one")
	}
}

func TestTile(t *testing.T) {
	if !BombTile.IsBomb() || BombTile.IsEmpty() || BombTile.BombNeighbors() != 0 {
		t.Fatalf("BombTile misclassified")
	}
	if !NeighborTile(0).IsEmpty() {
		t.Fatalf("NeighborTile(0) should be empty")
	}
	if got := NeighborTile(8).BombNeighbors(); got != 8 {
		t.Fatalf("NeighborTile(8).BombNeighbors() = %d", got)
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("NeighborTile(9) did not panic")
		}
	}()
	NeighborTile(9)
}
