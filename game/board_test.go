package game

import (
	"errors"
	"slices"
	"testing"
)

const threeByThree = `
	...
	...
	*..
`

func TestNewBoard(t *testing.T) {
	tileMap := mustParseLayout(t, threeByThree)

	var spawned []Coordinates
	board := NewBoard(tileMap, Geometry{TileSize: 1}, func(coords Coordinates, tile Tile) int {
		spawned = append(spawned, coords)
		return int(tile)
	})

	if board.CoveredCount() != 9 || board.FlagCount() != 0 {
		t.Fatalf("covered %d, flagged %d, want 9, 0", board.CoveredCount(), board.FlagCount())
	}
	if want := slices.Collect(tileMap.Cells()); !slices.Equal(spawned, want) {
		t.Fatalf("spawn order = %v, want %v", spawned, want)
	}
	if handle, ok := board.Handle(c(0, 0)); !ok || handle != int(BombTile) {
		t.Fatalf("Handle((0, 0)) = %d, %t", handle, ok)
	}
	if board.State() != Ongoing || board.IsWon() {
		t.Fatalf("new board should be ongoing")
	}

	plain := NewBoard[struct{}](tileMap, Geometry{TileSize: 1}, nil)
	if plain.CoveredCount() != 9 {
		t.Fatalf("nil spawn covered %d cells, want 9", plain.CoveredCount())
	}
}

func TestGenerateBoard(t *testing.T) {
	board, err := GenerateBoard[struct{}](10, 8, 12, Geometry{TileSize: 16}, seeded(3), nil)
	if err != nil {
		t.Fatal(err)
	}
	if w, h := board.Size(); w != 10 || h != 8 {
		t.Fatalf("Size() = %d, %d", w, h)
	}
	if board.TileMap().BombCount() != 12 || board.RemainingBombs() != 12 {
		t.Fatalf("bomb count %d, remaining %d", board.TileMap().BombCount(), board.RemainingBombs())
	}

	if _, err := GenerateBoard[struct{}](0, 8, 1, Geometry{TileSize: 16}, seeded(3), nil); !errors.Is(err, ErrInvalidDimensions) {
		t.Fatalf("error = %v, want %v", err, ErrInvalidDimensions)
	}
	if _, err := GenerateBoard[struct{}](2, 2, 5, Geometry{TileSize: 16}, seeded(3), nil); !errors.Is(err, ErrBombCountExceedsCapacity) {
		t.Fatalf("error = %v, want %v", err, ErrBombCountExceedsCapacity)
	}

	safe, err := GenerateBoardAvoiding[struct{}](10, 8, 12, Geometry{TileSize: 16}, seeded(3), c(5, 5), nil)
	if err != nil {
		t.Fatal(err)
	}
	if outcome := safe.Reveal(c(5, 5)); outcome.Status != Uncovered || len(outcome.Revealed) < 9 {
		t.Fatalf("safe start revealed %d cells with status %v", len(outcome.Revealed), outcome.Status)
	}
}

func TestTranslatePosition(t *testing.T) {
	tileMap := mustParseLayout(t, threeByThree)
	viewport := V(100, 80)

	tests := []struct {
		name     string
		geometry Geometry
		position Vec2
		want     Coordinates
		wantOk   bool
	}{
		{"center", CenteredGeometry(3, 3, 10, Vec2{}), V(50, 40), c(1, 1), true},
		{"lower left corner", CenteredGeometry(3, 3, 10, Vec2{}), V(35, 25), c(0, 0), true},
		{"just inside upper right", CenteredGeometry(3, 3, 10, Vec2{}), V(64.9, 54.9), c(2, 2), true},
		{"upper right edge", CenteredGeometry(3, 3, 10, Vec2{}), V(65, 55), Coordinates{}, false},
		{"left of board", CenteredGeometry(3, 3, 10, Vec2{}), V(34.9, 40), Coordinates{}, false},
		{"viewport origin", CenteredGeometry(3, 3, 10, Vec2{}), V(0, 0), Coordinates{}, false},
		{"offset", CenteredGeometry(3, 3, 10, V(20, 0)), V(55, 30), c(0, 0), true},
		{"custom origin", Geometry{Origin: V(0, 0), TileSize: 5}, V(57, 41), c(1, 0), true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			board := NewBoard[struct{}](tileMap, test.geometry, nil)
			got, ok := board.TranslatePosition(test.position, viewport)
			if got != test.want || ok != test.wantOk {
				t.Fatalf("TranslatePosition(%v) = %v, %t, want %v, %t", test.position, got, ok, test.want, test.wantOk)
			}
			if board.CoveredCount() != 9 {
				t.Fatalf("TranslatePosition mutated the board")
			}
		})
	}
}

func TestToggleFlag(t *testing.T) {
	board := newTestBoard(t, threeByThree)

	flagged, err := board.ToggleFlag(c(2, 2))
	if err != nil || !flagged {
		t.Fatalf("ToggleFlag() = %t, %v, want true, nil", flagged, err)
	}
	if !board.IsFlagged(c(2, 2)) || board.FlagCount() != 1 || board.RemainingBombs() != 0 {
		t.Fatalf("flag not recorded")
	}

	flagged, err = board.ToggleFlag(c(2, 2))
	if err != nil || flagged {
		t.Fatalf("ToggleFlag() = %t, %v, want false, nil", flagged, err)
	}
	if board.IsFlagged(c(2, 2)) || board.FlagCount() != 0 || board.CoveredCount() != 9 {
		t.Fatalf("unflagging did not restore the board")
	}
}

func TestToggleFlagNotCovered(t *testing.T) {
	board := newTestBoard(t, threeByThree)
	board.Reveal(c(1, 1))

	for _, coords := range []Coordinates{c(1, 1), c(3, 3), c(0xFFFF, 0)} {
		if _, err := board.ToggleFlag(coords); !errors.Is(err, ErrNotCovered) {
			t.Fatalf("ToggleFlag(%v) error = %v, want %v", coords, err, ErrNotCovered)
		}
		if board.IsFlagged(coords) {
			t.Fatalf("IsFlagged(%v) = true for a cell that is not covered", coords)
		}
	}
}

func TestMark(t *testing.T) {
	board := newTestBoard(t, threeByThree)

	tests := []FlagToggle{
		{At: c(0, 0), Before: false, After: true},
		{At: c(1, 0), Before: false, After: true},
		{At: c(0, 0), Before: true, After: false},
	}
	for _, want := range tests {
		got, err := board.Mark(want.At)
		if err != nil || got != want {
			t.Fatalf("Mark(%v) = %+v, %v, want %+v", want.At, got, err, want)
		}
	}

	if board.RemainingBombs() != 0 {
		t.Fatalf("RemainingBombs() = %d, want 0", board.RemainingBombs())
	}
	board.Mark(c(2, 2))
	if board.RemainingBombs() != -1 {
		t.Fatalf("RemainingBombs() = %d, want -1", board.RemainingBombs())
	}
}

func TestAdjacentCovered(t *testing.T) {
	board := newTestBoard(t, threeByThree)
	board.Mark(c(0, 0))

	if got := board.AdjacentCovered(c(1, 1)); len(got) != 8 {
		t.Fatalf("AdjacentCovered((1, 1)) = %v, want all 8 neighbors", got)
	}

	board.Reveal(c(1, 0))
	board.Reveal(c(0, 1))

	want := []Coordinates{c(0, 0), c(2, 0), c(2, 1), c(2, 2), c(1, 2), c(0, 2)}
	if got := board.AdjacentCovered(c(1, 1)); !slices.Equal(got, want) {
		t.Fatalf("AdjacentCovered((1, 1)) = %v, want %v", got, want)
	}
	if got := board.AdjacentCovered(c(0, 0)); !slices.Equal(got, []Coordinates{c(1, 1)}) {
		t.Fatalf("AdjacentCovered((0, 0)) = %v, want [(1, 1)]", got)
	}
}

func TestViewWhilePlaying(t *testing.T) {
	board := newTestBoard(t, threeByThree)
	board.Mark(c(2, 2))
	board.Reveal(c(1, 1))

	tests := []struct {
		coords Coordinates
		want   CellState
	}{
		{c(0, 0), Unrevealed},
		{c(2, 2), Flag},
		{c(1, 1), Number1},
		{c(5, 5), Unrevealed},
	}
	for _, test := range tests {
		if got := board.View(test.coords); got != test.want {
			t.Errorf("View(%v) = %v, want %v", test.coords, got, test.want)
		}
	}
}

func TestViewAfterLoss(t *testing.T) {
	board := newTestBoard(t, `
		*.*
		...
		*..
	`)
	board.Mark(c(0, 2))
	board.Mark(c(2, 0))
	board.Reveal(c(0, 0))

	if board.State() != Lost {
		t.Fatalf("State() = %v, want lost", board.State())
	}
	if losing, ok := board.LosingBomb(); !ok || losing != c(0, 0) {
		t.Fatalf("LosingBomb() = %v, %t", losing, ok)
	}

	tests := []struct {
		coords Coordinates
		want   CellState
	}{
		{c(0, 0), MineLosing},
		{c(0, 2), Flag},
		{c(2, 0), FlagWrong},
		{c(2, 2), MineUnrevealed},
		{c(1, 1), Unrevealed},
	}
	for _, test := range tests {
		if got := board.View(test.coords); got != test.want {
			t.Errorf("View(%v) = %v, want %v", test.coords, got, test.want)
		}
	}
}

func TestViewAfterWin(t *testing.T) {
	board := newTestBoard(t, threeByThree)
	board.Reveal(c(2, 2))

	if board.State() != Won {
		t.Fatalf("State() = %v, want won", board.State())
	}
	if got := board.View(c(0, 0)); got != Mine {
		t.Fatalf("View((0, 0)) = %v, want %v", got, Mine)
	}
	if got := board.View(c(2, 2)); got != Empty {
		t.Fatalf("View((2, 2)) = %v, want %v", got, Empty)
	}
}

func TestRevealSafeStart(t *testing.T) {
	board := newTestBoard(t, threeByThree)

	outcome, ok := board.RevealSafeStart()
	if !ok || outcome.Trigger != c(2, 0) || !outcome.Complete {
		t.Fatalf("RevealSafeStart() = %+v, %t", outcome, ok)
	}

	full := newTestBoard(t, "**\n**\n")
	if _, ok := full.RevealSafeStart(); ok {
		t.Fatalf("RevealSafeStart() succeeded on a board without empty tiles")
	}
}

func TestCellStateNames(t *testing.T) {
	names := make(map[string]bool)
	for _, state := range CellStates {
		name := state.String()
		if name == "unknown" || names[name] {
			t.Fatalf("%d has name %q", int(state), name)
		}
		names[name] = true
	}
	if Number3.String() != "number3" || !Number3.IsNumber() || Flag.IsNumber() || Empty.IsNumber() {
		t.Fatalf("unexpected number states")
	}
}

func TestBoardTileBounds(t *testing.T) {
	tileMap := mustParseLayout(t, threeByThree)
	board := NewBoard[struct{}](tileMap, Geometry{Origin: V(10, 20), TileSize: 8, TilePadding: 2}, nil)

	bounds, ok := board.TileBounds(c(2, 1))
	if want := (Bounds{Position: V(27, 29), Size: V(6, 6)}); !ok || bounds != want {
		t.Fatalf("TileBounds(2, 1) = %+v, %t, want %+v", bounds, ok, want)
	}
	if _, ok := board.TileBounds(c(3, 0)); ok {
		t.Fatalf("TileBounds() outside the map succeeded")
	}
}
