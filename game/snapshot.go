package game

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v2"
)

// BoardSnapshot is a YAML dump of a board, used for fixtures and for
// replaying a finished layout. Board rows are written top row first, one
// character per cell:
//
//	covered bomb   '*'    flagged bomb   'F'
//	covered safe   '#'    flagged safe   'f'
//	revealed bomb  'X'    revealed safe  '.'
type BoardSnapshot struct {
	Seed            uint64 `yaml:"seed"`
	SerializedBoard string `yaml:"board"`
}

func (snapshot *BoardSnapshot) Serialize() string {
	out, err := yaml.Marshal(snapshot)
	if err != nil {
		panic(err)
	}

	return string(out)
}

func LoadSnapshot(in string) (*BoardSnapshot, error) {
	var snapshot BoardSnapshot
	if err := yaml.Unmarshal([]byte(in), &snapshot); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	return &snapshot, nil
}

// Snapshot records the layout and play state of the board.
func (board *Board[H]) Snapshot(seed uint64) *BoardSnapshot {
	var b strings.Builder
	for y := int(board.tileMap.height) - 1; y >= 0; y-- {
		for x := 0; x < int(board.tileMap.width); x++ {
			b.WriteByte(board.serializeCell(Coordinates{X: uint16(x), Y: uint16(y)}))
		}
		if y > 0 {
			b.WriteByte('\n')
		}
	}
	return &BoardSnapshot{Seed: seed, SerializedBoard: b.String()}
}

func (board *Board[H]) serializeCell(coords Coordinates) byte {
	isBomb := board.tileMap.tile(coords).IsBomb()
	switch {
	case board.IsFlagged(coords) && isBomb:
		return 'F'
	case board.IsFlagged(coords):
		return 'f'
	case board.IsCovered(coords) && isBomb:
		return '*'
	case board.IsCovered(coords):
		return '#'
	case isBomb:
		return 'X'
	default:
		return '.'
	}
}

func (snapshot *BoardSnapshot) rows() ([]string, error) {
	rows := strings.Split(strings.TrimSpace(snapshot.SerializedBoard), "\n")
	for i := range rows {
		rows[i] = strings.TrimSpace(rows[i])
	}
	if len(rows) == 0 || rows[0] == "" {
		return nil, fmt.Errorf("%w: empty board", ErrInvalidSnapshot)
	}
	return rows, nil
}

// TileMap rebuilds the layout of the snapshot, ignoring play state.
func (snapshot *BoardSnapshot) TileMap() (*TileMap, error) {
	rows, err := snapshot.rows()
	if err != nil {
		return nil, err
	}

	var layout strings.Builder
	for _, row := range rows {
		for _, c := range row {
			switch c {
			case '*', 'F', 'X':
				layout.WriteByte('*')
			case '#', 'f', '.':
				layout.WriteByte('.')
			default:
				return nil, fmt.Errorf("%w: unexpected %q", ErrInvalidSnapshot, c)
			}
		}
		layout.WriteByte('\n')
	}

	tileMap, err := ParseLayout(layout.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}
	return tileMap, nil
}

// CreateBoard builds a board from the snapshot. A fresh board has every cell
// covered and unflagged; otherwise flags and revealed cells are restored.
func CreateBoard[H any](snapshot *BoardSnapshot, geometry Geometry, spawn func(Coordinates, Tile) H, fresh bool) (*Board[H], error) {
	tileMap, err := snapshot.TileMap()
	if err != nil {
		return nil, err
	}

	board := NewBoard(tileMap, geometry, spawn)
	if fresh {
		return board, nil
	}

	rows, _ := snapshot.rows()
	for i, row := range rows {
		y := uint16(len(rows) - 1 - i)
		for x, c := range row {
			coords := Coordinates{X: uint16(x), Y: y}
			switch c {
			case 'F', 'f':
				board.flagged.Add(coords)
			case '.':
				board.uncover(coords)
			case 'X':
				board.uncover(coords)
				losingBomb := coords
				board.losingBomb = &losingBomb
			}
		}
	}

	return board, nil
}
