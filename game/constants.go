package game

import "strconv"

// CellState is what the player sees at a single coordinate.
type CellState int
type BoardState int

const (
	Unrevealed CellState = iota - 1
	Empty
	Number1
	Number2
	Number3
	Number4
	Number5
	Number6
	Number7
	Number8
	Flag
	FlagWrong
	Mine
	MineUnrevealed
	MineLosing
)

var CellStates = []CellState{
	Unrevealed,
	Empty,
	Number1,
	Number2,
	Number3,
	Number4,
	Number5,
	Number6,
	Number7,
	Number8,
	Flag,
	FlagWrong,
	Mine,
	MineUnrevealed,
	MineLosing,
}

var cellStateNames = map[CellState]string{
	Unrevealed:     "unrevealed",
	Empty:          "empty",
	Flag:           "flag",
	FlagWrong:      "flag_wrong",
	Mine:           "mine",
	MineUnrevealed: "mine_unrevealed",
	MineLosing:     "mine_losing",
}

func (state CellState) String() string {
	if state >= Number1 && state <= Number8 {
		return "number" + strconv.Itoa(int(state))
	}
	if name, ok := cellStateNames[state]; ok {
		return name
	}
	return "unknown"
}

// IsNumber reports whether the state shows a bomb count between 1 and 8.
func (state CellState) IsNumber() bool {
	return state >= Number1 && state <= Number8
}

const (
	Lost BoardState = iota
	Won
	Ongoing
)

func (state BoardState) String() string {
	switch state {
	case Lost:
		return "lost"
	case Won:
		return "won"
	default:
		return "ongoing"
	}
}

const (
	maxNeighbors = 8

	defaultTileSize = 32
)
