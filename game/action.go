package game

import "fmt"

type Action int

const (
	// Click reveals a cell
	Click Action = iota
	// RightClick toggles a flag
	RightClick
	// MiddleClick chords around a numbered cell
	MiddleClick
)

func (action Action) String() string {
	switch action {
	case Click:
		return "click"
	case RightClick:
		return "right click"
	case MiddleClick:
		return "middle click"
	default:
		return fmt.Sprintf("Action(%d)", int(action))
	}
}

type CellAction struct {
	At     Coordinates
	Action Action
}

func (cellAction CellAction) String() string {
	return fmt.Sprintf("%v %v", cellAction.Action, cellAction.At)
}

// ActionResult holds the outcome of a Click or MiddleClick, or the flag
// change of a RightClick.
type ActionResult[H any] struct {
	CellAction
	Outcome RevealOutcome[H]
	Flag    FlagToggle
}

// Apply dispatches a single action to the board.
func (board *Board[H]) Apply(cellAction CellAction) (ActionResult[H], error) {
	result := ActionResult[H]{CellAction: cellAction}

	var err error
	switch cellAction.Action {
	case Click:
		result.Outcome = board.Reveal(cellAction.At)
	case RightClick:
		result.Flag, err = board.Mark(cellAction.At)
	case MiddleClick:
		result.Outcome, err = board.Chord(cellAction.At)
	default:
		err = fmt.Errorf("unknown action %v", cellAction.Action)
	}

	return result, err
}
