package game

// Observer is the player-visible part of a Board.
type Observer interface {
	Size() (width, height uint16)
	State() BoardState
	View(Coordinates) CellState
	IsCovered(Coordinates) bool
	IsFlagged(Coordinates) bool
	AdjacentCovered(Coordinates) []Coordinates
}

type Director interface {
	/**
	 * Choose the next action from what the player can see. Returns false
	 * when the director has nothing left to do.
	 */
	Act(Observer) (CellAction, bool)
}
