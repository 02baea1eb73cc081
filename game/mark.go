package game

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// FlagToggle is the result of a single flag request.
type FlagToggle struct {
	At     Coordinates
	Before bool
	After  bool
}

// Mark flips the flag on a covered cell and reports the flag state before
// and after. Uncovered and nonexistent cells fail with ErrNotCovered.
func (board *Board[H]) Mark(coords Coordinates) (FlagToggle, error) {
	if !board.IsCovered(coords) {
		return FlagToggle{At: coords}, fmt.Errorf("mark %v: %w", coords, ErrNotCovered)
	}

	toggle := FlagToggle{At: coords, Before: board.flagged.Contains(coords)}
	if toggle.Before {
		board.flagged.Remove(coords)
	} else {
		board.flagged.Add(coords)
	}
	toggle.After = !toggle.Before

	Log.WithFields(logrus.Fields{
		"coords":  coords,
		"flagged": toggle.After,
	}).Debug("Toggled flag")

	return toggle, nil
}

// ToggleFlag is Mark returning only the new flag state.
func (board *Board[H]) ToggleFlag(coords Coordinates) (bool, error) {
	toggle, err := board.Mark(coords)
	return toggle.After, err
}
