package game

import (
	"github.com/gammazero/deque"
	"github.com/sirupsen/logrus"

	"github.com/Rubixdarcy/minesweeper/util/collections"
)

type RevealStatus int

const (
	// Blocked: the trigger is flagged, or a chord's flags do not match
	Blocked RevealStatus = iota
	// AlreadyRevealed: nothing left to uncover at the trigger
	AlreadyRevealed
	// HitBomb: a bomb was uncovered and the game is lost
	HitBomb
	// Uncovered: one or more safe cells were uncovered
	Uncovered
)

func (status RevealStatus) String() string {
	switch status {
	case Blocked:
		return "blocked"
	case AlreadyRevealed:
		return "already revealed"
	case HitBomb:
		return "hit bomb"
	default:
		return "uncovered"
	}
}

// RevealOutcome describes everything a single reveal or chord changed.
type RevealOutcome[H any] struct {
	Status RevealStatus
	// Trigger is the revealed cell, or the bomb that was hit
	Trigger Coordinates
	// Revealed holds the handle of every cell uncovered by the call
	Revealed map[Coordinates]H
	// Complete is set when the call uncovered the last safe cell
	Complete bool
}

// Coordinates returns the uncovered cells in row-major order.
func (outcome RevealOutcome[H]) Coordinates() []Coordinates {
	return outcome.Set().SortedFunc(Coordinates.Compare)
}

func (outcome RevealOutcome[H]) Set() collections.Set[Coordinates] {
	set := make(collections.Set[Coordinates], len(outcome.Revealed))
	for coords := range outcome.Revealed {
		set.Add(coords)
	}
	return set
}

// Reveal uncovers coords. Empty cells cascade through every connected empty
// cell and its border; flagged cells are never uncovered.
func (board *Board[H]) Reveal(coords Coordinates) RevealOutcome[H] {
	outcome := RevealOutcome[H]{Trigger: coords}

	if board.IsFlagged(coords) {
		outcome.Status = Blocked
		return outcome
	}
	if !board.IsCovered(coords) {
		outcome.Status = AlreadyRevealed
		return outcome
	}

	board.flood([]Coordinates{coords}, &outcome)
	return outcome
}

// flood uncovers every start cell and cascades through empty ones,
// accumulating into outcome. It stops at the first bomb.
func (board *Board[H]) flood(starts []Coordinates, outcome *RevealOutcome[H]) {
	outcome.Revealed = make(map[Coordinates]H)
	outcome.Status = AlreadyRevealed

	var stack deque.Deque[Coordinates]
	for _, start := range starts {
		stack.PushBack(start)

		for stack.Len() > 0 {
			coords := stack.PopBack()
			if board.IsFlagged(coords) {
				continue
			}
			handle, ok := board.uncover(coords)
			if !ok {
				continue
			}
			outcome.Revealed[coords] = handle

			tile := board.tileMap.tile(coords)
			if tile.IsBomb() {
				board.explode(coords, outcome)
				return
			}

			if Log.IsLevelEnabled(logrus.DebugLevel) {
				Log.WithFields(logrus.Fields{
					"coords": coords,
					"tile":   tile,
				}).Debug("Uncovered tile")
			}

			outcome.Status = Uncovered
			if !tile.IsEmpty() {
				continue
			}

			adjacent := board.AdjacentCovered(coords)
			if board.shuffle != nil {
				board.shuffle(adjacent)
			}
			for _, neighbor := range adjacent {
				stack.PushBack(neighbor)
			}
		}
	}

	if outcome.Status == Uncovered && board.IsWon() {
		outcome.Complete = true
		Log.WithField("revealed", len(outcome.Revealed)).Info("Board completed")
	}
}

func (board *Board[H]) explode(coords Coordinates, outcome *RevealOutcome[H]) {
	losingBomb := coords
	board.losingBomb = &losingBomb

	outcome.Status = HitBomb
	outcome.Trigger = coords

	Log.WithField("coords", coords).Info("Boom !")
}

// Chord reveals every unflagged covered neighbor of an uncovered numbered
// cell once the player has flagged as many neighbors as its number.
func (board *Board[H]) Chord(coords Coordinates) (RevealOutcome[H], error) {
	outcome := RevealOutcome[H]{Trigger: coords}

	tile, err := board.tileMap.TileAt(coords)
	if err != nil {
		return outcome, err
	}
	if board.IsCovered(coords) || tile.IsBomb() {
		outcome.Status = Blocked
		return outcome, nil
	}

	var numFlaggedNeighbors uint8
	var targets []Coordinates
	for _, neighbor := range board.AdjacentCovered(coords) {
		if board.IsFlagged(neighbor) {
			numFlaggedNeighbors++
		} else {
			targets = append(targets, neighbor)
		}
	}

	if numFlaggedNeighbors != tile.BombNeighbors() {
		outcome.Status = Blocked
		return outcome, nil
	}
	if len(targets) == 0 {
		outcome.Status = AlreadyRevealed
		return outcome, nil
	}

	board.flood(targets, &outcome)
	return outcome, nil
}
