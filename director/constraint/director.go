package constraint

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Rubixdarcy/minesweeper/director/random"
	"github.com/Rubixdarcy/minesweeper/game"
	"github.com/Rubixdarcy/minesweeper/util/collections"
)

var Log = logrus.New()

// Director plays from the constraints revealed numbers put on their covered
// neighbors, and guesses only when no constraint settles a cell.
type Director struct {
	rand   *rand.Rand
	random *random.Director
}

func New(rng *rand.Rand) *Director {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Director{
		rand:   rng,
		random: random.New(rng),
	}
}

// Observation states that numMines bombs hide among cells.
type Observation struct {
	origin   game.Coordinates
	numMines int
	cells    collections.Set[game.Coordinates]
}

func (observation Observation) String() string {
	var cellsRepr strings.Builder
	for i, cell := range observation.sortedCells() {
		if i > 0 {
			cellsRepr.WriteString(", ")
		}
		cellsRepr.WriteString(cell.String())
	}

	return fmt.Sprintf("Obs[%8s, %d ε %s]", observation.origin, observation.numMines, cellsRepr.String())
}

func (observation Observation) MineProbability() float32 {
	return float32(observation.numMines) / float32(observation.cells.Len())
}

func (observation Observation) sortedCells() []game.Coordinates {
	return observation.cells.SortedFunc(game.Coordinates.Compare)
}

func (director *Director) Act(observer game.Observer) (game.CellAction, bool) {
	if observer.State() != game.Ongoing {
		return game.CellAction{}, false
	}

	observations := observe(observer)

	actors := []func([]*Observation) (game.CellAction, bool){
		director.actDeliberate,
		director.actSubsets,
		director.actLowestProbability,
	}
	for _, actor := range actors {
		if action, ok := actor(observations); ok {
			return action, true
		}
	}

	return director.random.Act(observer)
}

// observe builds one observation per revealed number with covered,
// unflagged neighbors, in row-major order of their origin. Numbers whose
// covered cells duplicate an earlier observation are skipped.
func observe(observer game.Observer) []*Observation {
	var observations []*Observation

	width, height := observer.Size()
	for y := uint16(0); y < height; y++ {
		for x := uint16(0); x < width; x++ {
			origin := game.Coordinates{X: x, Y: y}
			state := observer.View(origin)
			if !state.IsNumber() {
				continue
			}

			observation := &Observation{
				origin:   origin,
				numMines: int(state),
				cells:    make(collections.Set[game.Coordinates]),
			}
			for _, neighbor := range observer.AdjacentCovered(origin) {
				if observer.IsFlagged(neighbor) {
					observation.numMines--
				} else {
					observation.cells.Add(neighbor)
				}
			}

			if observation.cells.Len() > 0 && !hasDuplicate(observations, observation) {
				observations = append(observations, observation)
			}
		}
	}

	return observations
}

func hasDuplicate(observations []*Observation, observation *Observation) bool {
	for _, other := range observations {
		if other.cells.Equal(observation.cells) {
			return true
		}
	}
	return false
}

func (director *Director) actDeliberate(observations []*Observation) (game.CellAction, bool) {
	for _, observation := range observations {
		switch {
		case observation.numMines == observation.cells.Len():
			Log.WithField("observation", observation).Debug("All cells are mines")
			return game.CellAction{At: observation.sortedCells()[0], Action: game.RightClick}, true
		case observation.numMines == 0:
			Log.WithField("observation", observation).Debug("No cells are mines")
			return game.CellAction{At: observation.origin, Action: game.MiddleClick}, true
		}
	}
	return game.CellAction{}, false
}

// actSubsets compares pairs of observations where one's cells are a subset of
// the other's; the cells only the larger one holds carry the difference.
func (director *Director) actSubsets(observations []*Observation) (game.CellAction, bool) {
	for _, observation := range observations {
		for _, other := range observations {
			if observation == other {
				continue
			}
			if _, isSubset := observation.cells.IntersectionEx(other.cells); !isSubset {
				continue
			}

			split := Observation{
				origin:   other.origin,
				numMines: other.numMines - observation.numMines,
				cells:    other.cells.Difference(observation.cells),
			}
			if split.cells.Len() == 0 {
				continue
			}

			switch {
			case split.numMines == 0:
				Log.WithField("observation", split).Debug("Split observation has no mines")
				return game.CellAction{At: split.sortedCells()[0], Action: game.Click}, true
			case split.numMines == split.cells.Len():
				Log.WithField("observation", split).Debug("Split observation is all mines")
				return game.CellAction{At: split.sortedCells()[0], Action: game.RightClick}, true
			}
		}
	}
	return game.CellAction{}, false
}

func (director *Director) actLowestProbability(observations []*Observation) (game.CellAction, bool) {
	cellProbabilities := make(map[game.Coordinates]float32)
	for _, observation := range observations {
		probability := observation.MineProbability()
		for cell := range observation.cells {
			if pastProbability, ok := cellProbabilities[cell]; !ok || probability < pastProbability {
				cellProbabilities[cell] = probability
			}
		}
	}
	if len(cellProbabilities) == 0 {
		return game.CellAction{}, false
	}

	lowestProbability := float32(1)
	for _, probability := range cellProbabilities {
		lowestProbability = min(lowestProbability, probability)
	}

	lowestProbabilityCells := make(collections.Set[game.Coordinates])
	for cell, probability := range cellProbabilities {
		if probability <= lowestProbability {
			lowestProbabilityCells.Add(cell)
		}
	}

	candidates := lowestProbabilityCells.SortedFunc(game.Coordinates.Compare)
	cell := candidates[director.rand.IntN(len(candidates))]

	Log.WithFields(logrus.Fields{
		"cell":        cell,
		"probability": lowestProbability,
		"candidates":  len(candidates),
	}).Debug("Guessing lowest probability cell")

	return game.CellAction{At: cell, Action: game.Click}, true
}
