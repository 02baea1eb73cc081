package random

import (
	"math/rand/v2"

	"github.com/Rubixdarcy/minesweeper/game"
)

// Director clicks covered, unflagged cells in a random order fixed on its
// first Act.
type Director struct {
	rand  *rand.Rand
	order []game.Coordinates
}

func New(rng *rand.Rand) *Director {
	return &Director{rand: rng}
}

func (director *Director) Act(observer game.Observer) (game.CellAction, bool) {
	if observer.State() != game.Ongoing {
		return game.CellAction{}, false
	}

	if director.order == nil {
		director.shuffle(observer)
	}

	for _, coords := range director.order {
		if observer.IsCovered(coords) && !observer.IsFlagged(coords) {
			return game.CellAction{At: coords, Action: game.Click}, true
		}
	}
	return game.CellAction{}, false
}

func (director *Director) shuffle(observer game.Observer) {
	width, height := observer.Size()
	director.order = make([]game.Coordinates, 0, int(width)*int(height))
	for y := uint16(0); y < height; y++ {
		for x := uint16(0); x < width; x++ {
			director.order = append(director.order, game.Coordinates{X: x, Y: y})
		}
	}

	if director.rand == nil {
		director.rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	director.rand.Shuffle(len(director.order), func(i, j int) {
		director.order[i], director.order[j] = director.order[j], director.order[i]
	})
}
