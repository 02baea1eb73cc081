package cmd

import (
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"

	"github.com/Rubixdarcy/minesweeper/director/constraint"
	"github.com/Rubixdarcy/minesweeper/director/random"
	"github.com/Rubixdarcy/minesweeper/game"
)

func newDirector(name string, seed uint64) (game.Director, error) {
	rng := rand.New(rand.NewPCG(seed, ^seed))
	switch name {
	case "random":
		return random.New(rng), nil
	case "constraint":
		return constraint.New(rng), nil
	default:
		return nil, fmt.Errorf("unknown director %q", name)
	}
}

func loggers() []*logrus.Logger {
	return []*logrus.Logger{game.Log, constraint.Log}
}
