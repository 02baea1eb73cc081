package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Rubixdarcy/minesweeper/game"
)

type benchResult struct {
	seed  uint64
	state game.BoardState
	steps int
}

// runBench plays games boards with the named director, parallel at a time.
// Board seeds are drawn from the options' source, so a fixed --seed replays
// the same set of boards.
func runBench(ctx context.Context, out io.Writer, options game.Options, name string, games, parallel int) error {
	if name == "none" {
		return errors.New("benchmarks need a director, pick one with --director")
	}
	if parallel < 1 {
		parallel = runtime.GOMAXPROCS(0)
	}

	rng, _ := options.Rand()
	seeds := make([]uint64, games)
	for i := range seeds {
		seeds[i] = rng.Uint64()
	}

	results := make([]benchResult, games)
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, seed := range seeds {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			result, err := playBenchGame(options, name, seed)
			if err != nil {
				return fmt.Errorf("game with seed %d: %w", seed, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var won, lost, steps int
	for _, result := range results {
		switch result.state {
		case game.Won:
			won++
		case game.Lost:
			lost++
		}
		steps += result.steps
	}

	game.Log.WithFields(logrus.Fields{
		"games":    games,
		"parallel": parallel,
		"steps":    steps,
	}).Info("Benchmark finished")

	fmt.Fprintf(out, "played %d games with the %s director: %d won, %d lost, %d unfinished\n",
		games, name, won, lost, games-won-lost)
	if games > 0 {
		fmt.Fprintf(out, "win rate %.1f%%\n", 100*float64(won)/float64(games))
	}
	return nil
}

func playBenchGame(options game.Options, name string, seed uint64) (benchResult, error) {
	options.Seed = seed
	g, err := game.NewGame[struct{}](options, nil)
	if err != nil {
		return benchResult{}, err
	}
	g.SavedSnapshotsDir = snapshotsDir

	director, err := newDirector(name, seed)
	if err != nil {
		return benchResult{}, err
	}

	result := benchResult{seed: seed}
	for {
		cellAction, ok := director.Act(g.Board())
		if !ok {
			break
		}
		if _, err := g.Apply(cellAction); err != nil {
			return benchResult{}, err
		}
		result.steps++
	}
	result.state = g.Board().State()
	return result, nil
}
