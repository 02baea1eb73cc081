package game

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Game owns the board of the current session and replaces it on restart.
type Game[H any] struct {
	options Options
	spawn   func(Coordinates, Tile) H

	// Path to directory where final snapshots of boards should be saved
	SavedSnapshotsDir string

	board *Board[H]
	seed  uint64
	rng   *rand.Rand

	// Bombs have not been placed yet (FirstClickStart)
	pending bool
	ended   bool
}

func NewGame[H any](options Options, spawn func(Coordinates, Tile) H) (*Game[H], error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}

	game := &Game[H]{
		options: options,
		spawn:   spawn,
	}
	game.rng, game.seed = options.Rand()

	if err := game.reset(); err != nil {
		return nil, err
	}
	return game, nil
}

func (game *Game[H]) Board() *Board[H] {
	return game.board
}

func (game *Game[H]) Options() Options {
	return game.options
}

// Seed is the seed the current board was generated from.
func (game *Game[H]) Seed() uint64 {
	return game.seed
}

// Restart discards the current board and starts a new one from a seed drawn
// from the previous game.
func (game *Game[H]) Restart() error {
	game.seed = game.rng.Uint64()
	game.rng = rand.New(rand.NewPCG(game.seed, game.seed))
	return game.reset()
}

func (game *Game[H]) reset() error {
	options := game.options
	geometry := options.Geometry()

	game.ended = false
	game.pending = options.Start == FirstClickStart

	if game.pending {
		tileMap, err := EmptyTileMap(options.Width, options.Height)
		if err != nil {
			return err
		}
		game.board = NewBoard(tileMap, geometry, game.spawn)
		return nil
	}

	board, err := GenerateBoard(options.Width, options.Height, options.Bombs, geometry, game.rng, game.spawn)
	if err != nil {
		return err
	}
	game.board = board

	if options.Start == SafeStart {
		if outcome, ok := board.RevealSafeStart(); ok {
			Log.WithFields(logrus.Fields{
				"start":    outcome.Trigger,
				"revealed": len(outcome.Revealed),
			}).Debug("Revealed safe start")
			game.checkEnded()
		}
	}

	return nil
}

// Apply forwards an action to the current board. With FirstClickStart, the
// first Click that uncovers a cell places the bombs around it first; clicks
// on flagged or nonexistent cells leave the bombs unplaced.
func (game *Game[H]) Apply(cellAction CellAction) (ActionResult[H], error) {
	if game.pending && cellAction.Action == Click && game.revealable(cellAction.At) {
		if err := game.placeAround(cellAction.At); err != nil {
			return ActionResult[H]{CellAction: cellAction}, err
		}
	}

	result, err := game.board.Apply(cellAction)
	if err == nil {
		game.checkEnded()
	}
	return result, err
}

func (game *Game[H]) revealable(coords Coordinates) bool {
	return game.board.IsCovered(coords) && !game.board.IsFlagged(coords)
}

func (game *Game[H]) placeAround(safe Coordinates) error {
	options := game.options
	previous := game.board

	board, err := GenerateBoardAvoiding(options.Width, options.Height, options.Bombs, previous.geometry, game.rng, safe,
		func(coords Coordinates, _ Tile) H {
			return previous.covered[coords]
		})
	if err != nil {
		return err
	}
	for coords := range previous.flagged {
		board.flagged.Add(coords)
	}

	game.board = board
	game.pending = false
	return nil
}

func (game *Game[H]) checkEnded() {
	if game.ended || game.board.State() == Ongoing {
		return
	}
	game.ended = true
	game.onGameEnd()
}

func (game *Game[H]) onGameEnd() {
	Log.WithFields(logrus.Fields{
		"state": game.board.State(),
		"seed":  game.seed,
	}).Info("Game ended")

	if _, err := game.saveSnapshot(time.Now()); err != nil {
		Log.WithError(err).Error("Failed to save board snapshot")
	}
}

// saveSnapshot writes the board to SavedSnapshotsDir, returning the path
// written, or "" when snapshots are disabled.
func (game *Game[H]) saveSnapshot(t time.Time) (string, error) {
	if game.SavedSnapshotsDir == "" {
		return "", nil
	}

	stat, err := os.Stat(game.SavedSnapshotsDir)
	if err != nil {
		if !os.IsNotExist(err) {
			return "", err
		}
		if err := os.MkdirAll(game.SavedSnapshotsDir, 0o777); err != nil {
			return "", err
		}
	} else if !stat.Mode().IsDir() {
		return "", fmt.Errorf("%s is not a directory; cannot save snapshots to it", game.SavedSnapshotsDir)
	}

	path := filepath.Join(game.SavedSnapshotsDir, game.generateReplayFilename(t))

	// Never overwrite an earlier snapshot
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o666)
	if err != nil {
		return "", err
	}
	defer file.Close()

	snapshot := game.board.Snapshot(game.seed)
	if _, err := file.WriteString(snapshot.Serialize()); err != nil {
		return "", err
	}

	Log.WithField("path", path).Debug("Saved board snapshot")
	return path, nil
}

func (game *Game[H]) generateReplayFilename(t time.Time) string {
	filenameBuilder := strings.Builder{}

	filenameBuilder.WriteString(t.Format("20060102_150405_"))

	var stateStr string
	switch game.board.State() {
	case Won:
		stateStr = "win"
	case Lost:
		stateStr = "loss"
	default:
		stateStr = "other"
	}
	filenameBuilder.WriteString(stateStr)

	fmt.Fprintf(&filenameBuilder, "_%d", game.seed)
	filenameBuilder.WriteString(".yaml")

	return filenameBuilder.String()
}
