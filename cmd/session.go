package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Rubixdarcy/minesweeper/game"
)

var glyphs = map[game.CellState]string{
	game.Unrevealed:     "#",
	game.Empty:          ".",
	game.Number1:        "1",
	game.Number2:        "2",
	game.Number3:        "3",
	game.Number4:        "4",
	game.Number5:        "5",
	game.Number6:        "6",
	game.Number7:        "7",
	game.Number8:        "8",
	game.Flag:           "F",
	game.FlagWrong:      "x",
	game.Mine:           "*",
	game.MineUnrevealed: "o",
	game.MineLosing:     "@",
}

const help = `commands:
  r X Y    reveal a cell
  f X Y    toggle a flag
  c X Y    chord around a number
  t PX PY  reveal the cell under a pixel, from the board's lower left corner
  p        print the board
  n        new game
  q        quit
`

// session is a line-oriented presentation of a game.
type session struct {
	game *game.Game[struct{}]
	in   *bufio.Scanner
	out  io.Writer
}

func newSession(g *game.Game[struct{}], in io.Reader, out io.Writer) *session {
	return &session{
		game: g,
		in:   bufio.NewScanner(in),
		out:  out,
	}
}

var errQuit = errors.New("quit")

func (s *session) run() error {
	fmt.Fprint(s.out, help)
	s.render()

	for {
		fmt.Fprint(s.out, "> ")
		if !s.in.Scan() {
			fmt.Fprintln(s.out)
			return s.in.Err()
		}

		err := s.execute(s.in.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
}

func (s *session) execute(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "q", "quit":
		return errQuit
	case "p", "print":
		s.render()
		return nil
	case "n", "new":
		if err := s.game.Restart(); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "new game (seed %d)\n", s.game.Seed())
		s.render()
		return nil
	case "h", "help":
		fmt.Fprint(s.out, help)
		return nil
	}

	if len(fields) != 3 {
		return fmt.Errorf("usage: %s X Y", fields[0])
	}

	var action game.Action
	switch fields[0] {
	case "r", "reveal":
		action = game.Click
	case "f", "flag":
		action = game.RightClick
	case "c", "chord":
		action = game.MiddleClick
	case "t", "tap":
		return s.tap(fields[1], fields[2])
	default:
		return fmt.Errorf("unknown command %q", fields[0])
	}

	coords, err := parseCoordinates(fields[1], fields[2])
	if err != nil {
		return err
	}
	return s.apply(game.CellAction{At: coords, Action: action})
}

// tap reveals the cell under a pixel measured from the board's lower left corner.
func (s *session) tap(px, py string) error {
	x, err := strconv.ParseFloat(px, 64)
	if err != nil {
		return err
	}
	y, err := strconv.ParseFloat(py, 64)
	if err != nil {
		return err
	}

	board := s.game.Board()
	// Centering this viewport puts the board's lower left corner at pixel (0, 0)
	viewport := board.Bounds().Position.Scaled(-2)

	coords, ok := board.TranslatePosition(game.V(x, y), viewport)
	if !ok {
		return fmt.Errorf("(%g, %g) is outside the board", x, y)
	}
	return s.apply(game.CellAction{At: coords, Action: game.Click})
}

func (s *session) apply(cellAction game.CellAction) error {
	if s.game.Board().State() != game.Ongoing {
		return fmt.Errorf("the game is over, start a new one with n")
	}

	result, err := s.game.Apply(cellAction)
	if err != nil {
		return err
	}

	s.report(result)
	s.render()
	return nil
}

func (s *session) report(result game.ActionResult[struct{}]) {
	if result.Action == game.RightClick {
		fmt.Fprintf(s.out, "%v: flagged %t -> %t\n", result.At, result.Flag.Before, result.Flag.After)
		return
	}

	outcome := result.Outcome
	switch outcome.Status {
	case game.HitBomb:
		fmt.Fprintf(s.out, "%v: boom, bomb at %v\n", result.At, outcome.Trigger)
	case game.Uncovered:
		fmt.Fprintf(s.out, "%v: uncovered %d cells\n", result.At, len(outcome.Revealed))
	default:
		fmt.Fprintf(s.out, "%v: %v\n", result.At, outcome.Status)
	}
	if outcome.Complete {
		fmt.Fprintln(s.out, "board complete, you win!")
	}
}

func (s *session) runDirector(director game.Director, maxSteps int) error {
	s.render()

	for step := 1; maxSteps <= 0 || step <= maxSteps; step++ {
		cellAction, ok := director.Act(s.game.Board())
		if !ok {
			break
		}

		fmt.Fprintf(s.out, "step %d: %v\n", step, cellAction)
		result, err := s.game.Apply(cellAction)
		if err != nil {
			return err
		}
		s.report(result)
	}

	s.render()
	return nil
}

func (s *session) render() {
	board := s.game.Board()
	width, height := board.Size()

	fmt.Fprintf(s.out, "%03d  %v\n", board.RemainingBombs(), board.State())
	for y := int(height) - 1; y >= 0; y-- {
		fmt.Fprintf(s.out, "%3d ", y)
		for x := 0; x < int(width); x++ {
			fmt.Fprint(s.out, glyphs[board.View(game.Coordinates{X: uint16(x), Y: uint16(y)})])
		}
		fmt.Fprintln(s.out)
	}
}

func parseCoordinates(xs, ys string) (game.Coordinates, error) {
	x, err := strconv.ParseUint(xs, 10, 16)
	if err != nil {
		return game.Coordinates{}, fmt.Errorf("invalid x %q", xs)
	}
	y, err := strconv.ParseUint(ys, 10, 16)
	if err != nil {
		return game.Coordinates{}, fmt.Errorf("invalid y %q", ys)
	}
	return game.Coordinates{X: uint16(x), Y: uint16(y)}, nil
}
