package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
	"github.com/spf13/cobra"

	"github.com/Rubixdarcy/minesweeper/game"
)

var (
	gameConfig   = game.DefaultOptions()
	configPath   string
	directorName = "none"
	maxSteps     = 0
	dumpOnly     = false
	snapshotsDir string
	logLevel     = "warning"
	logFile      string
	games        = 0
	parallel     = 0
)

var rootCmd = &cobra.Command{
	Use:   "minesweeper",
	Short: "Play manual or computer-driven Minesweeper in the terminal",
	Long: `minesweeper is a Minesweeper game which supports human- or
computer-driven playing.

Run with no arguments to play manually
	minesweeper

Use the director flag to make the computer play for you
	minesweeper --director constraint

Print a generated layout as a YAML snapshot and exit
	minesweeper --dump --seed 42

Measure a director over many boards
	minesweeper --director constraint --games 1000 -w 16 -h 16 -m 40
`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := configureLogging(); err != nil {
			return err
		}

		options, err := resolveOptions(cmd)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if games > 0 {
			return runBench(cmd.Context(), out, options, directorName, games, parallel)
		}

		g, err := game.NewGame[struct{}](options, nil)
		if err != nil {
			return err
		}
		g.SavedSnapshotsDir = snapshotsDir

		if dumpOnly {
			fmt.Fprint(out, g.Board().TileMap())
			fmt.Fprint(out, g.Board().Snapshot(g.Seed()).Serialize())
			return nil
		}

		s := newSession(g, cmd.InOrStdin(), out)
		if directorName != "none" {
			director, err := newDirector(directorName, g.Seed())
			if err != nil {
				return err
			}
			return s.runDirector(director, maxSteps)
		}
		return s.run()
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func configureLogging() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	hooks := make(logrus.LevelHooks)
	if logFile != "" {
		hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   logFile,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
			Level:      level,
			Formatter:  &logrus.JSONFormatter{},
		})
		if err != nil {
			return fmt.Errorf("unable to open log file %s: %w", logFile, err)
		}
		hooks.Add(hook)
	}

	for _, log := range loggers() {
		log.SetLevel(level)
		log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
		log.SetOutput(os.Stderr)
		log.ReplaceHooks(hooks)
	}
	return nil
}

// resolveOptions layers explicitly set flags over the config file, or over
// the defaults when no file is given.
func resolveOptions(cmd *cobra.Command) (game.Options, error) {
	options := game.DefaultOptions()
	if configPath != "" {
		loaded, err := game.LoadOptions(configPath)
		if err != nil {
			return game.Options{}, err
		}
		options = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		options.Width = gameConfig.Width
	}
	if flags.Changed("height") {
		options.Height = gameConfig.Height
	}
	if flags.Changed("mines") {
		options.Bombs = gameConfig.Bombs
	}
	if flags.Changed("seed") {
		options.Seed = gameConfig.Seed
	}
	if flags.Changed("mode") {
		options.Start = gameConfig.Start
	}

	return options, options.Validate()
}

type startModeValue game.StartMode

func newStartModeValue(val game.StartMode, p *game.StartMode) *startModeValue {
	*p = val
	return (*startModeValue)(p)
}

var startModes = map[string]game.StartMode{
	"classic":     game.ClassicStart,
	"safe":        game.SafeStart,
	"first_click": game.FirstClickStart,
}

func (modeVal *startModeValue) String() string {
	return string(*modeVal)
}

func (modeVal *startModeValue) Set(value string) error {
	if mode, isValid := startModes[value]; isValid {
		*modeVal = startModeValue(mode)
		return nil
	}
	return fmt.Errorf("invalid start mode %q", value)
}

func (modeVal *startModeValue) Type() string {
	return "game.StartMode"
}

func init() {
	// Define our root -help without a shorthand, as we'll use -h for --height
	// Ref: https://github.com/spf13/cobra/issues/291
	rootCmd.Flags().Bool("help", false, "Help for this command")

	rootCmd.Flags().Uint16VarP(&gameConfig.Width, "width", "w", gameConfig.Width, "Width of game board, in cells")
	rootCmd.Flags().Uint16VarP(&gameConfig.Height, "height", "h", gameConfig.Height, "Height of game board, in cells")
	rootCmd.Flags().IntVarP(&gameConfig.Bombs, "mines", "m", gameConfig.Bombs, "Number of mines to place in the game board")
	rootCmd.Flags().Uint64Var(&gameConfig.Seed, "seed", 0, "Seed for mine placement (0 picks one at random)")
	rootCmd.Flags().Var(newStartModeValue(game.SafeStart, &gameConfig.Start), "mode", `Game mode, controlling behaviour of the start of a game.
safe: the first empty cell is uncovered when the board is created
first_click: mines are placed after the first click, away from the clicked cell
classic: mines are left as is (first click can lose the game)`)
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML file with board options")
	rootCmd.Flags().StringVarP(&directorName, "director", "d", directorName, "Make the computer play: none, random or constraint")
	rootCmd.Flags().IntVar(&maxSteps, "steps", 0, "Stop the director after this many actions (0 plays until the game ends)")
	rootCmd.Flags().BoolVar(&dumpOnly, "dump", false, "Print the generated board and its YAML snapshot, then exit")
	rootCmd.Flags().StringVar(&snapshotsDir, "snapshots", "", "Directory where snapshots of finished boards are saved")
	rootCmd.Flags().StringVar(&logLevel, "log-level", logLevel, "Log level: debug, info, warning or error")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "Also write JSON logs to this file, rotated as it grows")
	rootCmd.Flags().IntVar(&games, "games", 0, "Play this many boards with the director and print its win rate")
	rootCmd.Flags().IntVar(&parallel, "parallel", 0, "Boards played at once by --games (0 uses every CPU)")
}
