package game

import (
	"fmt"
	"math/rand/v2"
	"os"

	"gopkg.in/yaml.v2"
)

type StartMode string

const (
	// ClassicStart leaves the first reveal to chance.
	ClassicStart StartMode = "classic"
	// SafeStart uncovers the first empty tile as soon as the board is built.
	SafeStart StartMode = "safe"
	// FirstClickStart defers bomb placement until the first reveal, keeping
	// that cell and its neighbors free of bombs.
	FirstClickStart StartMode = "first_click"
)

type PositionMode string

const (
	Centered PositionMode = "centered"
	Custom   PositionMode = "custom"
)

type Position struct {
	Mode PositionMode `yaml:"mode"`
	// Offset from the centered position, for Centered boards
	Offset Vec2 `yaml:"offset"`
	// Lower left corner of the board, for Custom boards
	Origin Vec2 `yaml:"origin"`
}

type Options struct {
	Width  uint16 `yaml:"width"`
	Height uint16 `yaml:"height"`
	Bombs  int    `yaml:"bombs"`

	TileSize    float64  `yaml:"tile_size"`
	TilePadding float64  `yaml:"tile_padding"`
	Position    Position `yaml:"position"`

	Start StartMode `yaml:"start"`

	// Seed for bomb placement; zero picks a random seed
	Seed uint64 `yaml:"seed"`
}

func DefaultOptions() Options {
	return Options{
		Width:       20,
		Height:      20,
		Bombs:       40,
		TileSize:    defaultTileSize,
		TilePadding: 3,
		Position:    Position{Mode: Centered},
		Start:       SafeStart,
	}
}

// LoadOptions reads a YAML options file on top of DefaultOptions.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, err
	}
	return ParseOptions(data)
}

func ParseOptions(data []byte) (Options, error) {
	options := DefaultOptions()
	if err := yaml.UnmarshalStrict(data, &options); err != nil {
		return Options{}, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	if err := options.Validate(); err != nil {
		return Options{}, err
	}
	return options, nil
}

func (options Options) Validate() error {
	switch {
	case options.Width == 0 || options.Height == 0:
		return fmt.Errorf("%w: %w", ErrInvalidOptions, ErrInvalidDimensions)
	case options.Bombs < 0 || options.Bombs > int(options.Width)*int(options.Height):
		return fmt.Errorf("%w: %w", ErrInvalidOptions, ErrBombCountExceedsCapacity)
	case options.Start == FirstClickStart && options.Bombs >= int(options.Width)*int(options.Height):
		return fmt.Errorf("%w: %w: the first click needs one safe cell", ErrInvalidOptions, ErrBombCountExceedsCapacity)
	case options.TileSize <= 0:
		return fmt.Errorf("%w: tile size must be positive, got %g", ErrInvalidOptions, options.TileSize)
	case options.TilePadding < 0 || options.TilePadding >= options.TileSize:
		return fmt.Errorf("%w: tile padding %g does not fit tile size %g", ErrInvalidOptions, options.TilePadding, options.TileSize)
	}

	switch options.Position.Mode {
	case Centered, Custom:
	default:
		return fmt.Errorf("%w: unknown position mode %q", ErrInvalidOptions, options.Position.Mode)
	}

	switch options.Start {
	case ClassicStart, SafeStart, FirstClickStart:
	default:
		return fmt.Errorf("%w: unknown start mode %q", ErrInvalidOptions, options.Start)
	}

	return nil
}

func (options Options) Geometry() Geometry {
	geometry := Geometry{Origin: options.Position.Origin, TileSize: options.TileSize}
	if options.Position.Mode != Custom {
		geometry = CenteredGeometry(options.Width, options.Height, options.TileSize, options.Position.Offset)
	}
	geometry.TilePadding = options.TilePadding
	return geometry
}

// Rand returns the bomb placement source for these options, along with the
// seed it was built from.
func (options Options) Rand() (*rand.Rand, uint64) {
	seed := options.Seed
	for seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed)), seed
}

func (options Options) Marshal() ([]byte, error) {
	return yaml.Marshal(options)
}
