package game

import "errors"

var (
	ErrInvalidDimensions        = errors.New("map width and height must be greater than zero")
	ErrBombCountExceedsCapacity = errors.New("bomb count exceeds available cells")
	ErrOutOfBounds              = errors.New("coordinates out of bounds")
	ErrNotCovered               = errors.New("tile is not covered")
	ErrInvalidOptions           = errors.New("invalid board options")
	ErrInvalidSnapshot          = errors.New("invalid board snapshot")
)
