package core

import "errors"

var (
	// ErrConfiguration marks malformed construction input. It is only
	// returned while building a model.
	ErrConfiguration = errors.New("configuration error")

	// ErrOutOfBounds marks a position outside the grid dimensions.
	ErrOutOfBounds = errors.New("position out of bounds")

	// ErrInvalidTopology marks a neighbor pattern that the topology does not
	// define.
	ErrInvalidTopology = errors.New("invalid topology")

	// ErrInvalidGrid marks degenerate grid dimensions.
	ErrInvalidGrid = errors.New("invalid grid")
)
