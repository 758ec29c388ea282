package board

import (
	"fmt"
	"math/rand/v2"
)

// InvalidConfigError is returned when game parameters cannot describe a
// playable board.
type InvalidConfigError struct {
	message string
}

// [InvalidConfigError] implements [error]
func (e InvalidConfigError) Error() string {
	return e.message
}

func validateParams(width, height, mineCount int) error {
	if width <= 0 || height <= 0 {
		return InvalidConfigError{
			fmt.Sprintf("board dimensions must be positive, got %dx%d", width, height),
		}
	}
	if mineCount < 0 || mineCount > width*height-1 {
		return InvalidConfigError{
			fmt.Sprintf(
				"mine count must be within [0, %d], got %d",
				width*height-1, mineCount,
			),
		}
	}
	return nil
}

// newGrid lays out a fresh board: mineCount distinct cells drawn
// uniformly from all positions via a shuffle, then one adjacency pass.
// The layout never changes after this point.
func newGrid(width, height, mineCount int, rnd *rand.Rand) (*Grid, error) {
	if err := validateParams(width, height, mineCount); err != nil {
		return nil, err
	}
	g := &Grid{
		width:     width,
		height:    height,
		mineCount: mineCount,
		cells:     make([]Cell, width*height),
	}
	for _, i := range rnd.Perm(width * height)[:mineCount] {
		g.cells[i].mine = true
	}
	g.computeAdjacency()
	return g, nil
}
