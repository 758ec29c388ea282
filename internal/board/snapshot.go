package board

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"gopkg.in/yaml.v2"
)

// Snapshot is a yaml-friendly image of a board: one rune per cell (see
// Cell.serialize), rows separated by newlines. Mine positions are part
// of the encoding, so snapshots are for debug dumps and test fixtures,
// not for handing to players.
type Snapshot struct {
	SerializedBoard string `yaml:"board,flow"`
}

func (g *Game) Snapshot() *Snapshot {
	var b strings.Builder
	for y := 0; y < g.grid.height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < g.grid.width; x++ {
			b.WriteRune(g.grid.at(x, y).serialize())
		}
	}
	return &Snapshot{SerializedBoard: b.String()}
}

func (s *Snapshot) Serialize() (string, error) {
	out, err := yaml.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Game rebuilds a playable game from the snapshot. Adjacency counts
// and game state are recomputed rather than stored.
func (s *Snapshot) Game(rnd *rand.Rand) (*Game, error) {
	rows := strings.Split(s.SerializedBoard, "\n")
	height := len(rows)
	if height == 0 || len(rows[0]) == 0 {
		return nil, InvalidConfigError{"snapshot holds an empty board"}
	}
	width := len(rows[0])

	grid := &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("snapshot row %d has %d cells, want %d", y, len(row), width)
		}
		for x, r := range row {
			c := grid.at(x, y)
			if !c.deserialize(r) {
				return nil, fmt.Errorf("snapshot holds invalid cell %q at %d:%d", r, x, y)
			}
			if c.mine {
				grid.mineCount++
			}
		}
	}
	if grid.mineCount > width*height-1 {
		return nil, InvalidConfigError{"snapshot board has no safe cells"}
	}
	grid.computeAdjacency()

	g := &Game{grid: grid, rnd: rnd}
	g.evaluate()
	return g, nil
}

func LoadSnapshot(in string, rnd *rand.Rand) (*Game, error) {
	var s Snapshot
	if err := yaml.Unmarshal([]byte(in), &s); err != nil {
		return nil, err
	}
	return s.Game(rnd)
}
