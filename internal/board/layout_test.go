package board

import (
	"math/rand/v2"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	Log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	m.Run()
}

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestNewGameRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name                     string
		width, height, mineCount int
	}{
		{"zero width", 0, 5, 1},
		{"zero height", 5, 0, 1},
		{"negative width", -3, 5, 1},
		{"negative mine count", 5, 5, -1},
		{"no safe cell left", 5, 5, 25},
		{"mine count above cell count", 3, 3, 100},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			g, err := NewGame(test.width, test.height, test.mineCount, testRand())
			assert.Nil(t, g)
			var ice InvalidConfigError
			assert.ErrorAs(t, err, &ice)
		})
	}
}

func TestNewGamePlacesExactMineCount(t *testing.T) {
	tests := []struct {
		name                     string
		width, height, mineCount int
	}{
		{"9x9(10)", 9, 9, 10},
		{"16x16(40)", 16, 16, 40},
		{"30x16(99)", 30, 16, 99},
		{"full but one", 4, 4, 15},
		{"no mines", 4, 4, 0},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			g, err := NewGame(test.width, test.height, test.mineCount, testRand())
			require.NoError(t, err)

			mines := 0
			for y := 0; y < g.Height(); y++ {
				for x := 0; x < g.Width(); x++ {
					if g.grid.CellAt(x, y).Mine() {
						mines++
					}
				}
			}
			assert.Equal(t, test.mineCount, mines)
		})
	}
}

func TestAdjacencyCountsMatchLayout(t *testing.T) {
	g, err := NewGame(12, 8, 20, testRand())
	require.NoError(t, err)

	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			want := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					nx, ny := x+dx, y+dy
					if g.grid.InBounds(nx, ny) && g.grid.CellAt(nx, ny).Mine() {
						want++
					}
				}
			}
			assert.Equal(t, want, g.grid.CellAt(x, y).Adjacent(), "cell %d:%d", x, y)
		}
	}
}

func TestMinePlacementIsRoughlyUniform(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	const (
		width, height = 6, 6
		mineCount     = 9
		rounds        = 4000
	)
	rnd := testRand()
	hits := make([]int, width*height)

	g, err := NewGame(width, height, mineCount, rnd)
	require.NoError(t, err)
	for round := 0; round < rounds; round++ {
		for i := range g.grid.cells {
			if g.grid.cells[i].mine {
				hits[i]++
			}
		}
		g.Restart()
	}

	expected := float64(mineCount) / float64(width*height)
	for i, n := range hits {
		assert.InDelta(t, expected, float64(n)/rounds, 0.05, "position %d", i)
	}
}
