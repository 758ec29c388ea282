package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleFlag(t *testing.T) {
	g := fixture(t,
		"O##",
		"###",
	)

	u := g.ToggleFlag(1, 0)
	require.Len(t, u.Cells, 1)
	assert.Equal(t, Flagged, u.Cells[0].Visibility)
	assert.Equal(t, 0, u.FlagsRemaining)

	u = g.ToggleFlag(1, 0)
	require.Len(t, u.Cells, 1)
	assert.Equal(t, Hidden, u.Cells[0].Visibility)
	assert.Equal(t, 1, u.FlagsRemaining)
}

func TestFlagBudgetGoesNegativeWhenOverFlagging(t *testing.T) {
	g := fixture(t,
		"O##",
		"###",
	)

	g.ToggleFlag(0, 0)
	g.ToggleFlag(1, 0)
	u := g.ToggleFlag(2, 0)

	assert.Equal(t, -2, u.FlagsRemaining)
}

func TestCannotFlagRevealedCell(t *testing.T) {
	g := fixture(t,
		"O##",
		"###",
	)
	g.Reveal(1, 1)

	u := g.ToggleFlag(1, 1)

	assert.Empty(t, u.Cells)
	assert.Equal(t, Revealed, g.grid.CellAt(1, 1).Visibility())
}

func TestTerminalStateRejectsEverythingButRestart(t *testing.T) {
	g := fixture(t,
		"O##",
		"###",
	)
	g.Reveal(0, 0)
	require.Equal(t, Lost, g.State())

	assert.Empty(t, g.Reveal(1, 1).Cells)
	assert.Empty(t, g.ToggleFlag(1, 1).Cells)
	assert.Empty(t, g.Chord(1, 1).Cells)

	u := g.Restart()
	assert.Equal(t, Playing, u.State)
}

func TestWonAndLostAreMutuallyExclusive(t *testing.T) {
	g := fixture(t,
		"O#",
		"##",
	)

	g.Reveal(1, 0)
	g.Reveal(0, 1)
	u := g.Reveal(1, 1)

	assert.Equal(t, Won, u.State)
	assert.Equal(t, Hidden, g.grid.CellAt(0, 0).Visibility())

	// a won game accepts no further reveals that could lose it
	assert.Empty(t, g.Reveal(0, 0).Cells)
	assert.Equal(t, Won, g.State())
}

func TestRestartResetsAndRelayouts(t *testing.T) {
	g, err := NewGame(9, 9, 10, testRand())
	require.NoError(t, err)

	g.Reveal(4, 4)
	g.ToggleFlag(0, 0)

	u := g.Restart()

	assert.Equal(t, Playing, u.State)
	assert.Len(t, u.Cells, 81)
	mines := 0
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			c := g.grid.CellAt(x, y)
			assert.Equal(t, Hidden, c.Visibility())
			if c.Mine() {
				mines++
			}
		}
	}
	assert.Equal(t, 10, mines)
	assert.Equal(t, 10, u.FlagsRemaining)
}

func TestForfeitRevealsBoardAndLoses(t *testing.T) {
	g := fixture(t,
		"O##",
		"###",
	)

	u := g.Forfeit()

	assert.Equal(t, Lost, u.State)
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			assert.Equal(t, Revealed, g.grid.CellAt(x, y).Visibility())
		}
	}
}

func TestGameStateSurvivesEncodeDecode(t *testing.T) {
	g := fixture(t,
		"O##",
		"#O#",
		"###",
	)
	g.Reveal(2, 0)
	g.ToggleFlag(0, 0)

	b, err := g.Bytes()
	require.NoError(t, err)

	restored, err := DecodeGame(b, testRand())
	require.NoError(t, err)

	assert.Equal(t, g.State(), restored.State())
	assert.Equal(t, g.FlagsRemaining(), restored.FlagsRemaining())
	assert.Equal(t, g.Snapshot().SerializedBoard, restored.Snapshot().SerializedBoard)

	// the restored game is still playable
	u := restored.Reveal(2, 2)
	assert.NotEmpty(t, u.Cells)
}

func TestDecodeGameRejectsGarbage(t *testing.T) {
	_, err := DecodeGame([]byte("not a gob payload"), testRand())
	assert.Error(t, err)
}

func TestSnapshotRoundTrip(t *testing.T) {
	g := fixture(t,
		"O#.",
		"#f#",
	)

	out, err := g.Snapshot().Serialize()
	require.NoError(t, err)

	restored, err := LoadSnapshot(out, testRand())
	require.NoError(t, err)
	assert.Equal(t, "O#.\n#f#", restored.Snapshot().SerializedBoard)
}

func TestLoadSnapshotRejectsMalformedBoards(t *testing.T) {
	tests := []struct {
		name  string
		board string
	}{
		{"empty", ""},
		{"ragged rows", "O##\n##"},
		{"unknown cell", "O#?\n###"},
		{"all mines", "OO\nOO"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := Snapshot{SerializedBoard: test.board}
			_, err := s.Game(testRand())
			assert.Error(t, err)
		})
	}
}
