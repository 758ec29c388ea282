package board

import (
	"bytes"
	"encoding/gob"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

// State is derived from grid contents after every mutating operation:
// Lost iff a mine is revealed, Won iff every safe cell is revealed and
// no mine is, Playing otherwise. Won and Lost are terminal; only
// Restart leaves them.
type State uint8

const (
	Playing State = iota
	Won
	Lost
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "!"
	}
}

// CellUpdate describes one cell whose visibility changed. Adjacent and
// Mine are only meaningful when Visibility is Revealed; a hidden cell
// gives nothing away.
type CellUpdate struct {
	X, Y       int
	Visibility Visibility
	Adjacent   int
	Mine       bool
}

// Update is what a mutating operation hands back to the transport
// layer: the cells to redraw and the resulting game state. An empty
// Cells slice means the operation was a no-op.
type Update struct {
	Cells          []CellUpdate
	State          State
	FlagsRemaining int
}

// Game owns one Grid for one play-through and is the single entry
// point for player operations. It is not safe for concurrent use;
// callers serialize access (spec: one logical thread of control).
type Game struct {
	grid    *Grid
	state   State
	rnd     *rand.Rand
	pending []CellUpdate
}

// NewGame validates the configuration, lays out a randomized board and
// returns a game in the Playing state. Mines are placed independently
// of any move; the first reveal is not guaranteed safe.
func NewGame(width, height, mineCount int, rnd *rand.Rand) (*Game, error) {
	grid, err := newGrid(width, height, mineCount, rnd)
	if err != nil {
		return nil, err
	}
	Log.WithFields(logrus.Fields{
		"width": width, "height": height, "mineCount": mineCount,
	}).Debug("laid out new board")
	return &Game{grid: grid, rnd: rnd}, nil
}

func (g *Game) State() State { return g.state }

func (g *Game) Width() int     { return g.grid.width }
func (g *Game) Height() int    { return g.grid.height }
func (g *Game) MineCount() int { return g.grid.mineCount }

// FlagsRemaining is the display counter mineCount - flagged. It goes
// negative when the player over-flags; the engine does not cap flags.
func (g *Game) FlagsRemaining() int {
	return g.grid.mineCount - g.grid.flaggedCount()
}

func (g *Game) pushUpdate(i int) {
	x, y := g.grid.coords(i)
	c := g.grid.cells[i]
	u := CellUpdate{X: x, Y: y, Visibility: c.vis}
	if c.vis == Revealed {
		u.Adjacent = c.adjacent
		u.Mine = c.mine
	}
	g.pending = append(g.pending, u)
}

func (g *Game) takeUpdate() Update {
	u := Update{
		Cells:          g.pending,
		State:          g.state,
		FlagsRemaining: g.FlagsRemaining(),
	}
	g.pending = nil
	return u
}

// evaluate recomputes the game state from grid contents.
func (g *Game) evaluate() {
	var mineRevealed bool
	var safeHidden int
	for i := range g.grid.cells {
		c := g.grid.cells[i]
		if c.mine {
			if c.vis == Revealed {
				mineRevealed = true
			}
		} else if c.vis != Revealed {
			safeHidden++
		}
	}
	switch {
	case mineRevealed:
		g.state = Lost
	case safeHidden == 0:
		g.state = Won
	default:
		g.state = Playing
	}
}

// ToggleFlag flips a hidden cell to flagged or back. Revealed cells
// cannot be flagged; calls outside the board or after the game ended
// are no-ops.
func (g *Game) ToggleFlag(x, y int) Update {
	if g.state != Playing || !g.grid.InBounds(x, y) {
		return g.takeUpdate()
	}
	i := g.grid.index(x, y)
	switch g.grid.cells[i].vis {
	case Hidden:
		g.grid.cells[i].vis = Flagged
		g.pushUpdate(i)
	case Flagged:
		g.grid.cells[i].vis = Hidden
		g.pushUpdate(i)
	}
	return g.takeUpdate()
}

// Restart discards the current grid and lays out a fresh one with the
// same parameters. It is the only operation accepted in a terminal
// state. The returned update lists every cell as hidden again.
func (g *Game) Restart() Update {
	grid, err := newGrid(g.grid.width, g.grid.height, g.grid.mineCount, g.rnd)
	if err != nil {
		// parameters were validated when the game was created
		panic(err)
	}
	g.grid = grid
	g.state = Playing
	g.pending = nil
	for i := range g.grid.cells {
		g.pushUpdate(i)
	}
	return g.takeUpdate()
}

// Forfeit concedes the game: the board is fully revealed and the game
// ends as a loss unless it was already over.
func (g *Game) Forfeit() Update {
	if g.state == Playing {
		g.state = Lost
	}
	for i := range g.grid.cells {
		if g.grid.cells[i].vis != Revealed {
			g.grid.cells[i].vis = Revealed
			g.pushUpdate(i)
		}
	}
	return g.takeUpdate()
}

// View lists every cell in update form: what the player currently
// knows about the whole board. Transports use it for initial renders
// and full refreshes.
func (g *Game) View() []CellUpdate {
	cells := make([]CellUpdate, 0, len(g.grid.cells))
	for i := range g.grid.cells {
		x, y := g.grid.coords(i)
		c := g.grid.cells[i]
		u := CellUpdate{X: x, Y: y, Visibility: c.vis}
		if c.vis == Revealed {
			u.Adjacent = c.adjacent
			u.Mine = c.mine
		}
		cells = append(cells, u)
	}
	return cells
}

// gameBlob is the gob image of a game, kept separate so the engine's
// in-memory representation can change without breaking old payloads.
type gameBlob struct {
	Width, Height, MineCount int
	State                    State
	Mines                    []bool
	Adjacent                 []int
	Vis                      []Visibility
}

// Bytes encodes the full game state, mine layout included, so a
// transport can stash a session payload and restore it later.
func (g *Game) Bytes() ([]byte, error) {
	blob := gameBlob{
		Width:     g.grid.width,
		Height:    g.grid.height,
		MineCount: g.grid.mineCount,
		State:     g.state,
		Mines:     make([]bool, len(g.grid.cells)),
		Adjacent:  make([]int, len(g.grid.cells)),
		Vis:       make([]Visibility, len(g.grid.cells)),
	}
	for i, c := range g.grid.cells {
		blob.Mines[i] = c.mine
		blob.Adjacent[i] = c.adjacent
		blob.Vis[i] = c.vis
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(blob); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func DecodeGame(b []byte, rnd *rand.Rand) (*Game, error) {
	var blob gameBlob
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&blob); err != nil {
		return nil, err
	}
	if err := validateParams(blob.Width, blob.Height, blob.MineCount); err != nil {
		return nil, err
	}
	if n := blob.Width * blob.Height; len(blob.Mines) != n ||
		len(blob.Adjacent) != n || len(blob.Vis) != n {
		return nil, InvalidConfigError{"encoded game has truncated cell data"}
	}
	grid := &Grid{
		width:     blob.Width,
		height:    blob.Height,
		mineCount: blob.MineCount,
		cells:     make([]Cell, blob.Width*blob.Height),
	}
	for i := range grid.cells {
		grid.cells[i] = Cell{
			mine:     blob.Mines[i],
			adjacent: blob.Adjacent[i],
			vis:      blob.Vis[i],
		}
	}
	return &Game{grid: grid, state: blob.State, rnd: rnd}, nil
}
