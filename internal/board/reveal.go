package board

import "github.com/gammazero/deque"

// Reveal opens the cell at x:y. Flagged cells must be unflagged first
// and already-revealed cells stay put, so both are no-ops. Revealing a
// zero-count safe cell cascades through the connected blank region and
// its numbered border; revealing a mine loses the game.
func (g *Game) Reveal(x, y int) Update {
	if g.state != Playing || !g.grid.InBounds(x, y) {
		return g.takeUpdate()
	}
	i := g.grid.index(x, y)
	if g.grid.cells[i].vis != Hidden {
		return g.takeUpdate()
	}
	g.floodReveal(i)
	g.evaluate()
	if g.state == Lost {
		g.revealMines()
	}
	return g.takeUpdate()
}

// floodReveal walks the blank region reachable from i over an explicit
// worklist. Recursion would be the obvious shape, but a large all-blank
// board can chain tens of thousands of cells, so the frontier lives on
// a deque instead of the call stack. Traversal order does not affect
// the final revealed set.
func (g *Game) floodReveal(start int) {
	var frontier deque.Deque[int]
	frontier.PushBack(start)

	buf := make([]int, 0, 8)
	for frontier.Len() > 0 {
		i := frontier.PopFront()
		c := &g.grid.cells[i]
		if c.vis != Hidden {
			// flagged cells are never auto-revealed
			continue
		}
		c.vis = Revealed
		g.pushUpdate(i)

		if c.mine || c.adjacent != 0 {
			continue
		}
		buf = g.grid.appendNeighbors(i, buf[:0])
		for _, j := range buf {
			if g.grid.cells[j].vis == Hidden {
				frontier.PushBack(j)
			}
		}
	}
}

// Chord opens every hidden unflagged neighbor of an already-revealed
// numbered cell, but only when the player has flagged exactly as many
// neighbors as the cell's count. Anything else is a strict no-op, so a
// mis-aimed chord gesture cannot lose the game by itself.
func (g *Game) Chord(x, y int) Update {
	if g.state != Playing || !g.grid.InBounds(x, y) {
		return g.takeUpdate()
	}
	i := g.grid.index(x, y)
	c := g.grid.cells[i]
	if c.vis != Revealed || c.adjacent == 0 {
		return g.takeUpdate()
	}
	if g.grid.flaggedNeighborCount(i) != c.adjacent {
		return g.takeUpdate()
	}
	for _, j := range g.grid.appendNeighbors(i, make([]int, 0, 8)) {
		if g.grid.cells[j].vis != Hidden {
			continue
		}
		g.floodReveal(j)
		g.evaluate()
		if g.state != Playing {
			break
		}
	}
	if g.state == Lost {
		g.revealMines()
	}
	return g.takeUpdate()
}

// revealMines is the final display pass after a loss: every hidden
// mine is turned face-up. Flags, right or wrong, are left in place,
// and the pass never changes the game state.
func (g *Game) revealMines() {
	for i := range g.grid.cells {
		c := &g.grid.cells[i]
		if c.mine && c.vis == Hidden {
			c.vis = Revealed
			g.pushUpdate(i)
		}
	}
}
