package board

// Grid is one game's worth of cells, stored row-major. Mine positions
// and adjacency counts are fixed at layout time; only cell visibility
// changes afterwards.
type Grid struct {
	width, height int
	mineCount     int
	cells         []Cell
}

func (g *Grid) Width() int     { return g.width }
func (g *Grid) Height() int    { return g.height }
func (g *Grid) MineCount() int { return g.mineCount }

func (g *Grid) index(x, y int) int {
	return y*g.width + x
}

func (g *Grid) coords(i int) (x, y int) {
	return i % g.width, i / g.width
}

func (g *Grid) InBounds(x, y int) bool {
	return 0 <= x && x < g.width && 0 <= y && y < g.height
}

func (g *Grid) at(x, y int) *Cell {
	return &g.cells[g.index(x, y)]
}

// CellAt returns a copy of the cell at x:y, for read-only callers.
func (g *Grid) CellAt(x, y int) Cell {
	return *g.at(x, y)
}

// appendNeighbors appends the indexes of the up-to-8 cells surrounding
// i, clipped to the grid bounds, onto buf.
func (g *Grid) appendNeighbors(i int, buf []int) []int {
	x, y := g.coords(i)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if g.InBounds(x+dx, y+dy) {
				buf = append(buf, g.index(x+dx, y+dy))
			}
		}
	}
	return buf
}

func (g *Grid) flaggedCount() int {
	n := 0
	for i := range g.cells {
		if g.cells[i].vis == Flagged {
			n++
		}
	}
	return n
}

func (g *Grid) flaggedNeighborCount(i int) int {
	n := 0
	for _, j := range g.appendNeighbors(i, make([]int, 0, 8)) {
		if g.cells[j].vis == Flagged {
			n++
		}
	}
	return n
}

// computeAdjacency fills in every cell's surrounding-mine count from
// the mine layout. Counts are stored for mine cells too; they are just
// never shown.
func (g *Grid) computeAdjacency() {
	buf := make([]int, 0, 8)
	for i := range g.cells {
		n := 0
		buf = g.appendNeighbors(i, buf[:0])
		for _, j := range buf {
			if g.cells[j].mine {
				n++
			}
		}
		g.cells[i].adjacent = n
	}
}
