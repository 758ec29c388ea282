package board

// Visibility is what the player knows about a single cell. A cell is
// exactly one of hidden, flagged or revealed, which rules out the
// flagged-and-revealed combination by construction.
type Visibility uint8

const (
	Hidden Visibility = iota
	Flagged
	Revealed
)

func (v Visibility) String() string {
	switch v {
	case Hidden:
		return "hidden"
	case Flagged:
		return "flagged"
	case Revealed:
		return "revealed"
	default:
		return "!"
	}
}

type Cell struct {
	mine     bool
	adjacent int
	vis      Visibility
}

func (c Cell) Mine() bool {
	return c.mine
}

// Adjacent is the number of mines in the cell's clipped Moore
// neighborhood. It is computed once at layout time, including for mine
// cells, where the value is never displayed.
func (c Cell) Adjacent() int {
	return c.adjacent
}

func (c Cell) Visibility() Visibility {
	return c.vis
}

// serialize maps a cell onto a single rune for board snapshots:
// mines are 'O' (hidden), 'F' (flagged) or '*' (revealed); safe cells
// are '#' (hidden), 'f' (flagged) or '.' (revealed).
func (c Cell) serialize() rune {
	switch {
	case c.mine:
		switch c.vis {
		case Flagged:
			return 'F'
		case Revealed:
			return '*'
		default:
			return 'O'
		}
	case c.vis == Flagged:
		return 'f'
	case c.vis == Revealed:
		return '.'
	default:
		return '#'
	}
}

func (c *Cell) deserialize(r rune) bool {
	switch r {
	case 'O':
		c.mine = true
		c.vis = Hidden
	case 'F':
		c.mine = true
		c.vis = Flagged
	case '*':
		c.mine = true
		c.vis = Revealed
	case '#':
		c.vis = Hidden
	case 'f':
		c.vis = Flagged
	case '.':
		c.vis = Revealed
	default:
		return false
	}
	return true
}
