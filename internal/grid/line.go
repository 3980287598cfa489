package grid

// LineIterator walks the cells of a Bresenham line from one cell to
// another, start and end included.
type LineIterator struct {
	cur, target  Cell
	deltaX       int32
	deltaY       int32
	stepX, stepY int32
	err          int32
	xDominant    bool
	started      bool
}

// NewLineIterator creates a line iterator from a to b.
func NewLineIterator(a, b Cell) *LineIterator {
	it := &LineIterator{cur: a, target: b}
	it.deltaX = abs32(b.X - a.X)
	it.deltaY = abs32(b.Y - a.Y)
	it.stepX = 1
	if b.X < a.X {
		it.stepX = -1
	}
	it.stepY = 1
	if b.Y < a.Y {
		it.stepY = -1
	}
	it.xDominant = it.deltaX >= it.deltaY
	if it.xDominant {
		it.err = it.deltaX / 2
	} else {
		it.err = it.deltaY / 2
	}
	return it
}

// Next advances to the next cell. The first call yields the start cell;
// it returns false once the target has been yielded.
func (it *LineIterator) Next() bool {
	if !it.started {
		it.started = true
		return true
	}
	if it.cur == it.target {
		return false
	}

	if it.xDominant {
		it.cur.X += it.stepX
		it.err += it.deltaY
		if it.err >= it.deltaX {
			it.cur.Y += it.stepY
			it.err -= it.deltaX
		}
	} else {
		it.cur.Y += it.stepY
		it.err += it.deltaX
		if it.err >= it.deltaY {
			it.cur.X += it.stepX
			it.err -= it.deltaY
		}
	}
	return true
}

// Cell returns the current cell.
func (it *LineIterator) Cell() Cell { return it.cur }

// CanMoveStraight reports whether a straight walk from a to b crosses only
// passable cells. A diagonal step also needs both cells it squeezes
// between to be passable. The start cell itself is not checked.
func (g *Grid) CanMoveStraight(a, b Cell) bool {
	if !g.InBounds(a) || !g.InBounds(b) {
		return false
	}
	it := NewLineIterator(a, b)
	it.Next()
	prev := it.Cell()
	for it.Next() {
		cur := it.Cell()
		if !g.Passable(cur) {
			return false
		}
		if cur.X != prev.X && cur.Y != prev.Y {
			if !g.Passable(Cell{X: cur.X, Y: prev.Y}) || !g.Passable(Cell{X: prev.X, Y: cur.Y}) {
				return false
			}
		}
		prev = cur
	}
	return true
}

func abs32(x int32) int32 {
	if x < 0 {
		return -x
	}
	return x
}
