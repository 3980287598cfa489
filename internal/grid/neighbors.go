package grid

// Edge is a traversable neighbor and the cost of entering it.
type Edge struct {
	Cell Cell
	Cost int32
}

// Direction offsets in enumeration order: up, down, left, right.
var squareDirs = [4]Cell{
	{X: 0, Y: 1},
	{X: 0, Y: -1},
	{X: -1, Y: 0},
	{X: 1, Y: 0},
}

// Neighbors returns the traversable axis-adjacent cells of c.
// Cells outside the grid and cells at or above the impassable threshold
// are omitted. Order is up, down, left, right.
func (g *Grid) Neighbors(c Cell) []Edge {
	return g.AppendNeighbors(make([]Edge, 0, len(squareDirs)), c)
}

// AppendNeighbors appends the traversable neighbors of c to dst.
func (g *Grid) AppendNeighbors(dst []Edge, c Cell) []Edge {
	return g.AppendNeighborsBelow(dst, c, g.threshold)
}

// AppendNeighborsBelow is AppendNeighbors with threshold in place of the
// grid's own.
func (g *Grid) AppendNeighborsBelow(dst []Edge, c Cell, threshold int32) []Edge {
	for _, d := range squareDirs {
		n := c.Add(d.X, d.Y)
		cost, ok := g.Cost(n)
		if !ok || cost >= threshold {
			continue
		}
		dst = append(dst, Edge{Cell: n, Cost: cost})
	}
	return dst
}

// Adjacent reports whether a and b share an edge.
func Adjacent(a, b Cell) bool {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return (dx == 0 && (dy == 1 || dy == -1)) || (dy == 0 && (dx == 1 || dx == -1))
}
