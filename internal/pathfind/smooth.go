package pathfind

import "github.com/udisondev/tilepath/internal/grid"

const maxSmoothPasses = 3

// Smooth drops intermediate waypoints that a straight walk can skip. The
// result keeps the first and last cell. Path cost is not recomputed, so the
// smoothed list is meant for movement only.
func Smooth(g *grid.Grid, cells []grid.Cell) []grid.Cell {
	if len(cells) <= 2 {
		return append([]grid.Cell(nil), cells...)
	}

	out := append([]grid.Cell(nil), cells...)
	for range maxSmoothPasses {
		next := make([]grid.Cell, 0, len(out))
		next = append(next, out[0])
		for i := 1; i < len(out)-1; i++ {
			if !g.CanMoveStraight(next[len(next)-1], out[i+1]) {
				next = append(next, out[i])
			}
		}
		next = append(next, out[len(out)-1])

		if len(next) == len(out) {
			break
		}
		out = next
	}
	return out
}
