package pathfind

import (
	"math"

	"github.com/udisondev/tilepath/internal/grid"
)

// heuristic returns floor(euclid(a, b)) scaled by the cheapest traversable
// entry cost. Every step costs at least minStep and a 4-connected route
// needs at least euclid(a, b) steps, so the estimate never exceeds the
// true remaining cost. With minStep == 0 the search is plain Dijkstra.
func heuristic(a, b grid.Cell, minStep int32) int64 {
	if minStep <= 0 {
		return 0
	}
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return int64(math.Floor(math.Sqrt(dx*dx+dy*dy))) * int64(minStep)
}
