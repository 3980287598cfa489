package pathfind

import "github.com/udisondev/tilepath/internal/grid"

// Segment is one debug line between consecutive path points.
type Segment struct {
	From, To grid.Point
}

// Project maps each cell to the world-space center of its tile, in order.
func Project(cells []grid.Cell, l grid.Layout) []grid.Point {
	points := make([]grid.Point, len(cells))
	for i, c := range cells {
		points[i] = l.CellToWorld(c)
	}
	return points
}

// Segments pairs consecutive points. Fewer than two points yield no segments.
func Segments(points []grid.Point) []Segment {
	if len(points) < 2 {
		return nil
	}
	segs := make([]Segment, len(points)-1)
	for i := 1; i < len(points); i++ {
		segs[i-1] = Segment{From: points[i-1], To: points[i]}
	}
	return segs
}
