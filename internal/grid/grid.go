package grid

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCostCount is returned when the cost slice does not cover every cell.
	ErrCostCount = errors.New("grid: cost count does not match dimensions")
	// ErrNegativeCost is returned for a cell with a negative entry cost.
	ErrNegativeCost = errors.New("grid: negative traversal cost")
)

// Grid is an immutable snapshot of per-cell traversal costs plus the
// layout that places the cells in world space. It is safe for concurrent
// readers; regeneration produces a new Grid instead of mutating one.
type Grid struct {
	layout    Layout
	costs     []int32 // row-major, len == layout.Len()
	threshold int32
	minStep   int32
	sum       Fingerprint
}

// New builds a grid from row-major costs (index = y*width + x).
// The cost slice is copied.
func New(layout Layout, costs []int32, threshold int32) (*Grid, error) {
	if len(costs) != layout.Len() {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrCostCount, len(costs), layout.Len())
	}
	for i, c := range costs {
		if c < 0 {
			return nil, fmt.Errorf("%w: cell %d cost %d", ErrNegativeCost, i, c)
		}
	}
	if threshold < 0 {
		return nil, fmt.Errorf("grid: negative impassable threshold %d", threshold)
	}

	g := &Grid{
		layout:    layout,
		costs:     append([]int32(nil), costs...),
		threshold: threshold,
	}
	g.minStep = minStepBelow(g.costs, threshold)
	g.sum = fingerprint(layout, g.costs, threshold)
	return g, nil
}

// Filled builds a grid where every cell has the same cost.
func Filled(layout Layout, cost, threshold int32) (*Grid, error) {
	costs := make([]int32, layout.Len())
	for i := range costs {
		costs[i] = cost
	}
	return New(layout, costs, threshold)
}

// WithThreshold returns a grid sharing g's costs with a different
// impassable threshold.
func (g *Grid) WithThreshold(threshold int32) (*Grid, error) {
	if threshold == g.threshold {
		return g, nil
	}
	return New(g.layout, g.costs, threshold)
}

// WithCost returns a copy of g with one cell's cost replaced.
func (g *Grid) WithCost(c Cell, cost int32) (*Grid, error) {
	if !g.layout.InBounds(c) {
		return nil, fmt.Errorf("grid: cell %s out of bounds", c)
	}
	costs := append([]int32(nil), g.costs...)
	costs[g.layout.index(c)] = cost
	return New(g.layout, costs, g.threshold)
}

// Layout returns the grid placement.
func (g *Grid) Layout() Layout {
	return g.layout
}

// Width returns the number of columns.
func (g *Grid) Width() int32 {
	return g.layout.width
}

// Height returns the number of rows.
func (g *Grid) Height() int32 {
	return g.layout.height
}

// Threshold returns the impassable cost threshold.
func (g *Grid) Threshold() int32 {
	return g.threshold
}

// MinStep returns the smallest entry cost among traversable cells, or 0
// when no cell is traversable.
func (g *Grid) MinStep() int32 {
	return g.minStep
}

// MinStepBelow is MinStep for cells whose cost is under threshold.
func (g *Grid) MinStepBelow(threshold int32) int32 {
	if threshold == g.threshold {
		return g.minStep
	}
	return minStepBelow(g.costs, threshold)
}

// InBounds reports whether c lies inside the grid.
func (g *Grid) InBounds(c Cell) bool {
	return g.layout.InBounds(c)
}

// Cost returns the entry cost of c. The second result is false for cells
// outside the grid.
func (g *Grid) Cost(c Cell) (int32, bool) {
	if !g.layout.InBounds(c) {
		return 0, false
	}
	return g.costs[g.layout.index(c)], true
}

// Passable reports whether c is inside the grid and below the threshold.
func (g *Grid) Passable(c Cell) bool {
	cost, ok := g.Cost(c)
	return ok && cost < g.threshold
}

// Costs returns a copy of the row-major cost array.
func (g *Grid) Costs() []int32 {
	return append([]int32(nil), g.costs...)
}

// PassableCount returns the number of traversable cells.
func (g *Grid) PassableCount() int {
	n := 0
	for _, c := range g.costs {
		if c < g.threshold {
			n++
		}
	}
	return n
}

func minStepBelow(costs []int32, threshold int32) int32 {
	minStep := int32(-1)
	for _, c := range costs {
		if c >= threshold {
			continue
		}
		if minStep < 0 || c < minStep {
			minStep = c
		}
	}
	if minStep < 0 {
		return 0
	}
	return minStep
}

// String draws the grid with '.' for passable and '#' for blocked cells,
// highest row first.
func (g *Grid) String() string {
	var sb strings.Builder
	for y := g.layout.height - 1; y >= 0; y-- {
		for x := range g.layout.width {
			if g.Passable(Cell{X: x, Y: y}) {
				sb.WriteByte('.')
			} else {
				sb.WriteByte('#')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
