package testutil

import (
	"math/rand/v2"
	"testing"

	"github.com/udisondev/tilepath/internal/grid"
)

// GridFromRows builds a grid of unit cells from rows listed top (highest y)
// first, so the literal reads like the map it describes.
func GridFromRows(t testing.TB, rows [][]int32) *grid.Grid {
	t.Helper()
	return SizedGridFromRows(t, 1, rows)
}

// SizedGridFromRows is GridFromRows with square cells of the given size.
// Cell (0,0) is centered on the world origin.
func SizedGridFromRows(t testing.TB, size float64, rows [][]int32) *grid.Grid {
	t.Helper()
	h := int32(len(rows))
	if h == 0 {
		t.Fatal("testutil: no rows")
	}
	w := int32(len(rows[0]))

	l, err := grid.NewLayout(w, h, size, size, grid.Identity)
	if err != nil {
		t.Fatalf("testutil: layout: %v", err)
	}
	costs := make([]int32, 0, w*h)
	for y := range h {
		row := rows[h-1-y]
		if int32(len(row)) != w {
			t.Fatalf("testutil: row %d has %d cells, want %d", h-1-y, len(row), w)
		}
		costs = append(costs, row...)
	}
	g, err := grid.New(l, costs, grid.DefaultImpassableThreshold)
	if err != nil {
		t.Fatalf("testutil: grid: %v", err)
	}
	return g
}

// RandomGrid fills a w×h unit grid with costs drawn uniformly from
// [minCost, maxCost].
func RandomGrid(t testing.TB, r *rand.Rand, w, h, minCost, maxCost int32) *grid.Grid {
	t.Helper()
	l, err := grid.NewLayout(w, h, 1, 1, grid.Identity)
	if err != nil {
		t.Fatalf("testutil: layout: %v", err)
	}
	costs := make([]int32, w*h)
	for i := range costs {
		costs[i] = minCost + r.Int32N(maxCost-minCost+1)
	}
	g, err := grid.New(l, costs, grid.DefaultImpassableThreshold)
	if err != nil {
		t.Fatalf("testutil: grid: %v", err)
	}
	return g
}
