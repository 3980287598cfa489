package pathfind

import (
	"container/heap"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/tilepath/internal/grid"
	"github.com/udisondev/tilepath/internal/testutil"
)

// relaxAll computes the optimal cost by repeated edge relaxation until no
// distance changes. Independent of the heap-based search.
func relaxAll(g *grid.Grid, start, goal grid.Cell) (int64, bool) {
	dist := map[grid.Cell]int64{start: 0}
	for changed := true; changed; {
		changed = false
		for y := range g.Height() {
			for x := range g.Width() {
				c := grid.Cell{X: x, Y: y}
				d, ok := dist[c]
				if !ok {
					continue
				}
				for _, e := range g.Neighbors(c) {
					nd := d + int64(e.Cost)
					if old, ok := dist[e.Cell]; !ok || nd < old {
						dist[e.Cell] = nd
						changed = true
					}
				}
			}
		}
	}
	d, ok := dist[goal]
	return d, ok
}

func assertValidPath(t *testing.T, g *grid.Grid, p *Path, start, goal grid.Cell) {
	t.Helper()
	require.NotEmpty(t, p.Cells)
	assert.Equal(t, start, p.Cells[0])
	assert.Equal(t, goal, p.Cells[len(p.Cells)-1])

	var sum int64
	for i := 1; i < len(p.Cells); i++ {
		c := p.Cells[i]
		assert.True(t, grid.Adjacent(p.Cells[i-1], c), "step %d: %s -> %s", i, p.Cells[i-1], c)
		cost, ok := g.Cost(c)
		require.True(t, ok, "cell %s out of bounds", c)
		assert.Less(t, cost, g.Threshold(), "cell %s is impassable", c)
		sum += int64(cost)
	}
	assert.Equal(t, sum, p.Cost)
}

func TestFindPathDetourAroundBlockedCenter(t *testing.T) {
	g := testutil.GridFromRows(t, [][]int32{
		{0, 0, 0},
		{0, 999, 0},
		{0, 0, 0},
	})
	f := NewFinder(Options{})

	p, err := f.FindPath(g, grid.Cell{X: 0, Y: 0}, grid.Cell{X: 2, Y: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(0), p.Cost)
	assert.Equal(t, 4, p.Steps())
	assert.NotContains(t, p.Cells, grid.Cell{X: 1, Y: 1})
	assertValidPath(t, g, p, grid.Cell{X: 0, Y: 0}, grid.Cell{X: 2, Y: 2})
}

func TestFindPathTrivial(t *testing.T) {
	g := testutil.GridFromRows(t, [][]int32{{3, 3}})
	f := NewFinder(Options{})

	p, err := f.FindPath(g, grid.Cell{X: 1, Y: 0}, grid.Cell{X: 1, Y: 0})
	require.NoError(t, err)
	assert.Equal(t, []grid.Cell{{X: 1, Y: 0}}, p.Cells)
	assert.Equal(t, int64(0), p.Cost)
	assert.Equal(t, 0, p.Steps())
}

func TestFindPathChargesEnteredCells(t *testing.T) {
	g := testutil.GridFromRows(t, [][]int32{{4, 1, 2, 3}})
	f := NewFinder(Options{})

	p, err := f.FindPath(g, grid.Cell{X: 0, Y: 0}, grid.Cell{X: 3, Y: 0})
	require.NoError(t, err)
	assert.Equal(t, int64(6), p.Cost, "start cost is not charged")
}

func TestFindPathPrefersCheaperLongerRoute(t *testing.T) {
	g := testutil.GridFromRows(t, [][]int32{
		{1, 1, 1},
		{1, 4, 1},
	})
	f := NewFinder(Options{})

	p, err := f.FindPath(g, grid.Cell{X: 0, Y: 0}, grid.Cell{X: 2, Y: 0})
	require.NoError(t, err)
	assert.Equal(t, int64(4), p.Cost)
	assert.Equal(t, []grid.Cell{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 2, Y: 0}}, p.Cells)
}

func TestFindPathBarrierRow(t *testing.T) {
	g := testutil.GridFromRows(t, [][]int32{
		{0, 0, 0, 0},
		{5, 5, 9, 999},
		{0, 0, 0, 0},
	})
	f := NewFinder(Options{})

	p, err := f.FindPath(g, grid.Cell{X: 0, Y: 0}, grid.Cell{X: 3, Y: 2})
	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrNoPath)
	assert.True(t, IsNoPath(err))
}

func TestFindPathImpassableGoal(t *testing.T) {
	g := testutil.GridFromRows(t, [][]int32{{0, 0, 999}})
	f := NewFinder(Options{})

	_, err := f.FindPath(g, grid.Cell{X: 0, Y: 0}, grid.Cell{X: 2, Y: 0})
	assert.ErrorIs(t, err, ErrNoPath)
}

func TestFindPathImpassableStart(t *testing.T) {
	f := NewFinder(Options{})

	t.Run("with exit", func(t *testing.T) {
		g := testutil.GridFromRows(t, [][]int32{
			{999, 999, 0},
			{999, 0, 0},
		})
		p, err := f.FindPath(g, grid.Cell{X: 0, Y: 0}, grid.Cell{X: 2, Y: 1})
		require.NoError(t, err)
		assert.Equal(t, grid.Cell{X: 0, Y: 0}, p.Cells[0])
		assert.Equal(t, int64(0), p.Cost)
		assert.Equal(t, 3, p.Steps())
	})

	t.Run("surrounded", func(t *testing.T) {
		g := testutil.GridFromRows(t, [][]int32{
			{0, 9, 0},
			{9, 999, 9},
			{0, 9, 0},
		})
		_, err := f.FindPath(g, grid.Cell{X: 1, Y: 1}, grid.Cell{X: 0, Y: 0})
		assert.ErrorIs(t, err, ErrNoPath)
	})
}

func TestFindPathInvalidRequest(t *testing.T) {
	g := testutil.GridFromRows(t, [][]int32{{0, 0}, {0, 0}})
	f := NewFinder(Options{})

	tests := []struct {
		name        string
		start, goal grid.Cell
	}{
		{"goal right", grid.Cell{X: 0, Y: 0}, grid.Cell{X: 2, Y: 0}},
		{"goal negative", grid.Cell{X: 0, Y: 0}, grid.Cell{X: 0, Y: -1}},
		{"start above", grid.Cell{X: 0, Y: 2}, grid.Cell{X: 0, Y: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := f.FindPath(g, tt.start, tt.goal)
			assert.Nil(t, p)
			assert.ErrorIs(t, err, ErrInvalidRequest)
			assert.True(t, IsNoPath(err))
		})
	}
}

func TestFindPathSearchLimit(t *testing.T) {
	l, err := grid.NewLayout(20, 20, 1, 1, grid.Identity)
	require.NoError(t, err)
	g, err := grid.Filled(l, 1, grid.DefaultImpassableThreshold)
	require.NoError(t, err)

	_, err = NewFinder(Options{MaxExpansions: 3}).FindPath(g, grid.Cell{}, grid.Cell{X: 19, Y: 19})
	assert.ErrorIs(t, err, ErrSearchLimit)

	p, err := NewFinder(Options{MaxExpansions: 400}).FindPath(g, grid.Cell{}, grid.Cell{X: 19, Y: 19})
	require.NoError(t, err)
	assert.Equal(t, int64(38), p.Cost)
}

func TestFindThresholdOverride(t *testing.T) {
	g := testutil.GridFromRows(t, [][]int32{{0, 7, 0}})
	f := NewFinder(Options{})

	_, err := f.Find(g, Request{Start: grid.Cell{X: 0}, Goal: grid.Cell{X: 2}})
	assert.ErrorIs(t, err, ErrNoPath)

	p, err := f.Find(g, Request{Start: grid.Cell{X: 0}, Goal: grid.Cell{X: 2}, Threshold: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(7), p.Cost)
	assert.Equal(t, grid.DefaultImpassableThreshold, g.Threshold(), "grid keeps its own threshold")
}

func TestFindThresholdOverrideLower(t *testing.T) {
	g := testutil.GridFromRows(t, [][]int32{{0, 3, 0}})
	f := NewFinder(Options{})
	before := g.Fingerprint()

	p, err := f.Find(g, Request{Start: grid.Cell{X: 0}, Goal: grid.Cell{X: 2}})
	require.NoError(t, err)
	assert.Equal(t, int64(3), p.Cost)

	_, err = f.Find(g, Request{Start: grid.Cell{X: 0}, Goal: grid.Cell{X: 2}, Threshold: 2})
	assert.ErrorIs(t, err, ErrNoPath)
	assert.Equal(t, before, g.Fingerprint())
}

func TestFindThresholdOverrideOptimal(t *testing.T) {
	f := NewFinder(Options{})
	r := rand.New(rand.NewPCG(13, 17))

	for range 200 {
		g := testutil.RandomGrid(t, r, 5, 5, 1, 9)
		threshold := 3 + r.Int32N(8)
		start := grid.Cell{X: r.Int32N(5), Y: r.Int32N(5)}
		goal := grid.Cell{X: r.Int32N(5), Y: r.Int32N(5)}

		rebuilt, err := g.WithThreshold(threshold)
		require.NoError(t, err)
		want, reachable := relaxAll(rebuilt, start, goal)

		p, err := f.Find(g, Request{Start: start, Goal: goal, Threshold: threshold})
		if !reachable {
			require.ErrorIs(t, err, ErrNoPath, "threshold %d grid:\n%s", threshold, rebuilt)
			continue
		}
		require.NoError(t, err, "threshold %d grid:\n%s", threshold, rebuilt)
		assert.Equal(t, want, p.Cost, "start %s goal %s threshold %d grid:\n%s", start, goal, threshold, rebuilt)
		if start != goal {
			assertValidPath(t, rebuilt, p, start, goal)
		}
	}
}

func TestFindPathOptimal(t *testing.T) {
	f := NewFinder(Options{})
	r := rand.New(rand.NewPCG(7, 11))

	costRanges := []struct {
		name     string
		min, max int32
	}{
		{"zero cost allowed", 0, 6},
		{"unit minimum", 1, 6},
		{"mostly cheap", 1, 2},
	}

	for _, cr := range costRanges {
		t.Run(cr.name, func(t *testing.T) {
			for range 200 {
				g := testutil.RandomGrid(t, r, 5, 5, cr.min, cr.max)
				start := grid.Cell{X: r.Int32N(5), Y: r.Int32N(5)}
				goal := grid.Cell{X: r.Int32N(5), Y: r.Int32N(5)}

				want, reachable := relaxAll(g, start, goal)
				p, err := f.FindPath(g, start, goal)
				if !reachable {
					require.ErrorIs(t, err, ErrNoPath, "grid:\n%s", g)
					continue
				}
				require.NoError(t, err, "grid:\n%s", g)
				assert.Equal(t, want, p.Cost, "start %s goal %s grid:\n%s", start, goal, g)
				if start != goal {
					assertValidPath(t, g, p, start, goal)
				}
			}
		})
	}
}

func TestFindPathDeterministic(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 5))
	g := testutil.RandomGrid(t, r, 16, 16, 0, 3)
	f := NewFinder(Options{})

	first, err := f.FindPath(g, grid.Cell{X: 0, Y: 0}, grid.Cell{X: 15, Y: 15})
	require.NoError(t, err)
	for range 10 {
		again, err := f.FindPath(g, grid.Cell{X: 0, Y: 0}, grid.Cell{X: 15, Y: 15})
		require.NoError(t, err)
		assert.Equal(t, first.Cells, again.Cells)
	}
}

func TestFindPathZeroCostIsShortest(t *testing.T) {
	l, err := grid.NewLayout(8, 8, 1, 1, grid.Identity)
	require.NoError(t, err)
	g, err := grid.Filled(l, 0, grid.DefaultImpassableThreshold)
	require.NoError(t, err)

	p, err := NewFinder(Options{}).FindPath(g, grid.Cell{X: 1, Y: 2}, grid.Cell{X: 6, Y: 5})
	require.NoError(t, err)
	assert.Equal(t, 8, p.Steps(), "equal-cost frontier expands in insertion order")
}

func TestHeuristic(t *testing.T) {
	assert.Equal(t, int64(0), heuristic(grid.Cell{}, grid.Cell{X: 3, Y: 4}, 0))
	assert.Equal(t, int64(5), heuristic(grid.Cell{}, grid.Cell{X: 3, Y: 4}, 1))
	assert.Equal(t, int64(1), heuristic(grid.Cell{}, grid.Cell{X: 1, Y: 1}, 1), "sqrt(2) floors to 1")
	assert.Equal(t, int64(14), heuristic(grid.Cell{X: 2, Y: 2}, grid.Cell{X: 7, Y: 7}, 2))
}

func TestNodeHeapOrder(t *testing.T) {
	h := &nodeHeap{}
	heap.Push(h, &node{idx: 1, f: 10, h: 2, seq: 0})
	heap.Push(h, &node{idx: 2, f: 5, h: 3, seq: 1})
	heap.Push(h, &node{idx: 3, f: 5, h: 1, seq: 2})
	heap.Push(h, &node{idx: 4, f: 5, h: 1, seq: 3})

	var order []int32
	for h.Len() > 0 {
		order = append(order, heap.Pop(h).(*node).idx)
	}
	assert.Equal(t, []int32{3, 4, 2, 1}, order)
}

func TestIsNoPath(t *testing.T) {
	assert.False(t, IsNoPath(nil))
	assert.False(t, IsNoPath(errors.New("boom")))
	assert.True(t, IsNoPath(ErrSearchLimit))
}
