package pathfind

import (
	"container/heap"
	"fmt"

	"github.com/udisondev/tilepath/internal/grid"
)

// Request is a single path query.
type Request struct {
	Start grid.Cell
	Goal  grid.Cell
	// Threshold overrides the grid's impassable threshold when > 0.
	Threshold int32
}

// Path is an ordered start-to-goal cell route and its total entry cost.
type Path struct {
	Cells []grid.Cell
	Cost  int64
}

// Len returns the number of cells in the path.
func (p *Path) Len() int {
	return len(p.Cells)
}

// Steps returns the number of transitions (Len - 1).
func (p *Path) Steps() int {
	if len(p.Cells) == 0 {
		return 0
	}
	return len(p.Cells) - 1
}

// Options tunes a Finder.
type Options struct {
	// MaxExpansions caps the number of expanded nodes per query (0 = no cap).
	MaxExpansions int
}

// Finder runs A* queries. A Finder holds no per-query state and is safe
// for concurrent use.
type Finder struct {
	opts Options
}

// NewFinder creates a Finder.
func NewFinder(opts Options) *Finder {
	return &Finder{opts: opts}
}

// Find runs req against g, applying the request's threshold override.
// g itself is not modified.
func (f *Finder) Find(g *grid.Grid, req Request) (*Path, error) {
	threshold := g.Threshold()
	if req.Threshold > 0 {
		threshold = req.Threshold
	}
	return f.find(g, req.Start, req.Goal, threshold)
}

// FindPath returns the least-cost route from start to goal.
// Start and goal must be inside the grid (ErrInvalidRequest otherwise).
// The start cell is never charged and may itself be impassable.
func (f *Finder) FindPath(g *grid.Grid, start, goal grid.Cell) (*Path, error) {
	return f.find(g, start, goal, g.Threshold())
}

func (f *Finder) find(g *grid.Grid, start, goal grid.Cell, threshold int32) (*Path, error) {
	if !g.InBounds(start) {
		return nil, fmt.Errorf("%w: start %s outside %dx%d grid", ErrInvalidRequest, start, g.Width(), g.Height())
	}
	if !g.InBounds(goal) {
		return nil, fmt.Errorf("%w: goal %s outside %dx%d grid", ErrInvalidRequest, goal, g.Width(), g.Height())
	}
	if start == goal {
		return &Path{Cells: []grid.Cell{start}}, nil
	}

	s := newSearch(g, goal, threshold)
	end, err := s.run(start, f.opts.MaxExpansions)
	if err != nil {
		return nil, fmt.Errorf("%w: %s -> %s", err, start, goal)
	}
	return s.path(end), nil
}

// search holds the state of one query. Nothing in it is shared.
type search struct {
	g         *grid.Grid
	goal      grid.Cell
	width     int32
	threshold int32
	minStep   int32

	gCost  []int64 // -1 = undiscovered
	parent []int32
	closed []bool
	open   nodeHeap
	seq    uint64
	edges  []grid.Edge
}

func newSearch(g *grid.Grid, goal grid.Cell, threshold int32) *search {
	n := int(g.Width()) * int(g.Height())
	s := &search{
		g:         g,
		goal:      goal,
		width:     g.Width(),
		threshold: threshold,
		minStep:   g.MinStepBelow(threshold),
		gCost:     make([]int64, n),
		parent:    make([]int32, n),
		closed:    make([]bool, n),
		open:      make(nodeHeap, 0, 64),
		edges:     make([]grid.Edge, 0, 4),
	}
	for i := range s.gCost {
		s.gCost[i] = -1
		s.parent[i] = -1
	}
	return s
}

func (s *search) index(c grid.Cell) int32 {
	return c.Y*s.width + c.X
}

func (s *search) cell(i int32) grid.Cell {
	return grid.Cell{X: i % s.width, Y: i / s.width}
}

func (s *search) push(c grid.Cell, g int64) {
	h := heuristic(c, s.goal, s.minStep)
	heap.Push(&s.open, &node{idx: s.index(c), g: g, h: h, f: g + h, seq: s.seq})
	s.seq++
}

// run expands nodes until the goal is popped and returns its index.
func (s *search) run(start grid.Cell, maxExpansions int) (int32, error) {
	goalIdx := s.index(s.goal)
	startIdx := s.index(start)
	s.gCost[startIdx] = 0
	s.push(start, 0)

	expansions := 0
	for s.open.Len() > 0 {
		cur := heap.Pop(&s.open).(*node)
		if s.closed[cur.idx] || cur.g > s.gCost[cur.idx] {
			continue
		}
		if cur.idx == goalIdx {
			return cur.idx, nil
		}
		s.closed[cur.idx] = true

		expansions++
		if maxExpansions > 0 && expansions > maxExpansions {
			return -1, ErrSearchLimit
		}

		s.edges = s.g.AppendNeighborsBelow(s.edges[:0], s.cell(cur.idx), s.threshold)
		for _, e := range s.edges {
			ni := s.index(e.Cell)
			if s.closed[ni] {
				continue
			}
			ng := cur.g + int64(e.Cost)
			if old := s.gCost[ni]; old >= 0 && ng >= old {
				continue
			}
			s.gCost[ni] = ng
			s.parent[ni] = cur.idx
			s.push(e.Cell, ng)
		}
	}
	return -1, ErrNoPath
}

// path walks parent links back from end and reverses them.
func (s *search) path(end int32) *Path {
	cells := make([]grid.Cell, 0, 32)
	for i := end; i >= 0; i = s.parent[i] {
		cells = append(cells, s.cell(i))
	}
	for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
		cells[i], cells[j] = cells[j], cells[i]
	}
	return &Path{Cells: cells, Cost: s.gCost[end]}
}

// node is a frontier entry.
type node struct {
	idx   int32
	g     int64
	h     int64
	f     int64
	seq   uint64
	index int // heap index
}

// nodeHeap orders by f, then h, then insertion order.
type nodeHeap []*node

func (h nodeHeap) Len() int { return len(h) }

func (h nodeHeap) Less(i, j int) bool {
	a, b := h[i], h[j]
	if a.f != b.f {
		return a.f < b.f
	}
	if a.h != b.h {
		return a.h < b.h
	}
	return a.seq < b.seq
}

func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *nodeHeap) Push(x any)   { n := x.(*node); n.index = len(*h); *h = append(*h, n) }

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	nd := old[n-1]
	old[n-1] = nil // GC
	nd.index = -1
	*h = old[:n-1]
	return nd
}
