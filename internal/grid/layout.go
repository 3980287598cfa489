package grid

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidDimensions is returned for non-positive grid or cell sizes.
var ErrInvalidDimensions = errors.New("grid: invalid dimensions")

// Layout describes how a grid is placed in world space.
//
// In grid-local space the center of cell (x, y) sits at (x*CellW, y*CellH)
// and the cell covers [x*CellW - CellW/2, x*CellW + CellW/2) horizontally
// (same for Y). The placement transform maps grid-local space to world
// space. Its inverse is computed once at construction.
type Layout struct {
	width, height int32
	cellW, cellH  float64
	topology      Topology
	transform     Affine
	inverse       Affine
}

// NewLayout validates the dimensions and caches the inverse placement.
func NewLayout(width, height int32, cellW, cellH float64, transform Affine) (Layout, error) {
	if width <= 0 || height <= 0 {
		return Layout{}, fmt.Errorf("%w: size %dx%d", ErrInvalidDimensions, width, height)
	}
	if !(cellW > 0) || !(cellH > 0) {
		return Layout{}, fmt.Errorf("%w: cell size %gx%g", ErrInvalidDimensions, cellW, cellH)
	}
	inv, err := transform.Invert()
	if err != nil {
		return Layout{}, err
	}
	return Layout{
		width:     width,
		height:    height,
		cellW:     cellW,
		cellH:     cellH,
		topology:  TopologySquare,
		transform: transform,
		inverse:   inv,
	}, nil
}

// CenteredTransform returns the translation that centers a width×height
// grid of cellW×cellH tiles around the world origin.
func CenteredTransform(width, height int32, cellW, cellH float64) Affine {
	return Translate(
		-float64(width)*cellW/2+cellW/2,
		-float64(height)*cellH/2+cellH/2,
	)
}

// WithTransform returns a copy of l placed by t.
func (l Layout) WithTransform(t Affine) (Layout, error) {
	inv, err := t.Invert()
	if err != nil {
		return l, err
	}
	l.transform = t
	l.inverse = inv
	return l, nil
}

func (l Layout) Width() int32       { return l.width }
func (l Layout) Height() int32      { return l.height }
func (l Layout) CellW() float64     { return l.cellW }
func (l Layout) CellH() float64     { return l.cellH }
func (l Layout) Topology() Topology { return l.topology }
func (l Layout) Transform() Affine  { return l.transform }

// Len returns the number of cells.
func (l Layout) Len() int {
	return int(l.width) * int(l.height)
}

// InBounds reports whether c addresses a cell of the grid.
func (l Layout) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < l.width && c.Y >= 0 && c.Y < l.height
}

// WorldToCell resolves a world-space point to the cell containing it.
// Points outside the grid return false.
func (l Layout) WorldToCell(p Point) (Cell, bool) {
	local := l.inverse.Apply(p)
	fx := math.Floor((local.X + l.cellW/2) / l.cellW)
	fy := math.Floor((local.Y + l.cellH/2) / l.cellH)
	// negated so NaN coordinates are rejected
	if !(fx >= 0 && fx < float64(l.width) && fy >= 0 && fy < float64(l.height)) {
		return Cell{}, false
	}
	return Cell{X: int32(fx), Y: int32(fy)}, true
}

// CellToWorld returns the world-space center of c.
func (l Layout) CellToWorld(c Cell) Point {
	return l.transform.Apply(Point{
		X: float64(c.X) * l.cellW,
		Y: float64(c.Y) * l.cellH,
	})
}

// index returns the dense array index of an in-bounds cell.
func (l Layout) index(c Cell) int {
	return int(c.Y)*int(l.width) + int(c.X)
}
