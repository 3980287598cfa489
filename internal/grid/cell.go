package grid

import "fmt"

// Cell addresses one tile of a grid. Cells are comparable values and
// can be used as map keys.
type Cell struct {
	X, Y int32
}

// String renders the cell as "(x,y)".
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns c shifted by (dx, dy).
func (c Cell) Add(dx, dy int32) Cell {
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// Point is a position in continuous world space.
type Point struct {
	X, Y float64
}
