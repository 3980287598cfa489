// Package pathfind computes least-cost routes over a grid.Grid with A*
// and projects cell routes back into world space.
//
// The entry cost of a cell is charged when the route enters it; the start
// cell is free. Cells at or above the grid's impassable threshold are
// never entered. A route that cannot be found is reported as ErrNoPath,
// which callers treat as a normal outcome.
package pathfind
