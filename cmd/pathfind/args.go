package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/udisondev/tilepath/internal/grid"
)

// parsePoints parses "x,y;x,y" into world points. Empty input yields nil.
func parsePoints(s string) ([]grid.Point, error) {
	var points []grid.Point
	for _, part := range splitList(s) {
		x, y, err := splitPair(part)
		if err != nil {
			return nil, err
		}
		fx, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return nil, fmt.Errorf("point %q: bad x: %w", part, err)
		}
		fy, err := strconv.ParseFloat(y, 64)
		if err != nil {
			return nil, fmt.Errorf("point %q: bad y: %w", part, err)
		}
		points = append(points, grid.Point{X: fx, Y: fy})
	}
	return points, nil
}

// parseCells parses "x,y;x,y" into grid cells.
func parseCells(s string) ([]grid.Cell, error) {
	var cells []grid.Cell
	for _, part := range splitList(s) {
		c, err := parseCell(part)
		if err != nil {
			return nil, err
		}
		cells = append(cells, c)
	}
	return cells, nil
}

func parseCell(s string) (grid.Cell, error) {
	x, y, err := splitPair(s)
	if err != nil {
		return grid.Cell{}, err
	}
	ix, err := strconv.ParseInt(x, 10, 32)
	if err != nil {
		return grid.Cell{}, fmt.Errorf("cell %q: bad x: %w", s, err)
	}
	iy, err := strconv.ParseInt(y, 10, 32)
	if err != nil {
		return grid.Cell{}, fmt.Errorf("cell %q: bad y: %w", s, err)
	}
	return grid.Cell{X: int32(ix), Y: int32(iy)}, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func splitPair(s string) (string, string, error) {
	x, y, ok := strings.Cut(s, ",")
	if !ok {
		return "", "", fmt.Errorf("%q: want x,y", s)
	}
	return strings.TrimSpace(x), strings.TrimSpace(y), nil
}
