package terrain

import (
	"fmt"
	"math/rand/v2"

	"github.com/udisondev/tilepath/internal/grid"
)

// Params controls terrain generation.
type Params struct {
	Width, Height  int32
	TileSize       float64
	WalkableChance float64 // probability a tile is walkable, [0,1]
	WalkableCost   int32
	BlockedCost    int32
	Threshold      int32
}

// DefaultParams returns a 64×64 map of 64-unit tiles, 80% walkable.
func DefaultParams() Params {
	return Params{
		Width:          64,
		Height:         64,
		TileSize:       64,
		WalkableChance: 0.8,
		WalkableCost:   grid.WalkableCost,
		BlockedCost:    grid.BlockedCost,
		Threshold:      grid.DefaultImpassableThreshold,
	}
}

// Validate checks parameter ranges.
func (p Params) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("terrain size %dx%d must be positive", p.Width, p.Height)
	}
	if !(p.TileSize > 0) {
		return fmt.Errorf("tile size %g must be positive", p.TileSize)
	}
	if p.WalkableChance < 0 || p.WalkableChance > 1 {
		return fmt.Errorf("walkable chance %g outside [0,1]", p.WalkableChance)
	}
	if p.WalkableCost < 0 || p.BlockedCost < 0 {
		return fmt.Errorf("costs must be non-negative (walkable %d, blocked %d)", p.WalkableCost, p.BlockedCost)
	}
	return nil
}

// Layout returns the centered layout for p.
func (p Params) Layout() (grid.Layout, error) {
	return grid.NewLayout(p.Width, p.Height, p.TileSize, p.TileSize,
		grid.CenteredTransform(p.Width, p.Height, p.TileSize, p.TileSize))
}

// Generate builds a random terrain grid. The same seed always produces the
// same grid.
func Generate(p Params, seed uint64) (*grid.Grid, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("generating terrain: %w", err)
	}
	layout, err := p.Layout()
	if err != nil {
		return nil, fmt.Errorf("generating terrain: %w", err)
	}

	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	costs := make([]int32, layout.Len())
	for i := range costs {
		if r.Float64() < p.WalkableChance {
			costs[i] = p.WalkableCost
		} else {
			costs[i] = p.BlockedCost
		}
	}

	g, err := grid.New(layout, costs, p.Threshold)
	if err != nil {
		return nil, fmt.Errorf("generating terrain: %w", err)
	}
	return g, nil
}
