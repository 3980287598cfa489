package world

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/udisondev/tilepath/internal/grid"
	"github.com/udisondev/tilepath/internal/terrain"
)

// Store owns the current terrain snapshot.
// Readers take the pointer once per query and keep using it; Replace swaps
// the whole grid, never mutating one that a reader may hold.
type Store struct {
	current    atomic.Pointer[grid.Grid]
	generation atomic.Uint64
}

// NewStore creates a store holding g (which may be nil).
func NewStore(g *grid.Grid) *Store {
	s := &Store{}
	if g != nil {
		s.Replace(g)
	}
	return s
}

// Snapshot returns the current grid, or nil before the first Replace.
func (s *Store) Snapshot() *grid.Grid {
	return s.current.Load()
}

// Generation counts completed replacements.
func (s *Store) Generation() uint64 {
	return s.generation.Load()
}

// Replace installs g as the current snapshot and returns the new generation.
func (s *Store) Replace(g *grid.Grid) uint64 {
	s.current.Store(g)
	gen := s.generation.Add(1)
	slog.Info("terrain snapshot replaced",
		"generation", gen,
		"width", g.Width(),
		"height", g.Height(),
		"passable", g.PassableCount(),
		"fingerprint", g.Fingerprint().String())
	return gen
}

// Regenerate builds new terrain and swaps it in.
func (s *Store) Regenerate(p terrain.Params, seed uint64) (*grid.Grid, error) {
	g, err := terrain.Generate(p, seed)
	if err != nil {
		return nil, fmt.Errorf("regenerating terrain: %w", err)
	}
	s.Replace(g)
	return g, nil
}
