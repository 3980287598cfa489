package world

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/tilepath/internal/grid"
	"github.com/udisondev/tilepath/internal/pathfind"
)

var (
	// ErrOutsideGrid is returned when a clicked point maps to no cell.
	ErrOutsideGrid = errors.New("world: point outside grid")
	// ErrNoTerrain is returned before any terrain has been installed.
	ErrNoTerrain = errors.New("world: no terrain loaded")
)

// Route is a computed path in both cell and world space.
type Route struct {
	Start, Goal grid.Cell
	Cells       []grid.Cell
	Cost        int64
	Points      []grid.Point
	Segments    []pathfind.Segment
	Snapshot    grid.Fingerprint
}

// Service turns world-space clicks into routes against the current snapshot.
type Service struct {
	store     *Store
	finder    *pathfind.Finder
	goal      grid.Cell
	threshold int32
}

// ServiceConfig configures a Service.
type ServiceConfig struct {
	// Goal is used when a request does not name one.
	Goal grid.Cell
	// Threshold overrides the grid threshold when > 0.
	Threshold int32
}

// NewService creates a Service.
func NewService(store *Store, finder *pathfind.Finder, cfg ServiceConfig) *Service {
	return &Service{
		store:     store,
		finder:    finder,
		goal:      cfg.Goal,
		threshold: cfg.Threshold,
	}
}

// Goal returns the default goal cell.
func (s *Service) Goal() grid.Cell {
	return s.goal
}

// Route computes a path from the cell under p to the default goal.
func (s *Service) Route(p grid.Point) (Route, error) {
	return s.RouteTo(p, s.goal)
}

// RouteTo computes a path from the cell under p to goal.
// Points outside the grid return ErrOutsideGrid without searching.
func (s *Service) RouteTo(p grid.Point, goal grid.Cell) (Route, error) {
	g := s.store.Snapshot()
	if g == nil {
		return Route{}, ErrNoTerrain
	}
	start, ok := g.Layout().WorldToCell(p)
	if !ok {
		return Route{}, fmt.Errorf("%w: (%.1f, %.1f)", ErrOutsideGrid, p.X, p.Y)
	}
	return s.route(g, start, goal)
}

// RouteCells computes a path between two cells of the current snapshot.
func (s *Service) RouteCells(start, goal grid.Cell) (Route, error) {
	g := s.store.Snapshot()
	if g == nil {
		return Route{}, ErrNoTerrain
	}
	return s.route(g, start, goal)
}

func (s *Service) route(g *grid.Grid, start, goal grid.Cell) (Route, error) {
	path, err := s.finder.Find(g, pathfind.Request{Start: start, Goal: goal, Threshold: s.threshold})
	if err != nil {
		slog.Debug("no route", "start", start.String(), "goal", goal.String(), "err", err)
		return Route{}, err
	}

	points := pathfind.Project(path.Cells, g.Layout())
	r := Route{
		Start:    start,
		Goal:     goal,
		Cells:    path.Cells,
		Cost:     path.Cost,
		Points:   points,
		Segments: pathfind.Segments(points),
		Snapshot: g.Fingerprint(),
	}
	slog.Debug("route found",
		"start", start.String(),
		"goal", goal.String(),
		"steps", path.Steps(),
		"cost", path.Cost)
	return r, nil
}
