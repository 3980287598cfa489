package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/udisondev/tilepath/internal/actor"
	"github.com/udisondev/tilepath/internal/config"
	"github.com/udisondev/tilepath/internal/grid"
	"github.com/udisondev/tilepath/internal/pathfind"
	"github.com/udisondev/tilepath/internal/terrain"
	"github.com/udisondev/tilepath/internal/world"
)

const frameInterval = 16 * time.Millisecond

var (
	styleFloor  = tcell.StyleDefault.Foreground(tcell.ColorDarkGreen)
	styleWall   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	stylePath   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleGoal   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleActor  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorSilver)
)

type viewer struct {
	screen  tcell.Screen
	cfgPath string
	cfg     config.Config
	watcher *config.Watcher

	store   *world.Store
	service *world.Service
	goal    grid.Cell

	route  *world.Route
	mover  *actor.Mover
	status string
}

func newViewer(screen tcell.Screen, cfgPath string, logOut io.Writer) (*viewer, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	v := &viewer{
		screen:  screen,
		cfgPath: cfgPath,
		store:   world.NewStore(nil),
	}
	if err := v.apply(cfg); err != nil {
		return nil, err
	}

	if w, err := config.NewWatcher(cfgPath); err != nil {
		slog.Warn("config hot reload disabled", "err", err)
	} else {
		v.watcher = w
	}

	screen.EnableMouse()
	screen.HideCursor()
	return v, nil
}

// apply installs cfg and regenerates terrain from it. On error the viewer
// keeps its previous config, goal and terrain.
func (v *viewer) apply(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	g, seed, err := generate(cfg)
	if err != nil {
		return err
	}

	v.cfg = cfg
	v.goal = cfg.Pathfinding.Goal.Cell()
	v.service = world.NewService(v.store,
		pathfind.NewFinder(pathfind.Options{MaxExpansions: cfg.Pathfinding.MaxExpansions}),
		world.ServiceConfig{Goal: v.goal})
	v.install(g, seed)
	return nil
}

func (v *viewer) regenerate() error {
	g, seed, err := generate(v.cfg)
	if err != nil {
		return err
	}
	v.install(g, seed)
	return nil
}

func generate(cfg config.Config) (*grid.Grid, uint64, error) {
	seed := cfg.Terrain.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	g, err := terrain.Generate(cfg.TerrainParams(), seed)
	if err != nil {
		return nil, 0, fmt.Errorf("generating terrain: %w", err)
	}
	return g, seed, nil
}

func (v *viewer) install(g *grid.Grid, seed uint64) {
	v.store.Replace(g)
	v.route, v.mover = nil, nil
	v.status = fmt.Sprintf("terrain %dx%d seed %d, %d passable", g.Width(), g.Height(), seed, g.PassableCount())
}

func (v *viewer) close() {
	if v.watcher != nil {
		_ = v.watcher.Close()
	}
	v.screen.Fini()
}

func (v *viewer) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	var reload <-chan string
	if v.watcher != nil {
		reload = v.watcher.Events
	}

	last := time.Now()
	v.draw()
	for {
		select {
		case ev, ok := <-events:
			if !ok || !v.handleEvent(ev) {
				return
			}
		case _, ok := <-reload:
			if !ok {
				reload = nil
				continue
			}
			v.reloadConfig()
		case now := <-ticker.C:
			v.step(now.Sub(last).Seconds())
			last = now
			v.draw()
		}
	}
}

func (v *viewer) reloadConfig() {
	cfg, err := config.Load(v.cfgPath)
	if err != nil {
		slog.Warn("config reload failed", "err", err)
		v.status = "config reload failed: " + err.Error()
		return
	}
	if err := v.apply(cfg); err != nil {
		slog.Warn("config apply failed", "err", err)
		v.status = "config apply failed: " + err.Error()
		return
	}
	slog.Info("config reloaded", "path", v.cfgPath)
}

func (v *viewer) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case 'r':
				v.cfg.Terrain.Seed = 0
				if err := v.regenerate(); err != nil {
					v.status = err.Error()
				}
			}
		}
	case *tcell.EventMouse:
		col, row := ev.Position()
		switch buttons := ev.Buttons(); {
		case buttons&tcell.Button1 != 0:
			v.routeFrom(col, row)
		case buttons&tcell.Button2 != 0:
			v.moveGoal(col, row)
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

// screenToWorld maps a terminal cell to the world-space point at the
// center of the tile drawn there. Rows grow downward, grid Y grows upward.
func (v *viewer) screenToWorld(col, row int) grid.Point {
	l := v.store.Snapshot().Layout()
	local := grid.Point{
		X: float64(col) * l.CellW(),
		Y: float64(int(l.Height())-1-row) * l.CellH(),
	}
	return l.Transform().Apply(local)
}

func (v *viewer) cellToScreen(c grid.Cell) (int, int) {
	return int(c.X), int(v.store.Snapshot().Height()-1-c.Y)
}

func (v *viewer) routeFrom(col, row int) {
	r, err := v.service.RouteTo(v.screenToWorld(col, row), v.goal)
	switch {
	case errors.Is(err, world.ErrOutsideGrid):
		return
	case err != nil:
		v.route, v.mover = nil, nil
		v.status = "no path: " + err.Error()
		return
	}

	waypoints := r.Points
	if g := v.store.Snapshot(); v.cfg.Actor.Smooth && g.Fingerprint() == r.Snapshot {
		waypoints = pathfind.Project(pathfind.Smooth(g, r.Cells), g.Layout())
	}
	m, err := actor.NewMover(r.Points[0], waypoints, v.cfg.Actor.Speed)
	if err != nil {
		v.status = err.Error()
		return
	}
	v.route, v.mover = &r, m
	v.status = fmt.Sprintf("%s -> %s: cost %d, %d steps", r.Start, r.Goal, r.Cost, len(r.Cells)-1)
}

func (v *viewer) moveGoal(col, row int) {
	c, ok := v.store.Snapshot().Layout().WorldToCell(v.screenToWorld(col, row))
	if !ok {
		return
	}
	v.goal = c
	v.route, v.mover = nil, nil
	v.status = "goal " + c.String()
}

func (v *viewer) step(dt float64) {
	if v.mover == nil {
		return
	}
	if _, done := v.mover.Update(dt); done {
		slog.Debug("actor arrived", "goal", v.goal.String())
	}
}

func (v *viewer) draw() {
	v.screen.Clear()
	g := v.store.Snapshot()

	for y := range g.Height() {
		for x := range g.Width() {
			c := grid.Cell{X: x, Y: y}
			col, row := v.cellToScreen(c)
			if g.Passable(c) {
				v.screen.SetContent(col, row, '.', nil, styleFloor)
			} else {
				v.screen.SetContent(col, row, '#', nil, styleWall)
			}
		}
	}

	if v.route != nil {
		for _, seg := range v.route.Segments {
			v.plot(g, seg.From, '*', stylePath)
			v.plot(g, seg.To, '*', stylePath)
		}
	}

	col, row := v.cellToScreen(v.goal)
	v.screen.SetContent(col, row, 'G', nil, styleGoal)

	if v.mover != nil {
		v.plot(g, v.mover.Position(), '@', styleActor)
	}

	_, h := v.screen.Size()
	for i, r := range v.status {
		v.screen.SetContent(i, h-1, r, nil, styleStatus)
	}
	v.screen.Show()
}

func (v *viewer) plot(g *grid.Grid, p grid.Point, ch rune, style tcell.Style) {
	c, ok := g.Layout().WorldToCell(p)
	if !ok {
		return
	}
	col, row := v.cellToScreen(c)
	v.screen.SetContent(col, row, ch, nil, style)
}
