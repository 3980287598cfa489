// pathfind runs path queries against generated or stored terrain.
//
// Usage:
//
//	go run ./cmd/pathfind -points "-1984,-1600;300,420"
//	go run ./cmd/pathfind -cells "0,0;10,12" -goal 4,6 -seed 42 -print-map
//	go run ./cmd/pathfind -load-latest -points "0,0" -smooth
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/udisondev/tilepath/internal/config"
	"github.com/udisondev/tilepath/internal/db"
	"github.com/udisondev/tilepath/internal/grid"
	"github.com/udisondev/tilepath/internal/pathfind"
	"github.com/udisondev/tilepath/internal/world"
)

const DefaultConfigPath = "config/tilepath.yaml"

type options struct {
	configPath string
	points     string
	cells      string
	goal       string
	seed       uint64
	loadLatest bool
	save       bool
	printMap   bool
	smooth     bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "config file (default $TILEPATH_CONFIG or "+DefaultConfigPath+")")
	flag.StringVar(&opts.points, "points", "", "world-space start points, \"x,y;x,y\"")
	flag.StringVar(&opts.cells, "cells", "", "start cells, \"x,y;x,y\"")
	flag.StringVar(&opts.goal, "goal", "", "goal cell \"x,y\" (default from config)")
	flag.Uint64Var(&opts.seed, "seed", 0, "terrain seed (default from config, 0 = random)")
	flag.BoolVar(&opts.loadLatest, "load-latest", false, "use the latest terrain stored in the database")
	flag.BoolVar(&opts.save, "save", false, "store the terrain in the database")
	flag.BoolVar(&opts.printMap, "print-map", false, "print the terrain before querying")
	flag.BoolVar(&opts.smooth, "smooth", false, "also print smoothed movement waypoints")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx, opts); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	cfgPath := opts.configPath
	if cfgPath == "" {
		cfgPath = DefaultConfigPath
		if p := os.Getenv("TILEPATH_CONFIG"); p != "" {
			cfgPath = p
		}
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))
	slog.Info("config loaded", "path", cfgPath, "log_level", cfg.LogLevel)

	goal := cfg.Pathfinding.Goal.Cell()
	if opts.goal != "" {
		if goal, err = parseCell(opts.goal); err != nil {
			return fmt.Errorf("parsing -goal: %w", err)
		}
	}
	points, err := parsePoints(opts.points)
	if err != nil {
		return fmt.Errorf("parsing -points: %w", err)
	}
	starts, err := parseCells(opts.cells)
	if err != nil {
		return fmt.Errorf("parsing -cells: %w", err)
	}

	var repo *db.TerrainRepository
	if opts.loadLatest || opts.save {
		if !cfg.Database.Enabled {
			return errors.New("-load-latest and -save need database.enabled in config")
		}
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()
		slog.Info("database connected")

		version, err := db.RunMigrations(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied", "version", version)
		repo = db.NewTerrainRepository(database.Pool())
	}

	store := world.NewStore(nil)
	if opts.loadLatest {
		g, err := repo.LoadLatest(ctx)
		if err != nil {
			return fmt.Errorf("loading terrain: %w", err)
		}
		store.Replace(g)
	} else {
		seed := opts.seed
		if seed == 0 {
			seed = cfg.Terrain.Seed
		}
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		if _, err := store.Regenerate(cfg.TerrainParams(), seed); err != nil {
			return err
		}
		slog.Info("terrain generated", "seed", seed)
	}
	snapshot := store.Snapshot()

	if opts.save {
		if err := repo.Save(ctx, snapshot); err != nil {
			return fmt.Errorf("saving terrain: %w", err)
		}
	}
	if opts.printMap {
		fmt.Print(snapshot.String())
	}

	for _, p := range points {
		c, ok := snapshot.Layout().WorldToCell(p)
		if !ok {
			slog.Warn("point outside grid, skipped", "x", p.X, "y", p.Y)
			continue
		}
		starts = append(starts, c)
	}
	if len(starts) == 0 {
		slog.Info("no start points given")
		return nil
	}

	reqs := make([]pathfind.Request, len(starts))
	for i, s := range starts {
		reqs[i] = pathfind.Request{Start: s, Goal: goal}
	}

	finder := pathfind.NewFinder(pathfind.Options{MaxExpansions: cfg.Pathfinding.MaxExpansions})
	began := time.Now()
	outcomes, err := finder.FindPaths(ctx, snapshot, reqs, cfg.Pathfinding.Workers)
	if err != nil {
		return fmt.Errorf("running queries: %w", err)
	}
	slog.Info("queries finished", "count", len(reqs), "elapsed", time.Since(began))

	for _, o := range outcomes {
		printOutcome(snapshot, o, opts.smooth || cfg.Actor.Smooth)
	}
	return nil
}

func printOutcome(g *grid.Grid, o pathfind.Outcome, smooth bool) {
	fmt.Printf("%s -> %s: ", o.Request.Start, o.Request.Goal)
	if o.Err != nil {
		fmt.Printf("no path (%v)\n", o.Err)
		return
	}
	fmt.Printf("cost %d, %d steps\n", o.Path.Cost, o.Path.Steps())

	cells := make([]string, len(o.Path.Cells))
	for i, c := range o.Path.Cells {
		cells[i] = c.String()
	}
	fmt.Printf("  cells:  %s\n", strings.Join(cells, " "))

	fmt.Printf("  points: %s\n", formatPoints(pathfind.Project(o.Path.Cells, g.Layout())))
	if smooth {
		waypoints := pathfind.Project(pathfind.Smooth(g, o.Path.Cells), g.Layout())
		fmt.Printf("  smooth: %s\n", formatPoints(waypoints))
	}
}

func formatPoints(pts []grid.Point) string {
	out := make([]string, len(pts))
	for i, p := range pts {
		out[i] = fmt.Sprintf("(%.0f,%.0f)", p.X, p.Y)
	}
	return strings.Join(out, " ")
}
