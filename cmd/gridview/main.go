// gridview is a terminal viewer for terrain pathfinding.
//
// Every terminal cell shows one tile. Left click routes from the clicked
// tile to the goal and walks a marker along the route; right click moves
// the goal. Keys: r regenerates terrain, q or Esc quits. Saving the config
// file regenerates terrain with the new settings.
//
// Usage:
//
//	go run ./cmd/gridview -config config/tilepath.yaml
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/gdamore/tcell/v2"
)

func main() {
	cfgPath := flag.String("config", "config/tilepath.yaml", "config file")
	logPath := flag.String("log", "gridview.log", "log file (the screen owns stdout)")
	flag.Parse()

	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening log: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "initializing screen: %v\n", err)
		os.Exit(1)
	}

	v, err := newViewer(screen, *cfgPath, logFile)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "starting viewer: %v\n", err)
		os.Exit(1)
	}

	v.run()
	v.close()
	slog.Info("viewer stopped")
}
