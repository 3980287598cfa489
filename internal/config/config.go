package config

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/tilepath/internal/grid"
	"github.com/udisondev/tilepath/internal/terrain"
)

// Config holds all settings for the pathfinding tools.
type Config struct {
	LogLevel string `yaml:"log_level"` // debug, info, warn, error

	Terrain     TerrainConfig     `yaml:"terrain"`
	Pathfinding PathfindingConfig `yaml:"pathfinding"`
	Actor       ActorConfig       `yaml:"actor"`
	Database    DatabaseConfig    `yaml:"database"`
}

// TerrainConfig controls terrain generation.
type TerrainConfig struct {
	Width          int32   `yaml:"width"`
	Height         int32   `yaml:"height"`
	TileSize       float64 `yaml:"tile_size"`
	WalkableChance float64 `yaml:"walkable_chance"`
	WalkableCost   int32   `yaml:"walkable_cost"`
	BlockedCost    int32   `yaml:"blocked_cost"`
	Seed           uint64  `yaml:"seed"` // 0 = new seed per generation
}

// PathfindingConfig controls path queries.
type PathfindingConfig struct {
	ImpassableThreshold int32      `yaml:"impassable_threshold"`
	Goal                CellConfig `yaml:"goal"`
	MaxExpansions       int        `yaml:"max_expansions"` // 0 = unlimited
	Workers             int        `yaml:"workers"`        // batch parallelism, 0 = GOMAXPROCS
}

// CellConfig is a grid cell in YAML form.
type CellConfig struct {
	X int32 `yaml:"x"`
	Y int32 `yaml:"y"`
}

// Cell converts to a grid.Cell.
func (c CellConfig) Cell() grid.Cell {
	return grid.Cell{X: c.X, Y: c.Y}
}

// ActorConfig controls waypoint following.
type ActorConfig struct {
	Speed  float64 `yaml:"speed"` // world units per second
	Smooth bool    `yaml:"smooth"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Default returns Config with the stock map settings: 64×64 tiles of
// 64 units, 80% walkable, threshold 5, goal (4,6).
func Default() Config {
	return Config{
		LogLevel: "info",
		Terrain: TerrainConfig{
			Width:          64,
			Height:         64,
			TileSize:       64,
			WalkableChance: 0.8,
			WalkableCost:   grid.WalkableCost,
			BlockedCost:    grid.BlockedCost,
		},
		Pathfinding: PathfindingConfig{
			ImpassableThreshold: grid.DefaultImpassableThreshold,
			Goal:                CellConfig{X: 4, Y: 6},
		},
		Actor: ActorConfig{
			Speed: 100,
		},
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "tilepath",
			Password: "tilepath",
			DBName:   "tilepath",
			SSLMode:  "disable",
		},
	}
}

// Load loads config from a YAML file.
// If the file doesn't exist, returns defaults. An empty file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, fmt.Errorf("config %s is empty", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if err := c.TerrainParams().Validate(); err != nil {
		return err
	}
	if c.Pathfinding.ImpassableThreshold < 0 {
		return fmt.Errorf("impassable threshold %d must be non-negative", c.Pathfinding.ImpassableThreshold)
	}
	g := c.Pathfinding.Goal
	if g.X < 0 || g.Y < 0 || g.X >= c.Terrain.Width || g.Y >= c.Terrain.Height {
		return fmt.Errorf("goal (%d,%d) outside %dx%d terrain", g.X, g.Y, c.Terrain.Width, c.Terrain.Height)
	}
	if c.Pathfinding.MaxExpansions < 0 {
		return fmt.Errorf("max expansions %d must be non-negative", c.Pathfinding.MaxExpansions)
	}
	if !(c.Actor.Speed > 0) {
		return fmt.Errorf("actor speed %g must be positive", c.Actor.Speed)
	}
	return nil
}

// TerrainParams converts the terrain section to generator parameters.
func (c Config) TerrainParams() terrain.Params {
	return terrain.Params{
		Width:          c.Terrain.Width,
		Height:         c.Terrain.Height,
		TileSize:       c.Terrain.TileSize,
		WalkableChance: c.Terrain.WalkableChance,
		WalkableCost:   c.Terrain.WalkableCost,
		BlockedCost:    c.Terrain.BlockedCost,
		Threshold:      c.Pathfinding.ImpassableThreshold,
	}
}

// SlogLevel maps LogLevel to a slog level (unknown values → info).
func (c Config) SlogLevel() slog.Level {
	return ParseLogLevel(c.LogLevel)
}

// ParseLogLevel maps a level name to a slog level.
func ParseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
