package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/tilepath/internal/grid"
)

// TerrainRepository persists terrain snapshots keyed by fingerprint.
type TerrainRepository struct {
	pool *pgxpool.Pool
}

// NewTerrainRepository creates a new terrain repository.
func NewTerrainRepository(pool *pgxpool.Pool) *TerrainRepository {
	return &TerrainRepository{pool: pool}
}

// Save stores g. Saving an existing snapshot refreshes its created_at so
// that LoadLatest returns it.
func (r *TerrainRepository) Save(ctx context.Context, g *grid.Grid) error {
	l := g.Layout()
	tr := l.Transform()
	fp := g.Fingerprint()

	_, err := r.pool.Exec(ctx, `
		INSERT INTO terrain_snapshots
			(fingerprint, width, height, cell_w, cell_h, transform, threshold, costs)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (fingerprint) DO UPDATE SET created_at = now()
	`, fp[:], l.Width(), l.Height(), l.CellW(), l.CellH(), tr[:], g.Threshold(), g.Costs())
	if err != nil {
		return fmt.Errorf("saving terrain %s: %w", fp, err)
	}
	slog.Info("terrain snapshot saved", "fingerprint", fp.String(), "width", l.Width(), "height", l.Height())
	return nil
}

// Load returns the snapshot with the given fingerprint.
func (r *TerrainRepository) Load(ctx context.Context, fp grid.Fingerprint) (*grid.Grid, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT fingerprint, width, height, cell_w, cell_h, transform, threshold, costs
		FROM terrain_snapshots
		WHERE fingerprint = $1
	`, fp[:])
	g, err := scanGrid(row)
	if err != nil {
		return nil, fmt.Errorf("loading terrain %s: %w", fp, err)
	}
	return g, nil
}

// LoadLatest returns the most recently saved snapshot.
func (r *TerrainRepository) LoadLatest(ctx context.Context) (*grid.Grid, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT fingerprint, width, height, cell_w, cell_h, transform, threshold, costs
		FROM terrain_snapshots
		ORDER BY created_at DESC
		LIMIT 1
	`)
	g, err := scanGrid(row)
	if err != nil {
		return nil, fmt.Errorf("loading latest terrain: %w", err)
	}
	return g, nil
}

// Delete removes the snapshot with the given fingerprint.
func (r *TerrainRepository) Delete(ctx context.Context, fp grid.Fingerprint) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM terrain_snapshots WHERE fingerprint = $1`, fp[:])
	if err != nil {
		return fmt.Errorf("deleting terrain %s: %w", fp, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("deleting terrain %s: %w", fp, ErrNotFound)
	}
	return nil
}

// Count returns the number of stored snapshots.
func (r *TerrainRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM terrain_snapshots`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting terrain snapshots: %w", err)
	}
	return n, nil
}

func scanGrid(row pgx.Row) (*grid.Grid, error) {
	var (
		stored        []byte
		width, height int32
		cellW, cellH  float64
		transform     []float64
		threshold     int32
		costs         []int32
	)
	if err := row.Scan(&stored, &width, &height, &cellW, &cellH, &transform, &threshold, &costs); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning terrain row: %w", err)
	}

	if len(transform) != len(grid.Affine{}) {
		return nil, fmt.Errorf("terrain transform has %d components", len(transform))
	}
	var tr grid.Affine
	copy(tr[:], transform)

	layout, err := grid.NewLayout(width, height, cellW, cellH, tr)
	if err != nil {
		return nil, fmt.Errorf("rebuilding layout: %w", err)
	}
	g, err := grid.New(layout, costs, threshold)
	if err != nil {
		return nil, fmt.Errorf("rebuilding grid: %w", err)
	}

	if fp := g.Fingerprint(); string(fp[:]) != string(stored) {
		return nil, fmt.Errorf("terrain fingerprint mismatch: stored %x, computed %s", stored, fp)
	}
	return g, nil
}
