package pathfind

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/tilepath/internal/grid"
)

// Outcome is the result of one request in a batch.
type Outcome struct {
	Request Request
	Path    *Path
	Err     error
}

// FindPaths runs independent requests concurrently against one snapshot.
// Results keep request order. Per-request failures land in Outcome.Err;
// the returned error is only set when ctx is cancelled.
func (f *Finder) FindPaths(ctx context.Context, g *grid.Grid, reqs []Request, workers int) ([]Outcome, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	out := make([]Outcome, len(reqs))
	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	for i, req := range reqs {
		if err := egctx.Err(); err != nil {
			break
		}
		eg.Go(func() error {
			if err := egctx.Err(); err != nil {
				return err
			}
			p, err := f.Find(g, req)
			out[i] = Outcome{Request: req, Path: p, Err: err}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return out, err
	}
	if err := ctx.Err(); err != nil {
		return out, err
	}
	return out, nil
}
