package render

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"edadash/domain/chart"
	"edadash/internal/errors"
)

// WriteAll renders every chart of the panel into dir, at most parallel at a
// time, and returns the written paths in chart order
func (r *Renderer) WriteAll(ctx context.Context, dir string, panel *chart.Panel, parallel int64) ([]string, error) {
	if parallel < 1 {
		parallel = 1
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create %s", dir)
	}

	kinds := chart.Kinds()
	paths := make([]string, len(kinds))
	sem := semaphore.NewWeighted(parallel)
	g, ctx := errgroup.WithContext(ctx)

	for i, kind := range kinds {
		i, kind := i, kind
		g.Go(func() error {
			if err := sem.Acquire(ctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)

			path := filepath.Join(dir, FileName(kind))
			if err := r.writeFile(path, panel, kind); err != nil {
				return err
			}
			log.Printf("[Render] Wrote %s", path)
			paths[i] = path
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

func (r *Renderer) writeFile(path string, panel *chart.Panel, kind chart.Kind) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "failed to close %s", path)
		}
	}()
	return r.Render(f, panel, kind)
}
