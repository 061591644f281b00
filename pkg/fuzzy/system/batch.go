package system

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// RunBatch evaluates every row concurrently on at most workers goroutines
// (GOMAXPROCS when workers <= 0). Results keep the row order. The first failing
// row cancels the remaining work and its error is returned.
func (s *Snapshot) RunBatch(ctx context.Context, rows []map[string]float64, and AndMethod, method InferenceMethod, workers int) ([]map[string]float64, error) {
	if err := and.validate(); err != nil {
		return nil, err
	}
	if err := method.validate(); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]map[string]float64, len(rows))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, row := range rows {
		if gCtx.Err() != nil {
			break
		}
		i, row := i, row
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			out, err := s.Run(row, and, method)
			if err != nil {
				return fmt.Errorf("row %d: %w", i, err)
			}
			results[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
