// Package sweep builds the games of a scenario batch concurrently, one model
// and one output directory per scenario.
package sweep

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"mediator/internal/game"
	"mediator/internal/logging"
	"mediator/internal/params"
)

// DefaultParallel is used when Options.Parallel is not positive.
const DefaultParallel = 4

// Options controls a sweep.
type Options struct {
	Parallel int    // max concurrent builds
	OutDir   string // each scenario writes under OutDir/<name>
}

// Result is the outcome of one scenario. Err is set when the build or the
// save failed; other scenarios are unaffected.
type Result struct {
	Scenario params.Scenario
	Model    *game.Model
	Path     string
	Elapsed  time.Duration
	Err      error
}

// Run builds every scenario of the batch and returns results in batch order.
// The returned error is non-nil only for an invalid batch or a cancelled
// context; per-scenario failures are reported in Result.Err.
func Run(ctx context.Context, batch *params.Batch, opts Options) ([]Result, error) {
	if err := batch.Validate(); err != nil {
		return nil, err
	}
	parallel := opts.Parallel
	if parallel <= 0 {
		parallel = DefaultParallel
	}
	logger := logging.New("sweep")
	logger.Info("sweep started", "scenarios", len(batch.Scenarios), "workers", parallel)

	results := make([]Result, len(batch.Scenarios))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, sc := range batch.Scenarios {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = Result{Scenario: sc, Err: err}
				return err
			}
			results[i] = buildOne(sc, filepath.Join(opts.OutDir, sc.Name))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, fmt.Errorf("sweep cancelled: %w", err)
	}

	failed := Failed(results)
	for _, r := range results {
		if r.Err != nil {
			logger.Error("scenario failed", "scenario", r.Scenario.Name, "error", r.Err)
		}
	}
	logger.Info("sweep finished", "ok", len(results)-failed, "failed", failed)
	return results, nil
}

// Failed counts the results with an error.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

func buildOne(sc params.Scenario, dir string) Result {
	start := time.Now()
	res := Result{Scenario: sc}
	m, err := game.New(sc.Params)
	if err != nil {
		res.Err = fmt.Errorf("build %s: %w", sc.Name, err)
		return res
	}
	res.Model = m
	path, err := m.Save(dir)
	if err != nil {
		res.Err = fmt.Errorf("save %s: %w", sc.Name, err)
		return res
	}
	res.Path = path
	res.Elapsed = time.Since(start)
	return res
}
