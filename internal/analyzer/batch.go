package analyzer

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/blackwell-systems/codegauge/internal/estimate"
)

// AnalyzeAll analyzes independent descriptors with at most limit running
// at once. Results are returned in input order; a failed descriptor does
// not stop the others.
func (a *Analyzer) AnalyzeAll(ctx context.Context, ds []estimate.Descriptor, limit int) []Result {
	if limit < 1 {
		limit = 1
	}

	results := make([]Result, len(ds))
	var g errgroup.Group
	g.SetLimit(limit)

	for i, d := range ds {
		g.Go(func() error {
			if err := d.Validate(); err != nil {
				results[i] = Result{Descriptor: d, Err: err}
				return nil
			}
			seed := a.seedFn(d)
			b, err := a.AnalyzeSeed(ctx, d, seed)
			results[i] = Result{Descriptor: d, Seed: seed, Bundle: b, Err: err}
			return nil
		})
	}

	_ = g.Wait()
	return results
}
