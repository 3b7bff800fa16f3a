package analyzer

import (
	"context"
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"

	"github.com/blackwell-systems/codegauge/internal/estimate"
)

// ErrInvalidDescriptor is returned before any analysis runs when the
// descriptor is malformed.
var ErrInvalidDescriptor = estimate.ErrInvalidDescriptor

// ErrEstimation is returned by providers that cannot produce a bundle.
// The Analyzer never propagates it; it falls back to basic analysis.
var ErrEstimation = errors.New("estimation failed")

// DefaultLatency is the simulated processing time of a primary analysis.
const DefaultLatency = 2 * time.Second

// Analyzer turns descriptors into bundles.
type Analyzer struct {
	provider Provider
	logger   zerolog.Logger
	latency  time.Duration
	seedFn   func(estimate.Descriptor) uint64
	now      func() time.Time
	cache    *lru.Cache[string, *Bundle]
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithProvider replaces the primary analysis provider.
func WithProvider(p Provider) Option {
	return func(a *Analyzer) {
		if p != nil {
			a.provider = p
		}
	}
}

// WithLogger sets the logger used for fallbacks and timings.
func WithLogger(l zerolog.Logger) Option {
	return func(a *Analyzer) { a.logger = l }
}

// WithLatency sets how long the primary path waits before producing a
// result. Zero disables the wait.
func WithLatency(d time.Duration) Option {
	return func(a *Analyzer) {
		if d >= 0 {
			a.latency = d
		}
	}
}

// WithSeed makes every analysis use the same seed.
func WithSeed(seed uint64) Option {
	return func(a *Analyzer) {
		a.seedFn = func(estimate.Descriptor) uint64 { return seed }
	}
}

// WithSeedFunc derives the seed per descriptor, e.g. estimate.SeedFor.
func WithSeedFunc(fn func(estimate.Descriptor) uint64) Option {
	return func(a *Analyzer) {
		if fn != nil {
			a.seedFn = fn
		}
	}
}

// WithClock sets the clock used to stamp LastUpdated.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) {
		if now != nil {
			a.now = now
		}
	}
}

// WithCache memoizes up to size bundles keyed by descriptor and seed.
// Only useful with deterministic seeds.
func WithCache(size int) Option {
	return func(a *Analyzer) {
		if size <= 0 {
			return
		}
		c, err := lru.New[string, *Bundle](size)
		if err == nil {
			a.cache = c
		}
	}
}

// New returns an Analyzer using the heuristic provider, random seeds and
// DefaultLatency unless overridden.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		provider: HeuristicProvider{},
		logger:   zerolog.Nop(),
		latency:  DefaultLatency,
		seedFn:   func(estimate.Descriptor) uint64 { return estimate.RandomSeed() },
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze produces a bundle for d.
//
// Invalid descriptors are rejected immediately. Otherwise the call waits
// for the configured latency (the only point where it may block), runs
// the primary provider and, if that fails, falls back to basic analysis.
// If ctx is done while waiting, ctx.Err() is returned and no bundle is
// produced.
func (a *Analyzer) Analyze(ctx context.Context, d estimate.Descriptor) (*Bundle, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return a.AnalyzeSeed(ctx, d, a.seedFn(d))
}

// Seed returns a seed for analyzing d under the configured seeding policy.
// With random seeding every call returns a fresh seed.
func (a *Analyzer) Seed(d estimate.Descriptor) uint64 {
	return a.seedFn(d)
}

// AnalyzeSeed is Analyze with an explicit seed, so callers can record
// the seed alongside the bundle and reproduce it later.
func (a *Analyzer) AnalyzeSeed(ctx context.Context, d estimate.Descriptor, seed uint64) (*Bundle, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	key := cacheKey(d, seed)
	if a.cache != nil {
		if cached, ok := a.cache.Get(key); ok {
			return a.stamp(cached), nil
		}
	}

	start := time.Now()
	if err := a.wait(ctx); err != nil {
		return nil, err
	}

	b, err := a.provider.Analyze(ctx, d, estimate.NewRand(seed))
	if err == nil && b == nil {
		err = fmt.Errorf("%w: provider returned no bundle", ErrEstimation)
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		a.logger.Warn().
			Err(err).
			Str("kind", string(d.Kind)).
			Str("platform", string(d.Platform)).
			Msg("primary analysis failed, using basic analysis")
		b = basicAnalysis(d, estimate.NewRand(seed))
	}

	// Fallback bundles answer one failed call; the next call retries the provider.
	if a.cache != nil && !b.Degraded {
		a.cache.Add(key, b.clone())
	}

	a.logger.Debug().
		Str("kind", string(d.Kind)).
		Str("platform", string(d.Platform)).
		Uint64("seed", seed).
		Int("files", b.Overview.FileCount).
		Bool("degraded", b.Degraded).
		Dur("elapsed", time.Since(start)).
		Msg("analysis complete")

	return a.stamp(b), nil
}

// wait is the single suspension point of an analysis.
func (a *Analyzer) wait(ctx context.Context) error {
	if a.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(a.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// stamp returns a copy of b dated with the analysis wall-clock date.
func (a *Analyzer) stamp(b *Bundle) *Bundle {
	out := b.clone()
	out.Overview.LastUpdated = a.now().Format(DateLayout)
	return out
}

func cacheKey(d estimate.Descriptor, seed uint64) string {
	size := "-"
	if d.SizeBytes != nil {
		size = fmt.Sprintf("%d", *d.SizeBytes)
	}
	return fmt.Sprintf("%s|%s|%s|%s|%d", d.Kind, d.Platform, size, d.Source, seed)
}
