package estimator

import (
	"context"
	"runtime"

	"github.com/alexanderramin/buildcost/internal/catalog"
	"github.com/alexanderramin/buildcost/internal/domain"
)

// TierBands are the square-footage thresholds used to derive a global tier
// when a project omits one.
type TierBands struct {
	LuxuryMinSqft      float64
	UltraLuxuryMinSqft float64
}

// DefaultTierBands returns the stock derivation bands.
func DefaultTierBands() TierBands {
	return TierBands{LuxuryMinSqft: 5000, UltraLuxuryMinSqft: 10000}
}

// Derive returns the tier for a project of the given size.
func (b TierBands) Derive(sqft float64) domain.Tier {
	switch {
	case sqft >= b.UltraLuxuryMinSqft:
		return domain.TierUltraLuxury
	case sqft >= b.LuxuryMinSqft:
		return domain.TierLuxury
	default:
		return domain.TierPremium
	}
}

// Engine runs validation and aggregation against a fixed catalog. It holds no
// per-request state and is safe for concurrent use.
type Engine struct {
	catalog    *catalog.Catalog
	benchmarks catalog.Benchmarks
	policy     Policy
	bands      TierBands
	workers    int
}

type Option func(*Engine)

func WithPolicy(p Policy) Option {
	return func(e *Engine) { e.policy = p }
}

func WithTierBands(b TierBands) Option {
	return func(e *Engine) { e.bands = b }
}

// WithBenchmarks replaces the built-in benchmark table. A nil table leaves
// every comparison without a benchmark.
func WithBenchmarks(b catalog.Benchmarks) Option {
	return func(e *Engine) { e.benchmarks = b }
}

// WithWorkers bounds the number of rooms priced concurrently. Values below
// one fall back to GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(e *Engine) { e.workers = n }
}

// NewEngine builds an engine over cat. A nil catalog selects the built-in one.
func NewEngine(cat *catalog.Catalog, opts ...Option) *Engine {
	if cat == nil {
		cat = catalog.Default()
	}
	e := &Engine{
		catalog:    cat,
		benchmarks: catalog.DefaultBenchmarks(),
		policy:     DefaultPolicy(),
		bands:      DefaultTierBands(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.workers < 1 {
		e.workers = runtime.GOMAXPROCS(0)
	}
	return e
}

func (e *Engine) Catalog() *catalog.Catalog { return e.catalog }

func (e *Engine) Policy() Policy { return e.policy }

// prepare fills in a derived global tier without touching the caller's
// project.
func (e *Engine) prepare(p *domain.Project) (*domain.Project, bool) {
	if p.GlobalTier != "" || !positive(p.SquareFootage) {
		return p, false
	}
	cp := *p
	cp.GlobalTier = e.bands.Derive(p.SquareFootage)
	return &cp, true
}

// EffectiveTier is the global tier an estimate of p runs at, derived from
// square footage when p names none.
func (e *Engine) EffectiveTier(p *domain.Project) domain.Tier {
	prepared, _ := e.prepare(p)
	return prepared.GlobalTier
}

// Validate checks p without estimating it.
func (e *Engine) Validate(p *domain.Project) domain.ValidationReport {
	prepared, _ := e.prepare(p)
	return Validate(e.catalog, e.policy, prepared)
}

// Run validates p and, only if it is valid, estimates it. A project with
// hard errors yields a *domain.ValidationFailure and no result.
func (e *Engine) Run(ctx context.Context, p *domain.Project) (*domain.EstimationResult, error) {
	prepared, derived := e.prepare(p)
	report := Validate(e.catalog, e.policy, prepared)
	if !report.IsValid {
		return nil, &domain.ValidationFailure{Report: report}
	}
	res, err := Aggregate(ctx, e.catalog, prepared, e.workers)
	if err != nil {
		return nil, err
	}
	res.TierDerived = derived
	res.Warnings = report.Warnings
	res.Benchmarks = Compare(res, prepared.SquareFootage, prepared.GlobalTier, e.benchmarks)
	return res, nil
}

// Basic estimates p from its global tier and square footage alone, ignoring
// any rooms and project-level trades.
func (e *Engine) Basic(ctx context.Context, p *domain.Project) (*domain.EstimationResult, error) {
	return e.Run(ctx, p.WithoutDetail())
}
