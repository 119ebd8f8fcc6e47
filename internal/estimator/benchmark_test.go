package estimator

import (
	"context"
	"testing"

	"github.com/alexanderramin/buildcost/internal/catalog"
	"github.com/alexanderramin/buildcost/internal/domain"
	"github.com/alexanderramin/buildcost/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func benchmarkFor(t *testing.T, cs []domain.BenchmarkComparison, trade domain.Trade) domain.BenchmarkComparison {
	t.Helper()
	for _, c := range cs {
		if c.Trade == trade {
			return c
		}
	}
	t.Fatalf("no comparison for %s", trade)
	return domain.BenchmarkComparison{}
}

func TestEngine_AttachesBenchmarkComparison(t *testing.T) {
	res, err := NewEngine(nil).Run(context.Background(), testutil.SampleDetailedProject())
	require.NoError(t, err)

	require.Len(t, res.Benchmarks, len(res.Categories))
	trades := make([]domain.Trade, 0, len(res.Benchmarks))
	for _, c := range res.Benchmarks {
		trades = append(trades, c.Trade)
	}
	assert.Equal(t, []domain.Trade{"cabinetry", "electrical", "hvac", "plumbing"}, trades)

	// 300 sq ft of Luxury cabinetry over a 5000 sq ft project
	cab := benchmarkFor(t, res.Benchmarks, "cabinetry")
	assert.InDelta(t, 9.0, cab.Actual, 1e-9)
	assert.Equal(t, 40.0, cab.Benchmark)
	assert.InDelta(t, -31.0, cab.Difference, 1e-9)
	assert.InDelta(t, -77.5, cab.PercentageDiff, 1e-9)

	elec := benchmarkFor(t, res.Benchmarks, "electrical")
	assert.InDelta(t, 18.0, elec.Actual, 1e-9)
	assert.InDelta(t, 0.0, elec.PercentageDiff, 1e-9)
}

func TestCompare_UsesEffectiveTier(t *testing.T) {
	p := testutil.NewTestProject("p",
		testutil.WithSquareFootage(2000),
		testutil.WithGlobalTier(""),
		testutil.WithProjectTrade("foundation", ""),
	)
	res, err := NewEngine(nil).Run(context.Background(), p)
	require.NoError(t, err)
	require.True(t, res.TierDerived)

	c := benchmarkFor(t, res.Benchmarks, "foundation")
	assert.Equal(t, 15.0, c.Benchmark, "derived Premium tier selects the Premium benchmark")
	assert.InDelta(t, 18.0, c.Actual, 1e-9)
	assert.InDelta(t, 20.0, c.PercentageDiff, 1e-9)
}

func TestCompare_TradeWithoutBenchmark(t *testing.T) {
	res := &domain.EstimationResult{Categories: map[domain.Trade]float64{"tile": 5000}}

	cs := Compare(res, 1000, domain.TierLuxury, catalog.DefaultBenchmarks())
	require.Len(t, cs, 1)
	assert.Equal(t, 5.0, cs[0].Actual)
	assert.Zero(t, cs[0].Benchmark)
	assert.Equal(t, 5.0, cs[0].Difference)
	assert.Zero(t, cs[0].PercentageDiff)
}

func TestCompare_ZeroSquareFootage(t *testing.T) {
	res := &domain.EstimationResult{Categories: map[domain.Trade]float64{"hvac": 100}}

	cs := Compare(res, 0, domain.TierLuxury, catalog.DefaultBenchmarks())
	require.Len(t, cs, 1)
	assert.Zero(t, cs[0].Actual)
	assert.Equal(t, -15.0, cs[0].Difference)
	assert.Equal(t, -100.0, cs[0].PercentageDiff)
}

func TestEngine_WithBenchmarks(t *testing.T) {
	custom := catalog.Benchmarks{domain.TierLuxury: {catalog.BaselineTrade: 400}}
	res, err := NewEngine(nil, WithBenchmarks(custom)).Run(context.Background(), testutil.NewTestProject("p"))
	require.NoError(t, err)

	require.Len(t, res.Benchmarks, 1)
	assert.Equal(t, 400.0, res.Benchmarks[0].Benchmark)
	assert.InDelta(t, 25.0, res.Benchmarks[0].PercentageDiff, 1e-9)

	res, err = NewEngine(nil, WithBenchmarks(nil)).Run(context.Background(), testutil.NewTestProject("p"))
	require.NoError(t, err)
	assert.Zero(t, res.Benchmarks[0].Benchmark)
}
