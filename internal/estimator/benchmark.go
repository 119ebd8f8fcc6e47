package estimator

import (
	"github.com/alexanderramin/buildcost/internal/catalog"
	"github.com/alexanderramin/buildcost/internal/domain"
)

// Compare sets every category of res against the benchmarks for tier, per
// square foot of the whole project. Comparisons come back in trade order.
func Compare(res *domain.EstimationResult, sqft float64, tier domain.Tier, b catalog.Benchmarks) []domain.BenchmarkComparison {
	out := make([]domain.BenchmarkComparison, 0, len(res.Categories))
	for _, trade := range domain.SortedTrades(res.Categories) {
		c := domain.BenchmarkComparison{Trade: trade}
		if sqft > 0 {
			c.Actual = res.Categories[trade] / sqft
		}
		c.Benchmark, _ = b.For(tier, trade)
		c.Difference = c.Actual - c.Benchmark
		if c.Benchmark > 0 {
			c.PercentageDiff = c.Difference / c.Benchmark * 100
		}
		out = append(out, c)
	}
	return out
}
