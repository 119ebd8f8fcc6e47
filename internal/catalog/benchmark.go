package catalog

import (
	"maps"

	"github.com/alexanderramin/buildcost/internal/domain"
)

// Benchmarks are industry reference costs in dollars per project square foot,
// per tier and trade. A trade without a benchmark has none to compare to.
type Benchmarks map[domain.Tier]map[domain.Trade]float64

var defaultBenchmarks = Benchmarks{
	domain.TierPremium: {
		"foundation":       15,
		"structural":       22.5,
		"electrical":       12,
		"plumbing":         18,
		"hvac":             10,
		"drywall_interior": 35,
		"cabinetry":        20,
	},
	domain.TierLuxury: {
		"foundation":       18,
		"structural":       28,
		"electrical":       18,
		"plumbing":         25,
		"hvac":             15,
		"drywall_interior": 55,
		"cabinetry":        40,
	},
	domain.TierUltraLuxury: {
		"foundation":       22,
		"structural":       35,
		"electrical":       28,
		"plumbing":         40,
		"hvac":             24,
		"drywall_interior": 90,
		"cabinetry":        75,
	},
}

// DefaultBenchmarks returns a copy of the built-in benchmark table.
func DefaultBenchmarks() Benchmarks {
	out := make(Benchmarks, len(defaultBenchmarks))
	for tier, row := range defaultBenchmarks {
		out[tier] = maps.Clone(row)
	}
	return out
}

// For returns the per-square-foot benchmark of trade at tier, and whether
// one exists.
func (b Benchmarks) For(tier domain.Tier, trade domain.Trade) (float64, bool) {
	v, ok := b[tier][trade]
	return v, ok
}
