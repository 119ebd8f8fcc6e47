package catalog

import (
	"sync"

	"github.com/alexanderramin/buildcost/internal/domain"
)

// DefaultVersion labels the built-in catalog.
const DefaultVersion = "builtin-2025.1"

func tiers(premium, luxury, ultra float64) map[domain.Tier]float64 {
	return map[domain.Tier]float64{
		domain.TierPremium:     premium,
		domain.TierLuxury:      luxury,
		domain.TierUltraLuxury: ultra,
	}
}

// Per-square-foot trades are in dollars per square foot, per-fixture trades
// in dollars per fixture, flat trades in dollars per line.
var defaultSpecs = []TradeSpec{
	{BaselineTrade, domain.BasisPerSqft, tiers(350, 500, 750)},
	{"preparations_preliminaries", domain.BasisFlat, tiers(25000, 40000, 65000)},
	{"foundation", domain.BasisPerSqft, tiers(18, 24, 32)},
	{"structural", domain.BasisPerSqft, tiers(45, 60, 85)},
	{"roofing", domain.BasisPerSqft, tiers(14, 22, 35)},
	{"windows_doors", domain.BasisPerSqft, tiers(20, 32, 50)},
	{"insulation", domain.BasisPerSqft, tiers(4, 6, 9)},
	{"drywall_interior", domain.BasisPerSqft, tiers(9, 12, 16)},
	{"electrical", domain.BasisPerSqft, tiers(12, 18, 28)},
	{"plumbing", domain.BasisPerFixture, tiers(1800, 2800, 4500)},
	{"hvac", domain.BasisPerSqft, tiers(15, 22, 32)},
	{"thermal_fire_suppression", domain.BasisPerSqft, tiers(5, 7, 10)},
	{"tile", domain.BasisPerSqft, tiers(22, 38, 65)},
	{"countertops", domain.BasisPerSqft, tiers(60, 110, 180)},
	{"cabinetry", domain.BasisPerSqft, tiers(90, 150, 260)},
	{"finish_carpentry", domain.BasisPerSqft, tiers(10, 16, 26)},
	{"painting_coatings", domain.BasisPerSqft, tiers(4, 6, 9)},
	{"landscape_hardscape", domain.BasisFlat, tiers(40000, 80000, 150000)},
	{"cleaning", domain.BasisFlat, tiers(3500, 5000, 8000)},
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	return MustNew(DefaultVersion, defaultSpecs)
})

// Default returns the built-in catalog. It is constructed once per process.
func Default() *Catalog {
	return defaultCatalog()
}
