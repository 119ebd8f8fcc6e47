package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/buildcost/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_PricesEveryTradeAtEveryStandardTier(t *testing.T) {
	c := Default()
	require.NotEmpty(t, c.Trades())

	for _, trade := range c.Trades() {
		for _, tier := range domain.StandardTiers {
			m, err := c.MultiplierFor(trade, tier)
			require.NoError(t, err, "%s/%s", trade, tier)
			assert.Greater(t, m, 0.0)
		}
	}
	assert.Empty(t, Check(c), "built-in catalog should have no findings")
}

func TestDefault_IsConstructedOnce(t *testing.T) {
	assert.Same(t, Default(), Default())
}

func TestDefault_TiersAscendInCost(t *testing.T) {
	c := Default()
	for _, trade := range c.Trades() {
		p, _ := c.MultiplierFor(trade, domain.TierPremium)
		l, _ := c.MultiplierFor(trade, domain.TierLuxury)
		u, _ := c.MultiplierFor(trade, domain.TierUltraLuxury)
		assert.Less(t, p, l, trade)
		assert.Less(t, l, u, trade)
	}
}

func TestMultiplierFor_UnknownTrade(t *testing.T) {
	_, err := Default().MultiplierFor("masonry_art", domain.TierLuxury)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownTrade)
}

func TestMultiplierFor_UnknownTier(t *testing.T) {
	_, err := Default().MultiplierFor("plumbing", "Gold")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownTier)
	assert.NotErrorIs(t, err, domain.ErrUnknownTrade)
}

func TestEntry_CarriesUnitBasis(t *testing.T) {
	e, err := Default().Entry("plumbing", domain.TierLuxury)
	require.NoError(t, err)
	assert.Equal(t, domain.BasisPerFixture, e.UnitBasis)
	assert.Equal(t, 2800.0, e.Multiplier)

	e, err = Default().Entry("cleaning", domain.TierPremium)
	require.NoError(t, err)
	assert.Equal(t, domain.BasisFlat, e.UnitBasis)
}

func TestNew_CopiesSpecs(t *testing.T) {
	mult := map[domain.Tier]float64{domain.TierPremium: 10}
	c, err := New("v1", []TradeSpec{{Trade: BaselineTrade, UnitBasis: domain.BasisPerSqft, Multipliers: mult}})
	require.NoError(t, err)

	mult[domain.TierPremium] = 999
	m, err := c.MultiplierFor(BaselineTrade, domain.TierPremium)
	require.NoError(t, err)
	assert.Equal(t, 10.0, m)
}

func TestNew_RejectsNonPositiveMultiplier(t *testing.T) {
	_, err := New("v1", []TradeSpec{{Trade: "tile", UnitBasis: domain.BasisPerSqft,
		Multipliers: map[domain.Tier]float64{domain.TierPremium: 0}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "multiplier must be positive")
}

func TestNew_RejectsDuplicateTrade(t *testing.T) {
	spec := TradeSpec{Trade: "tile", UnitBasis: domain.BasisPerSqft, Multipliers: map[domain.Tier]float64{domain.TierPremium: 1}}
	_, err := New("v1", []TradeSpec{spec, spec})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestNew_RejectsUnknownUnitBasis(t *testing.T) {
	_, err := New("v1", []TradeSpec{{Trade: "tile", UnitBasis: "per_hour",
		Multipliers: map[domain.Tier]float64{domain.TierPremium: 1}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown unit basis")
}

func TestTiers_StandardOrder(t *testing.T) {
	assert.Equal(t, domain.StandardTiers, Default().Tiers("hvac"))
	assert.Nil(t, Default().Tiers("nope"))
}

func TestEntries_OrderedByTradeThenTier(t *testing.T) {
	entries := Default().Entries()
	require.Len(t, entries, len(Default().Trades())*3)
	assert.Equal(t, domain.Trade("cabinetry"), entries[0].Trade)
	assert.Equal(t, domain.TierPremium, entries[0].Tier)
	assert.Equal(t, domain.TierUltraLuxury, entries[2].Tier)
}

const sampleYAML = `
version: "2025.2"
trades:
  general_construction:
    unit_basis: per_sqft
    tiers: { Premium: 300, Luxury: 450, Ultra-Luxury: 700 }
  plumbing:
    unit_basis: per_fixture
    tiers: { Premium: 1500, Luxury: 2500 }
`

func TestParse_ValidFile(t *testing.T) {
	c, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "2025.2", c.Version())
	assert.Equal(t, []domain.Trade{"general_construction", "plumbing"}, c.Trades())

	m, err := c.MultiplierFor("plumbing", domain.TierLuxury)
	require.NoError(t, err)
	assert.Equal(t, 2500.0, m)

	assert.False(t, c.HasTier("plumbing", domain.TierUltraLuxury))
	_, err = c.MultiplierFor("plumbing", domain.TierUltraLuxury)
	assert.ErrorIs(t, err, domain.ErrUnknownTier)
}

func TestParse_MissingVersionDefaults(t *testing.T) {
	c, err := Parse([]byte("trades:\n  tile:\n    unit_basis: per_sqft\n    tiers: {Premium: 1}\n"))
	require.NoError(t, err)
	assert.Equal(t, "unversioned", c.Version())
}

func TestParse_MalformedYAML(t *testing.T) {
	_, err := Parse([]byte("trades: [unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing catalog")
}

func TestParse_RejectsUnknownTierName(t *testing.T) {
	_, err := Parse([]byte("trades:\n  tile:\n    unit_basis: per_sqft\n    tiers: {Gold: 1}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown tier "Gold"`)
}

func TestLoad_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.True(t, c.HasTrade("plumbing"))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCheckFile_ReportsAllFindings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := `
trades:
  tile:
    unit_basis: per_hour
    tiers: { Premium: -1 }
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	findings, err := CheckFile(path)
	require.NoError(t, err)

	var errorsFound, warnings int
	for _, f := range findings {
		switch f.Severity {
		case SeverityError:
			errorsFound++
		case SeverityWarning:
			warnings++
		}
	}
	// unit basis + negative multiplier
	assert.Equal(t, 2, errorsFound)
	// Luxury + Ultra-Luxury missing + baseline trade missing
	assert.Equal(t, 3, warnings)
	assert.Len(t, Fatal(findings), 2)
}

func TestCheck_EmptyCatalog(t *testing.T) {
	findings := Check(&Catalog{trades: map[domain.Trade]tradeEntry{}})
	require.Len(t, findings, 1)
	assert.Equal(t, SeverityError, findings[0].Severity)
}
