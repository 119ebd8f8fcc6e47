package catalog

import (
	"fmt"
	"os"

	"github.com/alexanderramin/buildcost/internal/domain"
	"gopkg.in/yaml.v3"
)

// fileSchema is the on-disk YAML layout of a catalog file.
type fileSchema struct {
	Version string                 `yaml:"version"`
	Trades  map[string]tradeSchema `yaml:"trades"`
}

type tradeSchema struct {
	UnitBasis string             `yaml:"unit_basis"`
	Tiers     map[string]float64 `yaml:"tiers"`
}

// Load reads and parses a catalog YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse builds a catalog from YAML. Catalogs with fatal Check findings are
// rejected.
func Parse(data []byte) (*Catalog, error) {
	specs, version, err := parseSpecs(data)
	if err != nil {
		return nil, err
	}
	return New(version, specs)
}

// CheckFile parses a catalog file without rejecting it, so every finding can
// be reported.
func CheckFile(path string) ([]Finding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	specs, version, err := parseSpecs(data)
	if err != nil {
		return nil, err
	}
	c := &Catalog{version: version, trades: make(map[domain.Trade]tradeEntry, len(specs))}
	for _, s := range specs {
		c.trades[s.Trade] = tradeEntry{basis: s.UnitBasis, tiers: s.Multipliers}
	}
	return Check(c), nil
}

func parseSpecs(data []byte) ([]TradeSpec, string, error) {
	var schema fileSchema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, "", fmt.Errorf("parsing catalog: %w", err)
	}
	specs := make([]TradeSpec, 0, len(schema.Trades))
	for name, ts := range schema.Trades {
		mult := make(map[domain.Tier]float64, len(ts.Tiers))
		for tier, m := range ts.Tiers {
			mult[domain.Tier(tier)] = m
		}
		specs = append(specs, TradeSpec{
			Trade:       domain.Trade(name),
			UnitBasis:   domain.UnitBasis(ts.UnitBasis),
			Multipliers: mult,
		})
	}
	version := domain.CoalesceStr(schema.Version, "unversioned")
	return specs, version, nil
}
