// Package catalog holds the tier catalog: the immutable table of cost
// multipliers per trade and quality tier.
package catalog

import (
	"fmt"
	"sort"

	"github.com/alexanderramin/buildcost/internal/domain"
)

// BaselineTrade prices a project that declares no rooms and no trades.
const BaselineTrade domain.Trade = "general_construction"

// Entry is one (trade, tier) cell of the catalog.
type Entry struct {
	Trade      domain.Trade
	Tier       domain.Tier
	Multiplier float64
	UnitBasis  domain.UnitBasis
}

// TradeSpec describes one trade when constructing a catalog.
type TradeSpec struct {
	Trade       domain.Trade
	UnitBasis   domain.UnitBasis
	Multipliers map[domain.Tier]float64
}

type tradeEntry struct {
	basis domain.UnitBasis
	tiers map[domain.Tier]float64
}

// Catalog is read-only after construction and safe for concurrent use.
type Catalog struct {
	version string
	trades  map[domain.Trade]tradeEntry
}

// New builds a catalog from specs. Specs are copied; later changes to the
// caller's maps do not affect the catalog. New rejects specs that Check
// reports as fatal.
func New(version string, specs []TradeSpec) (*Catalog, error) {
	c := &Catalog{
		version: version,
		trades:  make(map[domain.Trade]tradeEntry, len(specs)),
	}
	for _, s := range specs {
		if _, dup := c.trades[s.Trade]; dup {
			return nil, fmt.Errorf("catalog: duplicate trade %q", s.Trade)
		}
		tiers := make(map[domain.Tier]float64, len(s.Multipliers))
		for tier, m := range s.Multipliers {
			tiers[tier] = m
		}
		c.trades[s.Trade] = tradeEntry{basis: s.UnitBasis, tiers: tiers}
	}
	if errs := Fatal(Check(c)); len(errs) > 0 {
		return nil, fmt.Errorf("catalog: %s", errs[0].Message)
	}
	return c, nil
}

// MustNew is New that panics on error. Used for the built-in catalog.
func MustNew(version string, specs []TradeSpec) *Catalog {
	c, err := New(version, specs)
	if err != nil {
		panic(err)
	}
	return c
}

// Version returns the catalog version label.
func (c *Catalog) Version() string { return c.version }

// Entry returns the catalog cell for (trade, tier).
func (c *Catalog) Entry(trade domain.Trade, tier domain.Tier) (Entry, error) {
	te, ok := c.trades[trade]
	if !ok {
		return Entry{}, fmt.Errorf("trade %q: %w", trade, domain.ErrUnknownTrade)
	}
	m, ok := te.tiers[tier]
	if !ok {
		return Entry{}, fmt.Errorf("tier %q for trade %q: %w", tier, trade, domain.ErrUnknownTier)
	}
	return Entry{Trade: trade, Tier: tier, Multiplier: m, UnitBasis: te.basis}, nil
}

// MultiplierFor returns the cost multiplier for (trade, tier).
func (c *Catalog) MultiplierFor(trade domain.Trade, tier domain.Tier) (float64, error) {
	e, err := c.Entry(trade, tier)
	if err != nil {
		return 0, err
	}
	return e.Multiplier, nil
}

// HasTrade reports whether the catalog knows the trade.
func (c *Catalog) HasTrade(trade domain.Trade) bool {
	_, ok := c.trades[trade]
	return ok
}

// HasTier reports whether the catalog prices trade at tier.
func (c *Catalog) HasTier(trade domain.Trade, tier domain.Tier) bool {
	te, ok := c.trades[trade]
	if !ok {
		return false
	}
	_, ok = te.tiers[tier]
	return ok
}

// UnitBasis returns the unit basis of a trade.
func (c *Catalog) UnitBasis(trade domain.Trade) (domain.UnitBasis, error) {
	te, ok := c.trades[trade]
	if !ok {
		return "", fmt.Errorf("trade %q: %w", trade, domain.ErrUnknownTrade)
	}
	return te.basis, nil
}

// Trades returns all trades in ascending order.
func (c *Catalog) Trades() []domain.Trade {
	return domain.SortedTrades(c.trades)
}

// Tiers returns the tiers priced for a trade, in standard order first and
// any others alphabetically after.
func (c *Catalog) Tiers(trade domain.Trade) []domain.Tier {
	te, ok := c.trades[trade]
	if !ok {
		return nil
	}
	out := make([]domain.Tier, 0, len(te.tiers))
	for _, t := range domain.StandardTiers {
		if _, ok := te.tiers[t]; ok {
			out = append(out, t)
		}
	}
	var extra []domain.Tier
	for t := range te.tiers {
		if !t.Valid() {
			extra = append(extra, t)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}

// Entries returns every cell of the catalog, ordered by trade then tier.
func (c *Catalog) Entries() []Entry {
	var out []Entry
	for _, trade := range c.Trades() {
		for _, tier := range c.Tiers(trade) {
			e, _ := c.Entry(trade, tier)
			out = append(out, e)
		}
	}
	return out
}
