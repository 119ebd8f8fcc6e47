package estimator

import (
	"fmt"
	"math"

	"github.com/alexanderramin/buildcost/internal/catalog"
	"github.com/alexanderramin/buildcost/internal/domain"
)

// Policy holds the thresholds behind validation warnings.
type Policy struct {
	LargeSquareFootage float64
	MaxRooms           int
	MaxBedrooms        int
}

// DefaultPolicy returns the stock warning thresholds.
func DefaultPolicy() Policy {
	return Policy{
		LargeSquareFootage: 25000,
		MaxRooms:           50,
		MaxBedrooms:        10,
	}
}

// Warnings callers may match on exactly.
const (
	MsgLargeSquareFootage = "Square footage is unusually high"
	MsgManyBedrooms       = "Bedroom count is unusually high"
)

type reportBuilder struct {
	errors   []string
	warnings []string
}

func (b *reportBuilder) errorf(format string, args ...any) {
	b.errors = append(b.errors, fmt.Sprintf(format, args...))
}

func (b *reportBuilder) warnf(format string, args ...any) {
	b.warnings = append(b.warnings, fmt.Sprintf(format, args...))
}

func (b *reportBuilder) report() domain.ValidationReport {
	return domain.ValidationReport{
		IsValid:  len(b.errors) == 0,
		Errors:   b.errors,
		Warnings: b.warnings,
	}
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// Validate applies structural and sanity checks to p. Errors block
// estimation, warnings do not. Rooms and trades are visited in sorted order
// so the messages are stable across runs.
func Validate(cat *catalog.Catalog, policy Policy, p *domain.Project) domain.ValidationReport {
	var b reportBuilder

	if !positive(p.SquareFootage) {
		b.errorf("Square footage must be a positive number, got %v", p.SquareFootage)
	} else if p.SquareFootage > policy.LargeSquareFootage {
		b.warnf(MsgLargeSquareFootage)
	}

	counts := []struct {
		name  string
		value int
	}{
		{"bedroom_count", p.BedroomCount},
		{"primary_bath_count", p.PrimaryBathCount},
		{"secondary_bath_count", p.SecondaryBathCount},
		{"powder_room_count", p.PowderRoomCount},
	}
	for _, c := range counts {
		if c.value < 0 {
			b.errorf("%s must not be negative, got %d", c.name, c.value)
		}
	}
	if p.BedroomCount > policy.MaxBedrooms {
		b.warnf(MsgManyBedrooms)
	}

	if p.GlobalTier == "" {
		b.errorf("Global tier is required")
	} else if !p.GlobalTier.Valid() {
		b.errorf("Invalid global tier %q", p.GlobalTier)
	}

	for _, trade := range domain.SortedTrades(p.Trades) {
		if !cat.HasTrade(trade) {
			b.errorf("Unknown trade %q", trade)
			continue
		}
		if tier := p.Trades[trade]; tier != "" && !tier.Valid() {
			b.errorf("Invalid tier %q for trade %q", tier, trade)
		}
	}

	if len(p.Rooms) > policy.MaxRooms {
		b.warnf("Project has %d rooms, more than the recommended %d", len(p.Rooms), policy.MaxRooms)
	}
	for _, id := range p.RoomIDs() {
		validateRoom(&b, cat, p, id)
	}

	checkResolvedTiers(&b, cat, p)
	return b.report()
}

func validateRoom(b *reportBuilder, cat *catalog.Catalog, p *domain.Project, id string) {
	room := p.Rooms[id]
	if id == "" {
		b.errorf("Room id must not be empty")
	}
	if room == nil {
		b.errorf("Room %q has no definition", id)
		return
	}
	if room.Name == "" {
		b.warnf("Room %q has no name", id)
	}
	if !room.Type.Valid() {
		b.errorf("Room %q: unknown room type %q", id, room.Type)
	}
	if !positive(room.SquareFootage) {
		b.errorf("Room %q: square footage must be a positive number, got %v", id, room.SquareFootage)
	} else if positive(p.SquareFootage) && room.SquareFootage > p.SquareFootage {
		b.warnf("Room %q square footage (%.0f) exceeds the project total (%.0f)", id, room.SquareFootage, p.SquareFootage)
	}
	if room.Tier != nil && !room.Tier.Valid() {
		b.errorf("Room %q: invalid tier %q", id, *room.Tier)
	}
	for _, trade := range domain.SortedTrades(room.Trades) {
		if !cat.HasTrade(trade) {
			b.errorf("Room %q: unknown trade %q", id, trade)
			continue
		}
		if t := room.Trades[trade].Tier; t != nil && !t.Valid() {
			b.errorf("Room %q: invalid tier %q for trade %q", id, *t, trade)
		}
	}
}

// checkResolvedTiers resolves every line the aggregator will price and
// confirms the catalog carries the resolved tier for that trade. Names that
// are not tiers at all were already reported and are skipped here.
func checkResolvedTiers(b *reportBuilder, cat *catalog.Catalog, p *domain.Project) {
	check := func(where string, trade domain.Trade, res Resolution) {
		if !res.Tier.Valid() || !cat.HasTrade(trade) {
			return
		}
		if !cat.HasTier(trade, res.Tier) {
			b.errorf("%s: tier %q (%s) is not available for trade %q: %v",
				where, res.Tier, res.Scope, trade, domain.ErrInvalidTierName)
		}
	}

	for _, id := range p.RoomIDs() {
		room := p.Rooms[id]
		if room == nil {
			continue
		}
		for _, trade := range domain.SortedTrades(room.Trades) {
			check(fmt.Sprintf("Room %q", id), trade, ResolveTier(p, id, trade))
		}
	}
	for _, trade := range p.GeneralTrades() {
		check("Project", trade, ResolveGeneralTier(p, trade))
	}
	if !p.HasDetail() {
		if !cat.HasTrade(catalog.BaselineTrade) {
			b.errorf("Project: baseline trade %q is not in the catalog: %v", catalog.BaselineTrade, domain.ErrUnknownTrade)
			return
		}
		check("Project", catalog.BaselineTrade, ResolveGeneralTier(p, catalog.BaselineTrade))
	}
}
