// Package estimator is the estimation engine: override resolution, cost
// aggregation, validation and the facade that orchestrates them. It performs
// no I/O and holds no state between calls.
package estimator

import "github.com/alexanderramin/buildcost/internal/domain"

// Resolution is the effective tier for a (room, trade) pair and the scope of
// the override that supplied it.
type Resolution struct {
	Tier  domain.Tier
	Scope domain.Scope
}

type candidate struct {
	tier  *domain.Tier
	scope domain.Scope
}

// first returns the first present candidate. The global tier is always
// present, so the chain never comes up empty for a well-formed project.
func first(chain []candidate) Resolution {
	for _, c := range chain {
		if c.tier != nil {
			return Resolution{Tier: *c.tier, Scope: c.scope}
		}
	}
	return Resolution{}
}

// ResolveTier returns the effective tier for trade inside roomID.
// Precedence is room-trade, room, project-trade, global; the most specific
// present value wins.
func ResolveTier(p *domain.Project, roomID string, trade domain.Trade) Resolution {
	var roomTrade, roomTier *domain.Tier
	if room := p.Rooms[roomID]; room != nil {
		if rt, ok := room.Trades[trade]; ok {
			roomTrade = rt.Tier
		}
		roomTier = room.Tier
	}
	return first([]candidate{
		{roomTrade, domain.ScopeRoomTrade},
		{roomTier, domain.ScopeRoom},
		{projectTrade(p, trade), domain.ScopeProjectTrade},
		{domain.TierPtr(p.GlobalTier), domain.ScopeGlobal},
	})
}

// ResolveGeneralTier resolves a trade with no owning room.
func ResolveGeneralTier(p *domain.Project, trade domain.Trade) Resolution {
	return first([]candidate{
		{projectTrade(p, trade), domain.ScopeProjectTrade},
		{domain.TierPtr(p.GlobalTier), domain.ScopeGlobal},
	})
}

func projectTrade(p *domain.Project, trade domain.Trade) *domain.Tier {
	t, ok := p.Trades[trade]
	if !ok {
		return nil
	}
	return domain.TierPtr(t)
}
