package estimator

import (
	"context"
	"fmt"

	"github.com/alexanderramin/buildcost/internal/catalog"
	"github.com/alexanderramin/buildcost/internal/domain"
	"golang.org/x/sync/errgroup"
)

// roomSubtotal is the priced output of a single room.
type roomSubtotal struct {
	id    string
	cost  domain.RoomCost
	lines []domain.LineItem
}

// Aggregate prices every (room, trade) pair of a validated project and every
// project-level trade that no room instantiates. Rooms are priced on up to
// workers goroutines; subtotals are merged in ascending room id order, then
// general lines in ascending trade order, so the result does not depend on
// scheduling. Amounts are never rounded here.
//
// A catalog lookup failure means validation let something through and is
// reported as domain.ErrInternal.
func Aggregate(ctx context.Context, cat *catalog.Catalog, p *domain.Project, workers int) (*domain.EstimationResult, error) {
	ids := p.RoomIDs()
	subtotals := make([]roomSubtotal, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, id := range ids {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			st, err := priceRoom(cat, p, id)
			if err != nil {
				return err
			}
			subtotals[i] = st
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	general, err := priceGeneral(cat, p)
	if err != nil {
		return nil, err
	}

	res := &domain.EstimationResult{
		ProjectName:       p.Name,
		GlobalTier:        p.GlobalTier,
		Categories:        make(map[domain.Trade]float64),
		Rooms:             make(map[string]domain.RoomCost, len(ids)),
		General:           make(map[domain.Trade]domain.LineItem, len(general)),
		RoomSquareFootage: p.RoomSquareFootage(),
		CatalogVersion:    cat.Version(),
	}
	for _, st := range subtotals {
		res.Rooms[st.id] = st.cost
		res.TotalCost += st.cost.TotalCost
		for _, line := range st.lines {
			res.Categories[line.Trade] += line.Cost
			res.Lines = append(res.Lines, line)
		}
	}
	for _, line := range general {
		res.General[line.Trade] = line
		res.Categories[line.Trade] += line.Cost
		res.TotalCost += line.Cost
		res.Lines = append(res.Lines, line)
	}
	res.PercentageBreakdown = percentages(res.Categories, res.TotalCost)
	return res, nil
}

func priceRoom(cat *catalog.Catalog, p *domain.Project, id string) (roomSubtotal, error) {
	room := p.Rooms[id]
	if room == nil {
		return roomSubtotal{}, fmt.Errorf("%w: room %q is nil", domain.ErrInternal, id)
	}
	st := roomSubtotal{
		id: id,
		cost: domain.RoomCost{
			Name:          room.Name,
			Type:          room.Type,
			SquareFootage: room.SquareFootage,
			Trades:        make(map[domain.Trade]domain.LineItem, len(room.Trades)),
		},
	}
	for _, trade := range domain.SortedTrades(room.Trades) {
		res := ResolveTier(p, id, trade)
		entry, err := cat.Entry(trade, res.Tier)
		if err != nil {
			return roomSubtotal{}, fmt.Errorf("%w: room %q: %w", domain.ErrInternal, id, err)
		}
		line := newLine(id, entry, res.Scope, RoomQuantity(entry.UnitBasis, p, room))
		st.cost.Trades[trade] = line
		st.cost.TotalCost += line.Cost
		st.lines = append(st.lines, line)
	}
	return st, nil
}

// priceGeneral prices project-level trades without an owning room. A project
// with no detail at all is priced as a single baseline line.
func priceGeneral(cat *catalog.Catalog, p *domain.Project) ([]domain.LineItem, error) {
	trades := p.GeneralTrades()
	if !p.HasDetail() {
		trades = []domain.Trade{catalog.BaselineTrade}
	}
	lines := make([]domain.LineItem, 0, len(trades))
	for _, trade := range trades {
		res := ResolveGeneralTier(p, trade)
		entry, err := cat.Entry(trade, res.Tier)
		if err != nil {
			return nil, fmt.Errorf("%w: general trade: %w", domain.ErrInternal, err)
		}
		lines = append(lines, newLine(domain.GeneralRoomID, entry, res.Scope, GeneralQuantity(entry.UnitBasis, p)))
	}
	return lines, nil
}

func newLine(roomID string, e catalog.Entry, scope domain.Scope, qty float64) domain.LineItem {
	return domain.LineItem{
		RoomID:     roomID,
		Trade:      e.Trade,
		Tier:       e.Tier,
		Scope:      scope,
		UnitBasis:  e.UnitBasis,
		Quantity:   qty,
		Multiplier: e.Multiplier,
		Cost:       e.Multiplier * qty,
	}
}

func percentages(categories map[domain.Trade]float64, total float64) map[domain.Trade]float64 {
	out := make(map[domain.Trade]float64, len(categories))
	for trade, cost := range categories {
		if total > 0 {
			out[trade] = cost / total * 100
		} else {
			out[trade] = 0
		}
	}
	return out
}
