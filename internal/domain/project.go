package domain

import "sort"

// Project is a single estimation request. It is built fresh for every
// request and never mutated by the engine.
type Project struct {
	Name               string
	SquareFootage      float64
	GlobalTier         Tier
	BedroomCount       int
	PrimaryBathCount   int
	SecondaryBathCount int
	PowderRoomCount    int
	Rooms              map[string]*Room
	Trades             map[Trade]Tier
}

// Room is one room of a project. A nil Tier inherits from the project.
type Room struct {
	Name          string
	Type          RoomType
	SquareFootage float64
	Tier          *Tier
	Trades        map[Trade]RoomTrade
}

// RoomTrade pins a trade inside a room. A nil Tier inherits from the room.
type RoomTrade struct {
	Tier *Tier
}

// RoomIDs returns the project's room ids in ascending order.
func (p *Project) RoomIDs() []string {
	ids := make([]string, 0, len(p.Rooms))
	for id := range p.Rooms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// HasDetail reports whether the project carries rooms or project-level trades.
func (p *Project) HasDetail() bool {
	return len(p.Rooms) > 0 || len(p.Trades) > 0
}

// RoomTradeSet returns every trade instantiated in at least one room.
func (p *Project) RoomTradeSet() map[Trade]bool {
	set := make(map[Trade]bool)
	for _, room := range p.Rooms {
		if room == nil {
			continue
		}
		for trade := range room.Trades {
			set[trade] = true
		}
	}
	return set
}

// GeneralTrades returns, in ascending order, the project-level trades that no
// room instantiates.
func (p *Project) GeneralTrades() []Trade {
	inRooms := p.RoomTradeSet()
	var out []Trade
	for _, trade := range SortedTrades(p.Trades) {
		if !inRooms[trade] {
			out = append(out, trade)
		}
	}
	return out
}

// RoomSquareFootage sums the square footage of all rooms. The sum is
// informational and is not required to match the project total.
func (p *Project) RoomSquareFootage() float64 {
	var total float64
	for _, id := range p.RoomIDs() {
		if room := p.Rooms[id]; room != nil {
			total += room.SquareFootage
		}
	}
	return total
}

// WithoutDetail returns a shallow copy of the project with rooms and
// project-level trades removed.
func (p *Project) WithoutDetail() *Project {
	cp := *p
	cp.Rooms = nil
	cp.Trades = nil
	return &cp
}
