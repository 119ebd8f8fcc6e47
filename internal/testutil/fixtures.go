package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/buildcost/internal/domain"
	"github.com/alexanderramin/buildcost/internal/importer"
	"github.com/google/uuid"
)

var testNameCounter atomic.Int64

// Project options
type ProjectOption func(*domain.Project)

func WithGlobalTier(t domain.Tier) ProjectOption {
	return func(p *domain.Project) {
		p.GlobalTier = t
	}
}

func WithSquareFootage(sqft float64) ProjectOption {
	return func(p *domain.Project) {
		p.SquareFootage = sqft
	}
}

func WithCounts(bedrooms, primaryBaths, secondaryBaths, powderRooms int) ProjectOption {
	return func(p *domain.Project) {
		p.BedroomCount = bedrooms
		p.PrimaryBathCount = primaryBaths
		p.SecondaryBathCount = secondaryBaths
		p.PowderRoomCount = powderRooms
	}
}

// WithProjectTrade declares a project-level trade. An empty tier declares the
// trade without overriding its tier.
func WithProjectTrade(trade domain.Trade, tier domain.Tier) ProjectOption {
	return func(p *domain.Project) {
		if p.Trades == nil {
			p.Trades = make(map[domain.Trade]domain.Tier)
		}
		p.Trades[trade] = tier
	}
}

func WithRoom(id string, room *domain.Room) ProjectOption {
	return func(p *domain.Project) {
		if p.Rooms == nil {
			p.Rooms = make(map[string]*domain.Room)
		}
		p.Rooms[id] = room
	}
}

// NewTestProject returns a valid 5000 sq ft Luxury project with no rooms or
// trades.
func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	p := &domain.Project{
		Name:          name,
		SquareFootage: 5000,
		GlobalTier:    domain.TierLuxury,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Room options
type RoomOption func(*domain.Room)

func WithRoomTier(t domain.Tier) RoomOption {
	return func(r *domain.Room) {
		r.Tier = &t
	}
}

func WithRoomSquareFootage(sqft float64) RoomOption {
	return func(r *domain.Room) {
		r.SquareFootage = sqft
	}
}

// WithRoomTrade adds a trade to the room. An empty tier inherits.
func WithRoomTrade(trade domain.Trade, tier domain.Tier) RoomOption {
	return func(r *domain.Room) {
		if r.Trades == nil {
			r.Trades = make(map[domain.Trade]domain.RoomTrade)
		}
		r.Trades[trade] = domain.RoomTrade{Tier: domain.TierPtr(tier)}
	}
}

// NewTestRoom returns a 200 sq ft room of the given type.
func NewTestRoom(name string, typ domain.RoomType, opts ...RoomOption) *domain.Room {
	r := &domain.Room{
		Name:          name,
		Type:          typ,
		SquareFootage: 200,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SampleDetailedProject is the reference detailed project: an Ultra-Luxury
// primary bath with plumbing, a kitchen with Luxury cabinetry, and project
// level electrical and hvac.
func SampleDetailedProject() *domain.Project {
	return NewTestProject("Sample Residence",
		WithCounts(4, 1, 2, 1),
		WithRoom("room1", NewTestRoom("Primary Bath", domain.RoomPrimaryBath,
			WithRoomTier(domain.TierUltraLuxury),
			WithRoomTrade("plumbing", domain.TierUltraLuxury))),
		WithRoom("room2", NewTestRoom("Kitchen", domain.RoomKitchen,
			WithRoomSquareFootage(300),
			WithRoomTrade("cabinetry", domain.TierLuxury))),
		WithProjectTrade("electrical", domain.TierLuxury),
		WithProjectTrade("hvac", domain.TierPremium),
	)
}

// SampleDetailedDocument is SampleDetailedProject in its document form.
func SampleDetailedDocument() *importer.ProjectDocument {
	return importer.FromProject(SampleDetailedProject())
}

// NewTestDocument returns the document form of a test project.
func NewTestDocument(name string, opts ...ProjectOption) *importer.ProjectDocument {
	return importer.FromProject(NewTestProject(name, opts...))
}

// Saved estimate options
type SavedEstimateOption func(*domain.SavedEstimate)

func WithSavedCategories(c map[domain.Trade]float64) SavedEstimateOption {
	return func(s *domain.SavedEstimate) {
		s.Categories = c
		s.TotalCost = 0
		for _, v := range c {
			s.TotalCost += v
		}
	}
}

func WithSavedDocument(doc, result []byte) SavedEstimateOption {
	return func(s *domain.SavedEstimate) {
		s.Document = doc
		s.Result = result
	}
}

// NewTestSavedEstimate returns a saved estimate with a unique name when name
// is empty.
func NewTestSavedEstimate(name string, opts ...SavedEstimateOption) *domain.SavedEstimate {
	if name == "" {
		name = fmt.Sprintf("estimate-%02d", testNameCounter.Add(1))
	}
	now := time.Now().UTC().Truncate(time.Second)
	s := &domain.SavedEstimate{
		ID:          uuid.New().String(),
		Name:        name,
		ProjectName: "Test Project",
		GlobalTier:  domain.TierLuxury,
		TotalCost:   2500000,
		Categories:  map[domain.Trade]float64{"general_construction": 2500000},
		Document:    []byte(`{"square_footage":5000,"global_tier":"Luxury"}`),
		Result:      []byte(`{"total_cost":2500000}`),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
