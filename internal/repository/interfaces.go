package repository

import (
	"context"

	"github.com/alexanderramin/buildcost/internal/domain"
)

// SavedEstimateRepo stores named estimates. Names are unique; saving under an
// existing name replaces the stored estimate but keeps its id and creation
// time.
type SavedEstimateRepo interface {
	Upsert(ctx context.Context, s *domain.SavedEstimate) error
	GetByName(ctx context.Context, name string) (*domain.SavedEstimate, error)
	List(ctx context.Context) ([]*domain.SavedEstimate, error)
	Delete(ctx context.Context, name string) error
}

// EstimateCategoryRepo stores the per-trade totals of a saved estimate.
type EstimateCategoryRepo interface {
	Replace(ctx context.Context, estimateID string, categories map[domain.Trade]float64) error
	ListByEstimate(ctx context.Context, estimateID string) (map[domain.Trade]float64, error)
	TotalsByTrade(ctx context.Context) (map[domain.Trade]float64, error)
}
