package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/alexanderramin/buildcost/internal/catalog"
	"github.com/alexanderramin/buildcost/internal/domain"
	"github.com/alexanderramin/buildcost/internal/importer"
)

var (
	// ErrInvalidName indicates a saved-estimate name that is empty or could
	// escape the store's namespace.
	ErrInvalidName = errors.New("invalid estimate name")

	// ErrInvalidResult indicates a caller-supplied result document that
	// cannot be stored alongside its project.
	ErrInvalidResult = errors.New("invalid result document")
)

// EstimateService runs the three estimation call shapes over project
// documents. Document shape errors are reported the same way as project
// validation errors.
type EstimateService interface {
	Basic(ctx context.Context, doc *importer.ProjectDocument) (*domain.EstimationResult, error)
	Detailed(ctx context.Context, doc *importer.ProjectDocument) (*domain.EstimationResult, error)
	Validate(ctx context.Context, doc *importer.ProjectDocument) domain.ValidationReport
	Catalog() *catalog.Catalog
}

type SavedEstimateService interface {
	// Save stores doc under name, replacing any estimate already stored
	// there. A nil result makes Save estimate the project first.
	Save(ctx context.Context, name string, doc *importer.ProjectDocument, result json.RawMessage) (*domain.SavedEstimate, error)
	Load(ctx context.Context, name string) (*domain.SavedEstimate, error)
	List(ctx context.Context) ([]*domain.SavedEstimate, error)
	Delete(ctx context.Context, name string) error
	TotalsByTrade(ctx context.Context) (map[domain.Trade]float64, error)
}
