package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/buildcost/internal/contract"
	"github.com/alexanderramin/buildcost/internal/db"
	"github.com/alexanderramin/buildcost/internal/domain"
	"github.com/alexanderramin/buildcost/internal/estimator"
	"github.com/alexanderramin/buildcost/internal/importer"
	"github.com/alexanderramin/buildcost/internal/repository"
	"github.com/google/uuid"
)

type savedEstimateService struct {
	estimates  repository.SavedEstimateRepo
	categories repository.EstimateCategoryRepo
	uow        db.UnitOfWork
	engine     *estimator.Engine
	observer   UseCaseObserver
	now        func() time.Time
}

func NewSavedEstimateService(
	estimates repository.SavedEstimateRepo,
	categories repository.EstimateCategoryRepo,
	uow db.UnitOfWork,
	engine *estimator.Engine,
	observers ...UseCaseObserver,
) SavedEstimateService {
	if engine == nil {
		engine = estimator.NewEngine(nil)
	}
	return &savedEstimateService{
		estimates:  estimates,
		categories: categories,
		uow:        uow,
		engine:     engine,
		observer:   useCaseObserverOrNoop(observers),
		now:        nowUTC,
	}
}

// nowUTC returns the current UTC time truncated to the stored precision.
func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

func checkName(name string) error {
	if err := domain.ValidateEstimateName(name); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidName, err)
	}
	return nil
}

func (s *savedEstimateService) Save(ctx context.Context, name string, doc *importer.ProjectDocument, result json.RawMessage) (saved *domain.SavedEstimate, err error) {
	fields := map[string]any{"name": name, "supplied_result": len(result) > 0}
	done := observe(ctx, s.observer, "save-estimate", fields)
	defer func() { done(err) }()

	if err = checkName(name); err != nil {
		return nil, err
	}
	p, err := convertDocument(doc)
	if err != nil {
		return nil, err
	}
	stored := importer.FromProject(p)
	stored.AdditionalParameters = doc.AdditionalParameters
	document, err := stored.Marshal()
	if err != nil {
		return nil, fmt.Errorf("encoding project document: %w", err)
	}

	now := s.now()
	saved = &domain.SavedEstimate{
		ID:             uuid.New().String(),
		Name:           name,
		ProjectName:    p.Name,
		CatalogVersion: s.engine.Catalog().Version(),
		Document:       document,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if len(result) == 0 {
		err = s.estimateInto(ctx, p, saved)
	} else {
		err = s.acceptResult(p, result, saved)
	}
	if err != nil {
		return nil, err
	}
	fields["total_cost"] = saved.TotalCost

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteSavedEstimateRepo(tx).Upsert(ctx, saved); err != nil {
			return err
		}
		return repository.NewSQLiteEstimateCategoryRepo(tx).Replace(ctx, saved.ID, saved.Categories)
	})
	if err != nil {
		return nil, fmt.Errorf("saving estimate %q: %w", name, err)
	}
	return saved, nil
}

// estimateInto runs a detailed estimate of p and records it on saved.
func (s *savedEstimateService) estimateInto(ctx context.Context, p *domain.Project, saved *domain.SavedEstimate) error {
	res, err := s.engine.Run(ctx, p)
	if err != nil {
		return err
	}
	body, err := json.Marshal(contract.NewDetailedEstimateResponse(res))
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	saved.GlobalTier = res.GlobalTier
	saved.TotalCost = res.TotalCost
	saved.Categories = res.Categories
	saved.Result = body
	return nil
}

// suppliedResult is the part of a caller-supplied result the store indexes.
type suppliedResult struct {
	TotalCost  *float64           `json:"total_cost"`
	GlobalTier string             `json:"global_tier"`
	Categories map[string]float64 `json:"categories"`
}

// acceptResult stores a result computed elsewhere. The project must still
// be valid; the result is kept verbatim.
func (s *savedEstimateService) acceptResult(p *domain.Project, raw json.RawMessage, saved *domain.SavedEstimate) error {
	if report := s.engine.Validate(p); !report.IsValid {
		return &domain.ValidationFailure{Report: report}
	}

	var r suppliedResult
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&r); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidResult, err)
	}
	if r.TotalCost == nil {
		return fmt.Errorf("%w: total_cost is required", ErrInvalidResult)
	}
	if *r.TotalCost < 0 {
		return fmt.Errorf("%w: total_cost must not be negative, got %v", ErrInvalidResult, *r.TotalCost)
	}

	saved.Categories = make(map[domain.Trade]float64, len(r.Categories))
	for trade, cost := range r.Categories {
		if cost < 0 {
			return fmt.Errorf("%w: category %q must not be negative, got %v", ErrInvalidResult, trade, cost)
		}
		saved.Categories[domain.Trade(trade)] = cost
	}

	saved.GlobalTier = s.engine.EffectiveTier(p)
	if t := domain.Tier(r.GlobalTier); t.Valid() {
		saved.GlobalTier = t
	}
	saved.TotalCost = *r.TotalCost
	saved.Result = []byte(raw)
	return nil
}

func (s *savedEstimateService) Load(ctx context.Context, name string) (saved *domain.SavedEstimate, err error) {
	done := observe(ctx, s.observer, "load-estimate", map[string]any{"name": name})
	defer func() { done(err) }()

	if err = checkName(name); err != nil {
		return nil, err
	}
	saved, err = s.estimates.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	saved.Categories, err = s.categories.ListByEstimate(ctx, saved.ID)
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (s *savedEstimateService) List(ctx context.Context) ([]*domain.SavedEstimate, error) {
	return s.estimates.List(ctx)
}

func (s *savedEstimateService) Delete(ctx context.Context, name string) (err error) {
	done := observe(ctx, s.observer, "delete-estimate", map[string]any{"name": name})
	defer func() { done(err) }()

	if err = checkName(name); err != nil {
		return err
	}
	return s.estimates.Delete(ctx, name)
}

func (s *savedEstimateService) TotalsByTrade(ctx context.Context) (map[domain.Trade]float64, error) {
	return s.categories.TotalsByTrade(ctx)
}
