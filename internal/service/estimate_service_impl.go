package service

import (
	"context"

	"github.com/alexanderramin/buildcost/internal/catalog"
	"github.com/alexanderramin/buildcost/internal/domain"
	"github.com/alexanderramin/buildcost/internal/estimator"
	"github.com/alexanderramin/buildcost/internal/importer"
)

type estimateService struct {
	engine   *estimator.Engine
	observer UseCaseObserver
}

func NewEstimateService(engine *estimator.Engine, observers ...UseCaseObserver) EstimateService {
	if engine == nil {
		engine = estimator.NewEngine(nil)
	}
	return &estimateService{
		engine:   engine,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *estimateService) Catalog() *catalog.Catalog { return s.engine.Catalog() }

func (s *estimateService) Basic(ctx context.Context, doc *importer.ProjectDocument) (res *domain.EstimationResult, err error) {
	fields := map[string]any{"project": doc.ProjectName}
	done := observe(ctx, s.observer, "estimate-basic", fields)
	defer func() { done(err) }()

	p, err := convertDocument(basicDocument(doc))
	if err != nil {
		return nil, err
	}
	res, err = s.engine.Basic(ctx, p)
	if err != nil {
		return nil, err
	}
	fields["global_tier"] = string(res.GlobalTier)
	fields["total_cost"] = res.TotalCost
	return res, nil
}

func (s *estimateService) Detailed(ctx context.Context, doc *importer.ProjectDocument) (res *domain.EstimationResult, err error) {
	fields := map[string]any{"project": doc.ProjectName, "rooms": len(doc.Rooms)}
	done := observe(ctx, s.observer, "estimate-detailed", fields)
	defer func() { done(err) }()

	p, err := convertDocument(doc)
	if err != nil {
		return nil, err
	}
	res, err = s.engine.Run(ctx, p)
	if err != nil {
		return nil, err
	}
	fields["global_tier"] = string(res.GlobalTier)
	fields["total_cost"] = res.TotalCost
	fields["warnings"] = len(res.Warnings)
	return res, nil
}

func (s *estimateService) Validate(ctx context.Context, doc *importer.ProjectDocument) domain.ValidationReport {
	fields := map[string]any{"project": doc.ProjectName}
	done := observe(ctx, s.observer, "estimate-validate", fields)

	var report domain.ValidationReport
	if errs := importer.ValidateProjectDocument(doc); len(errs) > 0 {
		report = documentReport(errs)
	} else {
		report = s.engine.Validate(importer.Convert(doc))
	}
	fields["is_valid"] = report.IsValid
	fields["errors"] = len(report.Errors)
	fields["warnings"] = len(report.Warnings)
	done(nil)
	return report
}

// convertDocument checks the document shape and converts it. Shape errors
// surface as a validation failure so callers handle one error kind.
func convertDocument(doc *importer.ProjectDocument) (*domain.Project, error) {
	if errs := importer.ValidateProjectDocument(doc); len(errs) > 0 {
		return nil, &domain.ValidationFailure{Report: documentReport(errs)}
	}
	return importer.Convert(doc), nil
}

func documentReport(errs []error) domain.ValidationReport {
	report := domain.ValidationReport{Errors: make([]string, 0, len(errs))}
	for _, e := range errs {
		report.Errors = append(report.Errors, e.Error())
	}
	return report
}

// basicDocument drops the parts of doc a basic estimate ignores, so that a
// malformed room cannot fail it.
func basicDocument(doc *importer.ProjectDocument) *importer.ProjectDocument {
	cp := *doc
	cp.Rooms = nil
	cp.Trades = nil
	return &cp
}
