package contract

import "github.com/alexanderramin/buildcost/internal/domain"

// BasicEstimateResponse is the basic call shape: a single total.
type BasicEstimateResponse struct {
	TotalCost   float64  `json:"total_cost"`
	GlobalTier  string   `json:"global_tier"`
	TierDerived bool     `json:"tier_derived"`
	Warnings    []string `json:"warnings"`
}

type LineResponse struct {
	Tier       string  `json:"tier"`
	Scope      string  `json:"scope"`
	UnitBasis  string  `json:"unit_basis"`
	Quantity   float64 `json:"quantity"`
	Multiplier float64 `json:"multiplier"`
	Cost       float64 `json:"cost"`
}

type RoomResponse struct {
	Name          string                  `json:"name"`
	Type          string                  `json:"type"`
	SquareFootage float64                 `json:"square_footage"`
	TotalCost     float64                 `json:"total_cost"`
	Trades        map[string]LineResponse `json:"trades"`
}

// DetailedEstimateResponse is the detailed call shape.
type DetailedEstimateResponse struct {
	ProjectName         string                  `json:"project_name,omitempty"`
	TotalCost           float64                 `json:"total_cost"`
	Categories          map[string]float64      `json:"categories"`
	Rooms               map[string]RoomResponse `json:"rooms"`
	General             map[string]LineResponse `json:"general"`
	PercentageBreakdown map[string]float64      `json:"percentage_breakdown"`
	Warnings            []string                `json:"warnings"`
	GlobalTier          string                  `json:"global_tier"`
	TierDerived         bool                    `json:"tier_derived"`
	RoomSquareFootage   float64                 `json:"room_square_footage"`
	CatalogVersion      string                  `json:"catalog_version"`
	BenchmarkComparison []BenchmarkResponse     `json:"benchmark_comparison"`
}

// BenchmarkResponse compares one category with its industry benchmark, in
// dollars per project square foot.
type BenchmarkResponse struct {
	Category       string  `json:"category"`
	Actual         float64 `json:"actual"`
	Benchmark      float64 `json:"benchmark"`
	Difference     float64 `json:"difference"`
	PercentageDiff float64 `json:"percentage_diff"`
}

// ValidationResponse is the validate-only call shape.
type ValidationResponse struct {
	IsValid  bool     `json:"is_valid"`
	Warnings []string `json:"warnings"`
	Errors   []string `json:"errors"`
}

func NewBasicEstimateResponse(r *domain.EstimationResult) BasicEstimateResponse {
	return BasicEstimateResponse{
		TotalCost:   RoundCents(r.TotalCost),
		GlobalTier:  string(r.GlobalTier),
		TierDerived: r.TierDerived,
		Warnings:    nonNil(r.Warnings),
	}
}

func NewLineResponse(l domain.LineItem) LineResponse {
	return LineResponse{
		Tier:       string(l.Tier),
		Scope:      string(l.Scope),
		UnitBasis:  string(l.UnitBasis),
		Quantity:   l.Quantity,
		Multiplier: l.Multiplier,
		Cost:       RoundCents(l.Cost),
	}
}

func newLines(m map[domain.Trade]domain.LineItem) map[string]LineResponse {
	out := make(map[string]LineResponse, len(m))
	for trade, line := range m {
		out[string(trade)] = NewLineResponse(line)
	}
	return out
}

// NewDetailedEstimateResponse maps a result to the detailed shape. Money is
// rounded to cents here and nowhere earlier; the rounded total is rounded
// from the unrounded sum, not summed from rounded parts.
func NewDetailedEstimateResponse(r *domain.EstimationResult) DetailedEstimateResponse {
	rooms := make(map[string]RoomResponse, len(r.Rooms))
	for id, rc := range r.Rooms {
		rooms[id] = RoomResponse{
			Name:          rc.Name,
			Type:          string(rc.Type),
			SquareFootage: rc.SquareFootage,
			TotalCost:     RoundCents(rc.TotalCost),
			Trades:        newLines(rc.Trades),
		}
	}
	return DetailedEstimateResponse{
		ProjectName:         r.ProjectName,
		TotalCost:           RoundCents(r.TotalCost),
		Categories:          roundAll(r.Categories),
		Rooms:               rooms,
		General:             newLines(r.General),
		PercentageBreakdown: roundAll(r.PercentageBreakdown),
		Warnings:            nonNil(r.Warnings),
		GlobalTier:          string(r.GlobalTier),
		TierDerived:         r.TierDerived,
		RoomSquareFootage:   r.RoomSquareFootage,
		CatalogVersion:      r.CatalogVersion,
		BenchmarkComparison: newBenchmarks(r.Benchmarks),
	}
}

// newBenchmarks rounds per-square-foot amounts to cents and the percentage to
// one decimal.
func newBenchmarks(cs []domain.BenchmarkComparison) []BenchmarkResponse {
	out := make([]BenchmarkResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, BenchmarkResponse{
			Category:       string(c.Trade),
			Actual:         RoundCents(c.Actual),
			Benchmark:      c.Benchmark,
			Difference:     RoundCents(c.Difference),
			PercentageDiff: roundTenths(c.PercentageDiff),
		})
	}
	return out
}

func NewValidationResponse(r domain.ValidationReport) ValidationResponse {
	return ValidationResponse{
		IsValid:  r.IsValid,
		Warnings: nonNil(r.Warnings),
		Errors:   nonNil(r.Errors),
	}
}
