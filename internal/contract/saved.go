package contract

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/alexanderramin/buildcost/internal/catalog"
	"github.com/alexanderramin/buildcost/internal/domain"
)

// SaveRequest is the body of a save call. When Result is absent the project
// is estimated before saving.
type SaveRequest struct {
	Project json.RawMessage `json:"project"`
	Result  json.RawMessage `json:"result,omitempty"`
}

// flatResultKeys are result keys older clients send beside "project"
// instead of nesting them under "result".
var flatResultKeys = map[string]bool{
	"total_cost": true,
	"categories": true,
	"rooms":      true,
}

// DecodeSaveRequest reads a save body. Either form is accepted:
//
//	{"project": {...}, "result": {...}}
//	{"project": {...}, "total_cost": 1, "categories": {...}, "rooms": {...}}
//
// The flat keys become the result. Mixing both forms and any other key are
// rejected.
func DecodeSaveRequest(r io.Reader) (SaveRequest, error) {
	var fields map[string]json.RawMessage
	dec := json.NewDecoder(r)
	if err := dec.Decode(&fields); err != nil {
		return SaveRequest{}, err
	}
	if fields == nil {
		return SaveRequest{}, errors.New("request body must be an object")
	}
	req := SaveRequest{Project: fields["project"], Result: fields["result"]}
	flat := make(map[string]json.RawMessage)
	var unknown []string
	for key, value := range fields {
		switch {
		case key == "project" || key == "result":
		case flatResultKeys[key]:
			flat[key] = value
		default:
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return SaveRequest{}, fmt.Errorf("unknown field %q", unknown[0])
	}
	if len(flat) == 0 {
		return req, nil
	}
	if len(req.Result) > 0 && string(req.Result) != "null" {
		return SaveRequest{}, errors.New(`"result" cannot be combined with top-level result fields`)
	}
	result, err := json.Marshal(flat)
	if err != nil {
		return SaveRequest{}, fmt.Errorf("encoding result: %w", err)
	}
	req.Result = result
	return req, nil
}

type SavedEstimateSummary struct {
	Name        string    `json:"name"`
	ProjectName string    `json:"project_name"`
	GlobalTier  string    `json:"global_tier"`
	TotalCost   float64   `json:"total_cost"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type SavedEstimateResponse struct {
	SavedEstimateSummary
	Categories map[string]float64 `json:"categories"`
	Project    json.RawMessage    `json:"project"`
	Result     json.RawMessage    `json:"result"`
}

type ListSavedResponse struct {
	Estimates     []SavedEstimateSummary `json:"estimates"`
	TotalsByTrade map[string]float64     `json:"totals_by_trade"`
}

// SaveResponse acknowledges a save.
type SaveResponse struct {
	Success  bool                 `json:"success"`
	Message  string               `json:"message"`
	Estimate SavedEstimateSummary `json:"estimate"`
}

// HealthResponse reports that the API is up and which catalog it prices with.
type HealthResponse struct {
	Status         string `json:"status"`
	Message        string `json:"message"`
	CatalogVersion string `json:"catalog_version"`
	TradeCount     int    `json:"trade_count"`
}

func NewSavedEstimateSummary(s *domain.SavedEstimate) SavedEstimateSummary {
	return SavedEstimateSummary{
		Name:        s.Name,
		ProjectName: s.ProjectName,
		GlobalTier:  string(s.GlobalTier),
		TotalCost:   RoundCents(s.TotalCost),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func NewSavedEstimateResponse(s *domain.SavedEstimate) SavedEstimateResponse {
	return SavedEstimateResponse{
		SavedEstimateSummary: NewSavedEstimateSummary(s),
		Categories:           roundAll(s.Categories),
		Project:              rawOrNull(s.Document),
		Result:               rawOrNull(s.Result),
	}
}

func NewListSavedResponse(list []*domain.SavedEstimate, totals map[domain.Trade]float64) ListSavedResponse {
	out := ListSavedResponse{
		Estimates:     make([]SavedEstimateSummary, 0, len(list)),
		TotalsByTrade: roundAll(totals),
	}
	for _, s := range list {
		out.Estimates = append(out.Estimates, NewSavedEstimateSummary(s))
	}
	return out
}

func NewSaveResponse(s *domain.SavedEstimate) SaveResponse {
	return SaveResponse{
		Success:  true,
		Message:  fmt.Sprintf("Estimate saved as %s", s.Name),
		Estimate: NewSavedEstimateSummary(s),
	}
}

func rawOrNull(b []byte) json.RawMessage {
	if len(b) == 0 {
		return json.RawMessage("null")
	}
	return json.RawMessage(b)
}

type CatalogTrade struct {
	Trade     string             `json:"trade"`
	UnitBasis string             `json:"unit_basis"`
	Tiers     map[string]float64 `json:"tiers"`
}

type CatalogResponse struct {
	Version string         `json:"version"`
	Trades  []CatalogTrade `json:"trades"`
}

func NewCatalogResponse(c *catalog.Catalog) CatalogResponse {
	out := CatalogResponse{Version: c.Version(), Trades: make([]CatalogTrade, 0, len(c.Trades()))}
	for _, trade := range c.Trades() {
		basis, _ := c.UnitBasis(trade)
		ct := CatalogTrade{Trade: string(trade), UnitBasis: string(basis), Tiers: make(map[string]float64)}
		for _, tier := range c.Tiers(trade) {
			m, _ := c.MultiplierFor(trade, tier)
			ct.Tiers[string(tier)] = m
		}
		out.Trades = append(out.Trades, ct)
	}
	return out
}
