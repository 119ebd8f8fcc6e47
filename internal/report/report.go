// Package report renders estimates as a plain-text summary, CSV line items
// or an XLSX workbook.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/alexanderramin/buildcost/internal/contract"
	"github.com/alexanderramin/buildcost/internal/domain"
)

// GeneralRoom labels lines that belong to no room.
const GeneralRoom = "General"

// Format names an output format.
type Format string

const (
	FormatText Format = "text"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

var ValidFormats = map[Format]bool{FormatText: true, FormatCSV: true, FormatXLSX: true}

func (f Format) Valid() bool { return ValidFormats[f] }

// Write renders r in format f.
func Write(w io.Writer, r *Report, f Format) error {
	switch f {
	case FormatText:
		return WriteText(w, r)
	case FormatCSV:
		return WriteCSV(w, r)
	case FormatXLSX:
		return WriteXLSX(w, r)
	default:
		return fmt.Errorf("unknown report format %q (want text, csv or xlsx)", f)
	}
}

// Report is an estimate prepared for rendering. Amounts are already rounded
// to cents.
type Report struct {
	Title    string
	Estimate contract.DetailedEstimateResponse
}

// Line is one priced row of a report.
type Line struct {
	RoomID     string
	Room       string
	Trade      string
	Tier       string
	Scope      string
	UnitBasis  string
	Quantity   float64
	Multiplier float64
	Cost       float64
}

// FromResult prepares a freshly computed result.
func FromResult(title string, r *domain.EstimationResult) *Report {
	return &Report{
		Title:    domain.CoalesceStr(title, r.ProjectName),
		Estimate: contract.NewDetailedEstimateResponse(r),
	}
}

// FromSaved prepares a stored estimate. A stored result without line detail
// still reports its totals and categories.
func FromSaved(s *domain.SavedEstimate) (*Report, error) {
	var est contract.DetailedEstimateResponse
	if len(s.Result) > 0 {
		if err := json.Unmarshal(s.Result, &est); err != nil {
			return nil, fmt.Errorf("decoding saved result %q: %w", s.Name, err)
		}
	}
	if est.TotalCost == 0 {
		est.TotalCost = contract.RoundCents(s.TotalCost)
	}
	if len(est.Categories) == 0 && len(s.Categories) > 0 {
		est.Categories = make(map[string]float64, len(s.Categories))
		for trade, cost := range s.Categories {
			est.Categories[string(trade)] = contract.RoundCents(cost)
		}
	}
	est.GlobalTier = domain.CoalesceStr(est.GlobalTier, string(s.GlobalTier))
	est.ProjectName = domain.CoalesceStr(est.ProjectName, s.ProjectName)
	est.CatalogVersion = domain.CoalesceStr(est.CatalogVersion, s.CatalogVersion)
	return &Report{Title: s.Name, Estimate: est}, nil
}

// Lines lists every priced line: rooms by id with their trades by name,
// then general lines by trade.
func (r *Report) Lines() []Line {
	var out []Line
	for _, id := range sortedKeys(r.Estimate.Rooms) {
		room := r.Estimate.Rooms[id]
		for _, trade := range sortedKeys(room.Trades) {
			out = append(out, newLine(id, domain.CoalesceStr(room.Name, id), trade, room.Trades[trade]))
		}
	}
	for _, trade := range sortedKeys(r.Estimate.General) {
		out = append(out, newLine("", GeneralRoom, trade, r.Estimate.General[trade]))
	}
	return out
}

// Categories lists category totals, largest first and then by name.
func (r *Report) Categories() []Category {
	out := make([]Category, 0, len(r.Estimate.Categories))
	for trade, cost := range r.Estimate.Categories {
		out = append(out, Category{Trade: trade, Cost: cost, Percent: r.Estimate.PercentageBreakdown[trade]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Cost != out[j].Cost {
			return out[i].Cost > out[j].Cost
		}
		return out[i].Trade < out[j].Trade
	})
	return out
}

// Benchmarks lists the category comparisons that have a benchmark, in trade
// order.
func (r *Report) Benchmarks() []contract.BenchmarkResponse {
	var out []contract.BenchmarkResponse
	for _, b := range r.Estimate.BenchmarkComparison {
		if b.Benchmark > 0 {
			out = append(out, b)
		}
	}
	return out
}

type Category struct {
	Trade   string
	Cost    float64
	Percent float64
}

func newLine(roomID, room, trade string, l contract.LineResponse) Line {
	return Line{
		RoomID:     roomID,
		Room:       room,
		Trade:      trade,
		Tier:       l.Tier,
		Scope:      l.Scope,
		UnitBasis:  l.UnitBasis,
		Quantity:   l.Quantity,
		Multiplier: l.Multiplier,
		Cost:       l.Cost,
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
