package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/buildcost/internal/contract"
	"github.com/alexanderramin/buildcost/internal/domain"
	"github.com/alexanderramin/buildcost/internal/report"
)

// FormatBasicEstimate renders a single-total estimate.
func FormatBasicEstimate(projectName string, r contract.BasicEstimateResponse) string {
	var b strings.Builder
	if projectName != "" {
		b.WriteString(fmt.Sprintf("  %s  %s\n", StyleDim.Render("PROJECT"), Bold(projectName)))
	}
	b.WriteString(fmt.Sprintf("  %s  %s\n", StyleDim.Render("TIER   "), TierBadge(domain.Tier(r.GlobalTier), r.TierDerived)))
	b.WriteString(fmt.Sprintf("  %s  %s\n", StyleDim.Render("TOTAL  "), StyleGreen.Bold(true).Render(Money(r.TotalCost))))
	if len(r.Warnings) > 0 {
		b.WriteString("\n" + StyleYellow.Render("Warnings") + "\n")
		b.WriteString(Bullets(StyleYellow, r.Warnings))
	}
	return RenderBox("Basic estimate", strings.TrimRight(b.String(), "\n"))
}

// FormatDetailedEstimate renders category totals and every priced line.
func FormatDetailedEstimate(r contract.DetailedEstimateResponse) string {
	rep := &report.Report{Title: r.ProjectName, Estimate: r}
	var b strings.Builder

	if r.ProjectName != "" {
		b.WriteString(fmt.Sprintf("  %s  %s\n", StyleDim.Render("PROJECT"), Bold(r.ProjectName)))
	}
	b.WriteString(fmt.Sprintf("  %s  %s\n", StyleDim.Render("TIER   "), TierBadge(domain.Tier(r.GlobalTier), r.TierDerived)))
	if r.CatalogVersion != "" {
		b.WriteString(fmt.Sprintf("  %s  %s\n", StyleDim.Render("CATALOG"), r.CatalogVersion))
	}
	b.WriteString(fmt.Sprintf("  %s  %s\n", StyleDim.Render("TOTAL  "), StyleGreen.Bold(true).Render(Money(r.TotalCost))))

	if cats := rep.Categories(); len(cats) > 0 {
		b.WriteString("\n" + Header("Categories") + "\n")
		b.WriteString(categoryTable(cats, r.TotalCost))
	}

	if lines := rep.Lines(); len(lines) > 0 {
		rows := make([][]string, 0, len(lines))
		for _, l := range lines {
			room := l.Room
			if l.RoomID == "" {
				room = Dim(room)
			}
			rows = append(rows, []string{
				room,
				l.Trade,
				TierStyle(domain.Tier(l.Tier)).Render(l.Tier),
				Quantity(l.Quantity) + " " + Dim(l.UnitBasis),
				fmt.Sprintf("×%.2f", l.Multiplier),
				Money(l.Cost),
			})
		}
		b.WriteString("\n" + Header("Lines") + "\n")
		b.WriteString(Table{
			Headers: []string{"Room", "Trade", "Tier", "Quantity", "Mult", "Cost"},
			Rows:    rows,
			Right:   map[int]bool{4: true, 5: true},
		}.Render())
	}

	if bms := rep.Benchmarks(); len(bms) > 0 {
		rows := make([][]string, 0, len(bms))
		for _, bm := range bms {
			diff := fmt.Sprintf("%+.1f%%", bm.PercentageDiff)
			if bm.PercentageDiff > 0 {
				diff = StyleYellow.Render(diff)
			}
			rows = append(rows, []string{bm.Category, Money(bm.Actual), Money(bm.Benchmark), diff})
		}
		b.WriteString("\n" + Header("Benchmarks per sq ft") + "\n")
		b.WriteString(Table{
			Headers: []string{"Trade", "Actual", "Benchmark", "Diff"},
			Rows:    rows,
			Right:   map[int]bool{1: true, 2: true, 3: true},
		}.Render())
	}

	if len(r.Warnings) > 0 {
		b.WriteString("\n" + StyleYellow.Render("Warnings") + "\n")
		b.WriteString(Bullets(StyleYellow, r.Warnings))
	}
	return RenderBox("Detailed estimate", strings.TrimRight(b.String(), "\n"))
}

func categoryTable(cats []report.Category, total float64) string {
	rows := make([][]string, 0, len(cats))
	for _, c := range cats {
		rows = append(rows, []string{c.Trade, Money(c.Cost), Percent(c.Percent)})
	}
	return Table{
		Headers: []string{"Trade", "Cost", "Share"},
		Rows:    rows,
		Right:   map[int]bool{1: true, 2: true},
		Footer:  []string{Bold("Total"), Bold(Money(total)), ""},
	}.Render()
}

// FormatValidation renders a validation report.
func FormatValidation(r contract.ValidationResponse) string {
	var b strings.Builder
	if r.IsValid {
		b.WriteString(StyleGreen.Render("✔ Project is valid") + "\n")
	} else {
		b.WriteString(StyleRed.Render(fmt.Sprintf("✖ Project is invalid (%d errors)", len(r.Errors))) + "\n")
		b.WriteString(Bullets(StyleRed, r.Errors))
	}
	if len(r.Warnings) > 0 {
		b.WriteString(StyleYellow.Render(fmt.Sprintf("%d warnings", len(r.Warnings))) + "\n")
		b.WriteString(Bullets(StyleYellow, r.Warnings))
	}
	return b.String()
}
