package formatter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/buildcost/internal/contract"
	"github.com/alexanderramin/buildcost/internal/domain"
	"github.com/alexanderramin/buildcost/internal/report"
)

// FormatSavedList renders saved estimates, most recently updated first, and
// the per-trade totals across all of them.
func FormatSavedList(resp contract.ListSavedResponse, now time.Time) string {
	if len(resp.Estimates) == 0 {
		return Dim("No saved estimates.") + "\n"
	}

	rows := make([][]string, 0, len(resp.Estimates))
	var sum float64
	for _, e := range resp.Estimates {
		sum += e.TotalCost
		rows = append(rows, []string{
			Bold(e.Name),
			e.ProjectName,
			TierStyle(domain.Tier(e.GlobalTier)).Render(e.GlobalTier),
			Money(e.TotalCost),
			Dim(HumanTimestampFrom(e.UpdatedAt, now)),
		})
	}

	var b strings.Builder
	b.WriteString(Header("Saved estimates") + "\n")
	b.WriteString(Table{
		Headers: []string{"Name", "Project", "Tier", "Total", "Updated"},
		Rows:    rows,
		Right:   map[int]bool{3: true},
	}.Render())

	if len(resp.TotalsByTrade) > 0 {
		cats := make([]report.Category, 0, len(resp.TotalsByTrade))
		for trade, cost := range resp.TotalsByTrade {
			pct := 0.0
			if sum > 0 {
				pct = cost / sum * 100
			}
			cats = append(cats, report.Category{Trade: trade, Cost: cost, Percent: pct})
		}
		sort.Slice(cats, func(i, j int) bool {
			if cats[i].Cost != cats[j].Cost {
				return cats[i].Cost > cats[j].Cost
			}
			return cats[i].Trade < cats[j].Trade
		})
		b.WriteString("\n" + Header("Totals by trade") + "\n")
		b.WriteString(categoryTable(cats, sum))
	}
	return b.String()
}

// FormatSavedEstimate renders one stored estimate.
func FormatSavedEstimate(resp contract.SavedEstimateResponse) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("  %s  %s\n", StyleDim.Render("PROJECT"), Bold(domain.CoalesceStr(resp.ProjectName, "--"))))
	b.WriteString(fmt.Sprintf("  %s  %s\n", StyleDim.Render("TIER   "), TierBadge(domain.Tier(resp.GlobalTier), false)))
	b.WriteString(fmt.Sprintf("  %s  %s\n", StyleDim.Render("TOTAL  "), StyleGreen.Bold(true).Render(Money(resp.TotalCost))))
	b.WriteString(fmt.Sprintf("  %s  %s\n", StyleDim.Render("SAVED  "), resp.UpdatedAt.Format(time.RFC3339)))

	if len(resp.Categories) > 0 {
		rep := &report.Report{Estimate: contract.DetailedEstimateResponse{Categories: resp.Categories}}
		cats := rep.Categories()
		for i := range cats {
			if resp.TotalCost > 0 {
				cats[i].Percent = cats[i].Cost / resp.TotalCost * 100
			}
		}
		b.WriteString("\n" + Header("Categories") + "\n")
		b.WriteString(categoryTable(cats, resp.TotalCost))
	}
	return RenderBox(resp.Name, strings.TrimRight(b.String(), "\n"))
}
