package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/buildcost/internal/catalog"
	"github.com/alexanderramin/buildcost/internal/contract"
	"github.com/alexanderramin/buildcost/internal/domain"
)

// FormatCatalog renders one row per trade with a multiplier column per
// standard tier. Missing tiers show as "--".
func FormatCatalog(resp contract.CatalogResponse) string {
	headers := []string{"Trade", "Unit basis"}
	right := map[int]bool{}
	for i, tier := range domain.StandardTiers {
		headers = append(headers, string(tier))
		right[i+2] = true
	}

	rows := make([][]string, 0, len(resp.Trades))
	for _, t := range resp.Trades {
		row := []string{t.Trade, Dim(t.UnitBasis)}
		for _, tier := range domain.StandardTiers {
			if m, ok := t.Tiers[string(tier)]; ok {
				row = append(row, fmt.Sprintf("%.2f", m))
			} else {
				row = append(row, Dim("--"))
			}
		}
		rows = append(rows, row)
	}

	var b strings.Builder
	b.WriteString(Header("Catalog "+resp.Version) + "\n")
	b.WriteString(Table{Headers: headers, Rows: rows, Right: right}.Render())
	return b.String()
}

// FormatFindings renders catalog check findings, errors first.
func FormatFindings(findings []catalog.Finding) string {
	if len(findings) == 0 {
		return StyleGreen.Render("✔ Catalog is valid") + "\n"
	}
	var errs, warns []string
	for _, f := range findings {
		if f.Severity == catalog.SeverityError {
			errs = append(errs, f.Message)
		} else {
			warns = append(warns, f.Message)
		}
	}

	var b strings.Builder
	if len(errs) > 0 {
		b.WriteString(StyleRed.Render(fmt.Sprintf("✖ %d errors", len(errs))) + "\n")
		b.WriteString(Bullets(StyleRed, errs))
	}
	if len(warns) > 0 {
		b.WriteString(StyleYellow.Render(fmt.Sprintf("%d warnings", len(warns))) + "\n")
		b.WriteString(Bullets(StyleYellow, warns))
	}
	return b.String()
}
