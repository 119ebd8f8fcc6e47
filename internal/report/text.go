package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// WriteText writes a human-readable summary: header, category totals, then
// priced lines.
func WriteText(w io.Writer, r *Report) error {
	est := r.Estimate
	var b strings.Builder
	fmt.Fprintf(&b, "Estimate: %s\n", r.Title)
	if est.ProjectName != "" && est.ProjectName != r.Title {
		fmt.Fprintf(&b, "Project:  %s\n", est.ProjectName)
	}
	tier := est.GlobalTier
	if est.TierDerived {
		tier += " (derived)"
	}
	fmt.Fprintf(&b, "Tier:     %s\n", tier)
	if est.CatalogVersion != "" {
		fmt.Fprintf(&b, "Catalog:  %s\n", est.CatalogVersion)
	}
	fmt.Fprintf(&b, "Total:    %s\n", Money(est.TotalCost))

	if cats := r.Categories(); len(cats) > 0 {
		b.WriteString("\nCategories\n")
		tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', tabwriter.AlignRight)
		for _, c := range cats {
			fmt.Fprintf(tw, "  %s\t%s\t%.1f%%\t\n", c.Trade, Money(c.Cost), c.Percent)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if lines := r.Lines(); len(lines) > 0 {
		b.WriteString("\nLines\n")
		tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
		for _, l := range lines {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%g × %g\t%s\n",
				l.Room, l.Trade, l.Tier, l.Scope, l.Quantity, l.Multiplier, Money(l.Cost))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if bms := r.Benchmarks(); len(bms) > 0 {
		b.WriteString("\nBenchmarks (per sq ft)\n")
		tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', tabwriter.AlignRight)
		for _, bm := range bms {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%+.1f%%\t\n", bm.Category, Money(bm.Actual), Money(bm.Benchmark), bm.PercentageDiff)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if len(est.Warnings) > 0 {
		b.WriteString("\nWarnings\n")
		for _, warn := range est.Warnings {
			fmt.Fprintf(&b, "  - %s\n", warn)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Money formats an amount as dollars with thousands separators.
func Money(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := fmt.Sprintf("%.2f", v)
	intPart, frac := s[:len(s)-3], s[len(s)-3:]

	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	out := "$" + b.String() + frac
	if neg {
		return "-" + out
	}
	return out
}
