package catalog

import (
	"fmt"
	"math"

	"github.com/alexanderramin/buildcost/internal/domain"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is one issue reported by Check.
type Finding struct {
	Severity Severity
	Trade    domain.Trade
	Message  string
}

// Check inspects a catalog for structural problems. Error findings make a
// catalog unusable; warnings describe gaps that only fail the projects that
// hit them.
func Check(c *Catalog) []Finding {
	var findings []Finding
	if len(c.trades) == 0 {
		return []Finding{{Severity: SeverityError, Message: "catalog has no trades"}}
	}

	for _, trade := range c.Trades() {
		te := c.trades[trade]
		if trade == "" {
			findings = append(findings, Finding{SeverityError, trade, "trade name is empty"})
		}
		if !te.basis.Valid() {
			findings = append(findings, Finding{SeverityError, trade,
				fmt.Sprintf("trade %q: unknown unit basis %q", trade, te.basis)})
		}
		if len(te.tiers) == 0 {
			findings = append(findings, Finding{SeverityError, trade,
				fmt.Sprintf("trade %q has no tiers", trade)})
			continue
		}
		for _, tier := range c.Tiers(trade) {
			m := te.tiers[tier]
			if !tier.Valid() {
				findings = append(findings, Finding{SeverityError, trade,
					fmt.Sprintf("trade %q: unknown tier %q", trade, tier)})
			}
			if math.IsNaN(m) || math.IsInf(m, 0) || m <= 0 {
				findings = append(findings, Finding{SeverityError, trade,
					fmt.Sprintf("trade %q tier %q: multiplier must be positive, got %v", trade, tier, m)})
			}
		}
		for _, tier := range domain.StandardTiers {
			if _, ok := te.tiers[tier]; !ok {
				findings = append(findings, Finding{SeverityWarning, trade,
					fmt.Sprintf("trade %q is missing tier %q", trade, tier)})
			}
		}
	}

	if !c.HasTrade(BaselineTrade) {
		findings = append(findings, Finding{SeverityWarning, BaselineTrade,
			fmt.Sprintf("baseline trade %q is missing; projects without rooms or trades cannot be priced", BaselineTrade)})
	}
	return findings
}

// Fatal filters findings down to errors.
func Fatal(findings []Finding) []Finding {
	var out []Finding
	for _, f := range findings {
		if f.Severity == SeverityError {
			out = append(out, f)
		}
	}
	return out
}
