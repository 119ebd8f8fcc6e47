package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/buildcost/internal/report"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// Money renders an amount as dollars with thousands separators.
func Money(v float64) string {
	return report.Money(v)
}

// Percent renders a share such as 12.5%.
func Percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// Quantity drops a trailing ".00" so counts read as integers.
func Quantity(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	return strings.TrimSuffix(s, ".00")
}

// HumanTimestamp returns a relative timestamp for recent times and an
// absolute date otherwise.
func HumanTimestamp(t time.Time) string {
	return HumanTimestampFrom(t, time.Now())
}

func HumanTimestampFrom(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < 0:
		return t.Format("Jan 2, 2006")
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return t.Format("Jan 2, 2006")
	}
}

// Bullets renders each message on its own "  - " line in style.
func Bullets(style lipgloss.Style, msgs []string) string {
	var b strings.Builder
	for _, m := range msgs {
		b.WriteString(style.Render("  - ") + m + "\n")
	}
	return b.String()
}
