package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rpgo/lifeplan/internal/domain"
)

// ConsoleVerboseFormatter renders the year-by-year table, the category
// breakdown and the milestone adjustment log.
type ConsoleVerboseFormatter struct {
	// Assumptions are listed in the header when non-empty.
	Assumptions []string
}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(result *domain.ProjectionResult) ([]byte, error) {
	var buf bytes.Buffer
	rule := strings.Repeat("=", 118)

	fmt.Fprintln(&buf, rule)
	fmt.Fprintln(&buf, "DETAILED LIFE PLAN PROJECTION")
	if result.RunID != "" {
		fmt.Fprintf(&buf, "Run %s\n", result.RunID)
	}
	fmt.Fprintln(&buf, rule)
	if len(c.Assumptions) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
		for _, a := range c.Assumptions {
			fmt.Fprintf(&buf, "• %s\n", a)
		}
	}

	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "YEAR-BY-YEAR PROJECTION")
	fmt.Fprintf(&buf, "%-5s %-4s %16s %16s %16s %16s %16s %16s\n", "Year", "Age", "Income", "Expenses", "Cash Flow", "Assets", "Liabilities", "Net Worth")
	for y := 0; y <= result.Years(); y++ {
		fmt.Fprintf(&buf, "%-5d %-4d %16s %16s %16s %16s %16s %16s\n", y, result.Ages[y],
			FormatCurrency(result.Income[y]),
			FormatCurrency(result.Expenses[y]),
			FormatCurrency(result.CashFlow[y]),
			FormatCurrency(result.Assets[y]),
			FormatCurrency(result.Liabilities[y]),
			FormatCurrency(result.NetWorth[y]),
		)
	}

	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "SPENDING BY CATEGORY (all years)")
	for _, share := range CategoryBreakdown(result) {
		if share.Total.IsZero() {
			continue
		}
		fmt.Fprintf(&buf, "  %-20s %16s %8s\n", share.Category, FormatCurrency(share.Total), FormatPercentage(share.Share))
	}

	if len(result.Milestones) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "MILESTONES")
		for i, m := range result.Milestones {
			fmt.Fprintf(&buf, "  %d. %s in year %d (%d adjustments)\n", i+1, m.Kind(), m.Year, countAdjustments(result, i))
		}
	}

	fmt.Fprintln(&buf)
	summary, _ := ConsoleFormatter{}.Format(result)
	buf.Write(summary)
	return buf.Bytes(), nil
}

func countAdjustments(result *domain.ProjectionResult, index int) int {
	n := 0
	for _, adj := range result.Adjustments {
		if adj.Index == index {
			n++
		}
	}
	return n
}
