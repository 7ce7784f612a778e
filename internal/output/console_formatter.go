package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/lifeplan/internal/domain"
)

// ConsoleFormatter provides a concise console summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(result *domain.ProjectionResult) ([]byte, error) {
	var buf bytes.Buffer
	s := AnalyzeProjection(result)
	fmt.Fprintln(&buf, "LIFE PLAN PROJECTION SUMMARY")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Years projected: %d (age %d to %d)\n", s.Years, result.Ages[0], result.Ages[s.Years])
	fmt.Fprintf(&buf, "Starting net worth: %s\n", FormatCurrency(result.NetWorth[0]))
	fmt.Fprintf(&buf, "Final net worth:    %s\n", FormatCurrency(s.FinalNetWorth))
	fmt.Fprintf(&buf, "Peak net worth:     %s (year %d)\n", FormatCurrency(s.PeakNetWorth), s.PeakYear)
	fmt.Fprintf(&buf, "Lifetime income:    %s\n", FormatCurrency(s.TotalIncome))
	fmt.Fprintf(&buf, "Lifetime expenses:  %s\n", FormatCurrency(s.TotalExpenses))
	fmt.Fprintf(&buf, "Savings rate:       %s\n", FormatPercentage(s.SavingsRate))
	if s.FirstShortfall >= 0 {
		fmt.Fprintf(&buf, "First shortfall:    year %d\n", s.FirstShortfall)
	}
	if s.DebtFreeYear >= 0 {
		fmt.Fprintf(&buf, "Debt free from:     year %d\n", s.DebtFreeYear)
	}
	return buf.Bytes(), nil
}
