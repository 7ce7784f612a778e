package output

import (
	"github.com/rpgo/lifeplan/internal/domain"
	"github.com/shopspring/decimal"
)

// Summary condenses a projection into the figures the console reports lead with.
type Summary struct {
	Years          int
	FinalNetWorth  decimal.Decimal
	PeakNetWorth   decimal.Decimal
	PeakYear       int
	TotalIncome    decimal.Decimal
	TotalExpenses  decimal.Decimal
	SavingsRate    decimal.Decimal
	FirstShortfall int // first year with negative cash flow, -1 if none
	DebtFreeYear   int // first year from which liabilities stay zero, -1 if never
}

// AnalyzeProjection derives the summary figures of a result.
func AnalyzeProjection(result *domain.ProjectionResult) Summary {
	n := result.Years()
	s := Summary{
		Years:          n,
		FinalNetWorth:  result.NetWorth[n],
		PeakNetWorth:   result.NetWorth[0],
		TotalIncome:    decimal.Zero,
		TotalExpenses:  decimal.Zero,
		SavingsRate:    decimal.Zero,
		FirstShortfall: -1,
		DebtFreeYear:   -1,
	}
	for y := 0; y <= n; y++ {
		if result.NetWorth[y].GreaterThan(s.PeakNetWorth) {
			s.PeakNetWorth = result.NetWorth[y]
			s.PeakYear = y
		}
		s.TotalIncome = s.TotalIncome.Add(result.Income[y])
		s.TotalExpenses = s.TotalExpenses.Add(result.Expenses[y])
		if s.FirstShortfall < 0 && result.CashFlow[y].IsNegative() {
			s.FirstShortfall = y
		}
	}
	for y := n; y >= 0 && !result.Liabilities[y].IsPositive(); y-- {
		s.DebtFreeYear = y
	}
	if s.TotalIncome.IsPositive() {
		s.SavingsRate = s.TotalIncome.Sub(s.TotalExpenses).Div(s.TotalIncome)
	}
	return s
}

// CategoryShare is one category's share of total spending over the horizon.
type CategoryShare struct {
	Category domain.Category
	Total    decimal.Decimal
	Share    decimal.Decimal
}

// CategoryBreakdown totals each category over all years, in reporting order.
func CategoryBreakdown(result *domain.ProjectionResult) []CategoryShare {
	total := decimal.Zero
	out := make([]CategoryShare, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		sum := decimal.Zero
		for _, v := range result.CategorySeries(c) {
			sum = sum.Add(v)
		}
		total = total.Add(sum)
		out = append(out, CategoryShare{Category: c, Total: sum, Share: decimal.Zero})
	}
	if total.IsPositive() {
		for i := range out {
			out[i].Share = out[i].Total.Div(total)
		}
	}
	return out
}
