package calculation

import (
	"fmt"
	"strings"

	"github.com/rpgo/lifeplan/internal/domain"
	"github.com/shopspring/decimal"
)

// phase is the state of a projection run.
type phase int

const (
	phaseUninitialized phase = iota
	phaseYearZero
	phaseProjecting
	phaseMilestonesApplied
	phaseDone
)

func (p phase) String() string {
	switch p {
	case phaseUninitialized:
		return "uninitialized"
	case phaseYearZero:
		return "year-zero"
	case phaseProjecting:
		return "projecting"
	case phaseMilestonesApplied:
		return "milestones-applied"
	case phaseDone:
		return "done"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// projectionRun is the state of one run. The base projection completes before
// any milestone is looked at.
type projectionRun struct {
	portfolio   *Portfolio
	result      *domain.ProjectionResult
	assumptions domain.Assumptions
	phase       phase
}

func newProjectionRun(in *domain.ProjectionInput, p *Portfolio, a domain.Assumptions) *projectionRun {
	return &projectionRun{
		portfolio:   p,
		result:      domain.NewProjectionResult(in.StartAge, in.YearsToProject),
		assumptions: a,
	}
}

func (r *projectionRun) advance(to phase) error {
	if to != r.phase+1 {
		return fmt.Errorf("projection cannot enter %s from %s", to, r.phase)
	}
	r.phase = to
	return nil
}

// yearZero records the opening snapshot. No contributions or payments are made.
func (r *projectionRun) yearZero() error {
	if err := r.advance(phaseYearZero); err != nil {
		return err
	}
	income := r.recordIncome(0)
	expenses := r.recordExpenses(0)
	r.result.Income[0] = income
	r.result.Expenses[0] = expenses
	r.result.CashFlow[0] = income.Sub(expenses)
	r.recordBalances(0)
	return nil
}

// project runs the base simulation for years 1..N.
func (r *projectionRun) project() error {
	if err := r.advance(phaseProjecting); err != nil {
		return err
	}
	for year := 1; year <= r.result.Years(); year++ {
		r.projectYear(year)
	}
	return nil
}

func (r *projectionRun) projectYear(year int) {
	income := r.recordIncome(year)
	expenses := r.recordExpenses(year)
	cashFlow := income.Sub(expenses)
	r.result.Income[year] = income
	r.result.Expenses[year] = expenses
	r.result.CashFlow[year] = cashFlow

	if cashFlow.IsPositive() {
		if inv := r.firstInvestment(); inv != nil {
			inv.AddContribution(year, cashFlow.Mul(r.assumptions.ContributionRate))
		}
		// Each liability sees the full cash flow; payments are not netted.
		for _, l := range r.portfolio.Liabilities {
			required := l.RequiredPayment(year)
			if required.IsPositive() {
				l.MakePayment(year, decimal.Min(required, cashFlow))
			}
		}
	}
	r.recordBalances(year)
}

// recordIncome sums income for year and books it against every tax expenditure.
func (r *projectionRun) recordIncome(year int) decimal.Decimal {
	total := decimal.Zero
	for i, in := range r.portfolio.Incomes {
		amount := in.Amount(year)
		total = total.Add(amount)
		for _, e := range r.portfolio.Expenditures {
			if tax, ok := e.(*TaxExpenditure); ok {
				tax.RecordIncome(year, i, in.Name(), amount)
			}
		}
	}
	return total
}

// recordExpenses sums expenditures for year and fills the category arrays.
func (r *projectionRun) recordExpenses(year int) decimal.Decimal {
	totals := CategoryTotals{}
	for _, e := range r.portfolio.Expenditures {
		totals.Add(e, e.Amount(year))
	}
	for _, c := range domain.Categories {
		r.result.CategorySeries(c)[year] = totals.Get(c)
	}
	return totals.Total()
}

// recordBalances fills assets, liabilities, their sub-totals and net worth.
func (r *projectionRun) recordBalances(year int) {
	res := r.result
	assets := decimal.Zero
	for _, a := range r.portfolio.Assets {
		v := a.Value(year)
		assets = assets.Add(v)
		if s := assetSeries(a); s != "" {
			values := res.SeriesValues(s)
			values[year] = values[year].Add(v)
		}
	}
	liabilities := decimal.Zero
	for _, l := range r.portfolio.Liabilities {
		b := l.Balance(year)
		liabilities = liabilities.Add(b)
		if s := liabilitySeries(l); s != "" {
			values := res.SeriesValues(s)
			values[year] = values[year].Add(b)
		}
	}
	res.Assets[year] = assets
	res.Liabilities[year] = liabilities
	res.NetWorth[year] = assets.Sub(liabilities)
}

func (r *projectionRun) firstInvestment() *InvestmentAsset {
	for _, a := range r.portfolio.Assets {
		if inv, ok := a.(*InvestmentAsset); ok {
			return inv
		}
	}
	return nil
}

// finish closes the run after milestones were applied.
func (r *projectionRun) finish() (*domain.ProjectionResult, error) {
	if err := r.advance(phaseDone); err != nil {
		return nil, err
	}
	return r.result, nil
}

// assetSeries picks the sub-total an asset is reported under, by name.
func assetSeries(a Asset) domain.Series {
	n := strings.ToLower(a.Name())
	switch {
	case containsAny(n, []string{"home", "house", "property"}):
		return domain.SeriesHomeValue
	case containsAny(n, []string{"car", "vehicle", "auto"}):
		return domain.SeriesCarValue
	default:
		return ""
	}
}

// liabilitySeries picks the sub-total a liability is reported under, by variant
// first and then by name.
func liabilitySeries(l Liability) domain.Series {
	switch l.Kind() {
	case LiabilityMortgage:
		return domain.SeriesMortgage
	case LiabilityAutoLoan:
		return domain.SeriesCarLoan
	case LiabilityStudentLoan:
		return domain.SeriesStudentLoan
	}
	n := strings.ToLower(l.Name())
	switch {
	case strings.Contains(n, "mortgage"):
		return domain.SeriesMortgage
	case containsAny(n, []string{"car", "auto", "vehicle"}):
		return domain.SeriesCarLoan
	case strings.Contains(n, "student"):
		return domain.SeriesStudentLoan
	default:
		return ""
	}
}
