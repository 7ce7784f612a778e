package calculation

import (
	"fmt"
	"strings"

	"github.com/rpgo/lifeplan/internal/domain"
	"github.com/rpgo/lifeplan/pkg/finmath"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

func decimalOr(p *decimal.Decimal, def decimal.Decimal) decimal.Decimal {
	if p == nil {
		return def
	}
	return *p
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func decodeParams(m domain.Milestone, out any) error {
	if err := m.DecodeParams(out); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

// jobHandler adds a constant income change from the milestone year on.
type jobHandler struct{}

type jobParams struct {
	IncomeChange *decimal.Decimal `json:"incomechange"`
}

func (jobHandler) Apply(s *MilestoneScope, m domain.Milestone) ([]domain.Adjustment, error) {
	var p jobParams
	if err := decodeParams(m, &p); err != nil {
		return nil, err
	}
	change := decimalOr(p.IncomeChange, decimal.Zero)
	b := s.builder(m)
	for y := m.Year; y <= s.Horizon(); y++ {
		b.add(domain.SeriesIncome, y, change)
	}
	return b.list, nil
}

// marriageHandler books the wedding, merges the spouse's finances and scales
// household spending after the wedding year.
type marriageHandler struct{}

type marriageParams struct {
	WeddingCost       *decimal.Decimal        `json:"weddingcost"`
	SpouseIncome      *decimal.Decimal        `json:"spouseincome"`
	SpouseAssets      *decimal.Decimal        `json:"spouseassets"`
	SpouseLiabilities *decimal.Decimal        `json:"spouseliabilities"`
	PartTimeSchedule  map[int]decimal.Decimal `json:"parttimeschedule"`
}

func (marriageHandler) Apply(s *MilestoneScope, m domain.Milestone) ([]domain.Adjustment, error) {
	var p marriageParams
	if err := decodeParams(m, &p); err != nil {
		return nil, err
	}
	a := s.Assumptions
	b := s.builder(m)
	year, horizon := m.Year, s.Horizon()

	wedding := finmath.NonNegative(decimalOr(p.WeddingCost, a.WeddingCost))
	b.addCategory(domain.CategoryDiscretionary, year, wedding)
	b.extend(s.FundFromSavings(m, year, wedding))

	if income := decimalOr(p.SpouseIncome, decimal.Zero); income.IsPositive() {
		spouse := NewSpouseIncome("Spouse Income", income, a.SpouseIncomeGrowth, year, nil, p.PartTimeSchedule)
		for y := year; y <= horizon; y++ {
			b.add(domain.SeriesIncome, y, spouse.Amount(y))
		}
	}

	assets := finmath.NonNegative(decimalOr(p.SpouseAssets, decimal.Zero))
	debts := finmath.NonNegative(decimalOr(p.SpouseLiabilities, decimal.Zero))
	for y := year; y <= horizon; y++ {
		b.add(domain.SeriesAssets, y, assets)
		remaining := finmath.NonNegative(one.Sub(a.SpouseLiabilityDecay.Mul(decimal.NewFromInt(int64(y - year)))))
		b.add(domain.SeriesLiabilities, y, debts.Mul(remaining))
	}

	extra := a.MarriageExpenseFactor.Sub(one)
	for _, e := range s.Portfolio.Expenditures {
		c := e.Category()
		if c == domain.CategoryHousing || c == domain.CategoryTransportation {
			continue
		}
		for y := year + 1; y <= horizon; y++ {
			b.addCategory(c, y, e.Amount(y).Mul(extra))
		}
	}
	return b.list, nil
}

// housingHandler buys a home: down payment from savings, rent reduced, home
// value and mortgage balance carried from the milestone year on.
type housingHandler struct{}

type purchaseParams struct {
	Value        *decimal.Decimal `json:"value"`
	DownPayment  *decimal.Decimal `json:"downpayment"`
	InterestRate *decimal.Decimal `json:"interestrate"`
	LoanTerm     *int             `json:"loanterm"`
}

func (p purchaseParams) resolve(defValue, downFraction, defRate decimal.Decimal, defTerm int) (value, down, rate decimal.Decimal, term int) {
	value = finmath.NonNegative(decimalOr(p.Value, defValue))
	down = finmath.Min(finmath.NonNegative(decimalOr(p.DownPayment, value.Mul(downFraction))), value)
	rate = decimalOr(p.InterestRate, defRate)
	term = intOr(p.LoanTerm, defTerm)
	if term < 0 {
		term = 0
	}
	return value, down, rate, term
}

func (housingHandler) Apply(s *MilestoneScope, m domain.Milestone) ([]domain.Adjustment, error) {
	var p purchaseParams
	if err := decodeParams(m, &p); err != nil {
		return nil, err
	}
	a := s.Assumptions
	value, down, rate, term := p.resolve(a.HomeValue, a.DownPaymentFraction, a.MortgageRate, a.MortgageTermYears)
	b := s.builder(m)
	year, horizon := m.Year, s.Horizon()

	b.addCategory(domain.CategoryOther, year, down)
	b.extend(s.FundFromSavings(m, year, down))

	for _, e := range s.Portfolio.Expenditures {
		if !IsRentClassified(e) {
			continue
		}
		for y := year; y <= horizon; y++ {
			b.addCategory(e.Category(), y, e.Amount(y).Mul(a.RentReduction).Neg())
		}
	}

	mortgage := NewMortgage("Mortgage", value.Sub(down), rate, term, DefaultPropertyTaxRate, DefaultInsuranceRate)
	for y := year; y <= horizon; y++ {
		home := finmath.Grow(value, a.HomeAppreciation, y-year)
		b.add(domain.SeriesAssets, y, home)
		b.add(domain.SeriesHomeValue, y, home)

		balance := mortgage.Balance(y - year)
		b.add(domain.SeriesLiabilities, y, balance)
		b.add(domain.SeriesMortgage, y, balance)
	}
	return b.list, nil
}

// carHandler buys a car: down payment from savings, transportation spending
// reduced, depreciating car value and auto loan balance carried forward.
type carHandler struct{}

func (carHandler) Apply(s *MilestoneScope, m domain.Milestone) ([]domain.Adjustment, error) {
	var p purchaseParams
	if err := decodeParams(m, &p); err != nil {
		return nil, err
	}
	a := s.Assumptions
	value, down, rate, term := p.resolve(a.CarValue, a.DownPaymentFraction, a.AutoLoanRate, a.AutoLoanTermYears)
	b := s.builder(m)
	year, horizon := m.Year, s.Horizon()

	b.addCategory(domain.CategoryOther, year, down)
	b.extend(s.FundFromSavings(m, year, down))

	keep := one.Sub(a.TransportReduction)
	for _, e := range s.Portfolio.Expenditures {
		if e.Category() != domain.CategoryTransportation {
			continue
		}
		before := s.values(e.Amount, year)
		if t, ok := e.(*TransportationExpenditure); ok {
			// The purchase replaces any replacement scheduled for this year.
			t.RecordPurchase(year, value)
		}
		for i, old := range before {
			y := year + i
			b.addCategory(e.Category(), y, e.Amount(y).Mul(keep).Sub(old))
		}
	}

	car := NewDepreciableAsset("Car", value, a.CarDepreciation)
	loan := NewAutoLoan("Auto Loan", value.Sub(down), rate, term)
	for y := year; y <= horizon; y++ {
		v := car.Value(y - year)
		b.add(domain.SeriesAssets, y, v)
		b.add(domain.SeriesCarValue, y, v)

		balance := loan.Balance(y - year)
		b.add(domain.SeriesLiabilities, y, balance)
		b.add(domain.SeriesCarLoan, y, balance)
	}
	return b.list, nil
}

// childrenHandler books the one-time cost per child and an escalating annual
// childcare cost.
type childrenHandler struct{}

type childrenParams struct {
	Count       *int             `json:"count"`
	InitialCost *decimal.Decimal `json:"initialcost"`
	AnnualCost  *decimal.Decimal `json:"annualcost"`
}

func (childrenHandler) Apply(s *MilestoneScope, m domain.Milestone) ([]domain.Adjustment, error) {
	var p childrenParams
	if err := decodeParams(m, &p); err != nil {
		return nil, err
	}
	a := s.Assumptions
	count := intOr(p.Count, 1)
	if count <= 0 {
		return nil, nil
	}
	n := decimal.NewFromInt(int64(count))
	b := s.builder(m)
	year, horizon := m.Year, s.Horizon()

	initial := finmath.NonNegative(decimalOr(p.InitialCost, a.ChildInitialCost)).Mul(n)
	b.addCategory(domain.CategoryChildcare, year, initial)
	b.extend(s.FundFromSavings(m, year, initial))

	annual := finmath.NonNegative(decimalOr(p.AnnualCost, a.ChildAnnualCost)).Mul(n)
	for y := year; y <= horizon; y++ {
		b.addCategory(domain.CategoryChildcare, y, finmath.Grow(annual, a.ChildCostGrowth, y-year))
	}
	return b.list, nil
}

// educationHandler books tuition, adjusts income while studying and applies the
// graduate premium afterwards.
type educationHandler struct{}

type educationParams struct {
	Cost       *decimal.Decimal `json:"cost"`
	Duration   *int             `json:"duration"`
	WorkStatus any              `json:"workstatus"`
}

// studyIncomeFactor maps a work status to the share of income kept while
// studying.
func studyIncomeFactor(status any, partTime decimal.Decimal) decimal.Decimal {
	switch v := status.(type) {
	case bool:
		if !v {
			return decimal.Zero
		}
	case string:
		switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(v)), "_", "-") {
		case "no", "none", "false", "not-working":
			return decimal.Zero
		case "part-time", "parttime", "part time":
			return partTime
		}
	}
	return one
}

func (educationHandler) Apply(s *MilestoneScope, m domain.Milestone) ([]domain.Adjustment, error) {
	var p educationParams
	if err := decodeParams(m, &p); err != nil {
		return nil, err
	}
	a := s.Assumptions
	cost := finmath.NonNegative(decimalOr(p.Cost, a.EducationCost))
	duration := intOr(p.Duration, a.EducationYears)
	if duration <= 0 {
		duration = a.EducationYears
	}
	b := s.builder(m)
	year, horizon := m.Year, s.Horizon()
	graduation := year + duration

	upfront := cost.Mul(a.UpfrontTuitionFraction)
	b.addCategory(domain.CategoryEducation, year, upfront)
	b.extend(s.FundFromSavings(m, year, upfront))

	perYear := cost.Sub(upfront).Div(decimal.NewFromInt(int64(duration)))
	keep := studyIncomeFactor(p.WorkStatus, a.PartTimeStudyFactor)
	for y := year; y < graduation && y <= horizon; y++ {
		b.addCategory(domain.CategoryEducation, y, perYear)
		b.add(domain.SeriesIncome, y, s.Result.Income[y].Mul(keep.Sub(one)))
	}

	premium := a.GraduateIncomeFactor.Sub(one)
	for y := graduation; y <= horizon; y++ {
		b.add(domain.SeriesIncome, y, s.Result.Income[y].Mul(premium))
	}
	return b.list, nil
}

// militaryHandler has no effect of its own: service is expanded into entities
// by BuildMilitaryPath before the run starts.
type militaryHandler struct{}

func (militaryHandler) Apply(*MilestoneScope, domain.Milestone) ([]domain.Adjustment, error) {
	return nil, nil
}
