package calculation

import (
	"github.com/rpgo/lifeplan/pkg/finmath"
	"github.com/shopspring/decimal"
)

// IncomeKind identifies the income variant.
type IncomeKind int

const (
	IncomeGeneric IncomeKind = iota
	IncomeSalary
	IncomeSpouse
)

// Income is a source of yearly earnings active between StartYear and the
// inclusive EndYear.
type Income interface {
	Name() string
	Kind() IncomeKind
	Amount(year int) decimal.Decimal
	Active(year int) bool
}

// BaseIncome grows at a constant rate inside its window.
type BaseIncome struct {
	name      string
	kind      IncomeKind
	annual    decimal.Decimal
	growth    decimal.Decimal
	startYear int
	endYear   *int
	timeline  *Timeline

	// grow advances an in-window amount from year-1 to year.
	grow func(prev decimal.Decimal, year int) decimal.Decimal
	// opening is the amount in the first active year.
	opening func(year int) decimal.Decimal
}

// NewIncome creates a generic income: i(t) = i(t-1) * (1 + growth).
func NewIncome(name string, annual, growth decimal.Decimal, startYear int, endYear *int) *BaseIncome {
	in := newBaseIncome(name, IncomeGeneric, annual, growth, startYear, endYear)
	in.init()
	return in
}

func newBaseIncome(name string, kind IncomeKind, annual, growth decimal.Decimal, startYear int, endYear *int) *BaseIncome {
	in := &BaseIncome{
		name:      name,
		kind:      kind,
		annual:    finmath.NonNegative(annual),
		growth:    growth,
		startYear: startYear,
	}
	if endYear != nil {
		end := *endYear
		in.endYear = &end
	}
	factor := decimal.NewFromInt(1).Add(growth)
	in.grow = func(prev decimal.Decimal, _ int) decimal.Decimal {
		return prev.Mul(factor)
	}
	in.opening = func(int) decimal.Decimal { return in.annual }
	return in
}

func (in *BaseIncome) init() {
	initial := decimal.Zero
	if in.Active(0) {
		initial = in.opening(0)
	}
	in.timeline = NewTimeline(initial, func(prev decimal.Decimal, year int) decimal.Decimal {
		if !in.Active(year) {
			return decimal.Zero
		}
		if year == in.startYear || !in.Active(year-1) {
			return in.opening(year)
		}
		return finmath.NonNegative(in.grow(prev, year))
	})
}

func (in *BaseIncome) Name() string     { return in.name }
func (in *BaseIncome) Kind() IncomeKind { return in.kind }

// Active reports whether year is inside [StartYear, EndYear].
func (in *BaseIncome) Active(year int) bool {
	if year < in.startYear {
		return false
	}
	return in.endYear == nil || year <= *in.endYear
}

func (in *BaseIncome) Amount(year int) decimal.Decimal { return in.timeline.Get(year) }

// AnnualAmount is the amount paid in the first active year.
func (in *BaseIncome) AnnualAmount() decimal.Decimal { return in.annual }
func (in *BaseIncome) GrowthRate() decimal.Decimal   { return in.growth }
func (in *BaseIncome) StartYear() int                { return in.startYear }

// EndYear returns the inclusive last year, or nil when open-ended.
func (in *BaseIncome) EndYear() *int { return in.endYear }

// SalaryIncome applies a bonus on top of grown salary every year.
type SalaryIncome struct {
	*BaseIncome
	BonusPercent decimal.Decimal
}

// NewSalaryIncome creates a salary: i(t) = i(t-1) * (1 + growth) * (1 + bonus).
func NewSalaryIncome(name string, annual, growth, bonus decimal.Decimal, startYear int, endYear *int) *SalaryIncome {
	base := newBaseIncome(name, IncomeSalary, annual, growth, startYear, endYear)
	s := &SalaryIncome{BaseIncome: base, BonusPercent: bonus}
	factor := decimal.NewFromInt(1).Add(growth).Mul(decimal.NewFromInt(1).Add(bonus))
	base.grow = func(prev decimal.Decimal, _ int) decimal.Decimal {
		return prev.Mul(factor)
	}
	base.init()
	return s
}

// SpouseIncome follows a part-time schedule without corrupting the growth
// trend: the full-time equivalent is backed out with the previous year's factor,
// grown, and the current year's factor is applied again.
type SpouseIncome struct {
	*BaseIncome
	schedule map[int]decimal.Decimal
}

// NewSpouseIncome creates a spouse income. Years missing from schedule work
// full time; factors are clamped to [0,1].
func NewSpouseIncome(name string, annual, growth decimal.Decimal, startYear int, endYear *int, schedule map[int]decimal.Decimal) *SpouseIncome {
	base := newBaseIncome(name, IncomeSpouse, annual, growth, startYear, endYear)
	s := &SpouseIncome{BaseIncome: base, schedule: make(map[int]decimal.Decimal, len(schedule))}
	for y, f := range schedule {
		s.schedule[y] = finmath.Clamp01(f)
	}
	factor := decimal.NewFromInt(1).Add(growth)
	base.grow = func(prev decimal.Decimal, year int) decimal.Decimal {
		prevFactor := s.PartTimeFactor(year - 1)
		var fullTime decimal.Decimal
		if prevFactor.IsZero() {
			// Nothing to back out from; rebuild the trend from the opening amount.
			fullTime = finmath.Grow(base.annual, growth, year-1-base.startYear)
		} else {
			fullTime = prev.Div(prevFactor)
		}
		return fullTime.Mul(factor).Mul(s.PartTimeFactor(year))
	}
	base.opening = func(year int) decimal.Decimal {
		return base.annual.Mul(s.PartTimeFactor(year))
	}
	base.init()
	return s
}

// PartTimeFactor returns the working fraction for year.
func (s *SpouseIncome) PartTimeFactor(year int) decimal.Decimal {
	if f, ok := s.schedule[year]; ok {
		return f
	}
	return decimal.NewFromInt(1)
}
