package calculation

import (
	"strings"

	"github.com/rpgo/lifeplan/internal/domain"
	"github.com/rpgo/lifeplan/pkg/finmath"
	"github.com/shopspring/decimal"
)

// ExpenditureKind identifies the expenditure variant.
type ExpenditureKind int

const (
	ExpenditureGeneric ExpenditureKind = iota
	ExpenditureHousing
	ExpenditureTransportation
	ExpenditureLiving
	ExpenditureTax
)

// lifestyleYears is the span over which a lifestyle premium is phased in.
const lifestyleYears = 10

// Expenditure is a recurring yearly expense tagged with a reporting category.
type Expenditure interface {
	Name() string
	Kind() ExpenditureKind
	Category() domain.Category
	Amount(year int) decimal.Decimal
	UpdateAmount(year int, amount decimal.Decimal)
}

// BaseExpenditure inflates at a constant rate inside an optional window.
type BaseExpenditure struct {
	name      string
	kind      ExpenditureKind
	category  domain.Category
	annual    decimal.Decimal
	inflation decimal.Decimal
	startYear int
	endYear   *int
	timeline  *Timeline

	inflate func(prev decimal.Decimal, year int) decimal.Decimal
}

// NewExpenditure creates a generic expenditure: e(t) = e(t-1) * (1 + inflation).
func NewExpenditure(name string, annual, inflation decimal.Decimal) *BaseExpenditure {
	e := newBaseExpenditure(name, ExpenditureGeneric, annual, inflation)
	e.init()
	return e
}

func newBaseExpenditure(name string, kind ExpenditureKind, annual, inflation decimal.Decimal) *BaseExpenditure {
	e := &BaseExpenditure{
		name:      name,
		kind:      kind,
		annual:    finmath.NonNegative(annual),
		inflation: inflation,
	}
	e.category = Categorize(kind, name)
	factor := decimal.NewFromInt(1).Add(inflation)
	e.inflate = func(prev decimal.Decimal, _ int) decimal.Decimal {
		return prev.Mul(factor)
	}
	return e
}

func (e *BaseExpenditure) init() {
	initial := decimal.Zero
	if e.Active(0) {
		initial = e.annual
	}
	e.timeline = NewTimeline(initial, func(prev decimal.Decimal, year int) decimal.Decimal {
		if !e.Active(year) {
			return decimal.Zero
		}
		if year == e.startYear || !e.Active(year-1) {
			return e.annual
		}
		return finmath.NonNegative(e.inflate(prev, year))
	})
}

// SetWindow limits the expenditure to [start, end]; end nil is open-ended.
func (e *BaseExpenditure) SetWindow(start int, end *int) {
	e.startYear = start
	e.endYear = nil
	if end != nil {
		v := *end
		e.endYear = &v
	}
	initial := decimal.Zero
	if e.Active(0) {
		initial = e.annual
	}
	e.timeline.Update(0, initial)
}

// SetCategory replaces the derived category with an explicit tag.
func (e *BaseExpenditure) SetCategory(c domain.Category) {
	if c.Valid() {
		e.category = c
	}
}

// Active reports whether year is inside the expenditure window.
func (e *BaseExpenditure) Active(year int) bool {
	if year < e.startYear {
		return false
	}
	return e.endYear == nil || year <= *e.endYear
}

func (e *BaseExpenditure) Name() string                      { return e.name }
func (e *BaseExpenditure) Kind() ExpenditureKind             { return e.kind }
func (e *BaseExpenditure) Category() domain.Category         { return e.category }
func (e *BaseExpenditure) AnnualAmount() decimal.Decimal     { return e.annual }
func (e *BaseExpenditure) InflationRate() decimal.Decimal    { return e.inflation }
func (e *BaseExpenditure) Amount(year int) decimal.Decimal   { return e.timeline.Get(year) }
func (e *BaseExpenditure) UpdateAmount(year int, v decimal.Decimal) {
	e.timeline.Update(year, finmath.NonNegative(v))
}

// HousingExpenditure models rent or ownership costs. Rent takes a larger
// lease-renewal jump every second year.
type HousingExpenditure struct {
	*BaseExpenditure
	IsRent bool
}

// NewHousingExpenditure creates a housing expenditure. When isRent is set, even
// years inflate by 1.5x the rate.
func NewHousingExpenditure(name string, annual, inflation decimal.Decimal, isRent bool) *HousingExpenditure {
	base := newBaseExpenditure(name, ExpenditureHousing, annual, inflation)
	h := &HousingExpenditure{BaseExpenditure: base, IsRent: isRent}
	one := decimal.NewFromInt(1)
	normal := one.Add(inflation)
	renewal := one.Add(inflation.Mul(decimal.NewFromFloat(1.5)))
	base.inflate = func(prev decimal.Decimal, year int) decimal.Decimal {
		if h.IsRent && year%2 == 0 {
			return prev.Mul(renewal)
		}
		return prev.Mul(normal)
	}
	base.init()
	return h
}

// TransportationExpenditure folds periodic car replacement costs into the
// inflated running costs.
type TransportationExpenditure struct {
	*BaseExpenditure
	AutoReplace      bool
	ReplacementYears int
	ReplacementCost  decimal.Decimal
	purchases        map[int]decimal.Decimal
}

// NewTransportationExpenditure creates a transportation expenditure.
func NewTransportationExpenditure(name string, annual, inflation decimal.Decimal, autoReplace bool, replacementYears int, replacementCost decimal.Decimal) *TransportationExpenditure {
	base := newBaseExpenditure(name, ExpenditureTransportation, annual, inflation)
	t := &TransportationExpenditure{
		BaseExpenditure:  base,
		AutoReplace:      autoReplace,
		ReplacementYears: replacementYears,
		ReplacementCost:  replacementCost,
		purchases:        make(map[int]decimal.Decimal),
	}
	factor := decimal.NewFromInt(1).Add(inflation)
	base.inflate = func(prev decimal.Decimal, year int) decimal.Decimal {
		running := finmath.NonNegative(prev.Sub(t.LumpSum(year - 1)))
		return running.Mul(factor).Add(t.LumpSum(year))
	}
	base.init()
	return t
}

// LumpSum is the inflated replacement cost folded into year. Years with a
// recorded purchase get no scheduled replacement.
func (t *TransportationExpenditure) LumpSum(year int) decimal.Decimal {
	if _, ok := t.purchases[year]; ok {
		return decimal.Zero
	}
	if !t.AutoReplace || t.ReplacementYears <= 0 || year <= 0 || year%t.ReplacementYears != 0 {
		return decimal.Zero
	}
	return finmath.Grow(t.ReplacementCost, t.inflation, year)
}

// RecordPurchase registers a vehicle bought outside the schedule at year.
func (t *TransportationExpenditure) RecordPurchase(year int, amount decimal.Decimal) {
	if year <= 0 {
		return
	}
	t.purchases[year] = finmath.NonNegative(amount)
	t.timeline.Invalidate(year - 1)
}

// Purchased reports whether a purchase is recorded for year.
func (t *TransportationExpenditure) Purchased(year int) bool {
	_, ok := t.purchases[year]
	return ok
}

// LivingExpenditure phases a lifestyle premium in over ten years, or follows an
// explicit year -> change factor schedule.
type LivingExpenditure struct {
	*BaseExpenditure
	LifestyleFactor decimal.Decimal
	changeFactors   map[int]decimal.Decimal
}

// NewLivingExpenditure creates a living expenditure.
func NewLivingExpenditure(name string, annual, inflation, lifestyle decimal.Decimal, changeFactors map[int]decimal.Decimal) *LivingExpenditure {
	base := newBaseExpenditure(name, ExpenditureLiving, annual, inflation)
	l := &LivingExpenditure{
		BaseExpenditure: base,
		LifestyleFactor: lifestyle,
		changeFactors:   make(map[int]decimal.Decimal, len(changeFactors)),
	}
	for y, f := range changeFactors {
		l.changeFactors[y] = f
	}
	one := decimal.NewFromInt(1)
	factor := one.Add(inflation)
	premium := one.Add(lifestyle.Div(decimal.NewFromInt(lifestyleYears)))
	base.inflate = func(prev decimal.Decimal, year int) decimal.Decimal {
		if f, ok := l.changeFactors[year]; ok {
			return prev.Mul(f)
		}
		grown := prev.Mul(factor)
		if !l.LifestyleFactor.IsZero() && year <= lifestyleYears {
			grown = grown.Mul(premium)
		}
		return grown
	}
	base.init()
	return l
}

// TaxExpenditure does not inflate on its own: each year it is the fixed amount
// plus the income recorded against it times the rate.
type TaxExpenditure struct {
	*BaseExpenditure
	TaxRate decimal.Decimal
	sources map[string]bool
	income  map[int]map[int]decimal.Decimal
}

// NewTaxExpenditure creates a tax expenditure. When sources is empty every
// recorded income is taxed; otherwise only the named sources are.
func NewTaxExpenditure(name string, fixed, rate decimal.Decimal, sources []string) *TaxExpenditure {
	base := newBaseExpenditure(name, ExpenditureTax, fixed, decimal.Zero)
	t := &TaxExpenditure{
		BaseExpenditure: base,
		TaxRate:         rate,
		sources:         make(map[string]bool, len(sources)),
		income:          make(map[int]map[int]decimal.Decimal),
	}
	for _, s := range sources {
		t.sources[strings.ToLower(strings.TrimSpace(s))] = true
	}
	base.init()
	base.timeline.step = func(_ decimal.Decimal, year int) decimal.Decimal {
		if !base.Active(year) {
			return decimal.Zero
		}
		return t.compute(year)
	}
	return t
}

// RecordIncome registers the amount earned in year by the income stream at
// index stream. Streams are told apart by index so incomes sharing a name are
// all taxed; source is only matched against the income filter.
func (t *TaxExpenditure) RecordIncome(year, stream int, source string, amount decimal.Decimal) {
	if year < 0 || !t.Taxes(source) {
		return
	}
	byYear, ok := t.income[year]
	if !ok {
		byYear = make(map[int]decimal.Decimal)
		t.income[year] = byYear
	}
	byYear[stream] = amount
	if t.timeline.Cached(year) {
		if t.Active(year) {
			t.timeline.Update(year, t.compute(year))
		} else {
			t.timeline.Invalidate(year)
		}
	}
}

// Taxes reports whether income from source is taxed by this expenditure.
func (t *TaxExpenditure) Taxes(source string) bool {
	if len(t.sources) == 0 {
		return true
	}
	return t.sources[strings.ToLower(strings.TrimSpace(source))]
}

// RecordedIncome sums the income recorded for year.
func (t *TaxExpenditure) RecordedIncome(year int) decimal.Decimal {
	total := decimal.Zero
	for _, amt := range t.income[year] {
		total = total.Add(amt)
	}
	return total
}

func (t *TaxExpenditure) compute(year int) decimal.Decimal {
	return finmath.NonNegative(t.annual.Add(t.RecordedIncome(year).Mul(t.TaxRate)))
}

// IsRentClassified reports whether e is a rent payment: a Housing expenditure
// flagged as rent, or any expenditure whose name mentions rent.
func IsRentClassified(e Expenditure) bool {
	if h, ok := e.(*HousingExpenditure); ok && h.IsRent {
		return true
	}
	return strings.Contains(strings.ToLower(e.Name()), "rent")
}
