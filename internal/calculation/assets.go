package calculation

import (
	"github.com/rpgo/lifeplan/pkg/finmath"
	"github.com/shopspring/decimal"
)

// AssetKind identifies the asset variant.
type AssetKind int

const (
	AssetGeneric AssetKind = iota
	AssetDepreciable
	AssetInvestment
)

// Asset is anything with a value the household owns.
type Asset interface {
	Name() string
	Kind() AssetKind
	InitialValue() decimal.Decimal
	Value(year int) decimal.Decimal
	UpdateValue(year int, value decimal.Decimal)
}

// BaseAsset holds a constant value unless updated.
type BaseAsset struct {
	name     string
	initial  decimal.Decimal
	kind     AssetKind
	timeline *Timeline
}

// NewAsset creates a generic asset that keeps its value year over year.
func NewAsset(name string, initial decimal.Decimal) *BaseAsset {
	a := &BaseAsset{name: name, initial: initial, kind: AssetGeneric}
	a.timeline = NewTimeline(finmath.NonNegative(initial), func(prev decimal.Decimal, _ int) decimal.Decimal {
		return prev
	})
	return a
}

func (a *BaseAsset) Name() string                   { return a.name }
func (a *BaseAsset) Kind() AssetKind                { return a.kind }
func (a *BaseAsset) InitialValue() decimal.Decimal  { return a.initial }
func (a *BaseAsset) Value(year int) decimal.Decimal { return a.timeline.Get(year) }

// UpdateValue overrides the value at year; later years are recomputed.
func (a *BaseAsset) UpdateValue(year int, value decimal.Decimal) {
	a.timeline.Update(year, finmath.NonNegative(value))
}

// DepreciableAsset loses a fixed fraction of its value every year.
type DepreciableAsset struct {
	BaseAsset
	DepreciationRate decimal.Decimal
}

// NewDepreciableAsset creates an asset with v(t) = v(t-1) * (1 - rate).
func NewDepreciableAsset(name string, initial, rate decimal.Decimal) *DepreciableAsset {
	a := &DepreciableAsset{
		BaseAsset:        BaseAsset{name: name, initial: initial, kind: AssetDepreciable},
		DepreciationRate: rate,
	}
	keep := decimal.NewFromInt(1).Sub(rate)
	a.timeline = NewTimeline(finmath.NonNegative(initial), func(prev decimal.Decimal, _ int) decimal.Decimal {
		return finmath.NonNegative(prev.Mul(keep))
	})
	return a
}

// InvestmentAsset grows at a fixed rate and receives contributions.
type InvestmentAsset struct {
	BaseAsset
	GrowthRate    decimal.Decimal
	contributions map[int]decimal.Decimal
}

// NewInvestmentAsset creates an asset with v(t) = v(t-1) * (1 + growth) + contribution(t).
func NewInvestmentAsset(name string, initial, growth decimal.Decimal, contributions map[int]decimal.Decimal) *InvestmentAsset {
	a := &InvestmentAsset{
		BaseAsset:     BaseAsset{name: name, initial: initial, kind: AssetInvestment},
		GrowthRate:    growth,
		contributions: make(map[int]decimal.Decimal, len(contributions)),
	}
	for y, amt := range contributions {
		a.contributions[y] = amt
	}
	factor := decimal.NewFromInt(1).Add(growth)
	a.timeline = NewTimeline(finmath.NonNegative(initial.Add(a.Contribution(0))), func(prev decimal.Decimal, year int) decimal.Decimal {
		return finmath.NonNegative(prev.Mul(factor).Add(a.Contribution(year)))
	})
	return a
}

// Contribution returns the amount contributed in year.
func (a *InvestmentAsset) Contribution(year int) decimal.Decimal {
	if c, ok := a.contributions[year]; ok {
		return c
	}
	return decimal.Zero
}

// AddContribution adds amount to year. If year is already computed its value
// reflects the contribution immediately and later years are recomputed.
func (a *InvestmentAsset) AddContribution(year int, amount decimal.Decimal) {
	if year < 0 || amount.IsZero() {
		return
	}
	a.contributions[year] = a.Contribution(year).Add(amount)
	if a.timeline.Cached(year) {
		a.timeline.Update(year, finmath.NonNegative(a.timeline.Get(year).Add(amount)))
	}
}

// Withdraw removes up to amount at year and returns what was actually taken.
func (a *InvestmentAsset) Withdraw(year int, amount decimal.Decimal) decimal.Decimal {
	if !amount.IsPositive() {
		return decimal.Zero
	}
	current := a.Value(year)
	taken := finmath.Min(current, amount)
	a.UpdateValue(year, current.Sub(taken))
	return taken
}
