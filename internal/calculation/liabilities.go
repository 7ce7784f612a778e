package calculation

import (
	"github.com/rpgo/lifeplan/pkg/finmath"
	"github.com/shopspring/decimal"
)

// LiabilityKind identifies the liability variant.
type LiabilityKind int

const (
	LiabilityGeneric LiabilityKind = iota
	LiabilityMortgage
	LiabilityStudentLoan
	LiabilityAutoLoan
)

// Liability is a debt with a balance history and a payment history.
type Liability interface {
	Name() string
	Kind() LiabilityKind
	InitialBalance() decimal.Decimal
	InterestRate() decimal.Decimal
	TermYears() int
	Balance(year int) decimal.Decimal
	// RequiredPayment is the scheduled payment for year given the balance
	// carried in from year-1.
	RequiredPayment(year int) decimal.Decimal
	// Payment is the recorded payment for year, or the required payment.
	Payment(year int) decimal.Decimal
	MakePayment(year int, amount decimal.Decimal)
	UpdateBalance(year int, balance decimal.Decimal)
}

// BaseLiability is an amortizing loan with level annual payments.
type BaseLiability struct {
	name     string
	kind     LiabilityKind
	initial  decimal.Decimal
	rate     decimal.Decimal
	term     int
	standard decimal.Decimal
	payments map[int]decimal.Decimal
	timeline *Timeline

	// accrue returns the amount owed at year before any payment.
	accrue func(prev decimal.Decimal, year int) decimal.Decimal
	// scheduled returns the principal and interest due at year given owed.
	scheduled func(year int, owed decimal.Decimal) decimal.Decimal
	// escrow returns the non-principal part added on top of scheduled.
	escrow func(year int, owed decimal.Decimal) decimal.Decimal
}

// NewLiability creates a generic amortizing liability.
func NewLiability(name string, balance, rate decimal.Decimal, termYears int) *BaseLiability {
	l := newBaseLiability(name, LiabilityGeneric, balance, rate, termYears)
	l.init()
	return l
}

func newBaseLiability(name string, kind LiabilityKind, balance, rate decimal.Decimal, termYears int) *BaseLiability {
	balance = finmath.NonNegative(balance)
	l := &BaseLiability{
		name:     name,
		kind:     kind,
		initial:  balance,
		rate:     rate,
		term:     termYears,
		standard: finmath.AnnualPayment(balance, rate, termYears),
		payments: make(map[int]decimal.Decimal),
	}
	factor := decimal.NewFromInt(1).Add(rate)
	l.accrue = func(prev decimal.Decimal, _ int) decimal.Decimal {
		return prev.Mul(factor)
	}
	l.scheduled = func(year int, owed decimal.Decimal) decimal.Decimal {
		if year >= l.term {
			return owed
		}
		return finmath.Min(l.standard, owed)
	}
	l.escrow = func(int, decimal.Decimal) decimal.Decimal { return decimal.Zero }
	return l
}

// init builds the balance timeline; variants call it after wiring their hooks.
func (l *BaseLiability) init() {
	l.timeline = NewTimeline(l.initial, func(prev decimal.Decimal, year int) decimal.Decimal {
		owed := finmath.NonNegative(l.accrue(prev, year))
		return finmath.NonNegative(owed.Sub(l.towardBalance(year, owed)))
	})
}

// towardBalance is the part of year's payment that reduces the balance.
func (l *BaseLiability) towardBalance(year int, owed decimal.Decimal) decimal.Decimal {
	if paid, ok := l.payments[year]; ok {
		principal := finmath.NonNegative(paid.Sub(l.escrow(year, owed)))
		return finmath.Min(principal, owed)
	}
	return finmath.Min(finmath.NonNegative(l.scheduled(year, owed)), owed)
}

func (l *BaseLiability) Name() string                    { return l.name }
func (l *BaseLiability) Kind() LiabilityKind             { return l.kind }
func (l *BaseLiability) InitialBalance() decimal.Decimal { return l.initial }
func (l *BaseLiability) InterestRate() decimal.Decimal   { return l.rate }
func (l *BaseLiability) TermYears() int                  { return l.term }

// StandardPayment is the level annual principal and interest payment.
func (l *BaseLiability) StandardPayment() decimal.Decimal { return l.standard }

func (l *BaseLiability) Balance(year int) decimal.Decimal { return l.timeline.Get(year) }

func (l *BaseLiability) RequiredPayment(year int) decimal.Decimal {
	if year <= 0 {
		return decimal.Zero
	}
	owed := finmath.NonNegative(l.accrue(l.Balance(year-1), year))
	if !owed.IsPositive() {
		return decimal.Zero
	}
	return finmath.Min(finmath.NonNegative(l.scheduled(year, owed)), owed).Add(l.escrow(year, owed))
}

func (l *BaseLiability) Payment(year int) decimal.Decimal {
	if paid, ok := l.payments[year]; ok {
		return paid
	}
	return l.RequiredPayment(year)
}

// MakePayment records the actual payment for year, replacing the schedule.
func (l *BaseLiability) MakePayment(year int, amount decimal.Decimal) {
	if year <= 0 {
		return
	}
	l.payments[year] = finmath.NonNegative(amount)
	l.timeline.Invalidate(year - 1)
}

// UpdateBalance overrides the balance at year; later years are recomputed.
func (l *BaseLiability) UpdateBalance(year int, balance decimal.Decimal) {
	l.timeline.Update(year, finmath.NonNegative(balance))
}

// MortgageLiability adds escrowed property tax and insurance to the payment.
type MortgageLiability struct {
	*BaseLiability
	PropertyValue decimal.Decimal
	Escrow        decimal.Decimal
}

// NewMortgage creates a mortgage. The property value is derived as 125% of the
// opening balance.
func NewMortgage(name string, balance, rate decimal.Decimal, termYears int, taxRate, insuranceRate decimal.Decimal) *MortgageLiability {
	base := newBaseLiability(name, LiabilityMortgage, balance, rate, termYears)
	property := base.initial.Mul(decimal.NewFromFloat(1.25))
	twelve := decimal.NewFromInt(12)
	monthly := property.Mul(taxRate.Add(insuranceRate)).Div(twelve)
	m := &MortgageLiability{
		BaseLiability: base,
		PropertyValue: property,
		Escrow:        monthly.Mul(twelve),
	}
	base.escrow = func(_ int, owed decimal.Decimal) decimal.Decimal {
		if !owed.IsPositive() {
			return decimal.Zero
		}
		return m.Escrow
	}
	base.init()
	return m
}

// StudentLoanLiability defers payments for the first DefermentYears years.
type StudentLoanLiability struct {
	*BaseLiability
	DefermentYears int
	Subsidized     bool
}

// NewStudentLoan creates a student loan. During deferment a subsidized loan is
// held flat and an unsubsidized one accrues interest; no payment is due. After
// deferment the balance is amortized over termYears.
func NewStudentLoan(name string, balance, rate decimal.Decimal, termYears, defermentYears int, subsidized bool) *StudentLoanLiability {
	base := newBaseLiability(name, LiabilityStudentLoan, balance, rate, termYears)
	s := &StudentLoanLiability{
		BaseLiability:  base,
		DefermentYears: defermentYears,
		Subsidized:     subsidized,
	}
	factor := decimal.NewFromInt(1).Add(rate)
	base.accrue = func(prev decimal.Decimal, year int) decimal.Decimal {
		if year <= s.DefermentYears && s.Subsidized {
			return prev
		}
		return prev.Mul(factor)
	}
	base.scheduled = func(year int, owed decimal.Decimal) decimal.Decimal {
		if year <= s.DefermentYears {
			return decimal.Zero
		}
		if year >= s.DefermentYears+base.term {
			return owed
		}
		start := base.Balance(s.DefermentYears)
		return finmath.Min(finmath.AnnualPayment(start, base.rate, base.term), owed)
	}
	base.init()
	return s
}

// ExtendDeferment pushes the end of deferment out by years.
func (s *StudentLoanLiability) ExtendDeferment(years int) {
	if years <= 0 {
		return
	}
	s.DefermentYears += years
	s.timeline.Invalidate(0)
}

// AutoLoanLiability is a plain amortizing car loan.
type AutoLoanLiability struct {
	*BaseLiability
}

// NewAutoLoan creates an auto loan.
func NewAutoLoan(name string, balance, rate decimal.Decimal, termYears int) *AutoLoanLiability {
	base := newBaseLiability(name, LiabilityAutoLoan, balance, rate, termYears)
	base.init()
	return &AutoLoanLiability{BaseLiability: base}
}
