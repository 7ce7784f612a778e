package calculation

import (
	"testing"

	"github.com/rpgo/lifeplan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepreciableAssetDecaysEveryYear(t *testing.T) {
	rate := d(0.2)
	a := NewDepreciableAsset("Car", decimal.NewFromInt(10000), rate)

	assert.True(t, a.Value(1).Equal(decimal.NewFromInt(8000)))
	assert.True(t, a.Value(2).Equal(decimal.NewFromInt(6400)))
	for year := 1; year <= 10; year++ {
		assert.True(t, a.Value(year).Equal(a.Value(year-1).Mul(decimal.NewFromInt(1).Sub(rate))), "year %d", year)
	}
}

func TestGenericAssetHoldsValue(t *testing.T) {
	a := NewAsset("Art", decimal.NewFromInt(500))
	assert.True(t, a.Value(7).Equal(decimal.NewFromInt(500)))

	a.UpdateValue(3, decimal.NewFromInt(-10))
	assert.True(t, a.Value(3).IsZero(), "values are clamped at zero")
	assert.True(t, a.Value(4).IsZero())
}

func TestInvestmentAssetContributions(t *testing.T) {
	a := NewInvestmentAsset("Brokerage", decimal.NewFromInt(1000), d(0.1), map[int]decimal.Decimal{
		2: decimal.NewFromInt(100),
	})

	assert.True(t, a.Value(1).Equal(decimal.NewFromInt(1100)))
	assert.True(t, a.Value(2).Equal(decimal.NewFromInt(1310)))
	a.Value(3)

	// A retroactive contribution shows up in the cached year and everything after.
	a.AddContribution(1, decimal.NewFromInt(50))
	assert.True(t, a.Value(1).Equal(decimal.NewFromInt(1150)))
	assert.True(t, a.Value(2).Equal(decimal.NewFromInt(1365)))
	assert.True(t, a.Contribution(1).Equal(decimal.NewFromInt(50)))

	// A contribution to a year not computed yet is picked up by the step.
	a.AddContribution(6, decimal.NewFromInt(10))
	assert.True(t, a.Value(6).Equal(a.Value(5).Mul(d(1.1)).Add(decimal.NewFromInt(10))))
}

func TestInvestmentAssetWithdrawIsCapped(t *testing.T) {
	a := NewInvestmentAsset("Savings", decimal.NewFromInt(1000), decimal.Zero, nil)

	taken := a.Withdraw(2, decimal.NewFromInt(400))
	assert.True(t, taken.Equal(decimal.NewFromInt(400)))
	assert.True(t, a.Value(2).Equal(decimal.NewFromInt(600)))
	assert.True(t, a.Value(1).Equal(decimal.NewFromInt(1000)), "earlier years are untouched")

	taken = a.Withdraw(3, decimal.NewFromInt(5000))
	assert.True(t, taken.Equal(decimal.NewFromInt(600)))
	assert.True(t, a.Value(5).IsZero())

	assert.True(t, a.Withdraw(4, decimal.NewFromInt(-5)).IsZero())
}

func TestLiabilityUpdateBalance(t *testing.T) {
	l := NewLiability("Loan", decimal.NewFromInt(1000), decimal.Zero, 4)
	assert.True(t, l.Balance(3).Equal(decimal.NewFromInt(250)))

	l.UpdateBalance(2, decimal.NewFromInt(300))
	assert.True(t, l.Balance(1).Equal(decimal.NewFromInt(750)), "earlier years are kept")
	assert.True(t, l.Balance(2).Equal(decimal.NewFromInt(300)))
	assert.True(t, l.Balance(3).LessThan(decimal.NewFromInt(300)), "later years follow the new balance")
	assert.True(t, l.Balance(4).IsZero(), "still repaid by the term")

	l.UpdateBalance(2, decimal.NewFromInt(-5))
	assert.True(t, l.Balance(2).IsZero(), "balances are clamped")
	assert.True(t, l.Balance(3).IsZero())
}

func TestLiabilityAmortizationTerminates(t *testing.T) {
	tests := []struct {
		name    string
		balance int64
		rate    float64
		term    int
	}{
		{"five year loan", 10000, 0.05, 5},
		{"thirty year loan", 250000, 0.065, 30},
		{"zero rate", 1000, 0, 4},
		{"one year", 500, 0.1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLiability("Loan", decimal.NewFromInt(tt.balance), d(tt.rate), tt.term)
			for year := 1; year < tt.term; year++ {
				assert.True(t, l.Balance(year).IsPositive(), "year %d", year)
				assert.True(t, l.Balance(year).LessThan(l.Balance(year-1)), "year %d", year)
			}
			assert.True(t, l.Balance(tt.term).IsZero())
			assert.True(t, l.Balance(tt.term+3).IsZero())
			assert.True(t, l.RequiredPayment(tt.term+1).IsZero())
		})
	}
}

func TestLiabilityZeroRateUsesSimpleDivision(t *testing.T) {
	l := NewLiability("Family loan", decimal.NewFromInt(1000), decimal.Zero, 4)

	assert.True(t, l.StandardPayment().Equal(decimal.NewFromInt(250)))
	assert.True(t, l.Balance(1).Equal(decimal.NewFromInt(750)))
	assert.True(t, l.Balance(3).Equal(decimal.NewFromInt(250)))
}

func TestLiabilityRecordedPayment(t *testing.T) {
	l := NewLiability("Loan", decimal.NewFromInt(1000), d(0.1), 10)
	l.Balance(5)

	l.MakePayment(1, decimal.NewFromInt(100))
	assert.True(t, l.Payment(1).Equal(decimal.NewFromInt(100)))
	assert.True(t, l.Balance(1).Equal(decimal.NewFromInt(1000)))

	// Overpaying never drives the balance negative.
	l.MakePayment(2, decimal.NewFromInt(1_000_000))
	assert.True(t, l.Balance(2).IsZero())
	assert.True(t, l.RequiredPayment(3).IsZero())

	assert.True(t, l.RequiredPayment(0).IsZero())
}

func TestMortgageEscrow(t *testing.T) {
	principal := decimal.NewFromInt(200000)
	m := NewMortgage("Mortgage", principal, d(0.05), 30, d(0.01), d(0.0035))

	assert.True(t, m.PropertyValue.Equal(decimal.NewFromInt(250000)))
	assertNear(t, decimal.NewFromInt(3375), m.Escrow, cent)
	assertNear(t, d(13010.29), m.StandardPayment(), cent)
	assertNear(t, m.StandardPayment().Add(m.Escrow), m.RequiredPayment(1), cent)

	// Paying principal, interest and escrow reduces the balance exactly like the schedule.
	scheduled := NewMortgage("Mortgage", principal, d(0.05), 30, d(0.01), d(0.0035))
	m.MakePayment(1, m.RequiredPayment(1))
	assertNear(t, scheduled.Balance(1), m.Balance(1), cent)
	assertNear(t, d(196989.71), m.Balance(1), cent)
	assert.True(t, m.Balance(30).IsZero())
	assert.True(t, m.RequiredPayment(31).IsZero(), "no escrow once the loan is paid off")
}

func TestStudentLoanDeferment(t *testing.T) {
	balance := decimal.NewFromInt(10000)

	sub := NewStudentLoan("Student Loan", balance, d(0.05), 10, 2, true)
	assert.True(t, sub.Balance(1).Equal(balance))
	assert.True(t, sub.Balance(2).Equal(balance))
	assert.True(t, sub.RequiredPayment(1).IsZero())
	assert.True(t, sub.RequiredPayment(2).IsZero())
	assert.True(t, sub.RequiredPayment(3).IsPositive())
	assert.True(t, sub.Balance(11).IsPositive())
	assert.True(t, sub.Balance(12).IsZero())

	unsub := NewStudentLoan("Student Loan", balance, d(0.05), 10, 2, false)
	assertNear(t, decimal.NewFromInt(11025), unsub.Balance(2), cent)
	assert.True(t, unsub.RequiredPayment(2).IsZero())
	assert.True(t, unsub.Balance(12).IsZero())
}

func TestStudentLoanExtendDeferment(t *testing.T) {
	l := NewStudentLoan("Student Loan", decimal.NewFromInt(10000), d(0.05), 10, 1, true)
	assert.True(t, l.Balance(3).LessThan(decimal.NewFromInt(10000)))

	l.ExtendDeferment(3)
	assert.Equal(t, 4, l.DefermentYears)
	assert.True(t, l.Balance(4).Equal(decimal.NewFromInt(10000)))
	assert.True(t, l.Balance(14).IsZero())
}

func TestAutoLoan(t *testing.T) {
	l := NewAutoLoan("Auto Loan", decimal.NewFromInt(20000), d(0.07), 5)
	assert.Equal(t, LiabilityAutoLoan, l.Kind())
	assert.True(t, l.Balance(4).IsPositive())
	assert.True(t, l.Balance(5).IsZero())
}

func TestIncomeWindow(t *testing.T) {
	in := NewIncome("Consulting", decimal.NewFromInt(1000), d(0.1), 2, domain.IntPtr(4))

	assert.True(t, in.Amount(0).IsZero())
	assert.True(t, in.Amount(1).IsZero())
	assert.True(t, in.Amount(2).Equal(decimal.NewFromInt(1000)))
	assert.True(t, in.Amount(3).Equal(decimal.NewFromInt(1100)))
	assert.True(t, in.Amount(4).Equal(decimal.NewFromInt(1210)))
	assert.True(t, in.Amount(5).IsZero())
	assert.False(t, in.Active(5))
	require.NotNil(t, in.EndYear())
	assert.Equal(t, 4, *in.EndYear())
}

func TestSalaryIncomeBonus(t *testing.T) {
	s := NewSalaryIncome("Salary", decimal.NewFromInt(50000), d(0.03), d(0.1), 0, nil)

	assert.True(t, s.Amount(0).Equal(decimal.NewFromInt(50000)))
	assertNear(t, decimal.NewFromInt(56650), s.Amount(1), cent)
	assertNear(t, s.Amount(1).Mul(d(1.03)).Mul(d(1.1)), s.Amount(2), cent)
}

func TestSpouseIncomePartTimeKeepsTrend(t *testing.T) {
	s := NewSpouseIncome("Spouse", decimal.NewFromInt(40000), d(0.1), 0, nil, map[int]decimal.Decimal{
		2: d(0.5),
	})

	assertNear(t, decimal.NewFromInt(44000), s.Amount(1), cent)
	assertNear(t, decimal.NewFromInt(24200), s.Amount(2), cent)
	assertNear(t, decimal.NewFromInt(53240), s.Amount(3), cent, "full time resumes on trend")
}

func TestSpouseIncomeRecoversFromZeroFactor(t *testing.T) {
	s := NewSpouseIncome("Spouse", decimal.NewFromInt(40000), d(0.1), 0, nil, map[int]decimal.Decimal{
		3: decimal.Zero,
		5: d(7), // clamped to 1
	})

	assert.True(t, s.Amount(3).IsZero())
	assertNear(t, d(58564), s.Amount(4), cent)
	assertNear(t, d(64420.4), s.Amount(5), cent)
	assert.True(t, s.PartTimeFactor(5).Equal(decimal.NewFromInt(1)))
}

func TestSpouseIncomeOpeningYearUsesFactor(t *testing.T) {
	s := NewSpouseIncome("Spouse", decimal.NewFromInt(30000), decimal.Zero, 2, nil, map[int]decimal.Decimal{
		2: d(0.5),
	})
	assert.True(t, s.Amount(1).IsZero())
	assertNear(t, decimal.NewFromInt(15000), s.Amount(2), cent)
	assertNear(t, decimal.NewFromInt(30000), s.Amount(3), cent)
}

func TestHousingRentRenewal(t *testing.T) {
	rent := NewHousingExpenditure("Rent", decimal.NewFromInt(1000), d(0.04), true)
	assertNear(t, decimal.NewFromInt(1040), rent.Amount(1), cent)
	assertNear(t, d(1102.4), rent.Amount(2), cent)

	owned := NewHousingExpenditure("Upkeep", decimal.NewFromInt(1000), d(0.04), false)
	assertNear(t, d(1081.6), owned.Amount(2), cent)
	assert.Equal(t, domain.CategoryHousing, owned.Category())
}

func TestTransportationReplacement(t *testing.T) {
	tr := NewTransportationExpenditure("Commute", decimal.NewFromInt(1000), decimal.Zero, true, 3, decimal.NewFromInt(20000))

	assert.True(t, tr.Amount(2).Equal(decimal.NewFromInt(1000)))
	assert.True(t, tr.Amount(3).Equal(decimal.NewFromInt(21000)))
	assert.True(t, tr.Amount(4).Equal(decimal.NewFromInt(1000)), "lump sum does not compound")
	assert.True(t, tr.Amount(6).Equal(decimal.NewFromInt(21000)))

	tr.RecordPurchase(3, decimal.NewFromInt(25000))
	assert.True(t, tr.Purchased(3))
	assert.True(t, tr.Amount(3).Equal(decimal.NewFromInt(1000)))
	assert.True(t, tr.Amount(6).Equal(decimal.NewFromInt(21000)))
}

func TestTransportationReplacementInflates(t *testing.T) {
	tr := NewTransportationExpenditure("Car costs", decimal.NewFromInt(1000), d(0.1), true, 2, decimal.NewFromInt(10000))
	assertNear(t, decimal.NewFromInt(1100), tr.Amount(1), cent)
	assertNear(t, decimal.NewFromInt(1210).Add(decimal.NewFromInt(12100)), tr.Amount(2), cent)
	assertNear(t, d(1331), tr.Amount(3), cent)
}

func TestLivingExpenditure(t *testing.T) {
	l := NewLivingExpenditure("Living", decimal.NewFromInt(1000), decimal.Zero, d(0.1), map[int]decimal.Decimal{
		2: decimal.NewFromInt(2),
	})
	assertNear(t, decimal.NewFromInt(1010), l.Amount(1), cent)
	assertNear(t, decimal.NewFromInt(2020), l.Amount(2), cent)
	assertNear(t, d(2040.2), l.Amount(3), cent)

	// The premium stops after ten years.
	plain := NewLivingExpenditure("Living", decimal.NewFromInt(1000), decimal.Zero, d(0.1), nil)
	assert.True(t, plain.Amount(11).Equal(plain.Amount(10)))
}

func TestTaxExpenditure(t *testing.T) {
	all := NewTaxExpenditure("Taxes", decimal.NewFromInt(100), d(0.2), nil)
	all.RecordIncome(1, 0, "Salary", decimal.NewFromInt(1000))
	all.RecordIncome(1, 1, "Bonus", decimal.NewFromInt(500))
	assert.True(t, all.Amount(1).Equal(decimal.NewFromInt(400)))
	assert.True(t, all.Amount(2).Equal(decimal.NewFromInt(100)), "no income recorded")

	filtered := NewTaxExpenditure("State tax", decimal.Zero, d(0.1), []string{"Salary"})
	filtered.RecordIncome(1, 0, "salary", decimal.NewFromInt(1000))
	filtered.RecordIncome(1, 1, "Rental", decimal.NewFromInt(1000))
	assert.True(t, filtered.Amount(1).Equal(decimal.NewFromInt(100)))
	assert.False(t, filtered.Taxes("Rental"))

	// Income recorded after the year was read updates it.
	assert.True(t, filtered.Amount(0).IsZero())
	filtered.RecordIncome(0, 0, "Salary", decimal.NewFromInt(2000))
	assert.True(t, filtered.Amount(0).Equal(decimal.NewFromInt(200)))

	// Re-recording the same stream replaces its amount.
	filtered.RecordIncome(0, 0, "Salary", decimal.NewFromInt(3000))
	assert.True(t, filtered.Amount(0).Equal(decimal.NewFromInt(300)))
}

func TestTaxExpenditureSameNamedIncomes(t *testing.T) {
	tax := NewTaxExpenditure("Taxes", decimal.Zero, d(0.2), []string{"Salary"})
	tax.RecordIncome(1, 0, "Salary", decimal.NewFromInt(50000))
	tax.RecordIncome(1, 1, "Salary", decimal.NewFromInt(30000))

	assert.True(t, tax.RecordedIncome(1).Equal(decimal.NewFromInt(80000)))
	assert.True(t, tax.Amount(1).Equal(decimal.NewFromInt(16000)))
}

func TestExpenditureWindow(t *testing.T) {
	e := NewExpenditure("Gym", decimal.NewFromInt(100), d(0.1))
	e.SetWindow(1, domain.IntPtr(2))

	assert.True(t, e.Amount(0).IsZero())
	assert.True(t, e.Amount(1).Equal(decimal.NewFromInt(100)))
	assertNear(t, decimal.NewFromInt(110), e.Amount(2), cent)
	assert.True(t, e.Amount(3).IsZero())
}

func TestIsRentClassified(t *testing.T) {
	assert.True(t, IsRentClassified(NewHousingExpenditure("Apartment", decimal.NewFromInt(1), decimal.Zero, true)))
	assert.True(t, IsRentClassified(NewExpenditure("Garage rent", decimal.NewFromInt(1), decimal.Zero)))
	assert.False(t, IsRentClassified(NewHousingExpenditure("Property upkeep", decimal.NewFromInt(1), decimal.Zero, false)))
	assert.False(t, IsRentClassified(NewExpenditure("Groceries", decimal.NewFromInt(1), decimal.Zero)))
}
