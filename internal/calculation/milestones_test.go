package calculation

import (
	"context"
	"testing"

	"github.com/rpgo/lifeplan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func milestone(kind string, year int, params map[string]any) domain.Milestone {
	if params == nil {
		params = map[string]any{}
	}
	return domain.Milestone{Type: kind, Year: year, Params: params}
}

func salaryInput(years int, amount int64, milestones ...domain.Milestone) *domain.ProjectionInput {
	return &domain.ProjectionInput{
		YearsToProject: years,
		Incomes: []domain.IncomeSpec{
			{Type: "salary", Name: "Salary", AnnualAmount: decimal.NewFromInt(amount)},
		},
		Expenditures: []domain.ExpenditureSpec{
			{Name: "Food", AnnualAmount: decimal.NewFromInt(5000)},
		},
		Milestones: milestones,
	}
}

func TestJobMilestone(t *testing.T) {
	res := project(t, salaryInput(5, 50000, milestone("job", 3, map[string]any{"income_change": 5000})))

	assert.True(t, res.Income[2].Equal(decimal.NewFromInt(50000)))
	for year := 3; year <= 5; year++ {
		assert.True(t, res.Income[year].Equal(decimal.NewFromInt(55000)), "year %d", year)
		assert.True(t, res.CashFlow[year].Equal(decimal.NewFromInt(50000)), "year %d", year)
	}
	require.Len(t, res.Adjustments, 3)
	assert.Equal(t, "job", res.Adjustments[0].Milestone)
	assert.Equal(t, domain.SeriesIncome, res.Adjustments[0].Series)
	assertConsistent(t, res)
}

func TestEducationMilestoneWithoutWork(t *testing.T) {
	res := project(t, salaryInput(8, 50000, milestone("education", 2, map[string]any{
		"workStatus": "no",
		"duration":   2,
	})))

	assert.True(t, res.Income[1].Equal(decimal.NewFromInt(50000)))
	assert.True(t, res.Income[2].IsZero())
	assert.True(t, res.Income[3].IsZero())
	for year := 4; year <= 8; year++ {
		assert.True(t, res.Income[year].Equal(decimal.NewFromInt(62500)), "year %d: %s", year, res.Income[year])
	}

	// 25% upfront plus the remainder spread over two years.
	assert.True(t, res.Education[2].Equal(decimal.NewFromInt(62500)))
	assert.True(t, res.Education[3].Equal(decimal.NewFromInt(37500)))
	assert.True(t, res.Education[4].IsZero())
	assertConsistent(t, res)
}

func TestEducationMilestoneDefaultDuration(t *testing.T) {
	res := project(t, salaryInput(8, 40000, milestone("education", 2, map[string]any{
		"work_status": "part-time",
	})))

	for year := 2; year <= 5; year++ {
		assert.True(t, res.Income[year].Equal(decimal.NewFromInt(20000)), "year %d", year)
		assert.True(t, res.Education[year].IsPositive(), "year %d", year)
	}
	assert.True(t, res.Income[6].Equal(decimal.NewFromInt(50000)))
	assert.True(t, res.Education[6].IsZero())
}

func TestHousingMilestone(t *testing.T) {
	in := func(ms ...domain.Milestone) *domain.ProjectionInput {
		return &domain.ProjectionInput{
			YearsToProject: 10,
			Incomes:        []domain.IncomeSpec{{Name: "Pay", AnnualAmount: decimal.NewFromInt(60000)}},
			Expenditures: []domain.ExpenditureSpec{
				{Type: "housing", Name: "Apartment", AnnualAmount: decimal.NewFromInt(12000), IsRent: true},
				{Name: "Food", AnnualAmount: decimal.NewFromInt(6000)},
			},
			Milestones: ms,
		}
	}
	base := project(t, in())
	res := project(t, in(milestone("housing", 5, map[string]any{"value": 300000, "down_payment": 60000})))

	for year := 0; year < 5; year++ {
		assert.True(t, res.Assets[year].Equal(base.Assets[year]), "year %d", year)
		assert.True(t, res.Housing[year].Equal(base.Housing[year]), "year %d", year)
	}
	prevMortgage := decimal.Zero
	for year := 5; year <= 10; year++ {
		home := decimal.NewFromInt(300000).Mul(d(1.03).Pow(decimal.NewFromInt(int64(year - 5))))
		assertNear(t, home, res.Assets[year].Sub(base.Assets[year]), cent, "home value")
		assertNear(t, home, res.HomeValue[year], cent)

		mortgage := res.Liabilities[year].Sub(base.Liabilities[year])
		assert.True(t, mortgage.Equal(res.Mortgage[year]))
		if year > 5 {
			assert.True(t, mortgage.LessThan(prevMortgage), "mortgage declines in year %d", year)
		}
		prevMortgage = mortgage

		assertNear(t, base.Housing[year].Mul(d(0.25)), res.Housing[year], cent, "rent reduced")
	}
	assert.True(t, res.Mortgage[5].Equal(decimal.NewFromInt(240000)))
	assert.True(t, res.Other[5].Equal(decimal.NewFromInt(60000)), "down payment booked as a one-time expense")
	assert.True(t, res.Other[6].IsZero())
	assertConsistent(t, res)
}

func TestHousingMilestoneWithDefaultAllocation(t *testing.T) {
	in := func(ms ...domain.Milestone) *domain.ProjectionInput {
		return &domain.ProjectionInput{
			YearsToProject: 8,
			Assets: []domain.AssetSpec{
				{Type: "investment", Name: "Savings", InitialValue: decimal.NewFromInt(100000)},
			},
			Incomes: []domain.IncomeSpec{
				{Type: "salary", Name: "Salary", AnnualAmount: decimal.NewFromInt(60000), GrowthRate: d(0.03)},
			},
			Milestones: ms,
		}
	}
	base := project(t, in())
	res := project(t, in(milestone("housing", 5, map[string]any{"value": 300000, "down_payment": 60000})))

	for year := 0; year < 5; year++ {
		assert.True(t, res.Housing[year].Equal(base.Housing[year]), "year %d", year)
	}
	for year := 5; year <= 8; year++ {
		assertNear(t, base.Housing[year].Mul(d(0.25)), res.Housing[year], cent, "rent reduced")
		assert.True(t, res.HomeValue[year].IsPositive(), "year %d", year)
		assert.True(t, res.Mortgage[year].IsPositive(), "year %d", year)
	}
	assertConsistent(t, res)
}

func TestHousingMilestoneFundsDownPaymentFromSavings(t *testing.T) {
	in := func(ms ...domain.Milestone) *domain.ProjectionInput {
		return &domain.ProjectionInput{
			YearsToProject: 4,
			Assets: []domain.AssetSpec{
				{Type: "investment", Name: "Emergency fund", InitialValue: decimal.NewFromInt(1000)},
				{Type: "investment", Name: "Brokerage", InitialValue: decimal.NewFromInt(100000)},
			},
			Incomes:      []domain.IncomeSpec{{Name: "Pay", AnnualAmount: decimal.NewFromInt(30000)}},
			Expenditures: []domain.ExpenditureSpec{{Name: "Food", AnnualAmount: decimal.NewFromInt(30000)}},
			Milestones:   ms,
		}
	}
	base := project(t, in())
	res := project(t, in(milestone("home", 2, map[string]any{"value": 200000})))

	// Down payment defaults to 20% and comes out of the brokerage account.
	for year := 2; year <= 4; year++ {
		home := decimal.NewFromInt(200000).Mul(d(1.03).Pow(decimal.NewFromInt(int64(year - 2))))
		assertNear(t, home.Sub(decimal.NewFromInt(40000)), res.Assets[year].Sub(base.Assets[year]), cent)
	}
	assert.True(t, res.Other[2].Equal(decimal.NewFromInt(40000)))
}

func TestMarriageMilestone(t *testing.T) {
	in := &domain.ProjectionInput{
		YearsToProject: 14,
		Incomes:        []domain.IncomeSpec{{Name: "Pay", AnnualAmount: decimal.NewFromInt(50000)}},
		Expenditures: []domain.ExpenditureSpec{
			{Type: "housing", Name: "Rent", AnnualAmount: decimal.NewFromInt(10000)},
			{Name: "Food", AnnualAmount: decimal.NewFromInt(5000)},
		},
		Milestones: []domain.Milestone{milestone("marriage", 2, map[string]any{
			"wedding_cost":       20000,
			"spouse_income":      30000,
			"spouse_assets":      20000,
			"spouse_liabilities": 10000,
		})},
	}
	res := project(t, in)

	assert.True(t, res.Discretionary[2].Equal(decimal.NewFromInt(20000)))
	assert.True(t, res.Discretionary[3].IsZero())

	assert.True(t, res.Income[1].Equal(decimal.NewFromInt(50000)))
	assert.True(t, res.Income[2].Equal(decimal.NewFromInt(80000)))
	assertNear(t, decimal.NewFromInt(80900), res.Income[3], cent)

	assert.True(t, res.Assets[2].Equal(decimal.NewFromInt(20000)))
	assert.True(t, res.Liabilities[2].Equal(decimal.NewFromInt(10000)))
	assert.True(t, res.Liabilities[3].Equal(decimal.NewFromInt(9000)))
	assert.True(t, res.Liabilities[12].IsZero())
	assert.True(t, res.Liabilities[14].IsZero())

	assert.True(t, res.Food[2].Equal(decimal.NewFromInt(5000)), "wedding year is not scaled")
	assert.True(t, res.Food[3].Equal(decimal.NewFromInt(7500)))
	assert.True(t, res.Housing[3].Equal(decimal.NewFromInt(10000)), "housing is not scaled")
	assertConsistent(t, res)
}

func TestCarMilestone(t *testing.T) {
	res := project(t, &domain.ProjectionInput{
		YearsToProject: 8,
		Incomes:        []domain.IncomeSpec{{Name: "Pay", AnnualAmount: decimal.NewFromInt(50000)}},
		Expenditures: []domain.ExpenditureSpec{
			{Type: "transportation", Name: "Commute", AnnualAmount: decimal.NewFromInt(2000)},
		},
		Milestones: []domain.Milestone{milestone("car", 1, map[string]any{"value": 20000})},
	})

	assert.True(t, res.Transportation[0].Equal(decimal.NewFromInt(2000)))
	assert.True(t, res.Transportation[1].Equal(decimal.NewFromInt(1400)))
	assert.True(t, res.Other[1].Equal(decimal.NewFromInt(4000)))

	assert.True(t, res.CarValue[1].Equal(decimal.NewFromInt(20000)))
	assert.True(t, res.CarValue[2].Equal(decimal.NewFromInt(17000)))
	assert.True(t, res.CarLoan[1].Equal(decimal.NewFromInt(16000)))
	assert.True(t, res.CarLoan[5].IsPositive())
	assert.True(t, res.CarLoan[6].IsZero(), "loan is paid off after its term")
	assert.True(t, res.Liabilities[8].IsZero())
	assertConsistent(t, res)
}

func TestCarMilestoneReplacesScheduledPurchase(t *testing.T) {
	res := project(t, &domain.ProjectionInput{
		YearsToProject: 6,
		Incomes:        []domain.IncomeSpec{{Name: "Pay", AnnualAmount: decimal.NewFromInt(50000)}},
		Expenditures: []domain.ExpenditureSpec{{
			Type:             "transportation",
			Name:             "Commute",
			AnnualAmount:     decimal.NewFromInt(1000),
			AutoReplace:      true,
			ReplacementYears: 3,
			ReplacementCost:  decimal.NewFromInt(20000),
		}},
		Milestones: []domain.Milestone{milestone("car", 3, map[string]any{"value": 10000, "down_payment": 0})},
	})

	assert.True(t, res.Transportation[2].Equal(decimal.NewFromInt(1000)))
	assert.True(t, res.Transportation[3].Equal(decimal.NewFromInt(700)), "no scheduled replacement in the purchase year")
	assert.True(t, res.Transportation[6].Equal(decimal.NewFromInt(21000).Mul(d(0.7))))
	assert.True(t, res.Other[3].IsZero())
}

func TestChildrenMilestone(t *testing.T) {
	res := project(t, salaryInput(4, 80000, milestone("children", 1, map[string]any{"count": 2})))

	assert.True(t, res.Childcare[0].IsZero())
	assert.True(t, res.Childcare[1].Equal(decimal.NewFromInt(50000)))
	assertNear(t, decimal.NewFromInt(30900), res.Childcare[2], cent)
	assertNear(t, decimal.NewFromInt(31827), res.Childcare[3], cent)
}

func TestSameYearMilestonesKeepInputOrder(t *testing.T) {
	job := milestone("job", 3, map[string]any{"incomeChange": 10000})
	school := milestone("education", 3, map[string]any{"cost": 0, "duration": 1})

	first := project(t, salaryInput(5, 50000, job, school))
	second := project(t, salaryInput(5, 50000, school, job))

	assert.True(t, first.Income[4].Equal(decimal.NewFromInt(75000)), "%s", first.Income[4])
	assert.True(t, second.Income[4].Equal(decimal.NewFromInt(72500)), "%s", second.Income[4])
}

func TestMilestonesAreProcessedByYear(t *testing.T) {
	late := milestone("education", 4, map[string]any{"cost": 0, "duration": 1})
	early := milestone("job", 2, map[string]any{"incomeChange": 10000})

	res := project(t, salaryInput(6, 50000, late, early))
	// The job change happens first, so the graduate premium applies to it too.
	assert.True(t, res.Income[5].Equal(decimal.NewFromInt(75000)), "%s", res.Income[5])
	require.NotEmpty(t, res.Adjustments)
	assert.Equal(t, "job", res.Adjustments[0].Milestone)
	assert.Equal(t, 1, res.Adjustments[0].Index)
	assert.Len(t, res.Milestones, 2)
	assert.Equal(t, "education", res.Milestones[0].Type, "milestones are echoed in input order")
}

func TestUnknownAndOutOfRangeMilestones(t *testing.T) {
	base := project(t, salaryInput(3, 50000))
	res := project(t, salaryInput(3, 50000,
		milestone("lottery", 1, map[string]any{"amount": 1e6}),
		milestone("job", 9, map[string]any{"incomeChange": 1000}),
	))

	assert.Empty(t, res.Adjustments)
	for year := range res.Income {
		assert.True(t, res.Income[year].Equal(base.Income[year]), "year %d", year)
	}
	assert.Len(t, res.Milestones, 2)
}

func TestMilestoneWithBadParameters(t *testing.T) {
	_, err := NewEngine(domain.DefaultAssumptions()).Project(context.Background(),
		salaryInput(3, 50000, milestone("children", 1, map[string]any{"count": "many"})))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFundFromSavingsUsesFirstSufficientInvestment(t *testing.T) {
	small := NewInvestmentAsset("Small", decimal.NewFromInt(100), decimal.Zero, nil)
	big := NewInvestmentAsset("Big", decimal.NewFromInt(10000), d(0.1), nil)
	scope := &MilestoneScope{
		Result:      domain.NewProjectionResult(30, 3),
		Portfolio:   &Portfolio{Assets: []Asset{NewAsset("Cash", decimal.NewFromInt(1e6)), small, big}},
		Assumptions: domain.DefaultAssumptions(),
	}
	m := milestone("car", 1, nil)

	adj := scope.FundFromSavings(m, 1, decimal.NewFromInt(1000))
	require.Len(t, adj, 3)
	assert.True(t, small.Value(1).Equal(decimal.NewFromInt(100)))
	assert.True(t, big.Value(1).Equal(decimal.NewFromInt(10000)))
	assert.True(t, adj[0].Delta.Equal(decimal.NewFromInt(-1000)))
	assert.True(t, adj[2].Delta.Equal(decimal.NewFromInt(-1210)), "the draw compounds forward")
	assert.Equal(t, domain.SeriesAssets, adj[0].Series)

	assert.Nil(t, scope.FundFromSavings(m, 1, decimal.NewFromInt(1e9)), "no partial draws")
	assert.Nil(t, scope.FundFromSavings(m, 1, decimal.Zero))
}
