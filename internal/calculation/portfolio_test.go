package calculation

import (
	"errors"
	"testing"

	"github.com/rpgo/lifeplan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPortfolioVariants(t *testing.T) {
	in := &domain.ProjectionInput{
		YearsToProject: 5,
		Assets: []domain.AssetSpec{
			{Type: "investment", Name: "401k", InitialValue: decimal.NewFromInt(1000)},
			{Type: "Depreciable", Name: "Car", InitialValue: decimal.NewFromInt(1000)},
			{Type: "painting", Name: "Art", InitialValue: decimal.NewFromInt(1000)},
		},
		Liabilities: []domain.LiabilitySpec{
			{Type: "mortgage", Name: "Home loan", InitialBalance: decimal.NewFromInt(1000), TermYears: 30},
			{Type: "student-loan", Name: "Stafford", InitialBalance: decimal.NewFromInt(1000), TermYears: 10},
			{Type: "AUTO_LOAN", Name: "Car note", InitialBalance: decimal.NewFromInt(1000), TermYears: 5},
			{Name: "IOU", InitialBalance: decimal.NewFromInt(1000), TermYears: 2},
		},
		Incomes: []domain.IncomeSpec{
			{Type: "salary", Name: "Job", AnnualAmount: decimal.NewFromInt(1000)},
			{Type: "spouse", Name: "Partner", AnnualAmount: decimal.NewFromInt(1000)},
			{Name: "Side gig", AnnualAmount: decimal.NewFromInt(1000)},
		},
		Expenditures: []domain.ExpenditureSpec{
			{Type: "housing", Name: "Rent", AnnualAmount: decimal.NewFromInt(100), IsRent: true},
			{Type: "transportation", Name: "Bus", AnnualAmount: decimal.NewFromInt(100)},
			{Type: "living", Name: "Living", AnnualAmount: decimal.NewFromInt(100)},
			{Type: "tax", Name: "Taxes", TaxRate: d(0.2)},
			{Name: "Daycare", Category: domain.CategoryChildcare, AnnualAmount: decimal.NewFromInt(100)},
			{Name: "Summer camp", AnnualAmount: decimal.NewFromInt(100), StartYear: 2, EndYear: domain.IntPtr(3)},
		},
	}

	p, err := BuildPortfolio(in)
	require.NoError(t, err)

	require.Len(t, p.Assets, 3)
	assert.IsType(t, &InvestmentAsset{}, p.Assets[0])
	assert.IsType(t, &DepreciableAsset{}, p.Assets[1])
	assert.IsType(t, &BaseAsset{}, p.Assets[2])

	require.Len(t, p.Liabilities, 4)
	assert.Equal(t, LiabilityMortgage, p.Liabilities[0].Kind())
	assert.Equal(t, LiabilityStudentLoan, p.Liabilities[1].Kind())
	assert.Equal(t, LiabilityAutoLoan, p.Liabilities[2].Kind())
	assert.Equal(t, LiabilityGeneric, p.Liabilities[3].Kind())

	mortgage := p.Liabilities[0].(*MortgageLiability)
	assert.True(t, mortgage.Escrow.IsPositive(), "default escrow rates apply")

	require.Len(t, p.Incomes, 3)
	assert.Equal(t, IncomeSalary, p.Incomes[0].Kind())
	assert.Equal(t, IncomeSpouse, p.Incomes[1].Kind())
	assert.Equal(t, IncomeGeneric, p.Incomes[2].Kind())

	require.Len(t, p.Expenditures, 6)
	assert.Equal(t, ExpenditureHousing, p.Expenditures[0].Kind())
	assert.Equal(t, ExpenditureTransportation, p.Expenditures[1].Kind())
	assert.Equal(t, ExpenditureLiving, p.Expenditures[2].Kind())
	assert.Equal(t, ExpenditureTax, p.Expenditures[3].Kind())
	assert.Equal(t, domain.CategoryChildcare, p.Expenditures[4].Category())
	assert.True(t, p.Expenditures[5].Amount(1).IsZero())
	assert.True(t, p.Expenditures[5].Amount(2).Equal(decimal.NewFromInt(100)))
	assert.True(t, p.Expenditures[5].Amount(4).IsZero())
}

func TestBuildPortfolioRejectsNegativeTerm(t *testing.T) {
	_, err := BuildPortfolio(&domain.ProjectionInput{
		Liabilities: []domain.LiabilitySpec{{Name: "Bad", TermYears: -1}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestDefaultExpendituresFollowAllocationTable(t *testing.T) {
	p, err := BuildPortfolio(&domain.ProjectionInput{
		Incomes: []domain.IncomeSpec{
			{Type: "salary", Name: "Salary", AnnualAmount: decimal.NewFromInt(60000)},
		},
	})
	require.NoError(t, err)
	require.Len(t, p.Expenditures, len(defaultAllocations))

	want := map[domain.Category]decimal.Decimal{
		domain.CategoryHousing:        decimal.NewFromInt(18000),
		domain.CategoryTransportation: decimal.NewFromInt(9000),
		domain.CategoryFood:           decimal.NewFromInt(7200),
		domain.CategoryHealthcare:     decimal.NewFromInt(4800),
		domain.CategoryDiscretionary:  decimal.NewFromInt(3000),
	}
	for _, e := range p.Expenditures {
		if e.Kind() == ExpenditureTax {
			continue
		}
		assert.True(t, want[e.Category()].Equal(e.Amount(0)), "%s: %s", e.Name(), e.Amount(0))
		assert.Equal(t, e.Kind() == ExpenditureHousing, IsRentClassified(e), "%s", e.Name())
	}
	assert.True(t, DefaultAllocationShare().Equal(d(0.95)))
}

func TestSynthesizedExpendituresKeepDefaultAllocation(t *testing.T) {
	p, err := BuildPortfolio(&domain.ProjectionInput{
		Incomes: []domain.IncomeSpec{{Name: "Pay", AnnualAmount: decimal.NewFromInt(1000)}},
		Expenditures: []domain.ExpenditureSpec{
			{Name: "Uniforms", AnnualAmount: decimal.NewFromInt(10), Synthesized: true},
		},
	})
	require.NoError(t, err)
	assert.Len(t, p.Expenditures, len(defaultAllocations)+1)
}
