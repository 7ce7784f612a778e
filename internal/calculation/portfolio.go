package calculation

import (
	"fmt"
	"strings"

	"github.com/rpgo/lifeplan/internal/domain"
	"github.com/shopspring/decimal"
)

// Mortgage escrow rates used when a mortgage record specifies neither.
var (
	DefaultPropertyTaxRate = decimal.NewFromFloat(0.01)
	DefaultInsuranceRate   = decimal.NewFromFloat(0.0035)
)

// DefaultExpenseInflation applies to auto-generated expenditures.
var DefaultExpenseInflation = decimal.NewFromFloat(0.025)

// allocation is one row of the default spending table, as a share of year-0 income.
type allocation struct {
	name     string
	kind     ExpenditureKind
	category domain.Category
	share    decimal.Decimal
}

// defaultAllocations is used when a run supplies no expenditures. Taxes are a
// Tax expenditure at the given rate; the rest inflate from their year-0 share.
var defaultAllocations = []allocation{
	{"Housing", ExpenditureHousing, domain.CategoryHousing, decimal.NewFromFloat(0.30)},
	{"Transportation", ExpenditureTransportation, domain.CategoryTransportation, decimal.NewFromFloat(0.15)},
	{"Food", ExpenditureGeneric, domain.CategoryFood, decimal.NewFromFloat(0.12)},
	{"Healthcare", ExpenditureGeneric, domain.CategoryHealthcare, decimal.NewFromFloat(0.08)},
	{"Discretionary", ExpenditureGeneric, domain.CategoryDiscretionary, decimal.NewFromFloat(0.05)},
	{"Taxes", ExpenditureTax, domain.CategoryOther, decimal.NewFromFloat(0.25)},
}

// DefaultAllocationShare is the sum of the default spending table.
func DefaultAllocationShare() decimal.Decimal {
	total := decimal.Zero
	for _, a := range defaultAllocations {
		total = total.Add(a.share)
	}
	return total
}

// Portfolio is the set of entities a run operates on. A fresh portfolio is built
// for every run.
type Portfolio struct {
	Assets       []Asset
	Liabilities  []Liability
	Incomes      []Income
	Expenditures []Expenditure
}

// BuildPortfolio constructs entities from the input records. Unknown type
// discriminators fall back to the generic variant. When the caller supplied no
// expenditures the default allocation is generated from year-0 income.
func BuildPortfolio(in *domain.ProjectionInput) (*Portfolio, error) {
	p := &Portfolio{}
	for _, spec := range in.Assets {
		p.Assets = append(p.Assets, newAssetFromSpec(spec))
	}
	for i, spec := range in.Liabilities {
		if spec.TermYears < 0 || spec.DefermentYears < 0 {
			return nil, fmt.Errorf("liability %d (%s): %w: negative term", i, spec.Name, domain.ErrInvalidInput)
		}
		p.Liabilities = append(p.Liabilities, newLiabilityFromSpec(spec))
	}
	for _, spec := range in.Incomes {
		p.Incomes = append(p.Incomes, newIncomeFromSpec(spec))
	}
	supplied := false
	for _, spec := range in.Expenditures {
		supplied = supplied || !spec.Synthesized
		p.Expenditures = append(p.Expenditures, newExpenditureFromSpec(spec))
	}
	if !supplied {
		p.Expenditures = append(DefaultExpenditures(p.Incomes), p.Expenditures...)
	}
	return p, nil
}

// DefaultExpenditures allocates year-0 income across the default spending table.
func DefaultExpenditures(incomes []Income) []Expenditure {
	total := decimal.Zero
	for _, in := range incomes {
		total = total.Add(in.Amount(0))
	}
	out := make([]Expenditure, 0, len(defaultAllocations))
	for _, a := range defaultAllocations {
		var e Expenditure
		switch a.kind {
		case ExpenditureHousing:
			// A household without a stated budget is assumed to rent.
			e = NewHousingExpenditure(a.name, total.Mul(a.share), DefaultExpenseInflation, true)
		case ExpenditureTransportation:
			e = NewTransportationExpenditure(a.name, total.Mul(a.share), DefaultExpenseInflation, false, 0, decimal.Zero)
		case ExpenditureTax:
			e = NewTaxExpenditure(a.name, decimal.Zero, a.share, nil)
		default:
			e = NewExpenditure(a.name, total.Mul(a.share), DefaultExpenseInflation)
		}
		tag(e, a.category)
		out = append(out, e)
	}
	return out
}

func normalizeType(t string) string {
	t = strings.ToLower(strings.TrimSpace(t))
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(t)
}

func newAssetFromSpec(spec domain.AssetSpec) Asset {
	switch normalizeType(spec.Type) {
	case typeKey(domain.AssetTypeDepreciable):
		return NewDepreciableAsset(spec.Name, spec.InitialValue, spec.DepreciationRate)
	case typeKey(domain.AssetTypeInvestment):
		return NewInvestmentAsset(spec.Name, spec.InitialValue, spec.GrowthRate, spec.Contributions)
	default:
		return NewAsset(spec.Name, spec.InitialValue)
	}
}

func newLiabilityFromSpec(spec domain.LiabilitySpec) Liability {
	switch normalizeType(spec.Type) {
	case typeKey(domain.LiabilityTypeMortgage):
		tax, ins := spec.PropertyTaxRate, spec.InsuranceRate
		if tax.IsZero() && ins.IsZero() {
			tax, ins = DefaultPropertyTaxRate, DefaultInsuranceRate
		}
		return NewMortgage(spec.Name, spec.InitialBalance, spec.InterestRate, spec.TermYears, tax, ins)
	case typeKey(domain.LiabilityTypeStudentLoan):
		return NewStudentLoan(spec.Name, spec.InitialBalance, spec.InterestRate, spec.TermYears, spec.DefermentYears, spec.Subsidized)
	case typeKey(domain.LiabilityTypeAutoLoan):
		return NewAutoLoan(spec.Name, spec.InitialBalance, spec.InterestRate, spec.TermYears)
	default:
		return NewLiability(spec.Name, spec.InitialBalance, spec.InterestRate, spec.TermYears)
	}
}

func newIncomeFromSpec(spec domain.IncomeSpec) Income {
	switch normalizeType(spec.Type) {
	case typeKey(domain.IncomeTypeSalary):
		return NewSalaryIncome(spec.Name, spec.AnnualAmount, spec.GrowthRate, spec.BonusPercent, spec.StartYear, spec.EndYear)
	case typeKey(domain.IncomeTypeSpouse):
		return NewSpouseIncome(spec.Name, spec.AnnualAmount, spec.GrowthRate, spec.StartYear, spec.EndYear, spec.PartTimeSchedule)
	default:
		return NewIncome(spec.Name, spec.AnnualAmount, spec.GrowthRate, spec.StartYear, spec.EndYear)
	}
}

func newExpenditureFromSpec(spec domain.ExpenditureSpec) Expenditure {
	var e Expenditure
	switch normalizeType(spec.Type) {
	case typeKey(domain.ExpenditureTypeHousing):
		e = NewHousingExpenditure(spec.Name, spec.AnnualAmount, spec.InflationRate, spec.IsRent)
	case typeKey(domain.ExpenditureTypeTransportation):
		t := NewTransportationExpenditure(spec.Name, spec.AnnualAmount, spec.InflationRate, spec.AutoReplace, spec.ReplacementYears, spec.ReplacementCost)
		for y, amt := range spec.Purchases {
			t.RecordPurchase(y, amt)
		}
		e = t
	case typeKey(domain.ExpenditureTypeLiving):
		e = NewLivingExpenditure(spec.Name, spec.AnnualAmount, spec.InflationRate, spec.LifestyleFactor, spec.ChangeFactors)
	case typeKey(domain.ExpenditureTypeTax):
		e = NewTaxExpenditure(spec.Name, spec.AnnualAmount, spec.TaxRate, spec.IncomeSources)
	default:
		e = NewExpenditure(spec.Name, spec.AnnualAmount, spec.InflationRate)
	}
	if spec.StartYear != 0 || spec.EndYear != nil {
		window(e).SetWindow(spec.StartYear, spec.EndYear)
	}
	if spec.Category != "" {
		if c, err := domain.ParseCategory(string(spec.Category)); err == nil {
			tag(e, c)
		}
	}
	return e
}

// typeKey normalizes a type discriminator for comparison.
func typeKey(t string) string { return normalizeType(t) }

// window returns the base expenditure behind any variant.
func window(e Expenditure) *BaseExpenditure {
	switch v := e.(type) {
	case *BaseExpenditure:
		return v
	case *HousingExpenditure:
		return v.BaseExpenditure
	case *TransportationExpenditure:
		return v.BaseExpenditure
	case *LivingExpenditure:
		return v.BaseExpenditure
	case *TaxExpenditure:
		return v.BaseExpenditure
	default:
		return nil
	}
}

func tag(e Expenditure, c domain.Category) {
	if b := window(e); b != nil {
		b.SetCategory(c)
	}
}
