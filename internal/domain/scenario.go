package domain

import (
	"github.com/shopspring/decimal"
)

// Entity type discriminators accepted in scenario files. Unknown or empty values
// fall back to the generic variant of each family.
const (
	AssetTypeDepreciable = "depreciable"
	AssetTypeInvestment  = "investment"

	LiabilityTypeMortgage    = "mortgage"
	LiabilityTypeStudentLoan = "student_loan"
	LiabilityTypeAutoLoan    = "auto_loan"

	IncomeTypeSalary = "salary"
	IncomeTypeSpouse = "spouse"

	ExpenditureTypeHousing        = "housing"
	ExpenditureTypeTransportation = "transportation"
	ExpenditureTypeLiving         = "living"
	ExpenditureTypeTax            = "tax"
)

// ProjectionInput is the complete description of one projection run.
type ProjectionInput struct {
	StartAge       int               `yaml:"start_age" json:"startAge"`
	YearsToProject int               `yaml:"years_to_project" json:"yearsToProject"`
	Assets         []AssetSpec       `yaml:"assets,omitempty" json:"assets,omitempty"`
	Liabilities    []LiabilitySpec   `yaml:"liabilities,omitempty" json:"liabilities,omitempty"`
	Incomes        []IncomeSpec      `yaml:"incomes,omitempty" json:"incomes,omitempty"`
	Expenditures   []ExpenditureSpec `yaml:"expenditures,omitempty" json:"expenditures,omitempty"`
	Milestones     []Milestone       `yaml:"milestones,omitempty" json:"milestones,omitempty"`
}

// AssetSpec describes an asset. GrowthRate applies to investments,
// DepreciationRate to depreciable assets.
type AssetSpec struct {
	Type             string                  `yaml:"type" json:"type"`
	Name             string                  `yaml:"name" json:"name"`
	InitialValue     decimal.Decimal         `yaml:"initial_value" json:"initialValue"`
	GrowthRate       decimal.Decimal         `yaml:"growth_rate,omitempty" json:"growthRate,omitempty"`
	DepreciationRate decimal.Decimal         `yaml:"depreciation_rate,omitempty" json:"depreciationRate,omitempty"`
	Contributions    map[int]decimal.Decimal `yaml:"contributions,omitempty" json:"contributions,omitempty"`
}

// LiabilitySpec describes a debt.
type LiabilitySpec struct {
	Type           string          `yaml:"type" json:"type"`
	Name           string          `yaml:"name" json:"name"`
	InitialBalance decimal.Decimal `yaml:"initial_balance" json:"initialBalance"`
	InterestRate   decimal.Decimal `yaml:"interest_rate" json:"interestRate"`
	TermYears      int             `yaml:"term_years" json:"termYears"`

	// Mortgage only.
	PropertyTaxRate decimal.Decimal `yaml:"property_tax_rate,omitempty" json:"propertyTaxRate,omitempty"`
	InsuranceRate   decimal.Decimal `yaml:"insurance_rate,omitempty" json:"insuranceRate,omitempty"`

	// Student loans only.
	DefermentYears int  `yaml:"deferment_years,omitempty" json:"defermentYears,omitempty"`
	Subsidized     bool `yaml:"subsidized,omitempty" json:"subsidized,omitempty"`
}

// IncomeSpec describes an income source. EndYear is inclusive; nil means the
// income runs to the end of the projection.
type IncomeSpec struct {
	Type         string          `yaml:"type" json:"type"`
	Name         string          `yaml:"name" json:"name"`
	AnnualAmount decimal.Decimal `yaml:"annual_amount" json:"annualAmount"`
	GrowthRate   decimal.Decimal `yaml:"growth_rate,omitempty" json:"growthRate,omitempty"`
	StartYear    int             `yaml:"start_year,omitempty" json:"startYear,omitempty"`
	EndYear      *int            `yaml:"end_year,omitempty" json:"endYear,omitempty"`

	BonusPercent     decimal.Decimal         `yaml:"bonus_percent,omitempty" json:"bonusPercent,omitempty"`
	PartTimeSchedule map[int]decimal.Decimal `yaml:"part_time_schedule,omitempty" json:"partTimeSchedule,omitempty"`
}

// ExpenditureSpec describes a recurring expense. Category is optional; when empty
// the category is derived from the type and name.
type ExpenditureSpec struct {
	Type          string          `yaml:"type" json:"type"`
	Name          string          `yaml:"name" json:"name"`
	Category      Category        `yaml:"category,omitempty" json:"category,omitempty"`
	AnnualAmount  decimal.Decimal `yaml:"annual_amount" json:"annualAmount"`
	InflationRate decimal.Decimal `yaml:"inflation_rate,omitempty" json:"inflationRate,omitempty"`
	StartYear     int             `yaml:"start_year,omitempty" json:"startYear,omitempty"`
	EndYear       *int            `yaml:"end_year,omitempty" json:"endYear,omitempty"`

	// Housing.
	IsRent bool `yaml:"is_rent,omitempty" json:"isRent,omitempty"`

	// Transportation.
	AutoReplace      bool            `yaml:"auto_replace,omitempty" json:"autoReplace,omitempty"`
	ReplacementYears int             `yaml:"replacement_years,omitempty" json:"replacementYears,omitempty"`
	ReplacementCost  decimal.Decimal `yaml:"replacement_cost,omitempty" json:"replacementCost,omitempty"`
	Purchases        map[int]decimal.Decimal `yaml:"purchases,omitempty" json:"purchases,omitempty"`

	// Living.
	LifestyleFactor decimal.Decimal         `yaml:"lifestyle_factor,omitempty" json:"lifestyleFactor,omitempty"`
	ChangeFactors   map[int]decimal.Decimal `yaml:"change_factors,omitempty" json:"changeFactors,omitempty"`

	// Tax.
	TaxRate       decimal.Decimal `yaml:"tax_rate,omitempty" json:"taxRate,omitempty"`
	IncomeSources []string        `yaml:"income_sources,omitempty" json:"incomeSources,omitempty"`

	// Synthesized is set on records added by path construction rather than
	// supplied by the caller. It does not suppress the default allocation.
	Synthesized bool `yaml:"-" json:"-"`
}

// IntPtr is a convenience for optional year fields.
func IntPtr(v int) *int { return &v }
