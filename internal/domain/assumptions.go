package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Assumptions holds the fixed constants used when milestone records omit a value
// and the rates applied by milestone effects.
type Assumptions struct {
	// Orchestrator
	ContributionRate decimal.Decimal `yaml:"contribution_rate" json:"contributionRate" env:"CONTRIBUTION_RATE" envDefault:"0.2"`

	// Marriage
	WeddingCost           decimal.Decimal `yaml:"wedding_cost" json:"weddingCost" env:"WEDDING_COST" envDefault:"30000"`
	SpouseIncomeGrowth    decimal.Decimal `yaml:"spouse_income_growth" json:"spouseIncomeGrowth" env:"SPOUSE_INCOME_GROWTH" envDefault:"0.03"`
	SpouseLiabilityDecay  decimal.Decimal `yaml:"spouse_liability_decay" json:"spouseLiabilityDecay" env:"SPOUSE_LIABILITY_DECAY" envDefault:"0.10"`
	MarriageExpenseFactor decimal.Decimal `yaml:"marriage_expense_factor" json:"marriageExpenseFactor" env:"MARRIAGE_EXPENSE_FACTOR" envDefault:"1.5"`

	// Housing
	HomeValue           decimal.Decimal `yaml:"home_value" json:"homeValue" env:"HOME_VALUE" envDefault:"300000"`
	DownPaymentFraction decimal.Decimal `yaml:"down_payment_fraction" json:"downPaymentFraction" env:"DOWN_PAYMENT_FRACTION" envDefault:"0.2"`
	HomeAppreciation    decimal.Decimal `yaml:"home_appreciation" json:"homeAppreciation" env:"HOME_APPRECIATION" envDefault:"0.03"`
	MortgageRate        decimal.Decimal `yaml:"mortgage_rate" json:"mortgageRate" env:"MORTGAGE_RATE" envDefault:"0.065"`
	MortgageTermYears   int             `yaml:"mortgage_term_years" json:"mortgageTermYears" env:"MORTGAGE_TERM_YEARS" envDefault:"30"`
	RentReduction       decimal.Decimal `yaml:"rent_reduction" json:"rentReduction" env:"RENT_REDUCTION" envDefault:"0.75"`

	// Car
	CarValue           decimal.Decimal `yaml:"car_value" json:"carValue" env:"CAR_VALUE" envDefault:"25000"`
	CarDepreciation    decimal.Decimal `yaml:"car_depreciation" json:"carDepreciation" env:"CAR_DEPRECIATION" envDefault:"0.15"`
	AutoLoanRate       decimal.Decimal `yaml:"auto_loan_rate" json:"autoLoanRate" env:"AUTO_LOAN_RATE" envDefault:"0.07"`
	AutoLoanTermYears  int             `yaml:"auto_loan_term_years" json:"autoLoanTermYears" env:"AUTO_LOAN_TERM_YEARS" envDefault:"5"`
	TransportReduction decimal.Decimal `yaml:"transport_reduction" json:"transportReduction" env:"TRANSPORT_REDUCTION" envDefault:"0.3"`

	// Children
	ChildInitialCost decimal.Decimal `yaml:"child_initial_cost" json:"childInitialCost" env:"CHILD_INITIAL_COST" envDefault:"10000"`
	ChildAnnualCost  decimal.Decimal `yaml:"child_annual_cost" json:"childAnnualCost" env:"CHILD_ANNUAL_COST" envDefault:"15000"`
	ChildCostGrowth  decimal.Decimal `yaml:"child_cost_growth" json:"childCostGrowth" env:"CHILD_COST_GROWTH" envDefault:"0.03"`

	// Education
	EducationCost          decimal.Decimal `yaml:"education_cost" json:"educationCost" env:"EDUCATION_COST" envDefault:"100000"`
	EducationYears         int             `yaml:"education_years" json:"educationYears" env:"EDUCATION_YEARS" envDefault:"4"`
	UpfrontTuitionFraction decimal.Decimal `yaml:"upfront_tuition_fraction" json:"upfrontTuitionFraction" env:"UPFRONT_TUITION_FRACTION" envDefault:"0.25"`
	GraduateIncomeFactor   decimal.Decimal `yaml:"graduate_income_factor" json:"graduateIncomeFactor" env:"GRADUATE_INCOME_FACTOR" envDefault:"1.25"`
	PartTimeStudyFactor    decimal.Decimal `yaml:"part_time_study_factor" json:"partTimeStudyFactor" env:"PART_TIME_STUDY_FACTOR" envDefault:"0.5"`

	// Military
	ServiceYears     int             `yaml:"service_years" json:"serviceYears" env:"SERVICE_YEARS" envDefault:"4"`
	MilitaryBasePay  decimal.Decimal `yaml:"military_base_pay" json:"militaryBasePay" env:"MILITARY_BASE_PAY" envDefault:"40000"`
	HousingAllowance decimal.Decimal `yaml:"housing_allowance" json:"housingAllowance" env:"HOUSING_ALLOWANCE" envDefault:"18000"`
	MilitaryPayRaise decimal.Decimal `yaml:"military_pay_raise" json:"militaryPayRaise" env:"MILITARY_PAY_RAISE" envDefault:"0.03"`
	UniformCost      decimal.Decimal `yaml:"uniform_cost" json:"uniformCost" env:"UNIFORM_COST" envDefault:"1200"`
}

// DefaultAssumptions returns the built-in constants. They match the envDefault tags.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		ContributionRate: decimal.NewFromFloat(0.2),

		WeddingCost:           decimal.NewFromInt(30000),
		SpouseIncomeGrowth:    decimal.NewFromFloat(0.03),
		SpouseLiabilityDecay:  decimal.NewFromFloat(0.10),
		MarriageExpenseFactor: decimal.NewFromFloat(1.5),

		HomeValue:           decimal.NewFromInt(300000),
		DownPaymentFraction: decimal.NewFromFloat(0.2),
		HomeAppreciation:    decimal.NewFromFloat(0.03),
		MortgageRate:        decimal.NewFromFloat(0.065),
		MortgageTermYears:   30,
		RentReduction:       decimal.NewFromFloat(0.75),

		CarValue:           decimal.NewFromInt(25000),
		CarDepreciation:    decimal.NewFromFloat(0.15),
		AutoLoanRate:       decimal.NewFromFloat(0.07),
		AutoLoanTermYears:  5,
		TransportReduction: decimal.NewFromFloat(0.3),

		ChildInitialCost: decimal.NewFromInt(10000),
		ChildAnnualCost:  decimal.NewFromInt(15000),
		ChildCostGrowth:  decimal.NewFromFloat(0.03),

		EducationCost:          decimal.NewFromInt(100000),
		EducationYears:         4,
		UpfrontTuitionFraction: decimal.NewFromFloat(0.25),
		GraduateIncomeFactor:   decimal.NewFromFloat(1.25),
		PartTimeStudyFactor:    decimal.NewFromFloat(0.5),

		ServiceYears:     4,
		MilitaryBasePay:  decimal.NewFromInt(40000),
		HousingAllowance: decimal.NewFromInt(18000),
		MilitaryPayRaise: decimal.NewFromFloat(0.03),
		UniformCost:      decimal.NewFromInt(1200),
	}
}

// Validate checks that fractions are within [0,1] and terms are positive.
func (a Assumptions) Validate() error {
	one := decimal.NewFromInt(1)
	fractions := map[string]decimal.Decimal{
		"contribution rate":        a.ContributionRate,
		"spouse liability decay":   a.SpouseLiabilityDecay,
		"down payment fraction":    a.DownPaymentFraction,
		"rent reduction":           a.RentReduction,
		"car depreciation":         a.CarDepreciation,
		"transport reduction":      a.TransportReduction,
		"upfront tuition fraction": a.UpfrontTuitionFraction,
		"part-time study factor":   a.PartTimeStudyFactor,
	}
	for name, v := range fractions {
		if v.IsNegative() || v.GreaterThan(one) {
			return fmt.Errorf("%w: %s must be between 0 and 1, got %s", ErrInvalidInput, name, v)
		}
	}
	if a.MortgageTermYears <= 0 || a.AutoLoanTermYears <= 0 {
		return fmt.Errorf("%w: loan terms must be positive", ErrInvalidInput)
	}
	if a.EducationYears <= 0 || a.ServiceYears <= 0 {
		return fmt.Errorf("%w: education and service years must be positive", ErrInvalidInput)
	}
	return nil
}
