package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/rpgo/lifeplan/internal/calculation"
	"github.com/rpgo/lifeplan/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Input formats understood by Parse.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// InputParser handles parsing of projection input files
type InputParser struct {
	// MaxYears bounds yearsToProject.
	MaxYears int
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{MaxYears: calculation.DefaultMaxYears}
}

// LoadFromFile loads a projection input from a YAML or JSON file. The format is
// chosen by extension; anything other than .json is read as YAML.
func (ip *InputParser) LoadFromFile(filename string) (*domain.ProjectionInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	format := FormatYAML
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		format = FormatJSON
	}
	return ip.Parse(data, format)
}

// Parse decodes and validates a projection input.
func (ip *InputParser) Parse(data []byte, format string) (*domain.ProjectionInput, error) {
	var input domain.ProjectionInput
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &input); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &input); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported input format %q", format)
	}

	if err := ip.ValidateInput(&input); err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}
	return &input, nil
}

// ValidateInput validates a projection input
func (ip *InputParser) ValidateInput(input *domain.ProjectionInput) error {
	if input.YearsToProject < 0 {
		return fmt.Errorf("%w: years to project cannot be negative", domain.ErrInvalidInput)
	}
	maxYears := ip.MaxYears
	if maxYears <= 0 {
		maxYears = calculation.DefaultMaxYears
	}
	if input.YearsToProject > maxYears {
		return fmt.Errorf("%w: %d years exceeds the maximum of %d", domain.ErrHorizonTooLong, input.YearsToProject, maxYears)
	}
	if input.StartAge < 0 {
		return fmt.Errorf("%w: start age cannot be negative", domain.ErrInvalidInput)
	}

	for i, a := range input.Assets {
		if a.InitialValue.IsNegative() {
			return fmt.Errorf("asset %d (%s): %w: initial value cannot be negative", i, a.Name, domain.ErrInvalidInput)
		}
	}
	for i, l := range input.Liabilities {
		if err := ip.validateLiability(l); err != nil {
			return fmt.Errorf("liability %d (%s): %w", i, l.Name, err)
		}
	}
	for i, in := range input.Incomes {
		if err := ip.validateIncome(in); err != nil {
			return fmt.Errorf("income %d (%s): %w", i, in.Name, err)
		}
	}
	for i, e := range input.Expenditures {
		if err := ip.validateExpenditure(e); err != nil {
			return fmt.Errorf("expenditure %d (%s): %w", i, e.Name, err)
		}
	}
	for i, m := range input.Milestones {
		if strings.TrimSpace(m.Type) == "" {
			return fmt.Errorf("milestone %d: %w: type is required", i, domain.ErrInvalidInput)
		}
		if m.Year < 0 {
			return fmt.Errorf("milestone %d (%s): %w", i, m.Kind(), domain.ErrNegativeYear)
		}
	}
	return nil
}

func (ip *InputParser) validateLiability(l domain.LiabilitySpec) error {
	if l.InitialBalance.IsNegative() {
		return fmt.Errorf("%w: initial balance cannot be negative", domain.ErrInvalidInput)
	}
	if l.TermYears < 0 || l.DefermentYears < 0 {
		return fmt.Errorf("%w: term and deferment cannot be negative", domain.ErrInvalidInput)
	}
	if l.InterestRate.LessThan(decimal.NewFromInt(-1)) {
		return fmt.Errorf("%w: interest rate cannot be less than -100%%", domain.ErrInvalidInput)
	}
	return nil
}

func (ip *InputParser) validateIncome(in domain.IncomeSpec) error {
	if in.AnnualAmount.IsNegative() {
		return fmt.Errorf("%w: annual amount cannot be negative", domain.ErrInvalidInput)
	}
	if in.StartYear < 0 {
		return domain.ErrNegativeYear
	}
	if in.EndYear != nil && *in.EndYear < in.StartYear {
		return fmt.Errorf("%w: end year %d before start year %d", domain.ErrInvalidInput, *in.EndYear, in.StartYear)
	}
	for year, f := range in.PartTimeSchedule {
		if year < 0 {
			return domain.ErrNegativeYear
		}
		if f.IsNegative() || f.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("%w: part-time factor for year %d must be between 0 and 1", domain.ErrInvalidInput, year)
		}
	}
	return nil
}

func (ip *InputParser) validateExpenditure(e domain.ExpenditureSpec) error {
	if e.AnnualAmount.IsNegative() {
		return fmt.Errorf("%w: annual amount cannot be negative", domain.ErrInvalidInput)
	}
	if e.StartYear < 0 {
		return domain.ErrNegativeYear
	}
	if e.EndYear != nil && *e.EndYear < e.StartYear {
		return fmt.Errorf("%w: end year %d before start year %d", domain.ErrInvalidInput, *e.EndYear, e.StartYear)
	}
	if e.ReplacementYears < 0 {
		return fmt.Errorf("%w: replacement years cannot be negative", domain.ErrInvalidInput)
	}
	if e.Category != "" {
		if _, err := domain.ParseCategory(string(e.Category)); err != nil {
			return err
		}
	}
	return nil
}

// CreateExampleInput creates an example projection input
func (ip *InputParser) CreateExampleInput() *domain.ProjectionInput {
	return &domain.ProjectionInput{
		StartAge:       25,
		YearsToProject: 30,
		Assets: []domain.AssetSpec{
			{
				Type:         domain.AssetTypeInvestment,
				Name:         "Brokerage Account",
				InitialValue: decimal.NewFromInt(15000),
				GrowthRate:   decimal.NewFromFloat(0.06),
			},
		},
		Liabilities: []domain.LiabilitySpec{
			{
				Type:           domain.LiabilityTypeStudentLoan,
				Name:           "Student Loan",
				InitialBalance: decimal.NewFromInt(28000),
				InterestRate:   decimal.NewFromFloat(0.05),
				TermYears:      10,
				DefermentYears: 1,
			},
		},
		Incomes: []domain.IncomeSpec{
			{
				Type:         domain.IncomeTypeSalary,
				Name:         "Salary",
				AnnualAmount: decimal.NewFromInt(60000),
				GrowthRate:   decimal.NewFromFloat(0.03),
			},
		},
		Expenditures: []domain.ExpenditureSpec{
			{
				Type:          domain.ExpenditureTypeHousing,
				Name:          "Apartment Rent",
				AnnualAmount:  decimal.NewFromInt(18000),
				InflationRate: decimal.NewFromFloat(0.03),
				IsRent:        true,
			},
			{
				Name:          "Groceries",
				Category:      domain.CategoryFood,
				AnnualAmount:  decimal.NewFromInt(7200),
				InflationRate: decimal.NewFromFloat(0.025),
			},
			{
				Type:     domain.ExpenditureTypeTax,
				Name:     "Income Taxes",
				TaxRate:  decimal.NewFromFloat(0.22),
				Category: domain.CategoryOther,
			},
		},
		Milestones: []domain.Milestone{
			{Type: domain.MilestoneMarriage, Year: 4, Params: map[string]any{"wedding_cost": 25000, "spouse_income": 55000}},
			{Type: domain.MilestoneHousing, Year: 7, Params: map[string]any{"value": 350000, "down_payment": 70000}},
		},
	}
}
