package domain

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Projection series are reported as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Series names a per-year array of the projection result.
type Series string

const (
	SeriesIncome      Series = "income"
	SeriesExpenses    Series = "expenses"
	SeriesAssets      Series = "assets"
	SeriesLiabilities Series = "liabilities"
	SeriesCashFlow    Series = "cashFlow"
	SeriesNetWorth    Series = "netWorth"
	SeriesHomeValue   Series = "homeValue"
	SeriesCarValue    Series = "carValue"
	SeriesMortgage    Series = "mortgage"
	SeriesCarLoan     Series = "carLoan"
	SeriesStudentLoan Series = "studentLoan"
	// SeriesCategory addresses the category array named by Adjustment.Category.
	SeriesCategory Series = "category"
)

// Adjustment is one recorded milestone effect: Delta added to a series at Year.
type Adjustment struct {
	Milestone string          `json:"milestone" yaml:"milestone"`
	Index     int             `json:"index" yaml:"index"`
	Series    Series          `json:"series" yaml:"series"`
	Category  Category        `json:"category,omitempty" yaml:"category,omitempty"`
	Year      int             `json:"year" yaml:"year"`
	Delta     decimal.Decimal `json:"delta" yaml:"delta"`
}

// ProjectionResult holds every per-year array of a run, indexed 0..YearsToProject.
type ProjectionResult struct {
	RunID string `json:"runId,omitempty" yaml:"run_id,omitempty"`

	Ages        []int             `json:"ages" yaml:"ages"`
	NetWorth    []decimal.Decimal `json:"netWorth" yaml:"net_worth"`
	Income      []decimal.Decimal `json:"income" yaml:"income"`
	Expenses    []decimal.Decimal `json:"expenses" yaml:"expenses"`
	Assets      []decimal.Decimal `json:"assets" yaml:"assets"`
	Liabilities []decimal.Decimal `json:"liabilities" yaml:"liabilities"`
	CashFlow    []decimal.Decimal `json:"cashFlow" yaml:"cash_flow"`

	HomeValue   []decimal.Decimal `json:"homeValue" yaml:"home_value"`
	CarValue    []decimal.Decimal `json:"carValue" yaml:"car_value"`
	Mortgage    []decimal.Decimal `json:"mortgage" yaml:"mortgage"`
	CarLoan     []decimal.Decimal `json:"carLoan" yaml:"car_loan"`
	StudentLoan []decimal.Decimal `json:"studentLoan" yaml:"student_loan"`

	Housing           []decimal.Decimal `json:"housing" yaml:"housing"`
	Transportation    []decimal.Decimal `json:"transportation" yaml:"transportation"`
	Food              []decimal.Decimal `json:"food" yaml:"food"`
	Healthcare        []decimal.Decimal `json:"healthcare" yaml:"healthcare"`
	PersonalInsurance []decimal.Decimal `json:"personalInsurance" yaml:"personal_insurance"`
	Apparel           []decimal.Decimal `json:"apparel" yaml:"apparel"`
	Services          []decimal.Decimal `json:"services" yaml:"services"`
	Entertainment     []decimal.Decimal `json:"entertainment" yaml:"entertainment"`
	Other             []decimal.Decimal `json:"other" yaml:"other"`
	Education         []decimal.Decimal `json:"education" yaml:"education"`
	Childcare         []decimal.Decimal `json:"childcare" yaml:"childcare"`
	Debt              []decimal.Decimal `json:"debt" yaml:"debt"`
	Discretionary     []decimal.Decimal `json:"discretionary" yaml:"discretionary"`

	Milestones  []Milestone  `json:"milestones" yaml:"milestones"`
	Adjustments []Adjustment `json:"adjustments,omitempty" yaml:"adjustments,omitempty"`
}

// NewProjectionResult allocates zeroed arrays for years 0..years.
func NewProjectionResult(startAge, years int) *ProjectionResult {
	n := years + 1
	zeros := func() []decimal.Decimal {
		s := make([]decimal.Decimal, n)
		for i := range s {
			s[i] = decimal.Zero
		}
		return s
	}
	r := &ProjectionResult{
		Ages:              make([]int, n),
		NetWorth:          zeros(),
		Income:            zeros(),
		Expenses:          zeros(),
		Assets:            zeros(),
		Liabilities:       zeros(),
		CashFlow:          zeros(),
		HomeValue:         zeros(),
		CarValue:          zeros(),
		Mortgage:          zeros(),
		CarLoan:           zeros(),
		StudentLoan:       zeros(),
		Housing:           zeros(),
		Transportation:    zeros(),
		Food:              zeros(),
		Healthcare:        zeros(),
		PersonalInsurance: zeros(),
		Apparel:           zeros(),
		Services:          zeros(),
		Entertainment:     zeros(),
		Other:             zeros(),
		Education:         zeros(),
		Childcare:         zeros(),
		Debt:              zeros(),
		Discretionary:     zeros(),
		Milestones:        []Milestone{},
	}
	for i := range r.Ages {
		r.Ages[i] = startAge + i
	}
	return r
}

// Years returns the number of projected years (the last valid index).
func (r *ProjectionResult) Years() int {
	return len(r.Ages) - 1
}

// CategorySeries returns the array backing a category.
func (r *ProjectionResult) CategorySeries(c Category) []decimal.Decimal {
	switch c {
	case CategoryHousing:
		return r.Housing
	case CategoryTransportation:
		return r.Transportation
	case CategoryFood:
		return r.Food
	case CategoryHealthcare:
		return r.Healthcare
	case CategoryPersonalInsurance:
		return r.PersonalInsurance
	case CategoryApparel:
		return r.Apparel
	case CategoryServices:
		return r.Services
	case CategoryEntertainment:
		return r.Entertainment
	case CategoryEducation:
		return r.Education
	case CategoryChildcare:
		return r.Childcare
	case CategoryDebt:
		return r.Debt
	case CategoryDiscretionary:
		return r.Discretionary
	default:
		return r.Other
	}
}

// SeriesValues returns the array backing a non-category series, or nil.
func (r *ProjectionResult) SeriesValues(s Series) []decimal.Decimal {
	switch s {
	case SeriesIncome:
		return r.Income
	case SeriesExpenses:
		return r.Expenses
	case SeriesAssets:
		return r.Assets
	case SeriesLiabilities:
		return r.Liabilities
	case SeriesCashFlow:
		return r.CashFlow
	case SeriesNetWorth:
		return r.NetWorth
	case SeriesHomeValue:
		return r.HomeValue
	case SeriesCarValue:
		return r.CarValue
	case SeriesMortgage:
		return r.Mortgage
	case SeriesCarLoan:
		return r.CarLoan
	case SeriesStudentLoan:
		return r.StudentLoan
	default:
		return nil
	}
}

// MoneyPlaces is the precision results are reported at.
const MoneyPlaces = 2

// Rounded returns a copy of r with every series and adjustment delta rounded
// to places decimal digits. r is not modified.
func (r *ProjectionResult) Rounded(places int32) *ProjectionResult {
	out := *r
	round := func(s []decimal.Decimal) []decimal.Decimal {
		if s == nil {
			return nil
		}
		c := make([]decimal.Decimal, len(s))
		for i, v := range s {
			c[i] = v.Round(places)
		}
		return c
	}
	for _, p := range []*[]decimal.Decimal{
		&out.NetWorth, &out.Income, &out.Expenses, &out.Assets, &out.Liabilities, &out.CashFlow,
		&out.HomeValue, &out.CarValue, &out.Mortgage, &out.CarLoan, &out.StudentLoan,
		&out.Housing, &out.Transportation, &out.Food, &out.Healthcare, &out.PersonalInsurance,
		&out.Apparel, &out.Services, &out.Entertainment, &out.Other, &out.Education,
		&out.Childcare, &out.Debt, &out.Discretionary,
	} {
		*p = round(*p)
	}
	out.Ages = append([]int(nil), r.Ages...)
	out.Milestones = append([]Milestone{}, r.Milestones...)
	if r.Adjustments != nil {
		out.Adjustments = make([]Adjustment, len(r.Adjustments))
		for i, a := range r.Adjustments {
			a.Delta = a.Delta.Round(places)
			out.Adjustments[i] = a
		}
	}
	return &out
}
