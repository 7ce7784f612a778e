package calculation

import (
	"github.com/rpgo/lifeplan/internal/domain"
	"github.com/shopspring/decimal"
)

type militaryParams struct {
	ServiceYears     *int             `json:"serviceyears"`
	BasePay          *decimal.Decimal `json:"basepay"`
	HousingAllowance *decimal.Decimal `json:"housingallowance"`
	GIBill           *bool            `json:"gibill"`
}

// BuildMilitaryPath expands every military milestone into the entities that
// model the service period and returns the rewritten input. The caller's input
// is left untouched.
//
// For a service window [year, year+serviceYears-1]:
//   - civilian incomes are split around the window;
//   - military base pay and the housing allowance cover the window;
//   - uniform costs are booked as apparel during the window;
//   - student loan deferment is extended by the service length;
//   - with the GI Bill, education milestones after separation cost nothing.
func BuildMilitaryPath(in *domain.ProjectionInput, a domain.Assumptions) (*domain.ProjectionInput, error) {
	out := cloneInput(in)
	for i, m := range in.Milestones {
		if m.Kind() != domain.MilestoneMilitary {
			continue
		}
		var p militaryParams
		if err := decodeParams(m, &p); err != nil {
			return nil, err
		}
		service := intOr(p.ServiceYears, a.ServiceYears)
		if service <= 0 {
			continue
		}
		start, end := m.Year, m.Year+service-1
		out.Incomes = splitIncomes(out.Incomes, start, end)
		out.Incomes = append(out.Incomes,
			domain.IncomeSpec{
				Type:         domain.IncomeTypeSalary,
				Name:         "Military Base Pay",
				AnnualAmount: decimalOr(p.BasePay, a.MilitaryBasePay),
				GrowthRate:   a.MilitaryPayRaise,
				StartYear:    start,
				EndYear:      domain.IntPtr(end),
			},
			domain.IncomeSpec{
				Name:         "Basic Allowance for Housing",
				AnnualAmount: decimalOr(p.HousingAllowance, a.HousingAllowance),
				GrowthRate:   a.MilitaryPayRaise,
				StartYear:    start,
				EndYear:      domain.IntPtr(end),
			},
		)
		out.Expenditures = append(out.Expenditures, domain.ExpenditureSpec{
			Name:         "Uniform and Service Costs",
			Category:     domain.CategoryApparel,
			AnnualAmount: a.UniformCost,
			StartYear:    start,
			EndYear:      domain.IntPtr(end),
			Synthesized:  true,
		})
		for j := range out.Liabilities {
			if normalizeType(out.Liabilities[j].Type) == typeKey(domain.LiabilityTypeStudentLoan) {
				out.Liabilities[j].DefermentYears += service
			}
		}
		if p.GIBill == nil || *p.GIBill {
			for j := range out.Milestones {
				if j == i || out.Milestones[j].Kind() != domain.MilestoneEducation || out.Milestones[j].Year <= end {
					continue
				}
				out.Milestones[j] = withParam(out.Milestones[j], "cost", 0)
			}
		}
	}
	return out, nil
}

// splitIncomes ends every income overlapping [start, end] the year before
// service and resumes it at its opening amount the year after.
func splitIncomes(incomes []domain.IncomeSpec, start, end int) []domain.IncomeSpec {
	out := make([]domain.IncomeSpec, 0, len(incomes)+1)
	for _, inc := range incomes {
		last := -1
		if inc.EndYear != nil {
			last = *inc.EndYear
		}
		overlaps := inc.StartYear <= end && (inc.EndYear == nil || last >= start)
		if !overlaps {
			out = append(out, inc)
			continue
		}
		if inc.StartYear < start {
			pre := inc
			pre.EndYear = domain.IntPtr(start - 1)
			out = append(out, pre)
		}
		if inc.EndYear == nil || last > end {
			post := inc
			post.StartYear = end + 1
			out = append(out, post)
		}
	}
	return out
}

func withParam(m domain.Milestone, key string, value any) domain.Milestone {
	params := make(map[string]any, len(m.Params)+1)
	for k, v := range m.Params {
		if normalizeKey(k) != normalizeKey(key) {
			params[k] = v
		}
	}
	params[key] = value
	m.Params = params
	return m
}

func normalizeKey(k string) string {
	return normalizeType(k)
}

func cloneInput(in *domain.ProjectionInput) *domain.ProjectionInput {
	out := *in
	out.Assets = append([]domain.AssetSpec(nil), in.Assets...)
	out.Liabilities = append([]domain.LiabilitySpec(nil), in.Liabilities...)
	out.Incomes = append([]domain.IncomeSpec(nil), in.Incomes...)
	out.Expenditures = append([]domain.ExpenditureSpec(nil), in.Expenditures...)
	out.Milestones = append([]domain.Milestone(nil), in.Milestones...)
	return &out
}

// HasMilitaryService reports whether any milestone is a military one.
func HasMilitaryService(in *domain.ProjectionInput) bool {
	for _, m := range in.Milestones {
		if m.Kind() == domain.MilestoneMilitary {
			return true
		}
	}
	return false
}
