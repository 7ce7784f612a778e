package output

import (
	"fmt"

	"github.com/rpgo/lifeplan/internal/domain"
)

// GenerateAssumptions lists the modeling constants rendered in detailed outputs.
func GenerateAssumptions(a domain.Assumptions) []string {
	return []string{
		fmt.Sprintf("Surplus contributed to the first investment: %s of positive cash flow", FormatPercentage(a.ContributionRate)),
		fmt.Sprintf("Home purchase: %s default value, %s down, %s mortgage over %d years, %s appreciation",
			FormatCurrency(a.HomeValue), FormatPercentage(a.DownPaymentFraction), FormatPercentage(a.MortgageRate), a.MortgageTermYears, FormatPercentage(a.HomeAppreciation)),
		fmt.Sprintf("Car purchase: %s default value, %s auto loan over %d years, %s depreciation",
			FormatCurrency(a.CarValue), FormatPercentage(a.AutoLoanRate), a.AutoLoanTermYears, FormatPercentage(a.CarDepreciation)),
		fmt.Sprintf("Marriage: %s wedding, household spending x%s after the wedding year", FormatCurrency(a.WeddingCost), a.MarriageExpenseFactor.String()),
		fmt.Sprintf("Children: %s one-time and %s per year, growing %s annually",
			FormatCurrency(a.ChildInitialCost), FormatCurrency(a.ChildAnnualCost), FormatPercentage(a.ChildCostGrowth)),
		fmt.Sprintf("Education: %s over %d years, graduate income x%s", FormatCurrency(a.EducationCost), a.EducationYears, a.GraduateIncomeFactor.String()),
		fmt.Sprintf("Military service: %d years, %s base pay plus %s housing allowance", a.ServiceYears, FormatCurrency(a.MilitaryBasePay), FormatCurrency(a.HousingAllowance)),
	}
}
