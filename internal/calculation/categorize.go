package calculation

import (
	"strings"

	"github.com/rpgo/lifeplan/internal/domain"
	"github.com/shopspring/decimal"
)

// keywordGroup maps name fragments to a category. all lists fragments that must
// all be present in addition to one of any.
type keywordGroup struct {
	category domain.Category
	any      []string
	all      []string
}

// keywordGroups is checked in order; the first match wins.
var keywordGroups = []keywordGroup{
	{category: domain.CategoryHealthcare, any: []string{"health", "medical"}},
	{category: domain.CategoryHousing, any: []string{"housing", "rent", "mortgage"}},
	{category: domain.CategoryTransportation, any: []string{"transport", "car"}},
	{category: domain.CategoryFood, any: []string{"food"}},
	{category: domain.CategoryPersonalInsurance, any: []string{"personal", "life"}, all: []string{"insurance"}},
	{category: domain.CategoryApparel, any: []string{"apparel", "clothing"}},
	{category: domain.CategoryServices, any: []string{"service", "utilities"}},
	{category: domain.CategoryEntertainment, any: []string{"entertainment", "recreation"}},
	{category: domain.CategoryEducation, any: []string{"education", "college", "school"}},
	{category: domain.CategoryChildcare, any: []string{"child", "daycare"}},
	{category: domain.CategoryDebt, any: []string{"debt", "loan"}},
	{category: domain.CategoryDiscretionary, any: []string{"discretionary", "leisure"}},
}

// Categorize derives the default category tag for an expenditure. Healthcare
// names are checked first so that "health care" never lands in transportation;
// then the Housing and Transportation variants win regardless of name; then the
// keyword groups apply in order; anything else is other.
func Categorize(kind ExpenditureKind, name string) domain.Category {
	n := strings.ToLower(name)
	if containsAny(n, keywordGroups[0].any) {
		return domain.CategoryHealthcare
	}
	switch kind {
	case ExpenditureHousing:
		return domain.CategoryHousing
	case ExpenditureTransportation:
		return domain.CategoryTransportation
	}
	for _, g := range keywordGroups {
		if g.matches(n) {
			return g.category
		}
	}
	return domain.CategoryOther
}

func (g keywordGroup) matches(name string) bool {
	for _, req := range g.all {
		if !strings.Contains(name, req) {
			return false
		}
	}
	return containsAny(name, g.any)
}

func containsAny(s string, fragments []string) bool {
	for _, f := range fragments {
		if strings.Contains(s, f) {
			return true
		}
	}
	return false
}

// CategoryTotals accumulates expenditure amounts per category for one year.
type CategoryTotals map[domain.Category]decimal.Decimal

// Add books amount under the expenditure's category.
func (ct CategoryTotals) Add(e Expenditure, amount decimal.Decimal) {
	ct.AddTo(e.Category(), amount)
}

// AddTo books amount under c; unknown categories go to other.
func (ct CategoryTotals) AddTo(c domain.Category, amount decimal.Decimal) {
	if !c.Valid() {
		c = domain.CategoryOther
	}
	ct[c] = ct.Get(c).Add(amount)
}

// Get returns the total for c.
func (ct CategoryTotals) Get(c domain.Category) decimal.Decimal {
	if v, ok := ct[c]; ok {
		return v
	}
	return decimal.Zero
}

// Total sums every category.
func (ct CategoryTotals) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range ct {
		total = total.Add(v)
	}
	return total
}
