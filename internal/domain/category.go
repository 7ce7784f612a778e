package domain

import (
	"fmt"
	"strings"
)

// Category is the closed set of reporting buckets for expenditures.
type Category string

const (
	CategoryHousing           Category = "housing"
	CategoryTransportation    Category = "transportation"
	CategoryFood              Category = "food"
	CategoryHealthcare        Category = "healthcare"
	CategoryPersonalInsurance Category = "personal_insurance"
	CategoryApparel           Category = "apparel"
	CategoryServices          Category = "services"
	CategoryEntertainment     Category = "entertainment"
	CategoryEducation         Category = "education"
	CategoryChildcare         Category = "childcare"
	CategoryDebt              Category = "debt"
	CategoryDiscretionary     Category = "discretionary"
	CategoryOther             Category = "other"
)

// Categories lists every category in reporting order.
var Categories = []Category{
	CategoryHousing,
	CategoryTransportation,
	CategoryFood,
	CategoryHealthcare,
	CategoryPersonalInsurance,
	CategoryApparel,
	CategoryServices,
	CategoryEntertainment,
	CategoryOther,
	CategoryEducation,
	CategoryChildcare,
	CategoryDebt,
	CategoryDiscretionary,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory accepts the canonical names plus the camelCase output keys.
func ParseCategory(s string) (Category, error) {
	n := strings.ToLower(strings.TrimSpace(s))
	n = strings.ReplaceAll(n, "-", "_")
	if n == "personalinsurance" {
		n = string(CategoryPersonalInsurance)
	}
	c := Category(n)
	if !c.Valid() {
		return "", fmt.Errorf("%w: unknown category %q", ErrInvalidInput, s)
	}
	return c, nil
}
