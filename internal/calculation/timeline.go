package calculation

import (
	"github.com/shopspring/decimal"
)

// StepFunc advances an entity by one year: given the previous year's quantity it
// returns the quantity for year.
type StepFunc func(prev decimal.Decimal, year int) decimal.Decimal

// Timeline is the lazily memoized year -> value history shared by every
// financial entity. Cached years are always contiguous from year 0, so a value
// for year k is derived from an unbroken chain starting at year 0 or at the
// latest explicit Update.
type Timeline struct {
	values []decimal.Decimal
	step   StepFunc
}

// NewTimeline creates a timeline whose year 0 holds initial.
func NewTimeline(initial decimal.Decimal, step StepFunc) *Timeline {
	return &Timeline{
		values: []decimal.Decimal{initial},
		step:   step,
	}
}

// Get returns the value at year, computing and caching any missing years.
// Negative years are zero.
func (t *Timeline) Get(year int) decimal.Decimal {
	if year < 0 {
		return decimal.Zero
	}
	for len(t.values) <= year {
		next := len(t.values)
		t.values = append(t.values, t.step(t.values[next-1], next))
	}
	return t.values[year]
}

// Update overwrites year and drops every later cached year so it is recomputed
// from the new baseline on the next Get.
func (t *Timeline) Update(year int, value decimal.Decimal) {
	if year < 0 {
		return
	}
	t.Get(year)
	t.values = t.values[:year+1]
	t.values[year] = value
}

// Invalidate drops every cached year after year.
func (t *Timeline) Invalidate(year int) {
	if year < 0 {
		year = 0
	}
	if len(t.values) > year+1 {
		t.values = t.values[:year+1]
	}
}

// Cached reports whether year is currently memoized.
func (t *Timeline) Cached(year int) bool {
	return year >= 0 && year < len(t.values)
}

// Horizon is the highest cached year.
func (t *Timeline) Horizon() int {
	return len(t.values) - 1
}
