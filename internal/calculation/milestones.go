package calculation

import (
	"fmt"
	"sort"

	"github.com/rpgo/lifeplan/internal/domain"
	"github.com/shopspring/decimal"
)

// Milestone outcomes reported to the Recorder.
const (
	OutcomeApplied = "applied"
	OutcomeIgnored = "ignored"
	OutcomeSkipped = "skipped"
)

// MilestoneHandler computes the effect of one milestone type. Handlers read the
// projection as left by earlier milestones and return the changes to make as
// adjustments; they do not write to the result themselves.
type MilestoneHandler interface {
	Apply(s *MilestoneScope, m domain.Milestone) ([]domain.Adjustment, error)
}

var milestoneRegistry = map[string]MilestoneHandler{
	domain.MilestoneJob:       jobHandler{},
	domain.MilestoneMarriage:  marriageHandler{},
	domain.MilestoneHousing:   housingHandler{},
	domain.MilestoneCar:       carHandler{},
	domain.MilestoneChildren:  childrenHandler{},
	domain.MilestoneEducation: educationHandler{},
	domain.MilestoneMilitary:  militaryHandler{},
}

// LookupMilestoneHandler returns the handler registered for kind.
func LookupMilestoneHandler(kind string) (MilestoneHandler, bool) {
	h, ok := milestoneRegistry[kind]
	return h, ok
}

// MilestoneScope is the view a handler gets of the run.
type MilestoneScope struct {
	Result      *domain.ProjectionResult
	Portfolio   *Portfolio
	Assumptions domain.Assumptions

	index int
}

// Horizon is the last projected year.
func (s *MilestoneScope) Horizon() int { return s.Result.Years() }

// FundFromSavings draws amount at year from the first Investment asset whose
// value covers it and returns the resulting asset changes for year..N. When no
// asset has enough the draw is skipped and nothing is returned.
func (s *MilestoneScope) FundFromSavings(m domain.Milestone, year int, amount decimal.Decimal) []domain.Adjustment {
	if !amount.IsPositive() || year < 0 || year > s.Horizon() {
		return nil
	}
	for _, a := range s.Portfolio.Assets {
		inv, ok := a.(*InvestmentAsset)
		if !ok || inv.Value(year).LessThan(amount) {
			continue
		}
		before := s.values(inv.Value, year)
		inv.UpdateValue(year, inv.Value(year).Sub(amount))
		after := s.values(inv.Value, year)

		b := s.builder(m)
		sub := assetSeries(inv)
		for i := range before {
			delta := after[i].Sub(before[i])
			b.add(domain.SeriesAssets, year+i, delta)
			if sub != "" {
				b.add(sub, year+i, delta)
			}
		}
		return b.list
	}
	return nil
}

func (s *MilestoneScope) values(get func(int) decimal.Decimal, from int) []decimal.Decimal {
	out := make([]decimal.Decimal, 0, s.Horizon()-from+1)
	for y := from; y <= s.Horizon(); y++ {
		out = append(out, get(y))
	}
	return out
}

func (s *MilestoneScope) builder(m domain.Milestone) *adjustmentBuilder {
	return &adjustmentBuilder{milestone: m.Kind(), index: s.index, horizon: s.Horizon()}
}

// adjustmentBuilder collects non-zero adjustments inside the horizon.
type adjustmentBuilder struct {
	milestone string
	index     int
	horizon   int
	list      []domain.Adjustment
}

func (b *adjustmentBuilder) add(series domain.Series, year int, delta decimal.Decimal) {
	b.append(series, "", year, delta)
}

func (b *adjustmentBuilder) addCategory(c domain.Category, year int, delta decimal.Decimal) {
	if !c.Valid() {
		c = domain.CategoryOther
	}
	b.append(domain.SeriesCategory, c, year, delta)
}

func (b *adjustmentBuilder) append(series domain.Series, c domain.Category, year int, delta decimal.Decimal) {
	if delta.IsZero() || year < 0 || year > b.horizon {
		return
	}
	b.list = append(b.list, domain.Adjustment{
		Milestone: b.milestone,
		Index:     b.index,
		Series:    series,
		Category:  c,
		Year:      year,
		Delta:     delta,
	})
}

func (b *adjustmentBuilder) extend(adj []domain.Adjustment) {
	b.list = append(b.list, adj...)
}

// MilestoneOutcome reports what happened to one input milestone.
type MilestoneOutcome struct {
	Index   int
	Kind    string
	Outcome string
}

// applyMilestones processes milestones by ascending year, keeping input order
// within a year, then recomputes the derived series once for the whole result.
func (r *projectionRun) applyMilestones(milestones []domain.Milestone) ([]MilestoneOutcome, error) {
	if err := r.advance(phaseMilestonesApplied); err != nil {
		return nil, err
	}
	order := make([]int, len(milestones))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return milestones[order[a]].Year < milestones[order[b]].Year
	})

	scope := &MilestoneScope{Result: r.result, Portfolio: r.portfolio, Assumptions: r.assumptions}
	outcomes := make([]MilestoneOutcome, 0, len(milestones))
	for _, i := range order {
		m := milestones[i]
		out := MilestoneOutcome{Index: i, Kind: m.Kind()}
		h, ok := LookupMilestoneHandler(m.Kind())
		switch {
		case !ok:
			out.Outcome = OutcomeIgnored
		case m.Year < 0 || m.Year > r.result.Years():
			out.Outcome = OutcomeSkipped
		default:
			scope.index = i
			adjustments, err := h.Apply(scope, m)
			if err != nil {
				return nil, fmt.Errorf("milestone %d (%s, year %d): %w", i, m.Kind(), m.Year, err)
			}
			if err := applyAdjustments(r.result, adjustments); err != nil {
				return nil, fmt.Errorf("milestone %d (%s, year %d): %w", i, m.Kind(), m.Year, err)
			}
			out.Outcome = OutcomeApplied
		}
		outcomes = append(outcomes, out)
	}
	finalize(r.result)
	return outcomes, nil
}

// applyAdjustments adds every delta to its series and appends it to the log.
func applyAdjustments(res *domain.ProjectionResult, adjustments []domain.Adjustment) error {
	for _, adj := range adjustments {
		var values []decimal.Decimal
		if adj.Series == domain.SeriesCategory {
			values = res.CategorySeries(adj.Category)
		} else {
			values = res.SeriesValues(adj.Series)
		}
		if values == nil {
			return fmt.Errorf("adjustment targets unknown series %q", adj.Series)
		}
		if adj.Year < 0 || adj.Year >= len(values) {
			return fmt.Errorf("adjustment year %d outside 0..%d", adj.Year, len(values)-1)
		}
		values[adj.Year] = values[adj.Year].Add(adj.Delta)
		res.Adjustments = append(res.Adjustments, adj)
	}
	return nil
}

// finalize recomputes the derived series: expenses from the category arrays,
// cash flow and net worth.
func finalize(res *domain.ProjectionResult) {
	for year := 0; year <= res.Years(); year++ {
		expenses := decimal.Zero
		for _, c := range domain.Categories {
			expenses = expenses.Add(res.CategorySeries(c)[year])
		}
		res.Expenses[year] = expenses
		res.CashFlow[year] = res.Income[year].Sub(expenses)
		res.NetWorth[year] = res.Assets[year].Sub(res.Liabilities[year])
	}
}
