package calculation

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rpgo/lifeplan/internal/domain"
)

// DefaultMaxYears bounds the projection horizon.
const DefaultMaxYears = 150

// Engine runs projections. It holds no per-run state: every call to Project
// builds a fresh set of entities.
type Engine struct {
	assumptions domain.Assumptions
	maxYears    int
	Logger      Logger
	Recorder    Recorder
}

// NewEngine creates an engine with the given milestone assumptions.
func NewEngine(a domain.Assumptions) *Engine {
	return &Engine{
		assumptions: a,
		maxYears:    DefaultMaxYears,
		Logger:      NopLogger{},
		Recorder:    NopRecorder{},
	}
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// SetRecorder sets the run recorder. If nil is provided, a no-op recorder is used.
func (e *Engine) SetRecorder(r Recorder) {
	if r == nil {
		e.Recorder = NopRecorder{}
		return
	}
	e.Recorder = r
}

// SetMaxYears changes the horizon limit; values below 1 restore the default.
func (e *Engine) SetMaxYears(n int) {
	if n < 1 {
		n = DefaultMaxYears
	}
	e.maxYears = n
}

// Assumptions returns the constants the engine applies.
func (e *Engine) Assumptions() domain.Assumptions { return e.assumptions }

// Project runs a full projection: base simulation for years 0..N followed by
// milestone processing.
func (e *Engine) Project(ctx context.Context, in *domain.ProjectionInput) (*domain.ProjectionResult, error) {
	started := time.Now()
	runID := ulid.Make().String()

	res, outcomes, err := e.project(ctx, in, runID)
	elapsed := time.Since(started)
	if err != nil {
		e.Recorder.ObserveProjection("error", elapsed)
		e.Logger.Errorf("projection %s failed after %s: %v", runID, elapsed, err)
		return nil, err
	}

	counts := map[string]int{}
	for _, o := range outcomes {
		e.Recorder.ObserveMilestone(o.Kind, o.Outcome)
		counts[o.Outcome]++
	}
	e.Recorder.ObserveProjection("success", elapsed)
	e.Logger.Infof("projection %s finished in %s: %d milestones applied, %d ignored, %d skipped",
		runID, elapsed, counts[OutcomeApplied], counts[OutcomeIgnored], counts[OutcomeSkipped])
	return res, nil
}

func (e *Engine) project(ctx context.Context, in *domain.ProjectionInput, runID string) (*domain.ProjectionResult, []MilestoneOutcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if err := e.check(in); err != nil {
		return nil, nil, err
	}
	e.Logger.Infof("projection %s started: %d years, %d assets, %d liabilities, %d incomes, %d expenditures, %d milestones",
		runID, in.YearsToProject, len(in.Assets), len(in.Liabilities), len(in.Incomes), len(in.Expenditures), len(in.Milestones))

	effective := in
	if HasMilitaryService(in) {
		var err error
		if effective, err = BuildMilitaryPath(in, e.assumptions); err != nil {
			return nil, nil, fmt.Errorf("build military path: %w", err)
		}
	}

	portfolio, err := BuildPortfolio(effective)
	if err != nil {
		return nil, nil, fmt.Errorf("build portfolio: %w", err)
	}

	run := newProjectionRun(effective, portfolio, e.assumptions)
	run.result.RunID = runID
	if err := run.yearZero(); err != nil {
		return nil, nil, err
	}
	if err := run.project(); err != nil {
		return nil, nil, err
	}
	outcomes, err := run.applyMilestones(effective.Milestones)
	if err != nil {
		return nil, nil, fmt.Errorf("apply milestones: %w", err)
	}
	res, err := run.finish()
	if err != nil {
		return nil, nil, err
	}
	res.Milestones = append(res.Milestones, in.Milestones...)
	return res, outcomes, nil
}

// check guards the invariants the core relies on; full validation is done by
// config.InputParser.
func (e *Engine) check(in *domain.ProjectionInput) error {
	if in == nil {
		return fmt.Errorf("%w: nil projection input", domain.ErrInvalidInput)
	}
	if in.YearsToProject < 0 {
		return fmt.Errorf("%w: years to project %d", domain.ErrInvalidInput, in.YearsToProject)
	}
	if in.YearsToProject > e.maxYears {
		return fmt.Errorf("%w: %d years exceeds %d", domain.ErrHorizonTooLong, in.YearsToProject, e.maxYears)
	}
	for i, m := range in.Milestones {
		if m.Year < 0 {
			return fmt.Errorf("milestone %d (%s): %w: %d", i, m.Kind(), domain.ErrNegativeYear, m.Year)
		}
	}
	return nil
}
