package main

import (
	"context"
	"fmt"
	"time"

	"github.com/nextmv-io/sdk/mip"
	"github.com/nextmv-io/sdk/run/schema"
	"github.com/nextmv-io/sdk/run/statistics"
)

const defaultWallClock = 180 * time.Second

// buildModel wires the Variable Builder, Hard Constraints, and Objective
// Builder stages together.
func buildModel(p *problem, opts options) (mip.Model, *decisionVariables) {
	m := mip.NewModel()
	v := buildVariables(m, p)
	addHardConstraints(m, p, v)
	addObjective(m, p, v, opts)
	return m, v
}

// applyDefaults fills in unset options with the documented defaults,
// mirroring the default struct tags in schema.go for callers that
// construct options directly rather than through the CLI flag filler.
// Weights default only as a block: a caller who sets any weight keeps
// every value as given, so an explicit 0 disables that level.
func applyDefaults(opts options) options {
	if opts.Limits.WallClock == 0 {
		opts.Limits.WallClock = defaultWallClock
	}
	if opts.Weights == (weights{}) {
		opts.Weights = weights{
			DemandShortage:  10000,
			MinHourShortage: 2000,
			ShiftPreference: 100,
			StaffPriority:   20,
			RolePreference:  10,
		}
	}
	return opts
}

// run is the testable core: normalize, build, solve, extract. It returns
// the model, variables, and solution alongside the result so solver can
// additionally attach solver-level statistics.
func solveCore(in input, opts options) (result, mip.Model, *decisionVariables, mip.Solution, error) {
	opts = applyDefaults(opts)

	p, err := normalize(in)
	if err != nil {
		return result{}, nil, nil, nil, fmt.Errorf("normalizing request: %w", err)
	}

	m, v := buildModel(p, opts)

	solver, err := mip.NewSolver(mip.Highs, m)
	if err != nil {
		return result{}, nil, nil, nil, fmt.Errorf("creating solver: %w", err)
	}

	solveOpts := opts.Solve
	if solveOpts.Duration == 0 {
		solveOpts.Duration = opts.Limits.WallClock
	}

	solution, err := solver.Solve(solveOpts)
	if err != nil {
		return result{}, nil, nil, nil, fmt.Errorf("solving model: %w", err)
	}

	return extractResult(p, v, solution, solveOpts.Duration), m, v, solution, nil
}

// solver is the run.CLI-facing adapter: it runs the core and wraps the
// result in the standard solve-result envelope.
func solver(_ context.Context, in input, opts options) (schema.Output, error) {
	res, m, v, solution, err := solveCore(in, opts)
	if err != nil {
		return schema.Output{}, err
	}

	output := mip.Format(opts, res, solution)
	output.Statistics.Result.Custom = newCustomResultStatistics(m, v, solution, res)

	return output, nil
}

// newCustomResultStatistics extends the solver's default result block
// with the scheduling totals behind the emitted warnings.
func newCustomResultStatistics(
	m mip.Model, v *decisionVariables, solution mip.Solution, res result,
) customResultStatistics {
	stats := customResultStatistics{
		CustomResultStatistics: mip.DefaultCustomResultStatistics(m, solution),
		Warnings:               len(res.Warnings),
	}
	if solution == nil || !solution.HasValues() {
		return stats
	}
	for _, dv := range v.demandCells {
		stats.DemandShortage += statistics.Float64(solution.Value(v.shortage.Get(dv)))
	}
	for _, staffID := range v.minShortageStaff {
		stats.MinHourShortageTenths += statistics.Float64(solution.Value(v.minShortage[staffID]))
	}
	return stats
}

// extractResult is the solution-extraction stage: it classifies the
// solve outcome and, when a feasible solution exists, assembles the
// schedule and warnings from it.
func extractResult(p *problem, v *decisionVariables, solution mip.Solution, wallClock time.Duration) result {
	if solution == nil || !solution.HasValues() {
		msg := "the hard constraints admit no feasible assignment"
		var runtimeMs int64
		if solution != nil {
			runtimeMs = solution.RunTime().Milliseconds()
			if solution.RunTime() >= wallClock {
				msg = "no feasible assignment was found within the wall-clock limit; the model may be infeasible or may simply need more time"
			}
		}
		return result{Success: false, Message: msg, CalculationTimeMs: runtimeMs}
	}

	if len(p.demand) > 0 && rosterHasNoCapacity(p) {
		return result{
			Success:           false,
			Message:           "every staff member has a zero-hour weekly cap, so the demanded shifts can never be covered",
			CalculationTimeMs: solution.RunTime().Milliseconds(),
		}
	}

	sched := schedule{}
	for _, av := range v.assignments {
		if solution.Value(v.x.Get(av)) < 0.5 {
			continue
		}
		addToSchedule(sched, av)
	}

	return result{
		Success:           true,
		Schedule:          sched,
		Warnings:          buildWarnings(p, v, solution),
		CalculationTimeMs: solution.RunTime().Milliseconds(),
	}
}

// rosterHasNoCapacity reports whether a non-empty roster is entirely
// capped at zero weekly hours. Such a roster can never cover demand, and
// the outcome is reported as infeasibility rather than as a schedule in
// which every cell is short. An empty roster is a different situation:
// with nobody to schedule, the empty schedule plus shortage warnings is
// the correct answer.
func rosterHasNoCapacity(p *problem) bool {
	if len(p.staffOrder) == 0 {
		return false
	}
	for _, id := range p.staffOrder {
		st := p.staffByID[id]
		if st.MaxHoursPerWeek == nil || *st.MaxHoursPerWeek > 0 {
			return false
		}
	}
	return true
}

func addToSchedule(sched schedule, av assignmentVar) {
	byShift, ok := sched[av.Day]
	if !ok {
		byShift = map[string]map[string][]string{}
		sched[av.Day] = byShift
	}
	byRole, ok := byShift[av.Shift]
	if !ok {
		byRole = map[string][]string{}
		byShift[av.Shift] = byRole
	}
	byRole[av.Role] = append(byRole[av.Role], av.StaffID)
}

// buildWarnings reports every demand cell left short and every staff
// member whose minimum-hours commitment went unmet.
func buildWarnings(p *problem, v *decisionVariables, solution mip.Solution) []warning {
	var warnings []warning

	for _, dv := range v.demandCells {
		shortfall := solution.Value(v.shortage.Get(dv))
		if shortfall <= 0.5 {
			continue
		}
		count := int(shortfall + 0.5)
		warnings = append(warnings, warning{
			Kind:     "demand_shortage",
			Day:      dv.Day,
			Shift:    dv.Shift,
			Role:     dv.Role,
			Shortage: count,
			Message:  fmt.Sprintf(
				"%s %s needs %d more %s", dv.Day, dv.Shift, count, dv.Role,
			),
		})
	}

	for _, staffID := range v.minShortageStaff {
		shortfall := solution.Value(v.minShortage[staffID])
		if shortfall <= 0.5 {
			continue
		}
		st := p.staffByID[staffID]
		achieved := float64(*st.MinHoursPerWeek*10) - shortfall
		warnings = append(warnings, warning{
			Kind:     "min_hour_shortage",
			StaffID:  staffID,
			Shortage: int(shortfall + 0.5),
			Message:  fmt.Sprintf(
				"%s reached %.1f of their %d-hour minimum, short %.1f hours",
				st.Name, achieved/10.0, *st.MinHoursPerWeek, shortfall/10.0,
			),
		})
	}

	return warnings
}
