package main

import "github.com/nextmv-io/sdk/mip"

// addObjective emits the five weighted terms and combines them into a
// single minimized sum. The weight gaps (see weights in schema.go) keep
// the sum lexicographic for the problem sizes this system targets; an
// implementation accepting much larger inputs would instead stage the
// solve, fixing the shortage total to its minimum, then the min-hour
// total, and so on.
func addObjective(m mip.Model, p *problem, v *decisionVariables, opts options) {
	m.Objective().SetMinimize()

	addDemandShortageTerm(m, v, opts.Weights.DemandShortage)
	addMinHourShortageTerm(m, v, opts.Weights.MinHourShortage)
	addShiftPreferenceTerm(m, p, v, opts.Weights.ShiftPreference)
	addStaffPriorityTerm(m, p, v, opts.Weights.StaffPriority)
	addRolePreferenceTerm(m, p, v, opts.Weights.RolePreference)
}

// T1: total demand shortage across every demanded cell.
func addDemandShortageTerm(m mip.Model, v *decisionVariables, weight float64) {
	for _, dv := range v.demandCells {
		m.Objective().NewTerm(weight, v.shortage.Get(dv))
	}
}

// T2: total min-hour shortage, already expressed in tenths of an hour.
func addMinHourShortageTerm(m mip.Model, v *decisionVariables, weight float64) {
	for _, staffID := range v.minShortageStaff {
		m.Objective().NewTerm(weight, v.minShortage[staffID])
	}
}

// T3: shift-preference penalty over every (staff, day, full-day pair).
// For a pair of consecutive shifts (a, b), let worksA/worksB be the sum
// of that staff's role variables on each shift (at most one can be 1 per
// the single-role-per-shift constraint) and full = AND(worksA, worksB),
// linearized via linkAND. FullDay mode penalizes worksA+worksB-2*full,
// which is 0 when both or neither shift is worked and 1 when exactly one
// is (a half day); HalfDay mode penalizes full directly; None adds
// nothing.
func addShiftPreferenceTerm(m mip.Model, p *problem, v *decisionVariables, weight float64) {
	if weight == 0 || p.shiftPreference == preferNone || len(p.fullDayPairs) == 0 {
		return
	}

	for _, staffID := range p.staffOrder {
		staffVars := v.byStaff[staffID]
		if len(staffVars) == 0 {
			continue
		}
		for _, day := range p.activeDays {
			for _, pair := range p.fullDayPairs {
				varsA := filterByDayShift(staffVars, day, pair.A)
				varsB := filterByDayShift(staffVars, day, pair.B)
				if len(varsA) == 0 || len(varsB) == 0 {
					continue
				}

				full := m.NewBool()
				linkAND(m, v, full, varsA, varsB)

				switch p.shiftPreference {
				case preferFullDay:
					for _, av := range varsA {
						m.Objective().NewTerm(weight, v.x.Get(av))
					}
					for _, av := range varsB {
						m.Objective().NewTerm(weight, v.x.Get(av))
					}
					m.Objective().NewTerm(-2*weight, full)
				case preferHalfDay:
					m.Objective().NewTerm(weight, full)
				}
			}
		}
	}
}

// linkAND constrains full to equal AND(sum(varsA), sum(varsB)) in any
// feasible solution, via the standard big-M-free linearization for
// binary products: full <= worksA, full <= worksB, full >= worksA+worksB-1.
func linkAND(m mip.Model, v *decisionVariables, full mip.Bool, varsA, varsB []assignmentVar) {
	upperA := m.NewConstraint(mip.LessThanOrEqual, 0.0)
	upperA.NewTerm(1.0, full)
	for _, av := range varsA {
		upperA.NewTerm(-1.0, v.x.Get(av))
	}

	upperB := m.NewConstraint(mip.LessThanOrEqual, 0.0)
	upperB.NewTerm(1.0, full)
	for _, av := range varsB {
		upperB.NewTerm(-1.0, v.x.Get(av))
	}

	lower := m.NewConstraint(mip.LessThanOrEqual, 1.0)
	lower.NewTerm(-1.0, full)
	for _, av := range varsA {
		lower.NewTerm(1.0, v.x.Get(av))
	}
	for _, av := range varsB {
		lower.NewTerm(1.0, v.x.Get(av))
	}
}

// T4: staff-priority penalty. Staff at 1-indexed position i in a
// priority list of length k get coefficient (k-i+1); this is applied as
// a reward for their assignments (a negative objective coefficient),
// which is equivalent up to a constant to penalizing them for not being
// scheduled. Staff absent from the list get coefficient 0 and contribute
// nothing.
func addStaffPriorityTerm(m mip.Model, p *problem, v *decisionVariables, weight float64) {
	if weight == 0 || len(p.staffPriority) == 0 {
		return
	}
	k := len(p.staffPriority)
	for i, staffID := range p.staffPriority {
		coef := weight * float64(k-i)
		if coef == 0 {
			continue
		}
		for _, av := range v.byStaff[staffID] {
			m.Objective().NewTerm(-coef, v.x.Get(av))
		}
	}
}

// T5: role-preference penalty. rank is the zero-based index of the
// assigned role in the staff member's preference order; earlier
// (more-preferred) roles carry lower penalty.
func addRolePreferenceTerm(m mip.Model, p *problem, v *decisionVariables, weight float64) {
	if weight == 0 {
		return
	}
	for _, staffID := range p.staffOrder {
		st := p.staffByID[staffID]
		rank := make(map[string]int, len(st.RolesInPreferenceOrder))
		for i, r := range st.RolesInPreferenceOrder {
			rank[r] = i
		}
		for _, av := range v.byStaff[staffID] {
			r := rank[av.Role]
			if r == 0 {
				continue
			}
			m.Objective().NewTerm(weight*float64(r), v.x.Get(av))
		}
	}
}
