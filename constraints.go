package main

import "github.com/nextmv-io/sdk/mip"

// addHardConstraints emits every linking constraint of the model.
// Availability and role qualification are enforced structurally by
// buildVariables simply never creating the corresponding variable.
func addHardConstraints(m mip.Model, p *problem, v *decisionVariables) {
	addSingleRolePerShift(m, p, v)
	addMaxWeeklyHours(m, p, v)
	addDemandLinking(m, p, v)
	addMinHourLinking(m, p, v)
}

// addSingleRolePerShift: for each (staff, day, shift), at most one role
// may be worked.
func addSingleRolePerShift(m mip.Model, p *problem, v *decisionVariables) {
	for _, staffID := range p.staffOrder {
		perCell := map[cell][]assignmentVar{}
		for _, av := range v.byStaff[staffID] {
			perCell[cell{Day: av.Day, Shift: av.Shift}] = append(perCell[cell{Day: av.Day, Shift: av.Shift}], av)
		}
		for _, vars := range perCell {
			if len(vars) < 2 {
				continue
			}
			constr := m.NewConstraint(mip.LessThanOrEqual, 1.0)
			for _, av := range vars {
				constr.NewTerm(1.0, v.x.Get(av))
			}
		}
	}
}

// addMaxWeeklyHours: for staff with a declared maximum, total assigned
// hours (tenths) may not exceed it.
func addMaxWeeklyHours(m mip.Model, p *problem, v *decisionVariables) {
	for _, staffID := range p.staffOrder {
		st := p.staffByID[staffID]
		if st.MaxHoursPerWeek == nil {
			continue
		}
		constr := m.NewConstraint(mip.LessThanOrEqual, float64(*st.MaxHoursPerWeek*10))
		for _, av := range v.byStaff[staffID] {
			constr.NewTerm(float64(p.shiftDefs[av.Shift].HoursTenths), v.x.Get(av))
		}
	}
}

// addDemandLinking: assigned + shortage >= required (shortage absorbs
// any gap) and assigned <= required (no over-assignment to a demanded
// role), per rule 5.
func addDemandLinking(m mip.Model, p *problem, v *decisionVariables) {
	for _, dv := range v.demandCells {
		vars := v.byCell[dv]
		required := float64(p.demand[dv])

		cover := m.NewConstraint(mip.GreaterThanOrEqual, required)
		cover.NewTerm(1.0, v.shortage.Get(dv))
		for _, av := range vars {
			cover.NewTerm(1.0, v.x.Get(av))
		}

		noOverfill := m.NewConstraint(mip.LessThanOrEqual, required)
		for _, av := range vars {
			noOverfill.NewTerm(1.0, v.x.Get(av))
		}
	}
}

// addMinHourLinking: assigned hours (tenths) + shortage >= min*10, for
// every staff member with a positive minimum.
func addMinHourLinking(m mip.Model, p *problem, v *decisionVariables) {
	for _, staffID := range v.minShortageStaff {
		st := p.staffByID[staffID]
		constr := m.NewConstraint(mip.GreaterThanOrEqual, float64(*st.MinHoursPerWeek*10))
		for _, av := range v.byStaff[staffID] {
			constr.NewTerm(float64(p.shiftDefs[av.Shift].HoursTenths), v.x.Get(av))
		}
		constr.NewTerm(1.0, v.minShortage[staffID])
	}
}
