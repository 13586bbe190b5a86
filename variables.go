package main

import (
	"sort"

	"github.com/nextmv-io/sdk/mip"
	"github.com/nextmv-io/sdk/model"
)

// assignmentVar identifies one boolean decision variable x[s,d,k,r]. It
// only ever exists for tuples that are qualified, available, and tied to
// an actual demand entry.
type assignmentVar struct {
	StaffID string
	Day     string
	Shift   string
	Role    string
}

func (a assignmentVar) ID() string {
	return a.StaffID + "\x1f" + a.Day + "\x1f" + a.Shift + "\x1f" + a.Role
}

// demandVar identifies the shortage variable short[d,k,r] for a demanded
// cell.
type demandVar struct {
	Day   string
	Shift string
	Role  string
}

func (d demandVar) ID() string { return d.Day + "\x1f" + d.Shift + "\x1f" + d.Role }

// decisionVariables bundles every variable table the remaining stages
// read from.
type decisionVariables struct {
	assignments      []assignmentVar
	byStaff          map[string][]assignmentVar
	byCell           map[demandVar][]assignmentVar
	x                model.MultiMap[mip.Bool, assignmentVar]
	shortage         model.MultiMap[mip.Float, demandVar]
	demandCells      []demandVar
	minShortage      map[string]mip.Float
	minShortageStaff []string
}

// buildVariables instantiates every decision variable in the model: the
// assignment booleans, one shortage float per demanded cell, and one
// min-hour-shortage float per staff member who has a positive minimum.
func buildVariables(m mip.Model, p *problem) *decisionVariables {
	v := &decisionVariables{
		byStaff: map[string][]assignmentVar{},
		byCell:  map[demandVar][]assignmentVar{},
	}

	for _, staffID := range p.staffOrder {
		st := p.staffByID[staffID]
		for _, c := range p.cells {
			if !p.isAvailable(staffID, c) {
				continue
			}
			for _, role := range st.RolesInPreferenceOrder {
				dv := demandVar{Day: c.Day, Shift: c.Shift, Role: role}
				if _, hasDemand := p.demand[dv]; !hasDemand {
					continue
				}
				av := assignmentVar{StaffID: staffID, Day: c.Day, Shift: c.Shift, Role: role}
				v.assignments = append(v.assignments, av)
				v.byStaff[staffID] = append(v.byStaff[staffID], av)
				v.byCell[dv] = append(v.byCell[dv], av)
			}
		}
	}

	v.x = model.NewMultiMap(
		func(...assignmentVar) mip.Bool { return m.NewBool() },
		v.assignments,
	)

	for dv := range p.demand {
		v.demandCells = append(v.demandCells, dv)
	}
	sort.Slice(v.demandCells, func(i, j int) bool {
		a, b := v.demandCells[i], v.demandCells[j]
		ai, bi := dayIndex(a.Day), dayIndex(b.Day)
		if ai != bi {
			return ai < bi
		}
		if a.Shift != b.Shift {
			return a.Shift < b.Shift
		}
		return a.Role < b.Role
	})

	v.shortage = model.NewMultiMap(
		func(cells ...demandVar) mip.Float {
			return m.NewFloat(0, float64(p.demand[cells[0]]))
		}, v.demandCells)

	v.minShortage = map[string]mip.Float{}
	for _, staffID := range p.staffOrder {
		st := p.staffByID[staffID]
		if st.MinHoursPerWeek == nil || *st.MinHoursPerWeek <= 0 {
			continue
		}
		v.minShortage[staffID] = m.NewFloat(0, float64(*st.MinHoursPerWeek*10))
		v.minShortageStaff = append(v.minShortageStaff, staffID)
	}

	return v
}

func filterByDayShift(vars []assignmentVar, day, shiftName string) []assignmentVar {
	var out []assignmentVar
	for _, av := range vars {
		if av.Day == day && av.Shift == shiftName {
			out = append(out, av)
		}
	}
	return out
}
