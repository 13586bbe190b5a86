package main

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

const minutesPerDay = 1440

// canonicalDayOrder fixes the seven-day cycle used for wrap adjacency:
// a shift or unavailability interval that wraps past midnight on Sunday
// continues into Monday, exactly as any other day continues into the
// next.
var canonicalDayOrder = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// shiftPreferenceMode is the three-case sum type behind input.ShiftPreference.
type shiftPreferenceMode int

const (
	preferFullDay shiftPreferenceMode = iota
	preferHalfDay
	preferNone
)

func parseShiftPreference(s string) shiftPreferenceMode {
	switch s {
	case preferHalfDaysLabel:
		return preferHalfDay
	case preferNoneLabel:
		return preferNone
	case preferFullDaysLabel, "":
		return preferFullDay
	default:
		return preferFullDay
	}
}

// shiftDef is the canonicalized form of shiftTime: minute offsets and
// tenths-of-an-hour, with the midnight-wrap flag precomputed.
type shiftDef struct {
	Name        string
	StartMinute int
	EndMinute   int
	Wraps       bool
	HoursTenths int
}

// cell is a (day, shift) pair, the granularity at which the normalizer
// decides whether anything interesting can happen.
type cell struct {
	Day   string
	Shift string
}

func (c cell) ID() string { return c.Day + "\x1f" + c.Shift }

// shiftPair is a full-day candidate: two distinct shifts on the same day
// whose minute ranges are contiguous, no gap in between.
type shiftPair struct {
	A, B string
}

// minuteInterval is a half-open [Start, End) range of minutes within a
// single day's timeline. A non-positive length interval carries no
// information and is always treated as a no-op.
type minuteInterval struct {
	Start, End int
}

func (iv minuteInterval) empty() bool { return iv.Start >= iv.End }

func overlaps(a, b minuteInterval) bool {
	if a.empty() || b.empty() {
		return false
	}
	return a.Start < b.End && b.Start < a.End
}

// problem is the canonical, solver-agnostic view of a request: the
// output of the normalization stage.
type problem struct {
	shiftDefs       map[string]shiftDef
	cells           []cell
	activeDays      []string
	demand          map[demandVar]int
	staffByID       map[string]staff
	staffOrder      []string
	availability    map[string]map[cell]bool
	fullDayPairs    []shiftPair
	shiftPreference shiftPreferenceMode
	staffPriority   []string
}

func (p *problem) isAvailable(staffID string, c cell) bool {
	byCell, ok := p.availability[staffID]
	if !ok {
		return false
	}
	return byCell[c]
}

func normalize(in input) (*problem, error) {
	shiftDefs, err := buildShiftDefs(in.ShiftDefinitions)
	if err != nil {
		return nil, err
	}

	staffByID := map[string]staff{}
	var staffOrder []string
	for _, s := range in.StaffList {
		if _, seen := staffByID[s.ID]; !seen {
			staffOrder = append(staffOrder, s.ID)
		}
		staffByID[s.ID] = s
	}

	rawUnavail, err := buildRawUnavailability(in.UnavailabilityList)
	if err != nil {
		return nil, err
	}

	demand, cellHasDemand := buildDemand(in.WeeklyNeeds)

	availability, cellHasAvailableStaff := buildAvailability(staffOrder, rawUnavail, shiftDefs)

	shiftNames := sortedShiftNames(shiftDefs)
	var cells []cell
	for _, day := range canonicalDayOrder {
		for _, shiftName := range shiftNames {
			c := cell{Day: day, Shift: shiftName}
			if cellHasDemand[c] || cellHasAvailableStaff[c] {
				cells = append(cells, c)
			}
		}
	}

	var activeDays []string
	seenDay := map[string]bool{}
	for _, c := range cells {
		if !seenDay[c.Day] {
			seenDay[c.Day] = true
			activeDays = append(activeDays, c.Day)
		}
	}

	return &problem{
		shiftDefs:       shiftDefs,
		cells:           cells,
		activeDays:      activeDays,
		demand:          demand,
		staffByID:       staffByID,
		staffOrder:      staffOrder,
		availability:    availability,
		fullDayPairs:    buildFullDayPairs(shiftDefs),
		shiftPreference: parseShiftPreference(in.ShiftPreference),
		staffPriority:   in.StaffPriority,
	}, nil
}

func buildDemand(needs weeklyNeeds) (map[demandVar]int, map[cell]bool) {
	demand := map[demandVar]int{}
	cells := map[cell]bool{}
	for day, byShift := range needs {
		for shiftName, byRole := range byShift {
			for role, count := range byRole {
				if count <= 0 {
					// A required count of zero carries no
					// information; treat it as absent.
					continue
				}
				demand[demandVar{Day: day, Shift: shiftName, Role: role}] = count
				cells[cell{Day: day, Shift: shiftName}] = true
			}
		}
	}
	return demand, cells
}

func buildShiftDefs(defs map[string]shiftTime) (map[string]shiftDef, error) {
	out := make(map[string]shiftDef, len(defs))
	for name, d := range defs {
		start, err := parseHHMM(d.Start)
		if err != nil {
			return nil, fmt.Errorf("shift %q: %w", name, err)
		}
		end, err := parseHHMM(d.End)
		if err != nil {
			return nil, fmt.Errorf("shift %q: %w", name, err)
		}
		out[name] = shiftDef{
			Name:        name,
			StartMinute: start,
			EndMinute:   end,
			Wraps:       end <= start,
			HoursTenths: int(math.Round(d.Hours * 10)),
		}
	}
	return out, nil
}

func sortedShiftNames(defs map[string]shiftDef) []string {
	names := make([]string, 0, len(defs))
	for n := range defs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// buildFullDayPairs finds every pair of distinct shifts whose raw minute
// boundaries are contiguous (a's end equals b's start), per invariant 3.
func buildFullDayPairs(defs map[string]shiftDef) []shiftPair {
	names := sortedShiftNames(defs)
	var pairs []shiftPair
	for _, a := range names {
		for _, b := range names {
			if a == b {
				continue
			}
			if defs[a].EndMinute == defs[b].StartMinute {
				pairs = append(pairs, shiftPair{A: a, B: b})
			}
		}
	}
	return pairs
}

func parseHHMM(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	h, err := strconv.Atoi(s[:2])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(s[3:])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return h*60 + m, nil
}

// buildRawUnavailability parses every unavailability window into minute
// intervals, dropping zero-length ones.
func buildRawUnavailability(list []unavailability) (map[string]map[string][]minuteInterval, error) {
	raw := map[string]map[string][]minuteInterval{}
	for _, u := range list {
		for _, w := range u.Shifts {
			start, err := parseHHMM(w.Start)
			if err != nil {
				return nil, fmt.Errorf("unavailability for %q: %w", u.EmployeeID, err)
			}
			end, err := parseHHMM(w.End)
			if err != nil {
				return nil, fmt.Errorf("unavailability for %q: %w", u.EmployeeID, err)
			}
			if start == end {
				continue
			}
			if raw[u.EmployeeID] == nil {
				raw[u.EmployeeID] = map[string][]minuteInterval{}
			}
			raw[u.EmployeeID][u.DayOfWeek] = append(raw[u.EmployeeID][u.DayOfWeek], minuteInterval{start, end})
		}
	}
	return raw, nil
}

// dayBlocks returns every minute range that is blocked on the given day,
// for one staff member: intervals declared directly on that day, plus
// the forward-wrapping remainder of intervals declared on the previous
// day.
func dayBlocks(staffRaw map[string][]minuteInterval, day string) []minuteInterval {
	var blocks []minuteInterval
	for _, iv := range staffRaw[day] {
		if iv.End <= iv.Start {
			blocks = append(blocks, minuteInterval{iv.Start, minutesPerDay})
		} else {
			blocks = append(blocks, minuteInterval{iv.Start, iv.End})
		}
	}
	for _, iv := range staffRaw[prevDay(day)] {
		if iv.End <= iv.Start && iv.End > 0 {
			blocks = append(blocks, minuteInterval{0, iv.End})
		}
	}
	return blocks
}

// shiftOccupancy splits a shift into its minute range on its nominal day
// and, if it wraps past midnight, the minute range it occupies on the
// following day.
func shiftOccupancy(s shiftDef) (today minuteInterval, tomorrow *minuteInterval) {
	if s.Wraps {
		today = minuteInterval{s.StartMinute, minutesPerDay}
		t := minuteInterval{0, s.EndMinute}
		return today, &t
	}
	return minuteInterval{s.StartMinute, s.EndMinute}, nil
}

func staffAvailableForShift(staffRaw map[string][]minuteInterval, day string, s shiftDef) bool {
	today, tomorrow := shiftOccupancy(s)
	for _, b := range dayBlocks(staffRaw, day) {
		if overlaps(today, b) {
			return false
		}
	}
	if tomorrow != nil {
		for _, b := range dayBlocks(staffRaw, nextDay(day)) {
			if overlaps(*tomorrow, b) {
				return false
			}
		}
	}
	return true
}

func buildAvailability(
	staffOrder []string,
	rawUnavail map[string]map[string][]minuteInterval,
	shiftDefs map[string]shiftDef,
) (map[string]map[cell]bool, map[cell]bool) {
	availability := map[string]map[cell]bool{}
	cellHasAvailableStaff := map[cell]bool{}
	for _, staffID := range staffOrder {
		availability[staffID] = map[cell]bool{}
		for _, day := range canonicalDayOrder {
			for shiftName, def := range shiftDefs {
				if !staffAvailableForShift(rawUnavail[staffID], day, def) {
					continue
				}
				c := cell{Day: day, Shift: shiftName}
				availability[staffID][c] = true
				cellHasAvailableStaff[c] = true
			}
		}
	}
	return availability, cellHasAvailableStaff
}

func dayIndex(day string) int {
	for i, d := range canonicalDayOrder {
		if d == day {
			return i
		}
	}
	return -1
}

func prevDay(day string) string {
	i := dayIndex(day)
	if i < 0 {
		return ""
	}
	return canonicalDayOrder[(i-1+len(canonicalDayOrder))%len(canonicalDayOrder)]
}

func nextDay(day string) string {
	i := dayIndex(day)
	if i < 0 {
		return ""
	}
	return canonicalDayOrder[(i+1)%len(canonicalDayOrder)]
}
