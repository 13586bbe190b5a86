package main

import (
	"time"

	"github.com/nextmv-io/sdk/mip"
	"github.com/nextmv-io/sdk/run/statistics"
)

// input represents the validated request the core consumes. Shaping,
// parsing, and validating the raw JSON into this struct is the
// responsibility of the caller; the core assumes it is already
// well-formed.
type input struct {
	StaffList          []staff              `json:"staffList"`
	UnavailabilityList []unavailability     `json:"unavailabilityList"`
	WeeklyNeeds        weeklyNeeds          `json:"weeklyNeeds"`
	ShiftDefinitions   map[string]shiftTime `json:"shiftDefinitions"`
	ShiftPreference    string               `json:"shiftPreference"`
	StaffPriority      []string             `json:"staffPriority"`
}

// staff holds one employee's scheduling profile.
type staff struct {
	ID                     string   `json:"id"`
	Name                   string   `json:"name"`
	RolesInPreferenceOrder []string `json:"rolesInPreferenceOrder"`
	MinHoursPerWeek        *int     `json:"minHoursPerWeek,omitempty"`
	MaxHoursPerWeek        *int     `json:"maxHoursPerWeek,omitempty"`
}

// unavailability holds the windows during which an employee cannot work,
// on a single day of the week. An interval whose end is at or before its
// start wraps past midnight into the following day.
type unavailability struct {
	EmployeeID string       `json:"employeeId"`
	DayOfWeek  string       `json:"dayOfWeek"`
	Shifts     []timeWindow `json:"shifts"`
}

// timeWindow is a zero-padded HH:MM pair, minute-precise.
type timeWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// weeklyNeeds maps day -> shift -> role -> required headcount. A missing
// entry means zero required.
type weeklyNeeds map[string]map[string]map[string]int

// shiftTime describes a named shift's wall-clock window and paid hours.
// Hours may carry one decimal; the core converts to integer tenths.
type shiftTime struct {
	Start string  `json:"start"`
	End   string  `json:"end"`
	Hours float64 `json:"hours"`
}

// Recognized values for input.ShiftPreference.
const (
	preferFullDaysLabel = "PRIORITIZE_FULL_DAYS"
	preferHalfDaysLabel = "PRIORITIZE_HALF_DAYS"
	preferNoneLabel     = "NONE"
)

// options holds solver and objective configuration. Field tags follow
// the usage/default convention the CLI's flag filler reads.
type options struct {
	Weights weights          `json:"weights" usage:"objective weights for the five-level lexicographic hierarchy"`
	Limits  limits           `json:"limits" usage:"solve wall-clock configuration"`
	Solve   mip.SolveOptions `json:"solve" usage:"holds fields to configure the solver"`
}

// weights carries the per-level penalty weights of the lexicographic
// hierarchy. Each level's default is strictly larger than the maximum
// plausible total of every lower level combined, so a lower-priority gain
// can never outweigh a higher-priority loss.
type weights struct {
	DemandShortage  float64 `json:"demand_shortage" default:"10000" usage:"weight per unit of unmet demand (level 1)"`
	MinHourShortage float64 `json:"min_hour_shortage" default:"2000" usage:"weight per tenth-hour missed against a staff minimum (level 2)"`
	ShiftPreference float64 `json:"shift_preference" default:"100" usage:"weight for full/half-day preference violations (level 3)"`
	StaffPriority   float64 `json:"staff_priority" default:"20" usage:"weight for not scheduling a prioritized staff member (level 4)"`
	RolePreference  float64 `json:"role_preference" default:"10" usage:"weight for assigning a less-preferred role (level 5)"`
}

type limits struct {
	WallClock time.Duration `json:"wall_clock" default:"180s" usage:"maximum solve wall-clock time"`
}

// result is the response the core returns: exactly one of a successful
// schedule or an infeasibility/error message is populated.
type result struct {
	Success           bool      `json:"success"`
	Schedule          schedule  `json:"schedule,omitempty"`
	Warnings          []warning `json:"warnings,omitempty"`
	CalculationTimeMs int64     `json:"calculationTimeMs"`
	Message           string    `json:"message,omitempty"`
}

// schedule maps day -> shift -> role -> assigned staff ids.
type schedule map[string]map[string]map[string][]string

// customResultStatistics augments the solver's default result block with
// scheduling-level totals.
type customResultStatistics struct {
	mip.CustomResultStatistics
	DemandShortage        statistics.Float64 `json:"demand_shortage"`
	MinHourShortageTenths statistics.Float64 `json:"min_hour_shortage_tenths"`
	Warnings              int                `json:"warnings"`
}

// warning is one diagnostic emitted per the warning rules.
type warning struct {
	Kind    string `json:"kind"`
	Day     string `json:"day,omitempty"`
	Shift   string `json:"shift,omitempty"`
	Role    string `json:"role,omitempty"`
	StaffID string `json:"staffId,omitempty"`
	// Shortage is the unmet headcount for demand warnings and the
	// missing tenths of an hour for minimum-hour warnings.
	Shortage int    `json:"shortage,omitempty"`
	Message  string `json:"message"`
}
