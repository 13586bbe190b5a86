package main

import "testing"

func TestParseHHMM(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"12:00", 720, false},
		{"23:59", 1439, false},
		{"19:00", 1140, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"1:00", 0, true},
	}
	for _, c := range cases {
		got, err := parseHHMM(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("parseHHMM(%q): expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseHHMM(%q): unexpected error %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("parseHHMM(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name string
		a, b minuteInterval
		want bool
	}{
		{"disjoint", minuteInterval{0, 60}, minuteInterval{60, 120}, false},
		{"touching end-to-start is not overlap", minuteInterval{100, 200}, minuteInterval{200, 300}, false},
		{"overlapping", minuteInterval{100, 200}, minuteInterval{150, 250}, true},
		{"contained", minuteInterval{100, 300}, minuteInterval{150, 200}, true},
		{"empty a", minuteInterval{100, 100}, minuteInterval{50, 200}, false},
	}
	for _, c := range cases {
		if got := overlaps(c.a, c.b); got != c.want {
			t.Errorf("%s: overlaps(%v, %v) = %v, want %v", c.name, c.a, c.b, got, c.want)
		}
	}
}

// A shift that wraps past midnight (e.g. PM = 19:00-02:00) must block
// correctly whether the unavailability is declared on its start day or
// the day it wraps into.
func TestStaffAvailableForShift_Wrapping(t *testing.T) {
	pm := shiftDef{Name: "PM", StartMinute: 19 * 60, EndMinute: 2 * 60, Wraps: true, HoursTenths: 70}

	// Unavailable Sunday 22:00-23:59: blocks Sunday PM (occupies
	// Sunday 19:00-24:00) but not Monday PM (occupies Monday
	// 19:00-24:00, no overlap with Sunday's interval).
	sundayBlock := map[string][]minuteInterval{
		"Sunday": {{22 * 60, 23*60 + 59}},
	}
	if staffAvailableForShift(sundayBlock, "Sunday", pm) {
		t.Errorf("expected Sunday PM to be blocked")
	}
	if !staffAvailableForShift(sundayBlock, "Saturday", pm) {
		t.Errorf("expected Saturday PM to remain available")
	}

	// Unavailable Monday 00:00-03:00: blocks the wrapped tail of
	// Sunday PM (which spills into Monday 00:00-02:00) but does not
	// block Monday's own PM shift, since that only starts at 19:00.
	mondayEarlyBlock := map[string][]minuteInterval{
		"Monday": {{0, 3 * 60}},
	}
	if staffAvailableForShift(mondayEarlyBlock, "Sunday", pm) {
		t.Errorf("Sunday PM should be blocked by Monday's early-morning unavailability alone (tail overlap)")
	}
	if !staffAvailableForShift(mondayEarlyBlock, "Monday", pm) {
		t.Errorf("expected Monday PM to remain available")
	}
}

func TestBuildFullDayPairs(t *testing.T) {
	defs := map[string]shiftDef{
		"AM": {Name: "AM", StartMinute: 12 * 60, EndMinute: 19 * 60},
		"PM": {Name: "PM", StartMinute: 19 * 60, EndMinute: 2 * 60},
	}
	pairs := buildFullDayPairs(defs)
	if len(pairs) != 1 {
		t.Fatalf("expected exactly one full-day pair, got %v", pairs)
	}
	if pairs[0].A != "AM" || pairs[0].B != "PM" {
		t.Fatalf("expected pair AM->PM, got %v", pairs[0])
	}
}

func TestBuildDemand_ZeroRequiredIsAbsent(t *testing.T) {
	needs := weeklyNeeds{
		"Monday": {"AM": {"Server": 0, "Host": 2}},
	}
	demand, cells := buildDemand(needs)

	if _, ok := demand[demandVar{Day: "Monday", Shift: "AM", Role: "Server"}]; ok {
		t.Errorf("zero-required Server entry should not produce a demand entry")
	}
	if demand[demandVar{Day: "Monday", Shift: "AM", Role: "Host"}] != 2 {
		t.Errorf("expected Host demand of 2")
	}
	if !cells[cell{Day: "Monday", Shift: "AM"}] {
		t.Errorf("expected Monday/AM to be marked as a demanded cell")
	}
}
