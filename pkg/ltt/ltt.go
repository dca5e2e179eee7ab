// Package ltt computes Ontario land transfer tax with graduated brackets,
// including the Toronto municipal tax, selecting a rate schedule by closing
// date.
package ltt

import (
	"strings"
	"time"
)

// Bracket is one tier of a graduated rate table. Rate applies to the slice of
// price above Threshold up to the next bracket's threshold.
type Bracket struct {
	Threshold float64
	Rate      float64
}

// RateSchedule is a named, date-keyed pair of bracket tables for the
// provincial and Toronto municipal jurisdictions.
type RateSchedule struct {
	Name       string
	Provincial []Bracket
	Toronto    []Bracket
}

// Result carries the computed tax, the schedule that produced it, and any
// caller-visible warning.
type Result struct {
	Amount       float64
	Warning      string
	ScheduleUsed string
}

// cutoverDate is when the 2026 rate schedule takes effect.
var cutoverDate = time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)

var schedule2024 = RateSchedule{
	Name: "2024",
	Provincial: []Bracket{
		{Threshold: 0, Rate: 0.005},
		{Threshold: 55_000, Rate: 0.01},
		{Threshold: 250_000, Rate: 0.015},
		{Threshold: 400_000, Rate: 0.02},
		{Threshold: 2_000_000, Rate: 0.025},
	},
	Toronto: []Bracket{
		{Threshold: 0, Rate: 0.005},
		{Threshold: 55_000, Rate: 0.01},
		{Threshold: 250_000, Rate: 0.015},
		{Threshold: 400_000, Rate: 0.02},
		{Threshold: 2_000_000, Rate: 0.025},
		{Threshold: 3_000_000, Rate: 0.035},
		{Threshold: 4_000_000, Rate: 0.045},
		{Threshold: 5_000_000, Rate: 0.055},
		{Threshold: 10_000_000, Rate: 0.065},
		{Threshold: 20_000_000, Rate: 0.075},
	},
}

var schedule2026 = RateSchedule{
	Name: "2026",
	Provincial: []Bracket{
		{Threshold: 0, Rate: 0.005},
		{Threshold: 55_000, Rate: 0.01},
		{Threshold: 250_000, Rate: 0.015},
		{Threshold: 400_000, Rate: 0.02},
		{Threshold: 2_000_000, Rate: 0.035},
	},
	Toronto: []Bracket{
		{Threshold: 0, Rate: 0.005},
		{Threshold: 55_000, Rate: 0.01},
		{Threshold: 250_000, Rate: 0.015},
		{Threshold: 400_000, Rate: 0.02},
		{Threshold: 1_000_000, Rate: 0.03},
		{Threshold: 2_000_000, Rate: 0.04},
		{Threshold: 3_000_000, Rate: 0.05},
		{Threshold: 4_000_000, Rate: 0.06},
		{Threshold: 5_000_000, Rate: 0.07},
		{Threshold: 10_000_000, Rate: 0.08},
		{Threshold: 20_000_000, Rate: 0.09},
	},
}

// selectSchedule picks the bracket tables for a closing date. A nil date
// assumes the pre-cutover schedule and warrants a warning.
func selectSchedule(closingDate *time.Time) (RateSchedule, string) {
	if closingDate == nil {
		return schedule2024, "no closing date supplied; assuming the " + schedule2024.Name + " rate schedule"
	}
	if closingDate.Before(cutoverDate) {
		return schedule2024, ""
	}
	return schedule2026, ""
}

// graduatedTax walks brackets in ascending threshold order, taxing each slice
// of price between successive thresholds at that bracket's rate. The top
// bracket is unbounded above.
func graduatedTax(price float64, brackets []Bracket) float64 {
	tax := 0.0
	for i, bracket := range brackets {
		if price <= bracket.Threshold {
			break
		}
		upper := price
		if i+1 < len(brackets) && brackets[i+1].Threshold < price {
			upper = brackets[i+1].Threshold
		}
		tax += (upper - bracket.Threshold) * bracket.Rate
	}
	return tax
}

// Calculate computes land transfer tax for a purchase. A non-nil
// manualOverride of at least zero short-circuits all computation. Provinces
// other than Ontario return zero. Toronto purchases (matched by
// case-insensitive substring) pay the municipal table on top of the
// provincial one.
func Calculate(price float64, city, province string, closingDate *time.Time, manualOverride *float64) Result {
	if manualOverride != nil && *manualOverride >= 0 {
		return Result{Amount: *manualOverride, ScheduleUsed: "manual-override"}
	}

	if !strings.EqualFold(strings.TrimSpace(province), "ON") {
		return Result{ScheduleUsed: "none"}
	}

	sched, warning := selectSchedule(closingDate)

	amount := graduatedTax(price, sched.Provincial)
	if strings.Contains(strings.ToLower(city), "toronto") {
		amount += graduatedTax(price, sched.Toronto)
	}

	return Result{Amount: amount, Warning: warning, ScheduleUsed: sched.Name}
}

// CutoverDate returns the date the post-cutover rate schedule takes effect.
func CutoverDate() time.Time {
	return cutoverDate
}

// Schedules returns the configured rate schedules, oldest first.
func Schedules() []RateSchedule {
	return []RateSchedule{schedule2024, schedule2026}
}
