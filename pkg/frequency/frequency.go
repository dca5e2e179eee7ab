// Package frequency defines Canadian mortgage payment frequencies and the
// rate conversions that depend on them.
//
// Fixed-rate Canadian mortgages compound semi-annually regardless of payment
// cadence, so the periodic rate for a frequency is derived from the
// semi-annual rate rather than by dividing the annual rate by the number of
// payments.
package frequency

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/88scooper/propcalc/pkg/constants"
)

// ErrInvalidFrequency indicates an unrecognized payment-frequency token.
var ErrInvalidFrequency = errors.New("invalid payment frequency")

// Frequency identifies a mortgage payment cadence.
type Frequency string

const (
	Monthly             Frequency = "monthly"
	SemiMonthly         Frequency = "semi-monthly"
	BiWeekly            Frequency = "bi-weekly"
	AcceleratedBiWeekly Frequency = "accelerated-bi-weekly"
	Weekly              Frequency = "weekly"
	AcceleratedWeekly   Frequency = "accelerated-weekly"
)

// normalize lowercases a token and strips separators so that inputs such as
// "Accelerated_Bi-Weekly" and "accelerated biweekly" match.
func normalize(s string) string {
	replacer := strings.NewReplacer("_", "", "-", "", " ", "")
	return replacer.Replace(strings.ToLower(s))
}

// Parse converts a payment-frequency token into a Frequency. Matching is
// case-insensitive and ignores underscores, hyphens and spaces. Unrecognized
// tokens fail with ErrInvalidFrequency rather than defaulting to Monthly.
func Parse(s string) (Frequency, error) {
	switch normalize(s) {
	case "monthly":
		return Monthly, nil
	case "semimonthly":
		return SemiMonthly, nil
	case "biweekly":
		return BiWeekly, nil
	case "acceleratedbiweekly":
		return AcceleratedBiWeekly, nil
	case "weekly":
		return Weekly, nil
	case "acceleratedweekly":
		return AcceleratedWeekly, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFrequency, s)
	}
}

// PaymentsPerYear returns the number of payments made per year.
func (f Frequency) PaymentsPerYear() int {
	switch f {
	case Monthly:
		return 12
	case SemiMonthly:
		return 24
	case BiWeekly, AcceleratedBiWeekly:
		return 26
	case Weekly, AcceleratedWeekly:
		return 52
	default:
		return 0
	}
}

// compoundingSteps returns the number of payment periods per semi-annual
// compounding period.
func (f Frequency) compoundingSteps() int {
	switch f {
	case Monthly, SemiMonthly:
		return 6
	case BiWeekly, AcceleratedBiWeekly:
		return 13
	case Weekly, AcceleratedWeekly:
		return 26
	default:
		return 0
	}
}

// IsAccelerated reports whether the frequency is one of the accelerated
// variants, which pay a fraction of the plain monthly payment more often.
func (f Frequency) IsAccelerated() bool {
	return f == AcceleratedBiWeekly || f == AcceleratedWeekly
}

// PeriodicRate converts a nominal annual rate (as a decimal, e.g. 0.05) into
// the rate applied once per payment period under semi-annual compounding:
// (1 + annual/2)^(1/k) - 1 where k is the number of periods per half-year.
func PeriodicRate(annualRate float64, f Frequency) float64 {
	if annualRate == 0 {
		return 0
	}
	semiAnnualRate := annualRate / constants.SemiAnnualPeriods
	return math.Pow(1+semiAnnualRate, 1/float64(f.compoundingSteps())) - 1
}

// TotalPayments returns the number of payments over the full amortization.
func TotalPayments(amortizationYears float64, f Frequency) int {
	return int(math.Round(amortizationYears * float64(f.PaymentsPerYear())))
}

// MonthlyEquivalentFactor returns the multiplier that converts a per-payment
// amount at this frequency into its monthly-equivalent value. Semi-monthly
// amounts are reported unchanged; bi-weekly and weekly amounts scale by the
// ratio of payments per year to months per year. The accelerated variants use
// the same factors as their plain counterparts because their per-payment
// amount is already defined as a fraction of the plain monthly payment.
func (f Frequency) MonthlyEquivalentFactor() float64 {
	switch f {
	case Monthly, SemiMonthly:
		return 1
	case BiWeekly, AcceleratedBiWeekly:
		return 26.0 / constants.MonthsPerYear
	case Weekly, AcceleratedWeekly:
		return 52.0 / constants.MonthsPerYear
	default:
		return 1
	}
}

// String returns the canonical token for the frequency.
func (f Frequency) String() string {
	return string(f)
}
