// Package schedule generates and validates mortgage amortization schedules.
package schedule

import (
	"errors"
	"time"

	"github.com/88scooper/propcalc/pkg/datetime"
	"github.com/88scooper/propcalc/pkg/frequency"
)

// ErrInvalidMortgageTerms indicates a non-positive principal, negative rate,
// or non-positive amortization length.
var ErrInvalidMortgageTerms = errors.New("invalid mortgage terms")

// ErrNonAmortizingPayment indicates the level payment does not exceed the
// interest accruing on the balance, so the schedule would never reach zero.
var ErrNonAmortizingPayment = errors.New("payment does not cover interest")

// RateType distinguishes fixed- and variable-rate mortgages.
type RateType string

const (
	Fixed    RateType = "fixed"
	Variable RateType = "variable"
)

// Terms holds the lender terms a schedule is generated from. Terms are
// treated as immutable once constructed.
type Terms struct {
	// LenderReference identifies the mortgage account; used to select an
	// authoritative schedule source when one is registered.
	LenderReference string

	OriginalAmount    float64 // starting principal, > 0
	InterestRate      float64 // nominal annual rate as a decimal, >= 0
	RateType          RateType
	AmortizationYears float64 // > 0
	Frequency         frequency.Frequency
	StartDate         time.Time

	// CurrentBalance, when positive, is the authoritative live balance and
	// overrides the balance implied by elapsed time.
	CurrentBalance float64

	// TermMonths is the contract term, which may be shorter than the
	// amortization. Informational; the schedule runs to full amortization.
	TermMonths int

	// MonthlyPayment, when positive, is a lender-stated monthly payment that
	// takes precedence over the derived figure in metric calculations.
	MonthlyPayment float64
}

// PaymentRecord is one payment in an amortization schedule. Records are
// values; a schedule is recomputed, never mutated in place.
type PaymentRecord struct {
	PaymentNumber    int
	PaymentDate      time.Time
	TotalPayment     float64
	PrincipalPortion float64
	InterestPortion  float64
	RemainingBalance float64
}

// Schedule is a complete chronological amortization schedule.
type Schedule struct {
	Payments          []PaymentRecord
	TotalInterest     float64
	TotalPaymentCount int
	FinalPaymentDate  time.Time
}

// PaymentDate returns the calendar date of payment n (1-based) for a loan
// starting at start. Monthly payments land on the same day-of-month, clamped
// to shorter months; semi-monthly payments alternate between the 1st and 15th;
// bi-weekly and weekly payments step by exactly 14 and 7 days.
func PaymentDate(start time.Time, f frequency.Frequency, n int) time.Time {
	switch f {
	case frequency.Monthly:
		return datetime.AddMonthsClamped(start, n)
	case frequency.SemiMonthly:
		return datetime.SemiMonthlyDate(start, n)
	case frequency.BiWeekly, frequency.AcceleratedBiWeekly:
		return datetime.AddDays(start, 14*n)
	case frequency.Weekly, frequency.AcceleratedWeekly:
		return datetime.AddDays(start, 7*n)
	default:
		return start
	}
}

// NextPaymentIndex returns the index of the first payment dated on or after
// asOf, or -1 when every payment is in the past.
func (s *Schedule) NextPaymentIndex(asOf time.Time) int {
	cutoff := datetime.Truncate(asOf)
	for i, p := range s.Payments {
		if !p.PaymentDate.Before(cutoff) {
			return i
		}
	}
	return -1
}

// NextPayment returns the first payment dated on or after asOf, or the final
// payment when the schedule has fully elapsed. The second return is false for
// an empty schedule.
func (s *Schedule) NextPayment(asOf time.Time) (PaymentRecord, bool) {
	if len(s.Payments) == 0 {
		return PaymentRecord{}, false
	}
	idx := s.NextPaymentIndex(asOf)
	if idx < 0 {
		idx = len(s.Payments) - 1
	}
	return s.Payments[idx], true
}

// UpcomingInterest sums the interest portions of the n payments starting at
// the first payment on or after asOf. When fewer than n payments remain the
// window slides back to cover the final n payments; when the schedule has
// fully elapsed it covers the last n.
func (s *Schedule) UpcomingInterest(asOf time.Time, n int) float64 {
	if len(s.Payments) == 0 || n <= 0 {
		return 0
	}
	idx := s.NextPaymentIndex(asOf)
	if idx < 0 || idx > len(s.Payments)-n {
		idx = len(s.Payments) - n
		if idx < 0 {
			idx = 0
		}
	}
	total := 0.0
	for i := idx; i < len(s.Payments) && i < idx+n; i++ {
		total += s.Payments[i].InterestPortion
	}
	return total
}
