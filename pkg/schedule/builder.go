package schedule

import (
	"fmt"
	"math"
	"time"

	"github.com/88scooper/propcalc/pkg/constants"
	"github.com/88scooper/propcalc/pkg/datetime"
	"github.com/88scooper/propcalc/pkg/frequency"
	"go.uber.org/zap"
)

// Builder generates amortization schedules from mortgage terms.
type Builder struct {
	logger *zap.Logger
}

// NewBuilder creates a schedule builder.
func NewBuilder(logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{logger: logger}
}

// PaymentAmount returns the level per-payment amount the lender fixed at
// origination, computed from the original principal over the full
// amortization. The accelerated frequencies pay half (bi-weekly) or a quarter
// (weekly) of the plain monthly payment rather than their own annuity amount;
// paying that fraction 26 or 52 times a year is what shortens the payoff.
func PaymentAmount(terms Terms) (float64, error) {
	if err := validateTerms(terms); err != nil {
		return 0, err
	}

	f := terms.Frequency
	divisor := 1.0
	if f == frequency.AcceleratedBiWeekly {
		f = frequency.Monthly
		divisor = 2.0
	} else if f == frequency.AcceleratedWeekly {
		f = frequency.Monthly
		divisor = 4.0
	}

	n := frequency.TotalPayments(terms.AmortizationYears, f)
	r := frequency.PeriodicRate(terms.InterestRate, f)
	if r == 0 {
		return terms.OriginalAmount / float64(n) / divisor, nil
	}
	payment := terms.OriginalAmount * r / (1 - math.Pow(1+r, -float64(n)))
	return payment / divisor, nil
}

// Build generates the complete amortization schedule for the given terms.
// asOf anchors the "resume from a live balance" case: when CurrentBalance is
// set, no payment dated before asOf is emitted.
func (b *Builder) Build(terms Terms, asOf time.Time) (*Schedule, error) {
	payment, err := PaymentAmount(terms)
	if err != nil {
		return nil, err
	}

	r := frequency.PeriodicRate(terms.InterestRate, terms.Frequency)
	totalPayments := frequency.TotalPayments(terms.AmortizationYears, terms.Frequency)

	balance := terms.OriginalAmount
	startNumber := 1
	if terms.CurrentBalance > 0 && terms.CurrentBalance < terms.OriginalAmount {
		startNumber, err = b.resumePaymentNumber(terms, payment, r, totalPayments, asOf)
		if err != nil {
			return nil, err
		}
		balance = terms.CurrentBalance
	}

	if r > 0 && payment <= balance*r {
		return nil, fmt.Errorf("%w: payment %.2f against interest %.2f",
			ErrNonAmortizingPayment, payment, balance*r)
	}

	sched := &Schedule{}
	// The loop cap guards against rounding keeping the balance above epsilon
	// one period past the nominal term.
	for number := startNumber; balance > constants.BalanceEpsilon; number++ {
		if number > 2*totalPayments+2 {
			return nil, fmt.Errorf("%w: balance %.2f remaining after %d payments",
				ErrNonAmortizingPayment, balance, number-1)
		}

		interest := balance * r
		principal := payment - interest
		if principal > balance {
			principal = balance
		}
		remaining := balance - principal
		if remaining <= constants.BalanceEpsilon {
			// Absorb the rounding residue into the final payment instead of
			// leaving a non-zero tail.
			principal += remaining
			remaining = 0
		}

		sched.Payments = append(sched.Payments, PaymentRecord{
			PaymentNumber:    number,
			PaymentDate:      PaymentDate(terms.StartDate, terms.Frequency, number),
			TotalPayment:     principal + interest,
			PrincipalPortion: principal,
			InterestPortion:  interest,
			RemainingBalance: remaining,
		})
		sched.TotalInterest += interest
		balance = remaining
	}

	sched.TotalPaymentCount = len(sched.Payments)
	if sched.TotalPaymentCount > 0 {
		sched.FinalPaymentDate = sched.Payments[sched.TotalPaymentCount-1].PaymentDate
	}

	b.logger.Debug(fmt.Sprintf("generated %d payments for %s starting at payment %d",
		sched.TotalPaymentCount, terms.LenderReference, startNumber),
		zap.String("op", "schedule.Build"),
	)
	return sched, nil
}

// RemainingPayments returns the number of level payments needed to retire a
// balance at the given periodic rate, solving the annuity formula in closed
// form. A payment that does not exceed the interest accruing per period can
// never retire the balance and fails with ErrNonAmortizingPayment.
func RemainingPayments(balance, payment, periodicRate float64) (int, error) {
	if periodicRate == 0 {
		return int(math.Ceil(balance / payment)), nil
	}
	if payment <= balance*periodicRate {
		return 0, fmt.Errorf("%w: payment %.2f against interest %.2f",
			ErrNonAmortizingPayment, payment, balance*periodicRate)
	}
	return int(math.Ceil(-math.Log(1-balance*periodicRate/payment) / math.Log(1+periodicRate))), nil
}

// resumePaymentNumber locates the payment number to resume from when a live
// balance is known. The closed-form remaining-payment count gives an estimate;
// the schedule then scans forward so no emitted payment predates asOf.
func (b *Builder) resumePaymentNumber(terms Terms, payment, r float64, totalPayments int, asOf time.Time) (int, error) {
	remaining, err := RemainingPayments(terms.CurrentBalance, payment, r)
	if err != nil {
		return 0, err
	}

	number := totalPayments - remaining + 1
	if number < 1 {
		number = 1
	}

	// Never emit past-dated payments when resuming from a live balance.
	cutoff := datetime.Truncate(asOf)
	for PaymentDate(terms.StartDate, terms.Frequency, number).Before(cutoff) {
		number++
	}
	return number, nil
}

func validateTerms(terms Terms) error {
	if terms.OriginalAmount <= 0 {
		return fmt.Errorf("%w: original amount %.2f", ErrInvalidMortgageTerms, terms.OriginalAmount)
	}
	if terms.InterestRate < 0 {
		return fmt.Errorf("%w: interest rate %.4f", ErrInvalidMortgageTerms, terms.InterestRate)
	}
	if terms.AmortizationYears <= 0 {
		return fmt.Errorf("%w: amortization %.1f years", ErrInvalidMortgageTerms, terms.AmortizationYears)
	}
	if terms.Frequency.PaymentsPerYear() == 0 {
		return fmt.Errorf("%w: %q", frequency.ErrInvalidFrequency, string(terms.Frequency))
	}
	return nil
}
