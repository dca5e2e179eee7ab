package schedule

import (
	"github.com/88scooper/propcalc/pkg/frequency"
)

// MonthlyEquivalent converts a per-payment amount at the given frequency into
// its monthly-equivalent value. The same factor applies whether the amount is
// a payment, a principal portion, or an interest portion.
func MonthlyEquivalent(amount float64, f frequency.Frequency) float64 {
	return amount * f.MonthlyEquivalentFactor()
}

// MonthlyEquivalentPayment returns the monthly-equivalent level payment for
// the given terms. For the accelerated frequencies this reproduces the
// product definition: the plain monthly payment for the same loan, halved or
// quartered, paid 26 or 52 times per year.
func MonthlyEquivalentPayment(terms Terms) (float64, error) {
	payment, err := PaymentAmount(terms)
	if err != nil {
		return 0, err
	}
	return MonthlyEquivalent(payment, terms.Frequency), nil
}

// MonthlyEquivalentRecord returns the payment, principal and interest of a
// record scaled to their monthly-equivalent values.
func MonthlyEquivalentRecord(rec PaymentRecord, f frequency.Frequency) (payment, principal, interest float64) {
	factor := f.MonthlyEquivalentFactor()
	return rec.TotalPayment * factor, rec.PrincipalPortion * factor, rec.InterestPortion * factor
}
