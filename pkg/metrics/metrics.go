// Package metrics derives point-in-time investment metrics for a rental
// property from its financials and mortgage schedule.
//
// Every metric degrades to zero when the data it needs is absent; consuming
// code relies on zero-as-missing-data semantics, so missing fields are not
// errors here.
package metrics

import (
	"fmt"
	"time"

	"github.com/88scooper/propcalc/pkg/constants"
	"github.com/88scooper/propcalc/pkg/mathutil"
	"github.com/88scooper/propcalc/pkg/schedule"
	"go.uber.org/zap"
)

// MonthlyExpenses itemizes a property's recurring monthly operating costs.
// Debt service is deliberately excluded.
type MonthlyExpenses struct {
	PropertyTax      float64
	CondoFees        float64
	Insurance        float64
	Maintenance      float64
	ProfessionalFees float64
	Utilities        float64
}

// Total returns the combined monthly operating expense.
func (e MonthlyExpenses) Total() float64 {
	return e.PropertyTax + e.CondoFees + e.Insurance + e.Maintenance +
		e.ProfessionalFees + e.Utilities
}

// PropertyFinancials is the read-only input assembled by the caller.
type PropertyFinancials struct {
	AnnualRent         float64
	MonthlyExpenses    MonthlyExpenses
	VacancyRate        float64 // fraction in [0,1]; clamped when outside
	CurrentMarketValue float64
	TotalInvestment    float64
	Mortgage           *schedule.Terms
}

// Summary collects every derived metric for one property. Percentages are
// expressed as x100 values (3.25 means 3.25%); DSCR is a unitless ratio.
type Summary struct {
	AnnualOperatingExpenses float64
	NOI                     float64
	CapRate                 float64
	AnnualDebtService       float64
	DSCR                    float64
	MonthlyCashFlow         float64
	AnnualCashFlow          float64
	CashOnCashReturn        float64
	AnnualMortgageInterest  float64
	AnnualTaxSavings        float64
	AfterTaxCashFlow        float64
}

// Engine computes investment metrics. Mortgage schedules are resolved through
// a source registry so that lender-authoritative histories take precedence
// over the annuity formula.
type Engine struct {
	logger  *zap.Logger
	sources *schedule.SourceRegistry
}

// NewEngine creates a metrics engine. A nil registry gets a fresh one with
// only the computed annuity source.
func NewEngine(logger *zap.Logger, sources *schedule.SourceRegistry) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if sources == nil {
		sources = schedule.NewSourceRegistry(logger)
	}
	return &Engine{logger: logger, sources: sources}
}

// AnnualOperatingExpenses returns twelve months of operating costs, excluding
// debt service.
func AnnualOperatingExpenses(fin PropertyFinancials) float64 {
	return constants.MonthsPerYear * fin.MonthlyExpenses.Total()
}

// NOI returns net operating income: rent after vacancy, before debt service.
func NOI(fin PropertyFinancials) float64 {
	vacancy := mathutil.Clamp(fin.VacancyRate, 0, 1)
	return fin.AnnualRent*(1-vacancy) - AnnualOperatingExpenses(fin)
}

// CapRate returns NOI as a percentage of current market value, or 0 when the
// market value is not positive.
func CapRate(fin PropertyFinancials) float64 {
	if fin.CurrentMarketValue <= 0 {
		return 0
	}
	return NOI(fin) / fin.CurrentMarketValue * constants.PercentageMultiplier
}

// paymentStep is one step in the ordered fallback chain for the monthly
// mortgage payment. Steps are tried in order; the first applicable one wins.
type paymentStep struct {
	name string
	eval func() (float64, bool)
}

// MonthlyMortgagePayment returns the monthly-equivalent mortgage payment via
// an explicit fallback chain: the lender-stated monthly payment when present
// and positive, then the schedule's next upcoming payment as of asOf, then
// the annuity formula when no schedule can be produced. Returns 0 without a
// mortgage.
func (e *Engine) MonthlyMortgagePayment(fin PropertyFinancials, asOf time.Time) float64 {
	if fin.Mortgage == nil {
		return 0
	}
	terms := *fin.Mortgage

	steps := []paymentStep{
		{
			name: "stored",
			eval: func() (float64, bool) {
				return terms.MonthlyPayment, terms.MonthlyPayment > 0
			},
		},
		{
			name: "schedule",
			eval: func() (float64, bool) {
				sched, err := e.sources.Resolve(terms, asOf)
				if err != nil {
					return 0, false
				}
				rec, ok := sched.NextPayment(asOf)
				if !ok {
					return 0, false
				}
				return schedule.MonthlyEquivalent(rec.TotalPayment, terms.Frequency), true
			},
		},
		{
			name: "annuity",
			eval: func() (float64, bool) {
				payment, err := schedule.MonthlyEquivalentPayment(terms)
				return payment, err == nil
			},
		},
	}

	for _, step := range steps {
		if value, ok := step.eval(); ok {
			e.logger.Debug(fmt.Sprintf("monthly payment %.2f via %s for %s",
				value, step.name, terms.LenderReference),
				zap.String("op", "metrics.MonthlyMortgagePayment"),
			)
			return value
		}
	}
	return 0
}

// AnnualDebtService returns twelve months of mortgage payments.
func (e *Engine) AnnualDebtService(fin PropertyFinancials, asOf time.Time) float64 {
	return e.MonthlyMortgagePayment(fin, asOf) * constants.MonthsPerYear
}

// DSCR returns NOI over annual debt service, or 0 when debt service is not
// positive.
func (e *Engine) DSCR(fin PropertyFinancials, asOf time.Time) float64 {
	debtService := e.AnnualDebtService(fin, asOf)
	if debtService <= 0 {
		return 0
	}
	return NOI(fin) / debtService
}

// MonthlyCashFlow returns rent less operating expenses less mortgage payment
// for one month.
func (e *Engine) MonthlyCashFlow(fin PropertyFinancials, asOf time.Time) float64 {
	monthlyRent := fin.AnnualRent / constants.MonthsPerYear
	return monthlyRent - fin.MonthlyExpenses.Total() - e.MonthlyMortgagePayment(fin, asOf)
}

// AnnualCashFlow returns twelve months of cash flow.
func (e *Engine) AnnualCashFlow(fin PropertyFinancials, asOf time.Time) float64 {
	return e.MonthlyCashFlow(fin, asOf) * constants.MonthsPerYear
}

// CashOnCashReturn returns annual cash flow as a percentage of cash invested,
// or 0 when the investment is not positive.
func (e *Engine) CashOnCashReturn(fin PropertyFinancials, asOf time.Time) float64 {
	if fin.TotalInvestment <= 0 {
		return 0
	}
	return e.AnnualCashFlow(fin, asOf) / fin.TotalInvestment * constants.PercentageMultiplier
}

// AnnualMortgageInterest sums the interest across the next twelve scheduled
// payments from asOf. This is a rolling window, not a calendar-year sum: when
// no payments have occurred it covers the first twelve, and when fewer than
// twelve remain it covers the last twelve.
func (e *Engine) AnnualMortgageInterest(fin PropertyFinancials, asOf time.Time) float64 {
	if fin.Mortgage == nil {
		return 0
	}
	sched, err := e.sources.Resolve(*fin.Mortgage, asOf)
	if err != nil {
		return 0
	}
	return sched.UpcomingInterest(asOf, constants.TaxSavingsWindowPayments)
}

// AnnualTaxSavings returns the tax shield from deductible mortgage interest.
// A non-positive marginal rate falls back to the default.
func (e *Engine) AnnualTaxSavings(fin PropertyFinancials, marginalRate float64, asOf time.Time) float64 {
	if marginalRate <= 0 {
		marginalRate = constants.DefaultMarginalTaxRate
	}
	return e.AnnualMortgageInterest(fin, asOf) * marginalRate
}

// AfterTaxCashFlow returns annual cash flow plus the mortgage-interest tax
// shield.
func (e *Engine) AfterTaxCashFlow(fin PropertyFinancials, marginalRate float64, asOf time.Time) float64 {
	return e.AnnualCashFlow(fin, asOf) + e.AnnualTaxSavings(fin, marginalRate, asOf)
}

// Summarize computes the full metric set for one property.
func (e *Engine) Summarize(fin PropertyFinancials, marginalRate float64, asOf time.Time) Summary {
	return Summary{
		AnnualOperatingExpenses: AnnualOperatingExpenses(fin),
		NOI:                     NOI(fin),
		CapRate:                 CapRate(fin),
		AnnualDebtService:       e.AnnualDebtService(fin, asOf),
		DSCR:                    e.DSCR(fin, asOf),
		MonthlyCashFlow:         e.MonthlyCashFlow(fin, asOf),
		AnnualCashFlow:          e.AnnualCashFlow(fin, asOf),
		CashOnCashReturn:        e.CashOnCashReturn(fin, asOf),
		AnnualMortgageInterest:  e.AnnualMortgageInterest(fin, asOf),
		AnnualTaxSavings:        e.AnnualTaxSavings(fin, marginalRate, asOf),
		AfterTaxCashFlow:        e.AfterTaxCashFlow(fin, marginalRate, asOf),
	}
}
