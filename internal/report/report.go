// Package report provides utilities for formatting and displaying computed
// property metrics.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/88scooper/propcalc/pkg/constants"
	"github.com/88scooper/propcalc/pkg/format"
	"github.com/88scooper/propcalc/pkg/irr"
	"github.com/88scooper/propcalc/pkg/ltt"
	"github.com/88scooper/propcalc/pkg/metrics"
)

// ScheduleSummary condenses an amortization schedule for display.
type ScheduleSummary struct {
	PaymentCount     int
	TotalInterest    float64
	FinalPaymentDate time.Time
	NextPaymentDate  time.Time
	NextPayment      float64
}

// PropertyReport is everything computed for one property.
type PropertyReport struct {
	Name     string
	Metrics  metrics.Summary
	IRR      *irr.Result // nil when no projection could be built
	LTT      ltt.Result
	Schedule *ScheduleSummary // nil without a mortgage
	Warnings []string
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(reports []PropertyReport) {
	for _, r := range reports {
		fmt.Printf("--- Results for property %s ---\n", r.Name)
		fmt.Printf("NOI                  | %s\n", format.Currency(r.Metrics.NOI))
		fmt.Printf("Cap rate             | %s\n", format.Percent(r.Metrics.CapRate))
		fmt.Printf("Operating expenses   | %s / yr\n", format.Currency(r.Metrics.AnnualOperatingExpenses))
		fmt.Printf("Debt service         | %s / yr\n", format.Currency(r.Metrics.AnnualDebtService))
		fmt.Printf("DSCR                 | %s\n", format.Ratio(r.Metrics.DSCR))
		fmt.Printf("Cash flow            | %s / mo, %s / yr\n",
			format.Currency(r.Metrics.MonthlyCashFlow), format.Currency(r.Metrics.AnnualCashFlow))
		fmt.Printf("Cash-on-cash return  | %s\n", format.Percent(r.Metrics.CashOnCashReturn))
		fmt.Printf("Tax savings          | %s / yr\n", format.Currency(r.Metrics.AnnualTaxSavings))
		fmt.Printf("After-tax cash flow  | %s / yr\n", format.Currency(r.Metrics.AfterTaxCashFlow))
		if r.IRR != nil {
			fmt.Printf("IRR                  | %s%s\n", format.Percent(r.IRR.Rate), irrQualifier(*r.IRR))
		}
		fmt.Printf("Land transfer tax    | %s (%s schedule)\n", format.Currency(r.LTT.Amount), r.LTT.ScheduleUsed)
		if r.Schedule != nil {
			fmt.Printf("Mortgage             | %d payments, %s total interest, final payment %s\n",
				r.Schedule.PaymentCount, format.Currency(r.Schedule.TotalInterest),
				r.Schedule.FinalPaymentDate.Format(constants.DateLayout))
			fmt.Printf("Next payment         | %s on %s\n",
				format.Currency(r.Schedule.NextPayment),
				r.Schedule.NextPaymentDate.Format(constants.DateLayout))
		}
		for _, warning := range r.Warnings {
			fmt.Printf("Warning              | %s\n", warning)
		}
		if len(reports) > 1 {
			fmt.Printf("\n")
		}
	}
}

// CsvFormat outputs in comma-separated value format, one row per property.
func CsvFormat(reports []PropertyReport) {
	fmt.Printf(`"property","noi","cap_rate","annual_operating_expenses","annual_debt_service",` +
		`"dscr","monthly_cash_flow","annual_cash_flow","cash_on_cash","annual_tax_savings",` +
		`"after_tax_cash_flow","irr","irr_clamped","ltt","ltt_schedule","warnings"` + "\n")
	for _, r := range reports {
		irrValue := ""
		irrClamped := ""
		if r.IRR != nil {
			irrValue = fmt.Sprintf("%.2f", r.IRR.Rate)
			irrClamped = fmt.Sprintf("%t", r.IRR.Clamped)
		}
		fmt.Printf(`"%s","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f","%s","%s","%.2f","%s","%s"`+"\n",
			r.Name,
			r.Metrics.NOI,
			r.Metrics.CapRate,
			r.Metrics.AnnualOperatingExpenses,
			r.Metrics.AnnualDebtService,
			r.Metrics.DSCR,
			r.Metrics.MonthlyCashFlow,
			r.Metrics.AnnualCashFlow,
			r.Metrics.CashOnCashReturn,
			r.Metrics.AnnualTaxSavings,
			r.Metrics.AfterTaxCashFlow,
			irrValue,
			irrClamped,
			r.LTT.Amount,
			r.LTT.ScheduleUsed,
			strings.Join(r.Warnings, "; "),
		)
	}
}

// irrQualifier annotates an IRR figure whose solver status needs a
// disclaimer.
func irrQualifier(result irr.Result) string {
	switch {
	case result.Clamped:
		return " (clamped)"
	case !result.Converged:
		return " (did not converge)"
	default:
		return ""
	}
}
