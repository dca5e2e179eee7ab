// Package irr builds multi-year cash-flow vectors for a property hold and
// solves for the internal rate of return.
package irr

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/88scooper/propcalc/pkg/constants"
	"github.com/88scooper/propcalc/pkg/mathutil"
	"github.com/88scooper/propcalc/pkg/metrics"
)

// ErrNonNegativeInitialFlow indicates a cash-flow vector whose index-0 entry
// is not a negative outflow. That is a caller error, not a solvable input.
var ErrNonNegativeInitialFlow = errors.New("initial cash flow must be negative")

// ErrEmptyCashFlows indicates a vector with fewer than two entries.
var ErrEmptyCashFlows = errors.New("cash flow vector needs at least two entries")

// Options tunes the Newton-Raphson solver. Zero values take the defaults.
type Options struct {
	Tolerance     float64
	MaxIterations int
}

// Result carries the solved rate along with status flags so callers can tell
// a clean result from a clamped or non-converged one.
type Result struct {
	// Rate is the internal rate of return as a percentage, clamped to
	// [IRRMinPercent, IRRMaxPercent].
	Rate       float64
	Converged  bool
	Clamped    bool
	Iterations int
}

// ProjectionOptions describes the holding-period assumptions for a cash-flow
// projection.
type ProjectionOptions struct {
	// Years is the holding period; the vector spans indices 0..Years.
	Years int

	// ExitCapRate, as a percentage, values the terminal sale as
	// NOI / (rate/100). When zero or the result is not a positive finite
	// value, the flat appreciation fallback applies.
	ExitCapRate float64

	// SellingCostsPercent deducts from the terminal sale value; zero takes
	// the default.
	SellingCostsPercent float64
}

// NPV returns the net present value of a yearly cash-flow vector at the given
// decimal rate.
func NPV(cashFlows []float64, rate float64) float64 {
	npv := 0.0
	for t, cf := range cashFlows {
		npv += cf / math.Pow(1+rate, float64(t))
	}
	return npv
}

// npvDerivative returns dNPV/drate for the vector at the given rate.
func npvDerivative(cashFlows []float64, rate float64) float64 {
	derivative := 0.0
	for t, cf := range cashFlows {
		derivative += -float64(t) * cf / math.Pow(1+rate, float64(t+1))
	}
	return derivative
}

// Solve finds the rate making the vector's NPV zero via Newton-Raphson. A
// divergent or non-converging vector yields a clamped Result with the flags
// set rather than an error; only a malformed vector errors.
func Solve(cashFlows []float64, opts Options) (Result, error) {
	if len(cashFlows) < 2 {
		return Result{}, ErrEmptyCashFlows
	}
	if cashFlows[0] >= 0 {
		return Result{}, fmt.Errorf("%w: got %.2f", ErrNonNegativeInitialFlow, cashFlows[0])
	}

	tolerance := opts.Tolerance
	if tolerance <= 0 {
		tolerance = constants.IRRTolerance
	}
	maxIterations := opts.MaxIterations
	if maxIterations <= 0 {
		maxIterations = constants.IRRMaxIterations
	}

	rate := constants.IRRInitialGuess
	result := Result{}
	for i := 0; i < maxIterations; i++ {
		result.Iterations = i + 1

		derivative := npvDerivative(cashFlows, rate)
		if math.Abs(derivative) < tolerance {
			// A flat spot would divide by nearly zero; nudge and retry.
			rate *= 1.1
			continue
		}

		next := rate - NPV(cashFlows, rate)/derivative
		if !mathutil.IsFinite(next) {
			rate *= 0.9
			continue
		}

		if math.Abs(next-rate) < tolerance {
			rate = next
			result.Converged = true
			break
		}
		rate = next
	}

	percent := rate * constants.PercentageMultiplier
	if !mathutil.IsFinite(percent) || percent < constants.IRRMinPercent || percent > constants.IRRMaxPercent {
		result.Clamped = true
		percent = mathutil.Clamp(percent, constants.IRRMinPercent, constants.IRRMaxPercent)
		if !mathutil.IsFinite(percent) {
			percent = constants.IRRMaxPercent
		}
	}
	result.Rate = percent
	return result, nil
}

// BuildCashFlows assembles the yearly cash-flow vector for a holding period:
// the initial investment as a negative outflow, the current-year cash flow
// run-rate held flat across the horizon, and net terminal sale proceeds added
// to the final year. Growth forecasting is deliberately a consumer concern.
func BuildCashFlows(engine *metrics.Engine, fin metrics.PropertyFinancials, opts ProjectionOptions, asOf time.Time) ([]float64, error) {
	if opts.Years < 1 {
		return nil, fmt.Errorf("holding period must be at least 1 year, got %d", opts.Years)
	}
	if fin.TotalInvestment <= 0 {
		return nil, fmt.Errorf("%w: total investment %.2f", ErrNonNegativeInitialFlow, fin.TotalInvestment)
	}

	sellingCosts := opts.SellingCostsPercent
	if sellingCosts <= 0 {
		sellingCosts = constants.DefaultSellingCostsPercent
	}

	cashFlows := make([]float64, opts.Years+1)
	cashFlows[0] = -fin.TotalInvestment

	annualCashFlow := engine.AnnualCashFlow(fin, asOf)
	for year := 1; year <= opts.Years; year++ {
		cashFlows[year] = annualCashFlow
	}

	futureValue := terminalValue(fin, opts)

	// The exit balance approximates amortization linearly from the current
	// run-rate principal reduction, not the payment schedule.
	futureBalance := 0.0
	if fin.Mortgage != nil {
		balance := fin.Mortgage.CurrentBalance
		if balance <= 0 {
			balance = fin.Mortgage.OriginalAmount
		}
		annualPrincipal := engine.AnnualDebtService(fin, asOf) - engine.AnnualMortgageInterest(fin, asOf)
		futureBalance = mathutil.Max(0, balance-annualPrincipal*float64(opts.Years))
	}

	netSaleProceeds := futureValue - futureBalance - futureValue*sellingCosts/constants.PercentageMultiplier
	cashFlows[opts.Years] += netSaleProceeds

	return cashFlows, nil
}

// terminalValue prices the exit sale: by exit cap rate on the final-year NOI
// when that produces a positive finite value, otherwise by flat annual
// appreciation on the current market value.
func terminalValue(fin metrics.PropertyFinancials, opts ProjectionOptions) float64 {
	if opts.ExitCapRate > 0 {
		value := metrics.NOI(fin) / (opts.ExitCapRate / constants.PercentageMultiplier)
		if mathutil.IsFinite(value) && value > 0 {
			return value
		}
	}
	return fin.CurrentMarketValue * math.Pow(1+constants.DefaultAppreciationRate, float64(opts.Years))
}
