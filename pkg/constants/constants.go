// Package constants provides shared constants for the propcalc engine.
package constants

// DateLayout is the format expected in config files and is also the output
// date format.
const DateLayout = "2006-01-02"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// SemiAnnualPeriods is the number of compounding periods per year under
	// the Canadian fixed-rate mortgage convention.
	SemiAnnualPeriods = 2
)

// Schedule constants
const (
	// BalanceEpsilon is the remaining-balance threshold below which the next
	// payment is treated as the final payment and absorbs the residue.
	BalanceEpsilon = 0.01

	// ScheduleFinalBalanceTolerance is the largest absolute final balance an
	// externally supplied schedule may carry and still validate.
	ScheduleFinalBalanceTolerance = 10.0
)

// IRR solver defaults
const (
	// IRRInitialGuess is the Newton-Raphson starting rate.
	IRRInitialGuess = 0.10

	// IRRTolerance is the default convergence tolerance.
	IRRTolerance = 1e-6

	// IRRMaxIterations is the default iteration cap.
	IRRMaxIterations = 1000

	// IRRMinPercent and IRRMaxPercent bound the reported rate.
	IRRMinPercent = -99.0
	IRRMaxPercent = 500.0

	// DefaultSellingCostsPercent is applied to terminal sale proceeds when the
	// caller does not supply selling costs.
	DefaultSellingCostsPercent = 5.0

	// DefaultAppreciationRate is the flat annual appreciation assumption used
	// when no exit cap rate is available.
	DefaultAppreciationRate = 0.03
)

// Investment metric defaults
const (
	// DefaultMarginalTaxRate is assumed for mortgage-interest tax savings when
	// the caller does not supply a marginal rate.
	DefaultMarginalTaxRate = 0.40

	// TaxSavingsWindowPayments is the number of upcoming scheduled payments
	// summed for the annual mortgage-interest figure.
	TaxSavingsWindowPayments = 12

	// DefaultHoldingYears is the IRR projection horizon assumed when the
	// configuration does not set one.
	DefaultHoldingYears = 10
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "portfolio.yaml"
)
