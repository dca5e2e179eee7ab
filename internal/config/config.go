// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the portfolio config.
package config

import (
	"fmt"
	"time"

	"github.com/88scooper/propcalc/pkg/constants"
	"github.com/88scooper/propcalc/pkg/frequency"
	"github.com/88scooper/propcalc/pkg/metrics"
	"github.com/88scooper/propcalc/pkg/schedule"
	"github.com/spf13/viper"
)

// DateLayout is the format expected in config files and is also the output
// date format.
const DateLayout = constants.DateLayout

// Configuration holds all configuration for propcalc.
type Configuration struct {
	Properties []Property
	Analysis   AnalysisConfig
	Logging    LoggingConfig `yaml:"logging,omitempty"`
	Output     OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// AnalysisConfig holds the holding-period assumptions shared by all
// properties.
type AnalysisConfig struct {
	AsOf                string  // YYYY-MM-DD; empty means the current date
	HoldingYears        int     // IRR projection horizon
	ExitCapRate         float64 // percent; 0 means appreciation fallback
	SellingCostsPercent float64 // percent of terminal sale value
	MarginalTaxRate     float64 // percent, e.g. 40 for a 40% bracket
}

// Property describes one portfolio property.
type Property struct {
	Name               string
	City               string
	Province           string
	PurchasePrice      float64
	ClosingDate        string // YYYY-MM-DD; empty triggers an LTT warning
	LTTOverride        *float64
	AnnualRent         float64
	VacancyRate        float64 // percent, e.g. 5 for 5%
	CurrentMarketValue float64
	TotalInvestment    float64
	MonthlyExpenses    ExpensesConfig
	Mortgage           *MortgageConfig
	PaymentHistoryFile string // optional lender CSV overriding the computed schedule
}

// ExpensesConfig itemizes recurring monthly operating costs.
type ExpensesConfig struct {
	PropertyTax      float64
	CondoFees        float64
	Insurance        float64
	Maintenance      float64
	ProfessionalFees float64
	Utilities        float64
}

// MortgageConfig holds lender terms as written in the config file. Rates are
// percentages here; the engine works in decimals.
type MortgageConfig struct {
	LenderReference   string
	OriginalAmount    float64
	InterestRate      float64 // percent, e.g. 5.25
	RateType          string  // fixed, variable
	AmortizationYears float64
	PaymentFrequency  string
	StartDate         string // YYYY-MM-DD
	CurrentBalance    float64
	TermMonths        int
	MonthlyPayment    float64
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// AsOfTime resolves the analysis anchor date, defaulting to now.
func (a AnalysisConfig) AsOfTime() (time.Time, error) {
	if a.AsOf == "" {
		return time.Now(), nil
	}
	asOf, err := time.Parse(DateLayout, a.AsOf)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid analysis asOf date %q: %w", a.AsOf, err)
	}
	return asOf, nil
}

// ClosingDateTime parses the property's closing date, returning nil when the
// config leaves it out.
func (p *Property) ClosingDateTime() (*time.Time, error) {
	if p.ClosingDate == "" {
		return nil, nil
	}
	closing, err := time.Parse(DateLayout, p.ClosingDate)
	if err != nil {
		return nil, fmt.Errorf("property %s: invalid closing date %q: %w", p.Name, p.ClosingDate, err)
	}
	return &closing, nil
}

// Financials converts the property into the engine's read-only input,
// translating percentage figures into decimals and parsing the mortgage
// terms. Unrecognized payment frequencies fail rather than defaulting.
func (p *Property) Financials() (metrics.PropertyFinancials, error) {
	fin := metrics.PropertyFinancials{
		AnnualRent:         p.AnnualRent,
		VacancyRate:        p.VacancyRate / constants.PercentageMultiplier,
		CurrentMarketValue: p.CurrentMarketValue,
		TotalInvestment:    p.TotalInvestment,
		MonthlyExpenses: metrics.MonthlyExpenses{
			PropertyTax:      p.MonthlyExpenses.PropertyTax,
			CondoFees:        p.MonthlyExpenses.CondoFees,
			Insurance:        p.MonthlyExpenses.Insurance,
			Maintenance:      p.MonthlyExpenses.Maintenance,
			ProfessionalFees: p.MonthlyExpenses.ProfessionalFees,
			Utilities:        p.MonthlyExpenses.Utilities,
		},
	}

	if p.Mortgage == nil {
		return fin, nil
	}

	freq, err := frequency.Parse(p.Mortgage.PaymentFrequency)
	if err != nil {
		return fin, fmt.Errorf("property %s: %w", p.Name, err)
	}

	startDate, err := time.Parse(DateLayout, p.Mortgage.StartDate)
	if err != nil {
		return fin, fmt.Errorf("property %s: invalid mortgage start date %q: %w",
			p.Name, p.Mortgage.StartDate, err)
	}

	rateType := schedule.Fixed
	if p.Mortgage.RateType != "" {
		rateType = schedule.RateType(p.Mortgage.RateType)
	}

	fin.Mortgage = &schedule.Terms{
		LenderReference:   p.Mortgage.LenderReference,
		OriginalAmount:    p.Mortgage.OriginalAmount,
		InterestRate:      p.Mortgage.InterestRate / constants.PercentageMultiplier,
		RateType:          rateType,
		AmortizationYears: p.Mortgage.AmortizationYears,
		Frequency:         freq,
		StartDate:         startDate,
		CurrentBalance:    p.Mortgage.CurrentBalance,
		TermMonths:        p.Mortgage.TermMonths,
		MonthlyPayment:    p.Mortgage.MonthlyPayment,
	}
	return fin, nil
}
