package config

import (
	"fmt"

	"github.com/88scooper/propcalc/pkg/constants"
)

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Warnings are non-fatal; computation proceeds with the
// documented defaults.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if len(c.Properties) == 0 {
		warnings = append(warnings, "configuration contains no properties")
	}

	if c.Analysis.HoldingYears <= 0 {
		warnings = append(warnings, fmt.Sprintf(
			"analysis holdingYears not set; assuming %d years", constants.DefaultHoldingYears))
	}

	for _, property := range c.Properties {
		if property.Name == "" {
			warnings = append(warnings, "a property has no name")
		}
		if property.VacancyRate < 0 || property.VacancyRate > 100 {
			warnings = append(warnings, fmt.Sprintf(
				"property %s: vacancy rate %.1f%% is outside [0, 100] and will be clamped",
				property.Name, property.VacancyRate))
		}
		if property.PurchasePrice > 0 && property.ClosingDate == "" {
			warnings = append(warnings, fmt.Sprintf(
				"property %s: no closing date; land transfer tax will assume the pre-cutover rate schedule",
				property.Name))
		}
		if property.TotalInvestment <= 0 {
			warnings = append(warnings, fmt.Sprintf(
				"property %s: totalInvestment is not positive; cash-on-cash and IRR are unavailable",
				property.Name))
		}
		if property.Mortgage != nil && property.Mortgage.CurrentBalance > property.Mortgage.OriginalAmount {
			warnings = append(warnings, fmt.Sprintf(
				"property %s: mortgage balance %.2f exceeds original amount %.2f; balance override ignored",
				property.Name, property.Mortgage.CurrentBalance, property.Mortgage.OriginalAmount))
		}
	}

	return warnings
}

// HoldingYearsOrDefault returns the configured projection horizon or the default.
func (a AnalysisConfig) HoldingYearsOrDefault() int {
	if a.HoldingYears <= 0 {
		return constants.DefaultHoldingYears
	}
	return a.HoldingYears
}
