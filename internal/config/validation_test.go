package config

import (
	"strings"
	"testing"
)

func validProperty() Property {
	return Property{
		Name:               "King West Condo",
		City:               "Toronto",
		Province:           "ON",
		PurchasePrice:      850_000,
		ClosingDate:        "2024-05-15",
		AnnualRent:         42_000,
		VacancyRate:        5,
		CurrentMarketValue: 900_000,
		TotalInvestment:    200_000,
		Mortgage: &MortgageConfig{
			OriginalAmount:    680_000,
			InterestRate:      5.25,
			AmortizationYears: 25,
			PaymentFrequency:  "monthly",
			StartDate:         "2024-05-15",
			CurrentBalance:    655_000,
		},
	}
}

func TestValidateConfiguration(t *testing.T) {
	tests := []struct {
		name            string
		mutate          func(*Configuration)
		expectedPhrases []string
	}{
		{
			name:            "Valid configuration",
			mutate:          func(c *Configuration) {},
			expectedPhrases: nil,
		},
		{
			name: "No properties",
			mutate: func(c *Configuration) {
				c.Properties = nil
			},
			expectedPhrases: []string{"no properties"},
		},
		{
			name: "Holding years unset",
			mutate: func(c *Configuration) {
				c.Analysis.HoldingYears = 0
			},
			expectedPhrases: []string{"holdingYears"},
		},
		{
			name: "Unnamed property",
			mutate: func(c *Configuration) {
				c.Properties[0].Name = ""
			},
			expectedPhrases: []string{"no name"},
		},
		{
			name: "Vacancy rate out of range",
			mutate: func(c *Configuration) {
				c.Properties[0].VacancyRate = 150
			},
			expectedPhrases: []string{"vacancy rate"},
		},
		{
			name: "Missing closing date on a purchase",
			mutate: func(c *Configuration) {
				c.Properties[0].ClosingDate = ""
			},
			expectedPhrases: []string{"closing date"},
		},
		{
			name: "Non-positive total investment",
			mutate: func(c *Configuration) {
				c.Properties[0].TotalInvestment = 0
			},
			expectedPhrases: []string{"totalInvestment"},
		},
		{
			name: "Balance exceeds original amount",
			mutate: func(c *Configuration) {
				c.Properties[0].Mortgage.CurrentBalance = 700_000
			},
			expectedPhrases: []string{"exceeds original amount"},
		},
		{
			name: "Multiple warnings accumulate",
			mutate: func(c *Configuration) {
				c.Properties[0].VacancyRate = -1
				c.Properties[0].TotalInvestment = -5
			},
			expectedPhrases: []string{"vacancy rate", "totalInvestment"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Configuration{
				Properties: []Property{validProperty()},
				Analysis:   AnalysisConfig{HoldingYears: 10},
			}
			tt.mutate(config)

			warnings := config.ValidateConfiguration()
			if tt.expectedPhrases == nil && len(warnings) != 0 {
				t.Fatalf("ValidateConfiguration() = %v, expected none", warnings)
			}
			for _, phrase := range tt.expectedPhrases {
				found := false
				for _, warning := range warnings {
					if strings.Contains(warning, phrase) {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("ValidateConfiguration() = %v, expected a warning containing %q", warnings, phrase)
				}
			}
		})
	}
}

func TestHoldingYearsOrDefault(t *testing.T) {
	tests := []struct {
		name     string
		years    int
		expected int
	}{
		{"Configured", 7, 7},
		{"Unset", 0, 10},
		{"Negative", -3, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := AnalysisConfig{HoldingYears: tt.years}
			if got := analysis.HoldingYearsOrDefault(); got != tt.expected {
				t.Errorf("HoldingYearsOrDefault() = %d, expected %d", got, tt.expected)
			}
		})
	}
}
