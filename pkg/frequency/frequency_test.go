package frequency

import (
	"errors"
	"math"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Frequency
		wantErr  bool
	}{
		{"Canonical monthly", "monthly", Monthly, false},
		{"Mixed case", "Monthly", Monthly, false},
		{"Semi-monthly with hyphen", "Semi-Monthly", SemiMonthly, false},
		{"Semi-monthly with underscore", "semi_monthly", SemiMonthly, false},
		{"Bi-weekly with space", "bi weekly", BiWeekly, false},
		{"Accelerated bi-weekly", "Accelerated_Bi-Weekly", AcceleratedBiWeekly, false},
		{"Weekly", "WEEKLY", Weekly, false},
		{"Accelerated weekly", "accelerated weekly", AcceleratedWeekly, false},
		{"Garbage fails", "fortnightly", "", true},
		{"Empty fails", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Parse(%q) expected error but got %v", tt.input, result)
				} else if !errors.Is(err, ErrInvalidFrequency) {
					t.Errorf("Parse(%q) error = %v, expected ErrInvalidFrequency", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Errorf("Parse(%q) error = %v", tt.input, err)
				return
			}
			if result != tt.expected {
				t.Errorf("Parse(%q) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestPaymentsPerYear(t *testing.T) {
	tests := []struct {
		frequency Frequency
		expected  int
	}{
		{Monthly, 12},
		{SemiMonthly, 24},
		{BiWeekly, 26},
		{AcceleratedBiWeekly, 26},
		{Weekly, 52},
		{AcceleratedWeekly, 52},
	}

	for _, tt := range tests {
		t.Run(string(tt.frequency), func(t *testing.T) {
			if got := tt.frequency.PaymentsPerYear(); got != tt.expected {
				t.Errorf("PaymentsPerYear(%s) = %d, expected %d", tt.frequency, got, tt.expected)
			}
		})
	}
}

func TestPeriodicRate(t *testing.T) {
	// Semi-annual compounding: periodic = (1 + annual/2)^(1/k) - 1.
	tests := []struct {
		name       string
		annualRate float64
		frequency  Frequency
		expected   float64
	}{
		{"Monthly 5%", 0.05, Monthly, math.Pow(1.025, 1.0/6) - 1},
		{"Semi-monthly 5% matches monthly", 0.05, SemiMonthly, math.Pow(1.025, 1.0/6) - 1},
		{"Bi-weekly 5%", 0.05, BiWeekly, math.Pow(1.025, 1.0/13) - 1},
		{"Weekly 5%", 0.05, Weekly, math.Pow(1.025, 1.0/26) - 1},
		{"Zero rate", 0, Monthly, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := PeriodicRate(tt.annualRate, tt.frequency)
			if math.Abs(result-tt.expected) > 1e-12 {
				t.Errorf("PeriodicRate(%v, %s) = %v, expected %v", tt.annualRate, tt.frequency, result, tt.expected)
			}
		})
	}
}

func TestPeriodicRateOrdering(t *testing.T) {
	// More frequent payments take a smaller periodic rate, and compounding the
	// periodic rate over a year must land on the same effective annual rate.
	annual := 0.06
	monthly := PeriodicRate(annual, Monthly)
	biweekly := PeriodicRate(annual, BiWeekly)
	weekly := PeriodicRate(annual, Weekly)

	if !(weekly < biweekly && biweekly < monthly) {
		t.Errorf("expected weekly < biweekly < monthly, got %v, %v, %v", weekly, biweekly, monthly)
	}

	effective := math.Pow(1+annual/2, 2) - 1
	for _, tt := range []struct {
		frequency Frequency
		periodic  float64
	}{
		{Monthly, monthly},
		{BiWeekly, biweekly},
		{Weekly, weekly},
	} {
		compounded := math.Pow(1+tt.periodic, float64(tt.frequency.PaymentsPerYear())) - 1
		if math.Abs(compounded-effective) > 1e-10 {
			t.Errorf("%s: compounded %v, expected effective %v", tt.frequency, compounded, effective)
		}
	}
}

func TestTotalPayments(t *testing.T) {
	tests := []struct {
		name      string
		years     float64
		frequency Frequency
		expected  int
	}{
		{"25 years monthly", 25, Monthly, 300},
		{"25 years bi-weekly", 25, BiWeekly, 650},
		{"25 years weekly", 25, Weekly, 1300},
		{"Fractional years", 2.5, Monthly, 30},
		{"Semi-monthly", 10, SemiMonthly, 240},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TotalPayments(tt.years, tt.frequency); got != tt.expected {
				t.Errorf("TotalPayments(%v, %s) = %d, expected %d", tt.years, tt.frequency, got, tt.expected)
			}
		})
	}
}

func TestMonthlyEquivalentFactor(t *testing.T) {
	tests := []struct {
		frequency Frequency
		expected  float64
	}{
		{Monthly, 1},
		{SemiMonthly, 1},
		{BiWeekly, 26.0 / 12},
		{AcceleratedBiWeekly, 26.0 / 12},
		{Weekly, 52.0 / 12},
		{AcceleratedWeekly, 52.0 / 12},
	}

	for _, tt := range tests {
		t.Run(string(tt.frequency), func(t *testing.T) {
			if got := tt.frequency.MonthlyEquivalentFactor(); math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("MonthlyEquivalentFactor(%s) = %v, expected %v", tt.frequency, got, tt.expected)
			}
		})
	}
}

func TestIsAccelerated(t *testing.T) {
	if Monthly.IsAccelerated() || BiWeekly.IsAccelerated() || Weekly.IsAccelerated() {
		t.Errorf("plain frequencies must not report accelerated")
	}
	if !AcceleratedBiWeekly.IsAccelerated() || !AcceleratedWeekly.IsAccelerated() {
		t.Errorf("accelerated frequencies must report accelerated")
	}
}
