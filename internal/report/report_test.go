package report

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/88scooper/propcalc/pkg/irr"
	"github.com/88scooper/propcalc/pkg/ltt"
	"github.com/88scooper/propcalc/pkg/metrics"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe() error = %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

func sampleReport() PropertyReport {
	return PropertyReport{
		Name: "King West Condo",
		Metrics: metrics.Summary{
			NOI:                     39_000,
			CapRate:                 3.25,
			AnnualOperatingExpenses: 18_000,
			AnnualDebtService:       24_000,
			DSCR:                    1.63,
			MonthlyCashFlow:         1_250,
			AnnualCashFlow:          15_000,
			CashOnCashReturn:        7.50,
			AnnualTaxSavings:        4_800,
			AfterTaxCashFlow:        19_800,
		},
		IRR: &irr.Result{Rate: 11.42, Converged: true},
		LTT: ltt.Result{Amount: 40_950, ScheduleUsed: "2024"},
		Schedule: &ScheduleSummary{
			PaymentCount:     300,
			TotalInterest:    212_345.67,
			FinalPaymentDate: time.Date(2049, time.May, 15, 0, 0, 0, 0, time.UTC),
			NextPaymentDate:  time.Date(2025, time.July, 15, 0, 0, 0, 0, time.UTC),
			NextPayment:      2_770.12,
		},
		Warnings: []string{"no closing date supplied; assuming the 2024 rate schedule"},
	}
}

func TestPrettyFormat(t *testing.T) {
	output := captureStdout(t, func() {
		PrettyFormat([]PropertyReport{sampleReport()})
	})

	expected := []string{
		"--- Results for property King West Condo ---",
		"$39,000.00",
		"3.25%",
		"1.63",
		"11.42%",
		"$40,950.00",
		"(2024 schedule)",
		"300 payments",
		"$2,770.12 on 2025-07-15",
		"final payment 2049-05-15",
		"Warning",
	}
	for _, fragment := range expected {
		if !strings.Contains(output, fragment) {
			t.Errorf("PrettyFormat missing %q in output:\n%s", fragment, output)
		}
	}
	if strings.Contains(output, "clamped") {
		t.Errorf("PrettyFormat added a qualifier to a clean IRR")
	}
}

func TestPrettyFormatQualifiers(t *testing.T) {
	clamped := sampleReport()
	clamped.IRR = &irr.Result{Rate: 500, Converged: true, Clamped: true}
	output := captureStdout(t, func() {
		PrettyFormat([]PropertyReport{clamped})
	})
	if !strings.Contains(output, "500.00% (clamped)") {
		t.Errorf("PrettyFormat missing clamped qualifier:\n%s", output)
	}

	stuck := sampleReport()
	stuck.IRR = &irr.Result{Rate: 42.0}
	output = captureStdout(t, func() {
		PrettyFormat([]PropertyReport{stuck})
	})
	if !strings.Contains(output, "(did not converge)") {
		t.Errorf("PrettyFormat missing non-convergence qualifier:\n%s", output)
	}
}

func TestPrettyFormatWithoutMortgageOrIRR(t *testing.T) {
	report := sampleReport()
	report.IRR = nil
	report.Schedule = nil
	report.Warnings = nil

	output := captureStdout(t, func() {
		PrettyFormat([]PropertyReport{report})
	})

	if strings.Contains(output, "IRR") {
		t.Errorf("PrettyFormat printed an IRR row with no result:\n%s", output)
	}
	if strings.Contains(output, "Next payment") {
		t.Errorf("PrettyFormat printed schedule rows with no mortgage:\n%s", output)
	}
}

func TestCsvFormat(t *testing.T) {
	output := captureStdout(t, func() {
		CsvFormat([]PropertyReport{sampleReport()})
	})

	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) != 2 {
		t.Fatalf("CsvFormat produced %d lines, expected header plus one row", len(lines))
	}

	header := lines[0]
	for _, column := range []string{`"property"`, `"noi"`, `"dscr"`, `"irr"`, `"ltt_schedule"`, `"warnings"`} {
		if !strings.Contains(header, column) {
			t.Errorf("CsvFormat header missing %s: %s", column, header)
		}
	}

	row := lines[1]
	for _, cell := range []string{`"King West Condo"`, `"39000.00"`, `"11.42"`, `"false"`, `"40950.00"`, `"2024"`} {
		if !strings.Contains(row, cell) {
			t.Errorf("CsvFormat row missing %s: %s", cell, row)
		}
	}

	if fields := strings.Count(header, ","); strings.Count(row, ",") != fields {
		t.Errorf("CsvFormat row has %d separators, header has %d", strings.Count(row, ","), fields)
	}
}

func TestCsvFormatEmptyIRRColumns(t *testing.T) {
	report := sampleReport()
	report.IRR = nil
	report.Warnings = nil

	output := captureStdout(t, func() {
		CsvFormat([]PropertyReport{report})
	})

	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) != 2 {
		t.Fatalf("CsvFormat produced %d lines", len(lines))
	}
	if !strings.Contains(lines[1], `"",""`) {
		t.Errorf("CsvFormat row should carry empty IRR cells: %s", lines[1])
	}
}
