package schedule

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Column headers accepted in lender payment-history exports. Matching is
// case-insensitive after stripping spaces.
const (
	historyColDate      = "date"
	historyColPrincipal = "principalpaid"
	historyColInterest  = "interestpaid"
	historyColTotal     = "totalpaid"
	historyColBalance   = "principalbalance"
)

// historyDateLayouts are tried in order when normalizing lender date strings.
var historyDateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2-Jan-2006",
}

// ParsePaymentHistory reads a lender payment-history CSV with columns
// Date, Principal Paid, Interest Paid, Total Paid, Principal Balance and
// produces a schedule: rows are re-sorted chronologically and renumbered from
// one. The result is expected to pass Validate; callers surface the warning
// when it does not.
func ParsePaymentHistory(r io.Reader) (*Schedule, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading payment history header: %w", err)
	}

	cols := make(map[string]int)
	for i, name := range header {
		cols[strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "")] = i
	}
	for _, required := range []string{historyColDate, historyColPrincipal, historyColInterest, historyColTotal, historyColBalance} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("payment history missing column %q", required)
		}
	}

	sched := &Schedule{}
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading payment history line %d: %w", line, err)
		}

		date, err := parseHistoryDate(row[cols[historyColDate]])
		if err != nil {
			return nil, fmt.Errorf("payment history line %d: %w", line, err)
		}
		principal, err := parseMoney(row[cols[historyColPrincipal]])
		if err != nil {
			return nil, fmt.Errorf("payment history line %d principal: %w", line, err)
		}
		interest, err := parseMoney(row[cols[historyColInterest]])
		if err != nil {
			return nil, fmt.Errorf("payment history line %d interest: %w", line, err)
		}
		total, err := parseMoney(row[cols[historyColTotal]])
		if err != nil {
			return nil, fmt.Errorf("payment history line %d total: %w", line, err)
		}
		balance, err := parseMoney(row[cols[historyColBalance]])
		if err != nil {
			return nil, fmt.Errorf("payment history line %d balance: %w", line, err)
		}

		sched.Payments = append(sched.Payments, PaymentRecord{
			PaymentDate:      date,
			TotalPayment:     total,
			PrincipalPortion: principal,
			InterestPortion:  interest,
			RemainingBalance: balance,
		})
	}

	if len(sched.Payments) == 0 {
		return nil, fmt.Errorf("payment history contains no rows")
	}

	sort.SliceStable(sched.Payments, func(i, j int) bool {
		return sched.Payments[i].PaymentDate.Before(sched.Payments[j].PaymentDate)
	})
	for i := range sched.Payments {
		sched.Payments[i].PaymentNumber = i + 1
		sched.TotalInterest += sched.Payments[i].InterestPortion
	}
	sched.TotalPaymentCount = len(sched.Payments)
	sched.FinalPaymentDate = sched.Payments[sched.TotalPaymentCount-1].PaymentDate

	return sched, nil
}

func parseHistoryDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range historyDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// parseMoney accepts lender-formatted money strings: currency symbols,
// thousands separators, and accounting-style parentheses for negatives.
func parseMoney(s string) (float64, error) {
	s = strings.TrimSpace(s)
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	replacer := strings.NewReplacer("$", "", ",", "", " ", "")
	s = replacer.Replace(s)
	if s == "" {
		return 0, nil
	}
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("unrecognized amount %q", s)
	}
	if negative {
		value = -value
	}
	return value, nil
}
