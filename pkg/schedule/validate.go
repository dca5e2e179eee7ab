package schedule

import (
	"fmt"
	"math"

	"github.com/88scooper/propcalc/pkg/constants"
)

// ValidationResult reports whether an externally supplied schedule terminates
// at (near) zero balance. An invalid schedule remains usable; the warning is
// for the caller to surface.
type ValidationResult struct {
	IsValid      bool
	Warning      string
	FinalBalance float64
}

// Validate sanity-checks a schedule by confirming its final balance is near
// zero.
func Validate(sched *Schedule) ValidationResult {
	if sched == nil || len(sched.Payments) == 0 {
		return ValidationResult{
			IsValid: false,
			Warning: "schedule contains no payments",
		}
	}

	final := sched.Payments[len(sched.Payments)-1].RemainingBalance
	if math.Abs(final) > constants.ScheduleFinalBalanceTolerance {
		return ValidationResult{
			IsValid:      false,
			Warning:      fmt.Sprintf("schedule final balance %.2f is not near zero", final),
			FinalBalance: final,
		}
	}

	return ValidationResult{IsValid: true, FinalBalance: final}
}
