package schedule

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Source produces the amortization schedule for a mortgage. A computed source
// derives it from the terms; an authoritative source returns a lender-provided
// payment history verbatim, which takes precedence because real histories
// diverge from the annuity formula (irregular payments, rate changes, skipped
// payments).
type Source interface {
	Schedule(terms Terms, asOf time.Time) (*Schedule, error)
}

// ComputedAnnuitySource generates schedules with the level-payment annuity
// formula.
type ComputedAnnuitySource struct {
	builder *Builder
}

// NewComputedAnnuitySource creates a computed source.
func NewComputedAnnuitySource(logger *zap.Logger) *ComputedAnnuitySource {
	return &ComputedAnnuitySource{builder: NewBuilder(logger)}
}

// Schedule implements Source.
func (s *ComputedAnnuitySource) Schedule(terms Terms, asOf time.Time) (*Schedule, error) {
	return s.builder.Build(terms, asOf)
}

// AuthoritativeRecordSource returns a previously parsed, pre-validated
// schedule verbatim.
type AuthoritativeRecordSource struct {
	schedule *Schedule
}

// NewAuthoritativeRecordSource wraps an externally supplied schedule.
func NewAuthoritativeRecordSource(sched *Schedule) *AuthoritativeRecordSource {
	return &AuthoritativeRecordSource{schedule: sched}
}

// Schedule implements Source.
func (s *AuthoritativeRecordSource) Schedule(Terms, time.Time) (*Schedule, error) {
	if s.schedule == nil {
		return nil, fmt.Errorf("authoritative source has no schedule")
	}
	return s.schedule, nil
}

// SourceRegistry selects the schedule source for a mortgage by its lender
// reference, falling back to the computed annuity source when no override is
// registered.
type SourceRegistry struct {
	logger   *zap.Logger
	sources  map[string]Source
	fallback Source
}

// NewSourceRegistry creates a registry whose fallback is the computed annuity
// source.
func NewSourceRegistry(logger *zap.Logger) *SourceRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SourceRegistry{
		logger:   logger,
		sources:  make(map[string]Source),
		fallback: NewComputedAnnuitySource(logger),
	}
}

// Register installs an override source for a lender reference.
func (r *SourceRegistry) Register(lenderReference string, src Source) {
	r.sources[lenderReference] = src
}

// Resolve returns the schedule for the given terms using the registered
// override when one exists.
func (r *SourceRegistry) Resolve(terms Terms, asOf time.Time) (*Schedule, error) {
	if src, ok := r.sources[terms.LenderReference]; ok {
		r.logger.Debug(fmt.Sprintf("using authoritative schedule for %s", terms.LenderReference),
			zap.String("op", "schedule.Resolve"),
		)
		return src.Schedule(terms, asOf)
	}
	return r.fallback.Schedule(terms, asOf)
}
