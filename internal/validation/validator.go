package validation

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/rezonia/mydata-validator/internal/model"
)

//go:embed rules/mydata_v1.yaml
var embeddedRules []byte

// Validator runs the static checks and the dynamic rule engine. The rule
// set is loaded once at construction and shared read-only, so a single
// Validator is safe for any number of concurrent Validate calls.
type Validator struct {
	engine  *Engine
	loadErr error
	now     func() time.Time
}

// Option configures a Validator
type Option func(*Validator)

// WithRuleSet replaces the embedded rule document
func WithRuleSet(content []byte) Option {
	return func(v *Validator) {
		v.engine, v.loadErr = LoadRuleSet(content)
	}
}

// WithClock overrides the time source used by the date sanity check
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		v.now = now
	}
}

// NewValidator creates a validator with the embedded myDATA rule set.
// A malformed rule document does not fail construction: the load error is
// surfaced as a SYS-001 finding on every report instead, so a corrupt
// configuration can never silently skip the dynamic checks.
func NewValidator(opts ...Option) *Validator {
	v := &Validator{now: time.Now}
	v.engine, v.loadErr = LoadRuleSet(embeddedRules)

	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate evaluates one invoice and returns a fresh report. It always
// completes: findings never abort evaluation.
func (v *Validator) Validate(inv *model.Invoice) *Report {
	report := NewReport()

	checkLineVat(inv, report)
	checkClassifications(inv, report)
	checkTotals(inv, report)
	checkVatNumbers(inv, report)
	checkDates(inv, report, v.now())

	if v.loadErr != nil {
		report.AddError("SYS-001",
			fmt.Sprintf("Failed to load validation rules: %v", v.loadErr), "", "")
		return report
	}
	v.engine.Apply(inv, report)

	return report
}

// RuleSetVersion returns the loaded rule document version, or empty when
// loading failed
func (v *Validator) RuleSetVersion() string {
	if v.engine == nil {
		return ""
	}
	return v.engine.Version()
}
