// Package validation evaluates domain invoices against the built-in
// consistency checks and the declaratively configured rule set,
// accumulating findings in a shared report.
package validation

import "fmt"

// Status is the overall outcome of a validation run
type Status string

const (
	// StatusClean means no findings at all
	StatusClean Status = "Clean"
	// StatusWarned means warnings exist but the invoice is submittable
	StatusWarned Status = "Warned"
	// StatusRejected means at least one error finding; terminal
	StatusRejected Status = "Rejected"
)

// Severity of a single finding
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Finding is one reported outcome of a check or rule
type Finding struct {
	Code          string   `json:"code"`
	Field         string   `json:"field,omitempty"`
	ValueFound    string   `json:"value_found,omitempty"`
	Reason        string   `json:"reason"`
	AllowedValues []string `json:"allowed_values,omitempty"`
	Severity      Severity `json:"severity"`
}

// FixHint is a suggested correction. Reserved: nothing produces hints yet.
type FixHint struct {
	Field      string `json:"field"`
	Suggestion string `json:"suggestion"`
}

// Report accumulates findings across all checks for one invoice.
// The escalation state machine is Clean -> Warned -> Rejected; Rejected is
// terminal, further findings accumulate without changing status.
type Report struct {
	Status      Status    `json:"status"`
	RiskScore   int       `json:"risk_score"`
	Summary     string    `json:"summary"`
	Findings    []Finding `json:"findings"`
	Suggestions []FixHint `json:"suggestions"`
}

const (
	summaryClean    = "Επιτυχής έλεγχος. Έτοιμο για υποβολή."
	summaryWarned   = "Προσοχή. Υπάρχουν επισημάνσεις."
	summaryRejected = "Απέτυχε ο έλεγχος. Διορθώστε τα σφάλματα."
)

// NewReport creates an empty, clean report
func NewReport() *Report {
	return &Report{
		Status:      StatusClean,
		RiskScore:   0,
		Summary:     summaryClean,
		Findings:    []Finding{},
		Suggestions: []FixHint{},
	}
}

// AddError records an error finding and rejects the report
func (r *Report) AddError(code, reason, field, value string) {
	r.Status = StatusRejected
	r.RiskScore = 100
	r.Summary = summaryRejected

	r.Findings = append(r.Findings, Finding{
		Code:       code,
		Field:      field,
		ValueFound: value,
		Reason:     reason,
		Severity:   SeverityError,
	})
}

// AddWarning records a warning finding. The status escalates only from
// Clean; a Rejected report stays Rejected.
func (r *Report) AddWarning(code, reason string) {
	if r.Status == StatusClean {
		r.Status = StatusWarned
		r.Summary = summaryWarned
		if r.RiskScore < 30 {
			r.RiskScore = 30
		}
	}

	r.Findings = append(r.Findings, Finding{
		Code:     code,
		Reason:   reason,
		Severity: SeverityWarning,
	})
}

// Valid reports whether the invoice may be submitted (Clean or Warned)
func (r *Report) Valid() bool {
	return r.Status != StatusRejected
}

// HasFinding reports whether a finding with the given code exists
func (r *Report) HasFinding(code string) bool {
	for _, f := range r.Findings {
		if f.Code == code {
			return true
		}
	}
	return false
}

func (r *Report) String() string {
	return fmt.Sprintf("%s (risk=%d, findings=%d)", r.Status, r.RiskScore, len(r.Findings))
}
