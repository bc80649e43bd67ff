// Package report defines the audit result contract shared by the LUCIM
// artifact auditors (diagram, operation model, scenario).
package report

import "encoding/json"

// Verdict is the overall outcome of one audit call.
//
// These strings are part of the wire contract and must remain stable.
type Verdict string

const (
	Compliant    Verdict = "compliant"
	NonCompliant Verdict = "non-compliant"
)

// Violation is a single triggered rule-catalog entry.
//
// RuleID is a stable identifier (e.g. LDR8-ACTIVATION-BAR-NESTING-FORBIDDEN).
// Line is 1-based over the extracted artifact body; 0 when the violation is
// not line-addressable (JSON artifacts carry a dotted path in Extracted
// under "location" instead).
type Violation struct {
	RuleID    string            `json:"rule_id"`
	Message   string            `json:"message"`
	Line      int               `json:"line"`
	Extracted map[string]string `json:"extracted_values,omitempty"`
}

// Coverage accounts for which catalog rules an audit call evaluated.
//
// NotApplicable lists rules that are permissive or outside the auditor's
// scope; MissingEvaluation must be empty for a complete auditor.
type Coverage struct {
	TotalRules        int      `json:"total_rules"`
	Evaluated         []string `json:"evaluated"`
	NotApplicable     []string `json:"not_applicable"`
	MissingEvaluation []string `json:"missing_evaluation"`
}

// Result is the outcome of auditing one artifact.
//
// Violations keep discovery order: callers needing line order sort
// explicitly. Verdict is Compliant iff Violations is empty.
type Result struct {
	Verdict    Verdict     `json:"verdict"`
	Violations []Violation `json:"violations"`
	Coverage   *Coverage   `json:"coverage,omitempty"`
}

// New builds a Result from accumulated violations, deriving the verdict.
func New(violations []Violation, coverage *Coverage) Result {
	v := Compliant
	if len(violations) > 0 {
		v = NonCompliant
	}
	if violations == nil {
		violations = []Violation{}
	}
	return Result{Verdict: v, Violations: violations, Coverage: coverage}
}

// CanonicalJSON returns the stable byte encoding of r.
//
// Struct field order is fixed by the type definitions and map keys are
// emitted sorted, so equal Results always produce identical bytes. Report
// fingerprints (cidutil.ReportCID) are defined over these bytes.
func (r Result) CanonicalJSON() ([]byte, error) {
	return json.Marshal(r)
}

// Merge appends other's violations to r preserving both discovery orders and
// re-derives the verdict. Coverage is kept from r.
func (r Result) Merge(other Result) Result {
	merged := append(append([]Violation{}, r.Violations...), other.Violations...)
	return New(merged, r.Coverage)
}
