// Package diagram implements the deterministic compliance auditor for LUCIM
// PlantUML sequence diagrams.
//
// The auditor is a pure function over its input string: it unwraps the
// envelope, classifies the body line by line, evaluates the structural and
// activation-sequencing rule engines over the same classified list, and
// assembles a single report. Rule violations never abort evaluation; only
// input errors (no isolatable diagram body) are fatal for a call.
package diagram

import (
	"github.com/benoitries/lucim-audit/catalog"
	"github.com/benoitries/lucim-audit/report"
)

// Options carries the optional audit inputs.
//
// Raw is the unprocessed artifact content; when set, the block-format rule
// (LDR0) is evaluated against it and it serves as an extraction fallback.
// OperationModel and Scenario are the cross-artifact reference catalogs;
// the consistency rule (LDR28) runs only when both are present.
type Options struct {
	Raw            string
	OperationModel *catalog.OperationModel
	Scenario       *catalog.Scenario
}

// Audit audits a diagram artifact with default options.
func Audit(text string) (report.Result, error) {
	return AuditWithOptions(text, Options{})
}

// AuditWithOptions audits a diagram artifact.
//
// The returned report is deterministic: auditing the same input twice yields
// byte-identical canonical results, violations in discovery order. A nil
// error with a non-compliant verdict is the normal failure shape; an error
// is returned only when no diagram body can be isolated from the input.
func AuditWithOptions(text string, opts Options) (report.Result, error) {
	c := &collector{}

	if opts.Raw != "" {
		checkBlockOnly(opts.Raw, c)
	}

	body, err := extractBody(text)
	if err != nil && opts.Raw != "" {
		body, err = extractBody(opts.Raw)
	}
	if err != nil {
		return report.Result{}, err
	}

	lines := classify(body)

	checkDeclarations(lines, c)
	checkMessages(lines, c)
	checkActivations(lines, c)

	withRefs := opts.OperationModel != nil && opts.Scenario != nil
	checkCrossArtifact(lines, opts.OperationModel, opts.Scenario, c)

	return report.New(c.violations, catalogCoverage(withRefs, opts.Raw != "")), nil
}
