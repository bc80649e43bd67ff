// Package scenario implements the deterministic compliance auditor for LUCIM
// scenario artifacts: a linear list of message lines exchanged between the
// System and actor instances.
//
// It exposes the same audit contract as the diagram and operation-model
// auditors so all three are interchangeable from a caller's perspective.
package scenario

import (
	"regexp"
	"strings"

	"github.com/benoitries/lucim-audit/report"
)

// Stable rule identifiers.
const (
	RuleDirectionality    = "SS1-MESSAGE-DIRECTIONALITY"
	RuleNoSystemSelfLoop  = "AS4-SYS-NO-SELF-LOOP"
	RuleNoActorActorLoop  = "AS6-ACT-NO-ACT-ACT-EVENTS"
	RuleInputEventSyntax  = "TCS4-IE-SYNTAX"
	RuleOutputEventSyntax = "TCS5-OE-SYNTAX"
	RuleInputDirection    = "AS8-IE-EVENT-DIRECTION"
	RuleOutputDirection   = "AS9-OE-EVENT-DIRECTION"
)

// Catalog is the fixed scenario rule table, in rulebook order.
var Catalog = []string{
	RuleDirectionality,
	RuleNoSystemSelfLoop,
	RuleNoActorActorLoop,
	RuleInputEventSyntax,
	RuleOutputEventSyntax,
	RuleInputDirection,
	RuleOutputDirection,
}

var messageRe = regexp.MustCompile(`^(?P<lhs>\S+)\s*(?P<arrow>--?>)\s*(?P<rhs>\S+)\s*:\s*(?P<name>\w+)\s*\((?P<params>[^)]*)\)\s*$`)

func isSystemToken(tok string) bool {
	t := strings.TrimSpace(tok)
	return t == "system" || t == "System"
}

// Audit audits a scenario artifact. Lines that are blank, comments, or not
// message-shaped are transparent; line numbers are 1-based over the input.
func Audit(text string) report.Result {
	var violations []report.Violation
	add := func(ruleID, message string, line int) {
		violations = append(violations, report.Violation{RuleID: ruleID, Message: message, Line: line})
	}

	for idx, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		m := messageRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		n := idx + 1
		lhs := m[messageRe.SubexpIndex("lhs")]
		arrow := m[messageRe.SubexpIndex("arrow")]
		rhs := m[messageRe.SubexpIndex("rhs")]
		name := m[messageRe.SubexpIndex("name")]

		lhsSystem, rhsSystem := isSystemToken(lhs), isSystemToken(rhs)
		lhsActor, rhsActor := !lhsSystem, !rhsSystem

		if lhsSystem && rhsSystem {
			add(RuleNoSystemSelfLoop, "System→System message is forbidden.", n)
		}
		if lhsActor && rhsActor {
			add(RuleNoActorActorLoop, "Actor→Actor message is forbidden.", n)
		}
		if !((lhsSystem && rhsActor) || (lhsActor && rhsSystem)) {
			add(RuleDirectionality, "Messages must connect exactly one Actor and the System.", n)
		}

		if strings.HasPrefix(name, "ie") {
			if !(lhsSystem && rhsActor && arrow == "-->") {
				add(RuleInputEventSyntax, "ie events must be: system --> actor : ieXxx(...)", n)
			}
			if lhsActor && rhsSystem {
				add(RuleInputDirection, "Input Event ie* must be System → Actor (not Actor → System).", n)
			}
		}
		if strings.HasPrefix(name, "oe") {
			if !(lhsActor && rhsSystem && arrow == "->") {
				add(RuleOutputEventSyntax, "oe events must be: actor -> system : oeXxx(...)", n)
			}
			if lhsSystem && rhsActor {
				add(RuleOutputDirection, "Output Event oe* must be Actor → System (not System → Actor).", n)
			}
		}
	}

	cov := &report.Coverage{
		TotalRules:        len(Catalog),
		Evaluated:         append([]string{}, Catalog...),
		NotApplicable:     []string{},
		MissingEvaluation: []string{},
	}
	return report.New(violations, cov)
}
