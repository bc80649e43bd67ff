package diagram

import (
	"testing"
)

// diagramHeader puts the first body line at physical line 4.
const diagramHeader = `@startuml
participant System as system
participant "jen:ActResident" as jen
`

func TestActivationPairsMostRecentMessage(t *testing.T) {
	res := mustAudit(t, diagramHeader+`jen -> system : oeAsk("a")
jen -> system : oeMore("b")
activate jen
deactivate jen
@enduml`)
	// The activate binds to the second message (line 5); the first message
	// (line 4) independently reports a missing activation sequence.
	if len(res.Violations) != 1 {
		t.Fatalf("expected exactly one violation, got %v", res.Violations)
	}
	if !hasViolationAt(res, RuleActivationRequired, 4) {
		t.Fatalf("expected %s at line 4, got %v", RuleActivationRequired, res.Violations)
	}
}

func TestNestingReportedOnceOnSecondActivate(t *testing.T) {
	res := mustAudit(t, diagramHeader+`jen -> system : oeAsk("a")
activate jen
activate jen
deactivate jen
deactivate jen
@enduml`)
	if countRule(res, RuleNoNesting) != 1 {
		t.Fatalf("expected exactly one nesting violation, got %v", res.Violations)
	}
	if !hasViolationAt(res, RuleNoNesting, 6) {
		t.Fatalf("expected %s on the second activate (line 6), got %v", RuleNoNesting, res.Violations)
	}
}

func TestOverlapOnMessageToActiveActor(t *testing.T) {
	res := mustAudit(t, diagramHeader+`jen -> system : oeAsk("a")
activate jen
system --> jen : ieAck("b")
deactivate jen
@enduml`)
	if !hasViolationAt(res, RuleNoOverlap, 6) {
		t.Fatalf("expected %s at line 6, got %v", RuleNoOverlap, res.Violations)
	}
	// The overlapping message is also never claimed by an activate.
	if !hasViolationAt(res, RuleActivationRequired, 6) {
		t.Fatalf("expected %s at line 6, got %v", RuleActivationRequired, res.Violations)
	}
}

func TestBlankLinesAndCommentsAreTransparent(t *testing.T) {
	res := mustAudit(t, diagramHeader+`jen -> system : oeAsk("a")

// an explanatory comment
' another comment style
activate jen

deactivate jen
@enduml`)
	if len(res.Violations) != 0 {
		t.Fatalf("expected zero violations, got %v", res.Violations)
	}
}

func TestInterleavedLineBreaksStrictSequence(t *testing.T) {
	res := mustAudit(t, diagramHeader+`jen -> system : oeAsk("a")
system --> jen : ieAck("b")
activate jen
deactivate jen
@enduml`)
	// The activate claims the most recent message (line 5), so the pairing is
	// adjacent; the earlier message surfaces its own missing-activation gap.
	if !hasViolationAt(res, RuleActivationRequired, 4) {
		t.Fatalf("expected %s at line 4, got %v", RuleActivationRequired, res.Violations)
	}
	if countRule(res, RuleStrictSequence) != 0 {
		t.Fatalf("adjacent pairing must not raise %s, got %v", RuleStrictSequence, res.Violations)
	}
}

func TestNonAdjacentActivateBreaksStrictSequence(t *testing.T) {
	res := mustAudit(t, diagramHeader+`jen -> system : oeAsk("a")
autonumber
activate jen
deactivate jen
@enduml`)
	// "autonumber" is a relevant (non-comment) foreign line between the
	// message and its activate.
	if !hasViolationAt(res, RuleStrictSequence, 4) {
		t.Fatalf("expected %s at line 4, got %v", RuleStrictSequence, res.Violations)
	}
}

func TestUnmatchedDeactivate(t *testing.T) {
	res := mustAudit(t, diagramHeader+`deactivate jen
@enduml`)
	if !hasViolationAt(res, RuleStrictSequence, 4) {
		t.Fatalf("expected %s at line 4, got %v", RuleStrictSequence, res.Violations)
	}
}

func TestUnclosedActivationAtEndOfInput(t *testing.T) {
	res := mustAudit(t, diagramHeader+`jen -> system : oeAsk("a")
activate jen
@enduml`)
	if !hasViolationAt(res, RuleStrictSequence, 5) {
		t.Fatalf("expected %s at the unclosed activate (line 5), got %v", RuleStrictSequence, res.Violations)
	}
}

func TestMessageWithNoActivationAtAll(t *testing.T) {
	res := mustAudit(t, diagramHeader+`jen -> system : oeAsk("a")
@enduml`)
	if !hasViolationAt(res, RuleActivationRequired, 4) {
		t.Fatalf("expected %s at line 4, got %v", RuleActivationRequired, res.Violations)
	}
}

func TestDeactivateSystemForbidden(t *testing.T) {
	res := mustAudit(t, diagramHeader+`deactivate system
@enduml`)
	if !hasViolationAt(res, RuleNoSystemActivation, 4) {
		t.Fatalf("expected %s at line 4, got %v", RuleNoSystemActivation, res.Violations)
	}
	if countRule(res, RuleStrictSequence) != 0 {
		t.Fatalf("system deactivate must not also report %s, got %v", RuleStrictSequence, res.Violations)
	}
}
