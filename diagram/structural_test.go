package diagram

import (
	"fmt"
	"testing"

	"github.com/benoitries/lucim-audit/report"
)

func TestSystemUniquenessExactlyOnce(t *testing.T) {
	for extra := 1; extra <= 3; extra++ {
		text := "@startuml\nparticipant System as system\n"
		for i := 0; i < extra; i++ {
			text += "participant System as system\n"
		}
		text += "@enduml"
		res := mustAudit(t, text)
		if got := countRule(res, RuleSystemUnique); got != 1 {
			t.Fatalf("%d extra declarations: expected exactly one %s, got %d (%v)",
				extra, RuleSystemUnique, got, res.Violations)
		}
		if !hasViolationAt(res, RuleSystemUnique, 3) {
			t.Fatalf("expected uniqueness violation on the second declaration, got %v", res.Violations)
		}
	}
}

func TestMissingSystemDeclaration(t *testing.T) {
	res := mustAudit(t, "@startuml\nparticipant \"jen:ActResident\" as jen\n@enduml")
	if countRule(res, RuleSystemUnique) != 1 {
		t.Fatalf("expected one %s, got %v", RuleSystemUnique, res.Violations)
	}
	if !hasViolationAt(res, RuleSystemFirst, 2) {
		t.Fatalf("expected %s at line 2, got %v", RuleSystemFirst, res.Violations)
	}
}

func TestActorDeclaredBeforeSystem(t *testing.T) {
	res := mustAudit(t, `@startuml
participant "jen:ActResident" as jen
participant System as system
@enduml`)
	if !hasViolationAt(res, RuleSystemFirst, 2) {
		t.Fatalf("expected %s at line 2, got %v", RuleSystemFirst, res.Violations)
	}
	if !hasViolationAt(res, RuleActorAfterSystem, 2) {
		t.Fatalf("expected %s at line 2, got %v", RuleActorAfterSystem, res.Violations)
	}
}

func TestSystemDeclarationSyntax(t *testing.T) {
	res := mustAudit(t, `@startuml
participant "Sys:System" as system
@enduml`)
	if !hasViolationAt(res, RuleSystemDeclSyntax, 2) {
		t.Fatalf("expected %s at line 2, got %v", RuleSystemDeclSyntax, res.Violations)
	}
}

func TestActorDeclarationSubChecksAreIndependent(t *testing.T) {
	// One malformed declaration raises multiple independent LDR17 violations
	// plus the camelCase rule.
	res := mustAudit(t, `@startuml
participant System as system
participant Bad_Name as Alias9X
@enduml`)
	if got := countRule(res, RuleActorDeclSyntax); got < 2 {
		t.Fatalf("expected at least 2 %s violations, got %d (%v)", RuleActorDeclSyntax, got, res.Violations)
	}
	if countRule(res, RuleActorInstanceCamel) != 1 {
		t.Fatalf("expected one %s, got %v", RuleActorInstanceCamel, res.Violations)
	}
}

func TestActorTypePattern(t *testing.T) {
	cases := []struct {
		typ string
		bad bool
	}{
		{"ActResident", false},
		{"ActMsrCreator", false},
		{"Resident", true},
		{"actResident", true},
		{"Act", true},
		{"Actlower", true},
	}
	for _, tc := range cases {
		text := fmt.Sprintf("@startuml\nparticipant System as system\nparticipant \"jen:%s\" as jen\n@enduml", tc.typ)
		res := mustAudit(t, text)
		got := countRule(res, RuleActorDeclSyntax) > 0
		if got != tc.bad {
			t.Fatalf("type %q: expected bad=%v, got violations %v", tc.typ, tc.bad, res.Violations)
		}
	}
}

func TestDirectionExclusivity(t *testing.T) {
	cases := []struct {
		msg   string
		rules []string
	}{
		{"system --> system : ieX()", []string{RuleNoSystemSelfLoop, RuleDirectionality}},
		{"jen -> bob : oeX()", []string{RuleNoActorActorLoop, RuleDirectionality}},
		{"system --> jen : ieX()", nil},
		{"jen -> system : oeX()", nil},
	}
	for _, tc := range cases {
		text := diagramHeader + tc.msg + "\nactivate jen\ndeactivate jen\n@enduml"
		res := mustAudit(t, text)
		for _, rule := range tc.rules {
			if !hasViolationAt(res, rule, 4) {
				t.Fatalf("%q: expected %s at line 4, got %v", tc.msg, rule, res.Violations)
			}
		}
		if tc.rules == nil {
			for _, rule := range []string{RuleDirectionality, RuleNoSystemSelfLoop, RuleNoActorActorLoop} {
				if countRule(res, rule) != 0 {
					t.Fatalf("%q: unexpected %s: %v", tc.msg, rule, res.Violations)
				}
			}
		}
	}
}

func TestInputEventSyntax(t *testing.T) {
	// Wrong direction for an ie event.
	res := mustAudit(t, diagramHeader+"jen -> system : ieX()\nactivate jen\ndeactivate jen\n@enduml")
	if !hasViolationAt(res, RuleInputEventSyntax, 4) {
		t.Fatalf("expected %s, got %v", RuleInputEventSyntax, res.Violations)
	}
	// Right direction, solid arrow.
	res = mustAudit(t, diagramHeader+"system -> jen : ieX()\nactivate jen\ndeactivate jen\n@enduml")
	if !hasViolationAt(res, RuleInputEventSyntax, 4) {
		t.Fatalf("expected %s for solid arrow, got %v", RuleInputEventSyntax, res.Violations)
	}
}

func TestOutputEventSyntax(t *testing.T) {
	// Wrong direction for an oe event.
	res := mustAudit(t, diagramHeader+"system --> jen : oeX()\nactivate jen\ndeactivate jen\n@enduml")
	if !hasViolationAt(res, RuleOutputEventSyntax, 4) {
		t.Fatalf("expected %s, got %v", RuleOutputEventSyntax, res.Violations)
	}
	// Right direction, dashed arrow.
	res = mustAudit(t, diagramHeader+"jen --> system : oeX()\nactivate jen\ndeactivate jen\n@enduml")
	if !hasViolationAt(res, RuleOutputEventSyntax, 4) {
		t.Fatalf("expected %s for dashed arrow, got %v", RuleOutputEventSyntax, res.Violations)
	}
}

func TestPermissiveQuoting(t *testing.T) {
	params := []string{
		`a, b, c`,
		`'a', 'b'`,
		`"a", "b"`,
		`'a', "b", c`,
		`"id-1"`,
		``,
	}
	for _, p := range params {
		text := diagramHeader + fmt.Sprintf("jen -> system : oeX(%s)\nactivate jen\ndeactivate jen\n@enduml", p)
		res := mustAudit(t, text)
		if countRule(res, RuleParamCommas) != 0 {
			t.Fatalf("params %q: unexpected %s: %v", p, RuleParamCommas, res.Violations)
		}
	}
}

func TestMalformedParameterLists(t *testing.T) {
	for _, p := range []string{`a,, b`, `a; b`, `a | b`, `,`} {
		text := diagramHeader + fmt.Sprintf("jen -> system : oeX(%s)\nactivate jen\ndeactivate jen\n@enduml", p)
		res := mustAudit(t, text)
		if countRule(res, RuleParamCommas) == 0 {
			t.Fatalf("params %q: expected %s, got %v", p, RuleParamCommas, res.Violations)
		}
	}
}

func TestQuotedCommaIsNotASeparator(t *testing.T) {
	text := diagramHeader + `jen -> system : oeX("a,b")` + "\nactivate jen\ndeactivate jen\n@enduml"
	res := mustAudit(t, text)
	if res.Verdict != report.Compliant {
		t.Fatalf("expected compliant, got %v", res.Violations)
	}
}
