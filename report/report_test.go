package report

import (
	"bytes"
	"testing"
)

func TestNewDerivesVerdict(t *testing.T) {
	if got := New(nil, nil).Verdict; got != Compliant {
		t.Fatalf("empty violations: got %s", got)
	}
	res := New([]Violation{{RuleID: "LDR5-SYSTEM-NO-SELF-LOOP", Message: "self loop", Line: 3}}, nil)
	if res.Verdict != NonCompliant {
		t.Fatalf("one violation: got %s", res.Verdict)
	}
}

func TestNewNormalizesNilViolations(t *testing.T) {
	res := New(nil, nil)
	if res.Violations == nil {
		t.Fatal("Violations must encode as [], not null")
	}
	data, err := res.CanonicalJSON()
	if err != nil {
		t.Fatalf("CanonicalJSON: %v", err)
	}
	if !bytes.Contains(data, []byte(`"violations":[]`)) {
		t.Fatalf("unexpected encoding: %s", data)
	}
}

func TestCanonicalJSONIsStable(t *testing.T) {
	res := New([]Violation{
		{RuleID: "LDR6-ACTOR-NO-ACTOR-LOOP", Message: "actor to actor", Line: 7,
			Extracted: map[string]string{"source": "jen", "target": "bob"}},
	}, &Coverage{TotalRules: 29, Evaluated: []string{"LDR6-ACTOR-NO-ACTOR-LOOP"},
		NotApplicable: []string{}, MissingEvaluation: []string{}})

	a, err := res.CanonicalJSON()
	if err != nil {
		t.Fatalf("CanonicalJSON: %v", err)
	}
	b, err := res.CanonicalJSON()
	if err != nil {
		t.Fatalf("CanonicalJSON: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("encodings differ:\n%s\n%s", a, b)
	}
}

func TestMergePreservesOrder(t *testing.T) {
	a := New([]Violation{{RuleID: "A", Line: 2}, {RuleID: "B", Line: 1}}, &Coverage{TotalRules: 2})
	b := New([]Violation{{RuleID: "C", Line: 5}}, nil)

	merged := a.Merge(b)
	want := []string{"A", "B", "C"}
	if len(merged.Violations) != len(want) {
		t.Fatalf("got %d violations, want %d", len(merged.Violations), len(want))
	}
	for i, id := range want {
		if merged.Violations[i].RuleID != id {
			t.Fatalf("violation %d: got %s, want %s", i, merged.Violations[i].RuleID, id)
		}
	}
	if merged.Verdict != NonCompliant {
		t.Fatalf("got %s", merged.Verdict)
	}
	if merged.Coverage == nil || merged.Coverage.TotalRules != 2 {
		t.Fatal("Merge must keep the receiver's coverage")
	}
}

func TestMergeDoesNotMutateReceiver(t *testing.T) {
	a := New([]Violation{{RuleID: "A"}}, nil)
	_ = a.Merge(New([]Violation{{RuleID: "B"}}, nil))
	if len(a.Violations) != 1 {
		t.Fatalf("receiver mutated: %v", a.Violations)
	}
}
