package opmodel

import "testing"

const compliantModel = `{
  "system": {"name": "System"},
  "actors": {
    "ActResident": {
      "name": "jen",
      "input_events": {
        "ieConfirm": {"postF": ["the resident is notified"]}
      },
      "output_events": {
        "oeRequestParking": {
          "preP": ["the resident is registered"],
          "postF": ["a parking request is recorded"]
        }
      }
    }
  },
  "events": [
    {"name": "oeRequestParking", "kind": "oe", "sender": "jen", "receiver": "system"},
    {"name": "ieConfirm", "kind": "ie", "sender": "system", "receiver": "jen"}
  ]
}`

func countRule(t *testing.T, data, ruleID string) int {
	t.Helper()
	res := Audit([]byte(data))
	n := 0
	for _, v := range res.Violations {
		if v.RuleID == ruleID {
			n++
		}
	}
	return n
}

func TestCompliantModel(t *testing.T) {
	res := Audit([]byte(compliantModel))
	if res.Verdict != "compliant" {
		t.Fatalf("verdict = %q, violations = %+v", res.Verdict, res.Violations)
	}
}

func TestMalformedJSONIsBlockViolation(t *testing.T) {
	res := Audit([]byte(`{"actors": `))
	if res.Verdict != "non-compliant" {
		t.Fatalf("verdict = %q", res.Verdict)
	}
	if got := countRule(t, `{"actors": `, RuleJSONBlockOnly); got != 1 {
		t.Fatalf("LOM0 count = %d", got)
	}
}

func TestRawContentBlockRule(t *testing.T) {
	raw := "Here is the model:\n```json\n" + compliantModel + "\n```\n"
	res := AuditWithOptions([]byte(compliantModel), Options{Raw: raw})
	found := false
	for _, v := range res.Violations {
		if v.RuleID == RuleJSONBlockOnly {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected LOM0 for fenced raw content, got %+v", res.Violations)
	}
}

func TestActorTypeFormat(t *testing.T) {
	cases := []struct {
		typ string
		bad bool
	}{
		{"ActResident", false},
		{"ActMsrCreator", false},
		{"Resident", true},
		{"actResident", true},
		{"Act", true},
	}
	for _, tc := range cases {
		data := `{"actors": [{"name": "jen", "type": "` + tc.typ + `",
			"input_events": {"ieA": {"postF": ["x"]}},
			"output_events": {"oeB": {"postF": ["y"]}}}]}`
		got := countRule(t, data, RuleActorTypeFormat)
		if tc.bad && got != 1 {
			t.Errorf("%s: LOM1 count = %d, want 1", tc.typ, got)
		}
		if !tc.bad && got != 0 {
			t.Errorf("%s: LOM1 count = %d, want 0", tc.typ, got)
		}
	}
}

func TestActorTypeFallsBackToName(t *testing.T) {
	// List entries may carry the type under "name" alone.
	data := `{"actors": [{"name": "ActResident",
		"input_events": {"ieA": {"postF": ["x"]}},
		"output_events": {"oeB": {"postF": ["y"]}}}]}`
	if got := countRule(t, data, RuleActorTypeFormat); got != 0 {
		t.Fatalf("LOM1 count = %d, want 0", got)
	}
	bad := `{"actors": [{"name": "resident"}]}`
	res := Audit([]byte(bad))
	for _, v := range res.Violations {
		if v.RuleID == RuleActorTypeFormat && v.Extracted["actor_type"] != "resident" {
			t.Fatalf("actor_type = %q, want the checked value", v.Extracted["actor_type"])
		}
	}
}

func TestEventNameFormat(t *testing.T) {
	data := `{"actors": {"ActResident": {
		"input_events": {"confirm": {"postF": ["x"]}},
		"output_events": {"oerequest": {"postF": ["y"]}}
	}}}`
	if got := countRule(t, data, RuleInputNameFormat); got != 1 {
		t.Fatalf("LOM2 count = %d", got)
	}
	if got := countRule(t, data, RuleOutputNameFormat); got != 1 {
		t.Fatalf("LOM3 count = %d", got)
	}
}

func TestEventDirections(t *testing.T) {
	data := `{"events": [
		{"name": "ieConfirm", "sender": "jen", "receiver": "system"},
		{"name": "oeRequest", "sender": "system", "receiver": "jen"}
	]}`
	if got := countRule(t, data, RuleInputDirection); got != 1 {
		t.Fatalf("LOM4 count = %d", got)
	}
	if got := countRule(t, data, RuleOutputDirection); got != 1 {
		t.Fatalf("LOM5 count = %d", got)
	}
}

func TestKindInferredFromNamePrefix(t *testing.T) {
	data := `{"events": [{"name": "ieConfirm", "sender": "jen", "receiver": "system"}]}`
	if got := countRule(t, data, RuleInputDirection); got != 1 {
		t.Fatalf("LOM4 count = %d", got)
	}
}

func TestConditionStructure(t *testing.T) {
	data := `{"actors": {"ActResident": {
		"input_events": {"ieA": {"preF": "not an array", "postF": ["x"]}},
		"output_events": {"oeB": {"postF": ["", "y"]}}
	}}}`
	res := Audit([]byte(data))
	got := 0
	for _, v := range res.Violations {
		if v.RuleID == RuleConditionShape {
			got++
		}
	}
	// One for the non-array preF, one for the empty postF entry.
	if got != 2 {
		t.Fatalf("LOM6 count = %d, violations = %+v", got, res.Violations)
	}
}

func TestPostFRequired(t *testing.T) {
	data := `{"actors": {"ActResident": {
		"input_events": {"ieA": {"preP": ["registered"]}},
		"output_events": {"oeB": {"postF": []}}
	}}}`
	if got := countRule(t, data, RulePostFRequired); got != 2 {
		t.Fatalf("LOM7 count = %d", got)
	}
}

func TestEveryActorNeedsBothDirections(t *testing.T) {
	data := `{"actors": {
		"ActResident": {"input_events": {"ieA": {"postF": ["x"]}}},
		"ActClerk": {"output_events": {"oeB": {"postF": ["y"]}}}
	}}`
	if got := countRule(t, data, RuleInputRequired); got != 1 {
		t.Fatalf("LOM8 count = %d", got)
	}
	if got := countRule(t, data, RuleOutputRequired); got != 1 {
		t.Fatalf("LOM9 count = %d", got)
	}
}

func TestViolationsCarryLocations(t *testing.T) {
	data := `{"actors": {"ActResident": {"output_events": {"oeB": {"postF": ["y"]}}}}}`
	res := Audit([]byte(data))
	for _, v := range res.Violations {
		if v.Extracted["location"] == "" {
			t.Fatalf("violation without location: %+v", v)
		}
	}
}

func TestActorListAndMapShapesAgree(t *testing.T) {
	asMap := `{"actors": {"ActResident": {"name": "jen"}}}`
	asList := `{"actors": [{"name": "jen", "type": "ActResident"}]}`
	a, b := Audit([]byte(asMap)), Audit([]byte(asList))
	if len(a.Violations) != len(b.Violations) {
		t.Fatalf("map shape: %d violations, list shape: %d", len(a.Violations), len(b.Violations))
	}
}

func TestCoverageMarksRawRule(t *testing.T) {
	without := Audit([]byte(compliantModel))
	if len(without.Coverage.NotApplicable) != 1 || without.Coverage.NotApplicable[0] != RuleJSONBlockOnly {
		t.Fatalf("coverage without raw = %+v", without.Coverage)
	}
	with := AuditWithOptions([]byte(compliantModel), Options{Raw: compliantModel})
	if len(with.Coverage.NotApplicable) != 0 {
		t.Fatalf("coverage with raw = %+v", with.Coverage)
	}
}
