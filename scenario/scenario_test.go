package scenario

import "testing"

func countRule(t *testing.T, text, ruleID string) int {
	t.Helper()
	res := Audit(text)
	n := 0
	for _, v := range res.Violations {
		if v.RuleID == ruleID {
			n++
		}
	}
	return n
}

func TestCompliantScenario(t *testing.T) {
	text := "// opening exchange\n" +
		"jen -> system : oeRequestParking(\"now\")\n" +
		"system --> jen : ieConfirm(\"slot 4\")\n"
	res := Audit(text)
	if res.Verdict != "compliant" {
		t.Fatalf("verdict = %q, violations = %+v", res.Verdict, res.Violations)
	}
	if res.Coverage == nil || res.Coverage.TotalRules != len(Catalog) {
		t.Fatalf("coverage = %+v", res.Coverage)
	}
}

func TestSystemSelfLoop(t *testing.T) {
	text := "system -> system : oePing()\n"
	if got := countRule(t, text, RuleNoSystemSelfLoop); got != 1 {
		t.Fatalf("AS4 count = %d", got)
	}
	if got := countRule(t, text, RuleDirectionality); got != 1 {
		t.Fatalf("SS1 count = %d", got)
	}
}

func TestActorActorLoop(t *testing.T) {
	text := "jen -> bob : oeHello()\n"
	if got := countRule(t, text, RuleNoActorActorLoop); got != 1 {
		t.Fatalf("AS6 count = %d", got)
	}
}

func TestInputEventWrongDirection(t *testing.T) {
	text := "jen -> system : ieNotify()\n"
	if got := countRule(t, text, RuleInputDirection); got != 1 {
		t.Fatalf("AS8 count = %d", got)
	}
	if got := countRule(t, text, RuleInputEventSyntax); got != 1 {
		t.Fatalf("TCS4 count = %d", got)
	}
}

func TestOutputEventWrongDirection(t *testing.T) {
	text := "system --> jen : oeReport()\n"
	if got := countRule(t, text, RuleOutputDirection); got != 1 {
		t.Fatalf("AS9 count = %d", got)
	}
	if got := countRule(t, text, RuleOutputEventSyntax); got != 1 {
		t.Fatalf("TCS5 count = %d", got)
	}
}

func TestWrongArrowStyleOnly(t *testing.T) {
	// Direction is right, arrow style is not.
	text := "jen --> system : oeReport()\n"
	if got := countRule(t, text, RuleOutputEventSyntax); got != 1 {
		t.Fatalf("TCS5 count = %d", got)
	}
	if got := countRule(t, text, RuleOutputDirection); got != 0 {
		t.Fatalf("AS9 count = %d", got)
	}
}

func TestNonMessageLinesAreTransparent(t *testing.T) {
	text := "title Reservation flow\n\n// noise\njen -> system : oeRequest()\n"
	res := Audit(text)
	if res.Verdict != "compliant" {
		t.Fatalf("verdict = %q, violations = %+v", res.Verdict, res.Violations)
	}
}

func TestLineNumbersAreOneBased(t *testing.T) {
	text := "\n\nsystem -> system : oeLoop()\n"
	res := Audit(text)
	if len(res.Violations) == 0 || res.Violations[0].Line != 3 {
		t.Fatalf("violations = %+v", res.Violations)
	}
}
