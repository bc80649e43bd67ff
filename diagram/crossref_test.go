package diagram

import (
	"testing"

	"github.com/benoitries/lucim-audit/catalog"
	"github.com/benoitries/lucim-audit/report"
)

func refOptions(types ...catalog.Actor) Options {
	return Options{
		OperationModel: &catalog.OperationModel{Actors: types},
		Scenario:       &catalog.Scenario{},
	}
}

func TestCrossArtifactNoopWithoutBothRefs(t *testing.T) {
	// A diagram whose actor type appears in no catalog: without both
	// references the consistency rule must stay silent.
	partial := []Options{
		{},
		{OperationModel: &catalog.OperationModel{}},
		{Scenario: &catalog.Scenario{}},
	}
	for _, opts := range partial {
		res, err := AuditWithOptions(compliantDiagram, opts)
		if err != nil {
			t.Fatalf("AuditWithOptions: %v", err)
		}
		if countRule(res, RuleActorConsistency) != 0 {
			t.Fatalf("expected no %s without refs, got %v", RuleActorConsistency, res.Violations)
		}
	}
}

func TestCrossArtifactUnknownType(t *testing.T) {
	res, err := AuditWithOptions(compliantDiagram, refOptions(catalog.Actor{Type: "ActEcologist"}))
	if err != nil {
		t.Fatalf("AuditWithOptions: %v", err)
	}
	if countRule(res, RuleActorConsistency) != 1 {
		t.Fatalf("expected one %s, got %v", RuleActorConsistency, res.Violations)
	}
	v := res.Violations[0]
	if v.Line != 3 || v.Extracted["actor_type"] != "ActResident" {
		t.Fatalf("unexpected violation payload: %+v", v)
	}
	if v.Extracted["expected_types"] != "ActEcologist" {
		t.Fatalf("expected types missing from extracted values: %+v", v)
	}
}

func TestCrossArtifactRegisteredType(t *testing.T) {
	res, err := AuditWithOptions(compliantDiagram, refOptions(catalog.Actor{Type: "ActResident", Instance: "jen"}))
	if err != nil {
		t.Fatalf("AuditWithOptions: %v", err)
	}
	if res.Verdict != report.Compliant {
		t.Fatalf("expected compliant, got %v", res.Violations)
	}
}

func TestCrossArtifactCustomCamelName(t *testing.T) {
	// "chris" for ActResident is a valid custom instance name: the catalog
	// prefers "jen" but any camelCase name with the right type is accepted.
	text := `@startuml
participant System as system
participant "chris:ActResident" as chris
chris -> system : oeHello()
activate chris
deactivate chris
@enduml`
	res, err := AuditWithOptions(text, refOptions(catalog.Actor{Type: "ActResident", Instance: "jen"}))
	if err != nil {
		t.Fatalf("AuditWithOptions: %v", err)
	}
	if countRule(res, RuleActorConsistency) != 0 {
		t.Fatalf("custom camelCase instance must pass, got %v", res.Violations)
	}
}

func TestCrossArtifactScenarioTypeMismatch(t *testing.T) {
	opts := Options{
		OperationModel: &catalog.OperationModel{Actors: []catalog.Actor{{Type: "ActResident"}}},
		Scenario:       &catalog.Scenario{Types: []string{"ActEcologist"}},
	}
	res, err := AuditWithOptions(compliantDiagram, opts)
	if err != nil {
		t.Fatalf("AuditWithOptions: %v", err)
	}
	if countRule(res, RuleActorConsistency) != 1 {
		t.Fatalf("expected one scenario mismatch, got %v", res.Violations)
	}
	if res.Violations[0].Extracted["source"] != "Scenario" {
		t.Fatalf("expected scenario-sourced violation, got %+v", res.Violations[0])
	}
}

func TestCoverageMarksCrossArtifactEvaluatedWithRefs(t *testing.T) {
	res, err := AuditWithOptions(compliantDiagram, refOptions(catalog.Actor{Type: "ActResident"}))
	if err != nil {
		t.Fatalf("AuditWithOptions: %v", err)
	}
	for _, id := range res.Coverage.NotApplicable {
		if id == RuleActorConsistency {
			t.Fatalf("%s should be evaluated when refs are present", RuleActorConsistency)
		}
	}
}
