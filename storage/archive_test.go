package storage_test

import (
	"testing"

	"github.com/benoitries/lucim-audit/report"
	"github.com/benoitries/lucim-audit/storage"
	"github.com/benoitries/lucim-audit/storage/localfs"
)

func newCAS(t *testing.T) storage.CAS {
	t.Helper()
	cas, err := localfs.New(t.TempDir())
	if err != nil {
		t.Fatalf("localfs.New failed: %v", err)
	}
	return cas
}

func TestStoreAndLoadReport(t *testing.T) {
	cas := newCAS(t)
	res := report.New([]report.Violation{
		{RuleID: "LDR1-SYSTEM-UNIQUENESS", Message: "duplicate declaration", Line: 3},
	}, nil)

	id, err := storage.StoreReport(cas, res)
	if err != nil {
		t.Fatalf("StoreReport failed: %v", err)
	}
	got, err := storage.LoadReport(cas, id)
	if err != nil {
		t.Fatalf("LoadReport failed: %v", err)
	}
	if got.Verdict != res.Verdict || len(got.Violations) != 1 {
		t.Fatalf("roundtrip mismatch: %+v", got)
	}
	if got.Violations[0].RuleID != res.Violations[0].RuleID {
		t.Fatalf("violation mismatch: %+v", got.Violations[0])
	}
}

func TestStoreReportIsDeterministic(t *testing.T) {
	cas := newCAS(t)
	res := report.New(nil, nil)
	id1, err := storage.StoreReport(cas, res)
	if err != nil {
		t.Fatalf("StoreReport failed: %v", err)
	}
	id2, err := storage.StoreReport(cas, res)
	if err != nil {
		t.Fatalf("StoreReport failed: %v", err)
	}
	if id1 != id2 {
		t.Fatalf("same report produced %s and %s", id1, id2)
	}
}

func TestStoreArtifactRoundtrip(t *testing.T) {
	cas := newCAS(t)
	artifact := []byte("@startuml\nparticipant System as system\n@enduml")
	id, err := storage.StoreArtifact(cas, artifact)
	if err != nil {
		t.Fatalf("StoreArtifact failed: %v", err)
	}
	got, err := cas.Get(id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != string(artifact) {
		t.Fatalf("artifact bytes differ: %q", got)
	}
}
