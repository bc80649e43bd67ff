package diagram

import "testing"

func TestClassifyKinds(t *testing.T) {
	lines := classify(compliantDiagram)
	want := []LineKind{
		KindOther,       // @startuml
		KindParticipant, // system
		KindParticipant, // jen
		KindMessage,
		KindActivate,
		KindDeactivate,
		KindMessage,
		KindActivate,
		KindDeactivate,
		KindOther, // @enduml
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(lines))
	}
	for i, k := range want {
		if lines[i].Kind != k {
			t.Fatalf("line %d: expected kind %d, got %d (%q)", i+1, k, lines[i].Kind, lines[i].Raw)
		}
		if lines[i].Number != i+1 {
			t.Fatalf("line %d: number %d", i+1, lines[i].Number)
		}
	}
}

func TestClassifyParticipantFields(t *testing.T) {
	lines := classify(`participant System as system
participant "jen:ActResident" as jen #FFF3B3`)
	sys, jen := lines[0], lines[1]
	if !sys.SystemDecl || sys.Alias != "system" {
		t.Fatalf("system declaration not recognized: %+v", sys)
	}
	if jen.Alias != "jen" || jen.Label != "jen:ActResident" || !jen.QuotedLabel {
		t.Fatalf("actor declaration fields wrong: %+v", jen)
	}
}

func TestClassifyMessageFields(t *testing.T) {
	lines := classify(`jen -> system : oeRequest("id", 'n', raw)`)
	m := lines[0]
	if m.Kind != KindMessage {
		t.Fatalf("expected message, got %+v", m)
	}
	if m.Sender != "jen" || m.Receiver != "system" || m.Arrow != "->" || m.Event != "oeRequest" {
		t.Fatalf("fields wrong: %+v", m)
	}
	if m.Params != `"id", 'n', raw` {
		t.Fatalf("params wrong: %q", m.Params)
	}
	if m.Direction() != ActorToSystem {
		t.Fatalf("direction wrong: %d", m.Direction())
	}
}

func TestDirectionClasses(t *testing.T) {
	cases := []struct {
		src, dst string
		want     DirectionClass
	}{
		{"system", "jen", SystemToActor},
		{"System", "jen", SystemToActor},
		{"jen", "system", ActorToSystem},
		{"system", "system", SystemToSystem},
		{"jen", "bob", ActorToActor},
	}
	for _, tc := range cases {
		l := Line{Sender: tc.src, Receiver: tc.dst}
		if got := l.Direction(); got != tc.want {
			t.Fatalf("%s -> %s: expected %d, got %d", tc.src, tc.dst, tc.want, got)
		}
	}
}

func TestCommentDetection(t *testing.T) {
	comments := []string{
		"// a comment",
		"' another comment",
		"/note right/",
		"note right: something",
		"note over jen",
	}
	for _, c := range comments {
		if !isCommentLine(c) {
			t.Fatalf("%q should be a comment", c)
		}
	}
	notComments := []string{
		"participant System as system",
		"jen -> system : oeX()",
		"",
		"notable -> system : oeX()",
	}
	for _, c := range notComments {
		if isCommentLine(c) {
			t.Fatalf("%q should not be a comment", c)
		}
	}
}

func TestNextRelevantSkipsBlanksAndComments(t *testing.T) {
	lines := classify("jen -> system : oeX()\n\n// gap\nactivate jen")
	if got := nextRelevant(lines, 2); got != 4 {
		t.Fatalf("expected next relevant line 4, got %d", got)
	}
	if got := nextRelevant(lines, 5); got != 0 {
		t.Fatalf("expected 0 past end, got %d", got)
	}
}
