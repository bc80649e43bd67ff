package diagram

import (
	"encoding/json"
	"strings"
)

const (
	beginMarker = "@startuml"
	endMarker   = "@enduml"
)

// unwrap is one pure try-unwrap transform over the raw input. Transforms are
// applied in a fixed order; each either rewrites the text or passes it
// through untouched. New envelope shapes get a new chain entry, not another
// branch in the classifier.
type unwrap struct {
	name  string
	apply func(string) (string, bool)
}

// unwrapChain is the ordered envelope-unwrapping pipeline: the JSON envelope
// (if any) is peeled first, then the diagram block is sliced out of the
// surrounding text, then literal backslash escapes are resolved.
var unwrapChain = []unwrap{
	{name: "json-envelope", apply: unwrapJSONEnvelope},
	{name: "marker-slice", apply: sliceMarkers},
	{name: "escaped-newlines", apply: unescapeLiterals},
}

// unwrapJSONEnvelope extracts the diagram string from the producer's JSON
// payload shapes:
//
//	{"data": {"plantuml-diagram": "..."}}
//	{"data": {"diagram": {"plantuml": "..."}}}   (legacy)
//	{"plantuml-diagram": "..."}                  (unwrapped)
func unwrapJSONEnvelope(text string) (string, bool) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return "", false
	}
	if s, ok := stringField(payload, "plantuml-diagram"); ok {
		return s, true
	}
	var data map[string]json.RawMessage
	if raw, ok := payload["data"]; ok && json.Unmarshal(raw, &data) == nil {
		if s, ok := stringField(data, "plantuml-diagram"); ok {
			return s, true
		}
		var diag map[string]json.RawMessage
		if raw, ok := data["diagram"]; ok && json.Unmarshal(raw, &diag) == nil {
			if s, ok := stringField(diag, "plantuml"); ok {
				return s, true
			}
		}
	}
	return "", false
}

func stringField(m map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := m[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// sliceMarkers isolates the first @startuml..@enduml block, inclusive.
// Matching falls back to case-insensitive search so a producer writing
// @STARTUML still yields a body.
func sliceMarkers(text string) (string, bool) {
	start := strings.Index(text, beginMarker)
	if start < 0 {
		start = strings.Index(strings.ToLower(text), beginMarker)
	}
	if start < 0 {
		return "", false
	}
	rest := text[start+len(beginMarker):]
	end := strings.Index(rest, endMarker)
	if end < 0 {
		end = strings.Index(strings.ToLower(rest), endMarker)
	}
	if end < 0 {
		return "", false
	}
	return text[start : start+len(beginMarker)+end+len(endMarker)], true
}

// unescapeLiterals resolves literal backslash escapes left over from JSON
// string transport. It runs after the JSON unwrap per the envelope policy.
func unescapeLiterals(text string) (string, bool) {
	if !strings.Contains(text, `\n`) && !strings.Contains(text, `\t`) {
		return "", false
	}
	out := strings.ReplaceAll(text, `\n`, "\n")
	out = strings.ReplaceAll(out, `\t`, "\t")
	return out, true
}

// extractBody normalizes raw input into the diagram body text, running the
// unwrap chain in order. It fails with an Input error when no diagram
// boundary markers can be isolated; absence of a body must never surface as
// a compliant verdict.
func extractBody(text string) (string, error) {
	cur := text
	sliced := false
	for _, u := range unwrapChain {
		if out, ok := u.apply(cur); ok {
			cur = out
			if u.name == "marker-slice" {
				sliced = true
			}
		}
	}
	// The escape resolution can reveal markers that were hidden inside a
	// single escaped line; retry the slice once after the full chain.
	if !sliced {
		out, ok := sliceMarkers(cur)
		if !ok {
			return "", newError(KindInput, "LUCIM-INPUT-001", "no @startuml/@enduml diagram boundary markers found")
		}
		cur = out
	}
	return cur, nil
}
