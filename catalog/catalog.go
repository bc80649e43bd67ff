// Package catalog holds the actor-type reference catalogs extracted from the
// sibling LUCIM artifacts (operation model, scenario). The diagram auditor
// consumes them for cross-artifact consistency checks.
package catalog

import (
	"encoding/json"
	"sort"
	"strings"
)

// Actor is one declared actor of the operation model: a type name (ActXxx)
// and an optional preferred instance name.
type Actor struct {
	Type     string
	Instance string
}

// OperationModel is the actor-type catalog derived from an operation model
// artifact.
type OperationModel struct {
	Actors []Actor
}

// Types returns the declared actor type names, sorted.
func (m *OperationModel) Types() []string {
	if m == nil {
		return nil
	}
	out := make([]string, 0, len(m.Actors))
	for _, a := range m.Actors {
		if a.Type != "" {
			out = append(out, a.Type)
		}
	}
	sort.Strings(out)
	return out
}

// HasType reports whether typ is a declared actor type.
func (m *OperationModel) HasType(typ string) bool {
	if m == nil {
		return false
	}
	for _, a := range m.Actors {
		if a.Type == typ {
			return true
		}
	}
	return false
}

// InstanceFor returns the preferred instance name declared for typ, or "".
func (m *OperationModel) InstanceFor(typ string) string {
	if m == nil {
		return ""
	}
	for _, a := range m.Actors {
		if a.Type == typ {
			return a.Instance
		}
	}
	return ""
}

// OperationModelFromJSON builds the catalog from operation model JSON. Both
// producer shapes are accepted: actors as a map keyed by type name, and
// actors as a list of {name, type} objects. Unknown fields are ignored.
func OperationModelFromJSON(data []byte) (*OperationModel, error) {
	var payload struct {
		Actors json.RawMessage `json:"actors"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}
	m := &OperationModel{}
	if len(payload.Actors) == 0 {
		return m, nil
	}

	var byType map[string]struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(payload.Actors, &byType); err == nil {
		types := make([]string, 0, len(byType))
		for t := range byType {
			types = append(types, t)
		}
		sort.Strings(types)
		for _, t := range types {
			m.Actors = append(m.Actors, Actor{
				Type:     strings.TrimSpace(t),
				Instance: strings.TrimSpace(byType[t].Name),
			})
		}
		return m, nil
	}

	var asList []struct {
		Name string `json:"name"`
		Type string `json:"type"`
	}
	if err := json.Unmarshal(payload.Actors, &asList); err != nil {
		return nil, err
	}
	for _, a := range asList {
		if t := strings.TrimSpace(a.Type); t != "" {
			m.Actors = append(m.Actors, Actor{Type: t, Instance: strings.TrimSpace(a.Name)})
		}
	}
	return m, nil
}

// Scenario is the actor-type catalog derived from a scenario artifact. The
// scenario's message list names instances, not types, so the type set is
// often empty; an empty set disables the scenario side of the consistency
// check without disabling the operation-model side.
type Scenario struct {
	Types []string
}

// HasType reports whether typ appears in the scenario's type set.
func (s *Scenario) HasType(typ string) bool {
	if s == nil {
		return false
	}
	for _, t := range s.Types {
		if t == typ {
			return true
		}
	}
	return false
}
