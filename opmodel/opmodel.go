// Package opmodel implements the deterministic compliance auditor for LUCIM
// operation-model artifacts. The artifact is a JSON document describing the
// system, its actors, their typed input/output events, and the event
// pre/postconditions.
//
// JSON documents are not line-addressable, so violations carry Line 0 and a
// "location" entry in the extracted values (a dotted path into the document).
package opmodel

import (
	"encoding/json"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/benoitries/lucim-audit/report"
)

// Stable rule identifiers, in rulebook order.
const (
	RuleJSONBlockOnly    = "LOM0-JSON-BLOCK-ONLY"
	RuleActorTypeFormat  = "LOM1-ACTOR-TYPE-FORMAT"
	RuleInputNameFormat  = "LOM2-IE-NAME-FORMAT"
	RuleOutputNameFormat = "LOM3-OE-NAME-FORMAT"
	RuleInputDirection   = "LOM4-IE-EVENT-DIRECTION"
	RuleOutputDirection  = "LOM5-OE-EVENT-DIRECTION"
	RuleConditionShape   = "LOM6-CONDITION-STRUCTURE"
	RulePostFRequired    = "LOM7-POSTF-REQUIRED"
	RuleInputRequired    = "LOM8-INPUT-EVENTS-LIMITATION"
	RuleOutputRequired   = "LOM9-OUTPUT-EVENTS-LIMITATION"
)

// Catalog is the fixed operation-model rule table.
var Catalog = []string{
	RuleJSONBlockOnly,
	RuleActorTypeFormat,
	RuleInputNameFormat,
	RuleOutputNameFormat,
	RuleInputDirection,
	RuleOutputDirection,
	RuleConditionShape,
	RulePostFRequired,
	RuleInputRequired,
	RuleOutputRequired,
}

var (
	actorTypeRe = regexp.MustCompile(`^Act[A-Z][A-Za-z0-9]*$`)
	ieNameRe    = regexp.MustCompile(`^ie[A-Z][A-Za-z0-9]*$`)
	oeNameRe    = regexp.MustCompile(`^oe[A-Z][A-Za-z0-9]*$`)
)

// conditionBlock is one event entry inside an actor's input_events or
// output_events object.
type conditionBlock struct {
	PreF  json.RawMessage `json:"preF"`
	PreP  json.RawMessage `json:"preP"`
	PostF json.RawMessage `json:"postF"`
}

// actor is the normalized form of one actors entry. Type is taken from the
// object key when actors is keyed by type, from the "type" field otherwise.
type actor struct {
	Type         string
	Name         string
	InputEvents  map[string]json.RawMessage
	OutputEvents map[string]json.RawMessage
	Location     string
}

// eventDecl is one entry of the top-level events list.
type eventDecl struct {
	Name       string          `json:"name"`
	Kind       string          `json:"kind"`
	Sender     string          `json:"sender"`
	Receiver   string          `json:"receiver"`
	Parameters json.RawMessage `json:"parameters"`
	PreF       json.RawMessage `json:"preF"`
	PreP       json.RawMessage `json:"preP"`
	PostF      json.RawMessage `json:"postF"`
}

// Options carries optional inputs for an audit.
type Options struct {
	// Raw, when non-empty, is the content exactly as submitted, before any
	// envelope stripping. It is checked against the JSON-block-only rule.
	Raw string
}

type collector struct {
	violations []report.Violation
}

func (c *collector) add(ruleID, message, location string, extracted map[string]string) {
	if extracted == nil {
		extracted = map[string]string{}
	}
	if location != "" {
		extracted["location"] = location
	}
	c.violations = append(c.violations, report.Violation{
		RuleID:    ruleID,
		Message:   message,
		Extracted: extracted,
	})
}

// Audit audits an operation-model JSON document.
func Audit(data []byte) report.Result {
	return AuditWithOptions(data, Options{})
}

// AuditWithOptions audits an operation-model document with extra context.
// All failures are reported as violations; the call itself never fails.
func AuditWithOptions(data []byte, o Options) report.Result {
	c := &collector{}

	if o.Raw != "" {
		checkJSONBlockOnly(c, o.Raw)
	}

	var env map[string]json.RawMessage
	if err := json.Unmarshal(data, &env); err != nil {
		c.add(RuleJSONBlockOnly, "Content is not a single well-formed JSON object.", "$", map[string]string{
			"parse_error": err.Error(),
		})
		return report.New(c.violations, coverage(o.Raw != ""))
	}

	actors := normalizeActors(env["actors"])
	checkActors(c, actors)
	checkActorEvents(c, actors)
	checkEventList(c, env["events"])
	checkEventCounts(c, actors)

	return report.New(c.violations, coverage(o.Raw != ""))
}

func coverage(withRaw bool) *report.Coverage {
	cov := &report.Coverage{
		TotalRules:        len(Catalog),
		Evaluated:         []string{},
		NotApplicable:     []string{},
		MissingEvaluation: []string{},
	}
	for _, id := range Catalog {
		if id == RuleJSONBlockOnly && !withRaw {
			// Without the raw submission the block rule only sees parse
			// failures, not surrounding prose or fences.
			cov.NotApplicable = append(cov.NotApplicable, id)
			continue
		}
		cov.Evaluated = append(cov.Evaluated, id)
	}
	return cov
}

// checkJSONBlockOnly verifies the submission is exactly one JSON object with
// no prose, fences, or trailing text around it.
func checkJSONBlockOnly(c *collector, raw string) {
	trimmed := strings.TrimSpace(raw)
	if strings.Contains(trimmed, "```") {
		c.add(RuleJSONBlockOnly, "Content must be a bare JSON object, without code fences.", "$", nil)
		return
	}
	if !strings.HasPrefix(trimmed, "{") || !strings.HasSuffix(trimmed, "}") {
		c.add(RuleJSONBlockOnly, "Content must contain only a single JSON object and nothing else.", "$", map[string]string{
			"content_preview": preview(trimmed),
		})
		return
	}
	if !json.Valid([]byte(trimmed)) {
		c.add(RuleJSONBlockOnly, "Content is not a single well-formed JSON object.", "$", nil)
	}
}

func preview(s string) string {
	if len(s) > 200 {
		return s[:200]
	}
	return s
}

// normalizeActors accepts both actors shapes: an object keyed by actor type
// with instance objects as values, and a flat list of {name, type} objects.
// Object keys are visited in sorted order so output is deterministic.
func normalizeActors(node json.RawMessage) []actor {
	if len(node) == 0 {
		return nil
	}
	var out []actor

	var byType map[string]json.RawMessage
	if err := json.Unmarshal(node, &byType); err == nil {
		keys := make([]string, 0, len(byType))
		for k := range byType {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			a := decodeActor(byType[k])
			a.Type = k
			a.Location = "actors." + k
			out = append(out, a)
		}
		return out
	}

	var list []json.RawMessage
	if err := json.Unmarshal(node, &list); err != nil {
		return nil
	}
	for i, item := range list {
		a := decodeActor(item)
		a.Location = "actors[" + strconv.Itoa(i) + "]"
		out = append(out, a)
	}
	return out
}

func decodeActor(raw json.RawMessage) actor {
	var body struct {
		Name         string                     `json:"name"`
		Type         string                     `json:"type"`
		InputEvents  map[string]json.RawMessage `json:"input_events"`
		OutputEvents map[string]json.RawMessage `json:"output_events"`
	}
	_ = json.Unmarshal(raw, &body)
	return actor{
		Type:         strings.TrimSpace(body.Type),
		Name:         strings.TrimSpace(body.Name),
		InputEvents:  body.InputEvents,
		OutputEvents: body.OutputEvents,
	}
}

func checkActors(c *collector, actors []actor) {
	for _, a := range actors {
		typ := a.Type
		if typ == "" {
			typ = a.Name
		}
		if typ == "" {
			continue
		}
		if !actorTypeRe.MatchString(typ) {
			c.add(RuleActorTypeFormat,
				"Actor type must match Act<CamelCase> (e.g. ActResident).",
				a.Location, map[string]string{"actor_type": typ})
		}
	}
}

// checkActorEvents walks each actor's input_events and output_events blocks:
// event name format, condition structure, and the postF requirement.
func checkActorEvents(c *collector, actors []actor) {
	for _, a := range actors {
		checkEventBlock(c, a, "input_events", a.InputEvents, ieNameRe, RuleInputNameFormat,
			"Input event names must match ie<CamelCase> (e.g. ieConfirm).")
		checkEventBlock(c, a, "output_events", a.OutputEvents, oeNameRe, RuleOutputNameFormat,
			"Output event names must match oe<CamelCase> (e.g. oeRequestParking).")
	}
}

func checkEventBlock(c *collector, a actor, block string, events map[string]json.RawMessage, nameRe *regexp.Regexp, nameRule, nameMessage string) {
	names := make([]string, 0, len(events))
	for name := range events {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		loc := a.Location + "." + block + "." + name
		if !nameRe.MatchString(name) {
			c.add(nameRule, nameMessage, loc, map[string]string{"event_name": name})
		}

		var cond conditionBlock
		if err := json.Unmarshal(events[name], &cond); err != nil {
			c.add(RuleConditionShape, "Event entry must be a JSON object.", loc, nil)
			continue
		}
		checkConditionList(c, loc+".preF", cond.PreF)
		checkConditionList(c, loc+".preP", cond.PreP)
		checkConditionList(c, loc+".postF", cond.PostF)

		if !hasNonEmptyList(cond.PostF) {
			c.add(RulePostFRequired,
				"Every event must declare at least one postF functional postcondition.",
				loc, map[string]string{"event_name": name})
		}
	}
}

// checkConditionList enforces that a present condition field is an array of
// non-empty strings.
func checkConditionList(c *collector, loc string, raw json.RawMessage) {
	if len(raw) == 0 || string(raw) == "null" {
		return
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		c.add(RuleConditionShape, "Condition field must be an array of strings.", loc, nil)
		return
	}
	for i, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err != nil {
			c.add(RuleConditionShape, "Condition entries must be strings.", loc+"["+strconv.Itoa(i)+"]", nil)
			continue
		}
		if strings.TrimSpace(s) == "" {
			c.add(RuleConditionShape, "Condition text must not be empty.", loc+"["+strconv.Itoa(i)+"]", nil)
		}
	}
}

func hasNonEmptyList(raw json.RawMessage) bool {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return false
	}
	return len(items) > 0
}

// checkEventList validates the top-level events list: name format again (the
// list may carry events absent from the actor blocks), direction per kind,
// and parameter shape.
func checkEventList(c *collector, node json.RawMessage) {
	if len(node) == 0 {
		return
	}
	var events []eventDecl
	if err := json.Unmarshal(node, &events); err != nil {
		c.add(RuleConditionShape, "events must be an array of event objects.", "events", nil)
		return
	}
	for i, ev := range events {
		loc := "events[" + strconv.Itoa(i) + "]"
		kind := ev.Kind
		if kind == "" {
			switch {
			case strings.HasPrefix(ev.Name, "ie"):
				kind = "ie"
			case strings.HasPrefix(ev.Name, "oe"):
				kind = "oe"
			}
		}
		senderSystem := strings.EqualFold(ev.Sender, "system")
		receiverSystem := strings.EqualFold(ev.Receiver, "system")

		switch kind {
		case "ie":
			if ev.Name != "" && !ieNameRe.MatchString(ev.Name) {
				c.add(RuleInputNameFormat,
					"Input event names must match ie<CamelCase> (e.g. ieConfirm).",
					loc, map[string]string{"event_name": ev.Name})
			}
			if !senderSystem || receiverSystem {
				c.add(RuleInputDirection,
					"Input events (ie) flow from the System to an actor.",
					loc, map[string]string{"sender": ev.Sender, "receiver": ev.Receiver})
			}
		case "oe":
			if ev.Name != "" && !oeNameRe.MatchString(ev.Name) {
				c.add(RuleOutputNameFormat,
					"Output event names must match oe<CamelCase> (e.g. oeRequestParking).",
					loc, map[string]string{"event_name": ev.Name})
			}
			if senderSystem || !receiverSystem {
				c.add(RuleOutputDirection,
					"Output events (oe) flow from an actor to the System.",
					loc, map[string]string{"sender": ev.Sender, "receiver": ev.Receiver})
			}
		}

		checkParameters(c, loc+".parameters", ev.Parameters)
		checkConditionList(c, loc+".preF", ev.PreF)
		checkConditionList(c, loc+".preP", ev.PreP)
		checkConditionList(c, loc+".postF", ev.PostF)
	}
}

func checkParameters(c *collector, loc string, raw json.RawMessage) {
	if len(raw) == 0 || string(raw) == "null" {
		return
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		c.add(RuleConditionShape, "parameters must be an array of strings.", loc, nil)
		return
	}
	for i, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err != nil {
			c.add(RuleConditionShape, "parameters entries must be strings.", loc+"["+strconv.Itoa(i)+"]", nil)
		}
	}
}

// checkEventCounts enforces that every actor declares at least one input and
// one output event.
func checkEventCounts(c *collector, actors []actor) {
	for _, a := range actors {
		name := a.Type
		if name == "" {
			name = a.Name
		}
		if name == "" {
			continue
		}
		if countEvents(a.InputEvents) == 0 {
			c.add(RuleInputRequired,
				"Each actor must have at least one input event in the operation model.",
				a.Location, map[string]string{"actor_type": name})
		}
		if countEvents(a.OutputEvents) == 0 {
			c.add(RuleOutputRequired,
				"Each actor must have at least one output event in the operation model.",
				a.Location, map[string]string{"actor_type": name})
		}
	}
}

func countEvents(events map[string]json.RawMessage) int {
	n := 0
	for _, raw := range events {
		var obj map[string]json.RawMessage
		if json.Unmarshal(raw, &obj) == nil {
			n++
		}
	}
	return n
}
