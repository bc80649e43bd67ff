package diagram

import (
	"fmt"
	"strings"

	"github.com/benoitries/lucim-audit/report"
)

// collector accumulates violations in discovery order.
type collector struct {
	violations []report.Violation
}

func (c *collector) add(ruleID, message string, line int, extracted map[string]string) {
	c.violations = append(c.violations, report.Violation{
		RuleID:    ruleID,
		Message:   message,
		Line:      line,
		Extracted: extracted,
	})
}

// checkBlockOnly evaluates LDR0 against the raw, un-extracted content: the
// artifact must be solely a PlantUML block, with no Markdown fences and no
// text outside the markers.
func checkBlockOnly(raw string, c *collector) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return
	}
	preview := s
	if len(preview) > 200 {
		preview = preview[:200]
	}
	if strings.Contains(s, "```") {
		c.add(RuleBlockOnly,
			"PlantUML Diagram must not include Markdown code fences. Remove the code fences (```plantuml or ```).",
			1, map[string]string{"content_preview": preview})
		return
	}
	start := strings.Index(s, beginMarker)
	end := strings.LastIndex(s, endMarker)
	if start < 0 {
		c.add(RuleBlockOnly,
			"PlantUML Diagram must be a valid PlantUML block. No @startuml found.",
			1, map[string]string{"content_preview": preview})
		return
	}
	if end < 0 || end < start {
		c.add(RuleBlockOnly,
			"PlantUML Diagram must be a valid PlantUML block. No @enduml found or @enduml appears before @startuml.",
			1, map[string]string{"content_preview": preview})
		return
	}
	if before := strings.TrimSpace(s[:start]); before != "" {
		c.add(RuleBlockOnly,
			"PlantUML Diagram must not include text outside the PlantUML block. Remove any text before @startuml.",
			1, map[string]string{"text_before": before, "content_preview": preview})
	}
	if after := strings.TrimSpace(s[end+len(endMarker):]); after != "" {
		c.add(RuleBlockOnly,
			"PlantUML Diagram must not include text outside the PlantUML block. Remove any text after @enduml.",
			1, map[string]string{"text_after": after, "content_preview": preview})
	}
}

// participants is the declared-lifeline view produced by the structural scan.
type participants struct {
	order      []string       // aliases in declaration order ("system" included)
	declLine   map[string]int // alias -> declaration line
	systemSeen bool
	systemLine int
}

// checkDeclarations runs the single forward scan over Participant lines:
// System uniqueness and ordering (LDR1/LDR2/LDR3/LDR24) and actor
// declaration syntax (LDR17/LDR27). All sub-checks are independent; one
// malformed declaration may raise several violations.
func checkDeclarations(lines []Line, c *collector) participants {
	p := participants{declLine: map[string]int{}}
	systemReported := false

	for _, l := range lines {
		if l.Kind != KindParticipant {
			continue
		}
		content := strings.TrimRight(l.Raw, " \t")

		if l.SystemDecl {
			// The uniqueness rule fires exactly once, on the second
			// declaration, regardless of how many more follow.
			if p.systemSeen && !systemReported {
				c.add(RuleSystemUnique,
					"There must be exactly one System lifeline per diagram.",
					l.Number, map[string]string{"line_content": content})
				systemReported = true
			}
			if !p.systemSeen {
				p.systemSeen = true
				p.systemLine = l.Number
			}
			p.order = append(p.order, "system")
			continue
		}

		if l.Alias == "system" || isSystemToken(l.Alias) {
			c.add(RuleSystemDeclSyntax,
				"Declare the System participant using the exact syntax: participant System as system",
				l.Number, map[string]string{"line_content": content})
			if !p.systemSeen {
				p.systemSeen = true
				p.systemLine = l.Number
			}
			p.order = append(p.order, "system")
			continue
		}

		p.order = append(p.order, l.Alias)
		if _, dup := p.declLine[l.Alias]; !dup {
			p.declLine[l.Alias] = l.Number
		}

		if !strings.Contains(l.Label, ":") {
			c.add(RuleActorDeclSyntax,
				`Each actor must be declared using: participant "anActorName:ActActorType" as anActorName`,
				l.Number, map[string]string{"line_content": content, "label": l.Label, "alias": l.Alias})
		} else {
			name, typ, _ := strings.Cut(l.Label, ":")
			if name != l.Alias {
				c.add(RuleActorDeclSyntax,
					"Alias must match the actor instance name before ':' in the label.",
					l.Number, map[string]string{
						"line_content": content, "label": l.Label,
						"alias": l.Alias, "expected_alias": name,
					})
			}
			if !actorTypeRe.MatchString(typ) {
				c.add(RuleActorDeclSyntax,
					"Actor type must match pattern Act[A-Z][A-Za-z0-9]*.",
					l.Number, map[string]string{"line_content": content, "actor_type": typ})
			}
		}
		if !l.QuotedLabel {
			c.add(RuleActorDeclSyntax,
				`Actor label should be quoted: participant "anActorName:ActActorType" as anActorName`,
				l.Number, map[string]string{"line_content": content})
		}
		if !camelAliasRe.MatchString(l.Alias) {
			c.add(RuleActorInstanceCamel,
				"All actor instance names must be human-readable in camelCase.",
				l.Number, map[string]string{"line_content": content, "alias": l.Alias})
		}
		if !p.systemSeen {
			c.add(RuleSystemFirst,
				"The System must be declared first before all actors.",
				l.Number, map[string]string{
					"line_content": content, "participant_label": l.Label, "participant_alias": l.Alias,
				})
		}
	}

	if p.systemSeen {
		sysIndex := -1
		for i, alias := range p.order {
			if alias == "system" {
				sysIndex = i
				break
			}
		}
		for i, alias := range p.order {
			if alias != "system" && i < sysIndex {
				c.add(RuleActorAfterSystem,
					"The actors must be declared after the System.",
					p.declLine[alias], map[string]string{
						"actor_alias":      alias,
						"system_decl_line": fmt.Sprintf("%d", p.systemLine),
					})
				break
			}
		}
	} else {
		first := ""
		for _, l := range lines {
			if isRelevant(l.Raw) {
				first = strings.TrimRight(l.Raw, " \t")
				break
			}
		}
		if first == "" {
			first = "(empty file)"
		}
		c.add(RuleSystemUnique,
			"System participant not declared (expected: participant System as system).",
			1, map[string]string{"line_content": first})
	}
	return p
}

// checkMessages evaluates the per-message structural rules: directionality
// (LDR4/LDR5/LDR6), event-prefix syntax (LDR25/LDR26) and parameter syntax
// (LDR23). Arrow style, name prefix and direction are three independent
// conditions; a message can fail one without failing the others.
func checkMessages(lines []Line, c *collector) {
	for _, l := range lines {
		if l.Kind != KindMessage {
			continue
		}
		content := strings.TrimRight(l.Raw, " \t")
		base := map[string]string{
			"line_content": content,
			"sender":       l.Sender,
			"receiver":     l.Receiver,
			"event_name":   l.Event,
		}
		withArrow := func() map[string]string {
			m := map[string]string{"arrow": l.Arrow}
			for k, v := range base {
				m[k] = v
			}
			return m
		}

		switch l.Direction() {
		case SystemToSystem:
			c.add(RuleNoSystemSelfLoop,
				"Events must never be from System to System. System → System",
				l.Number, base)
		case ActorToActor:
			c.add(RuleNoActorActorLoop,
				"Events must never be from Actor to Actor. Actor → Actor",
				l.Number, base)
		}
		if d := l.Direction(); d != SystemToActor && d != ActorToSystem {
			c.add(RuleDirectionality,
				"Every message in a LUCIM interaction must connect exactly one Actor lifeline and the System lifeline.",
				l.Number, base)
		}

		if strings.HasPrefix(l.Event, "ie") {
			if l.Direction() != SystemToActor {
				c.add(RuleInputEventSyntax,
					"ie events must be modeled using dashed arrows and following this declaration syntax: system --> theParticipant : ieMessageName(EP)",
					l.Number, withArrow())
			} else if !strings.HasPrefix(l.Arrow, "--") {
				c.add(RuleInputEventSyntax,
					"ie events must be modeled using dashed arrows (-->).",
					l.Number, withArrow())
			}
		}
		if strings.HasPrefix(l.Event, "oe") {
			if l.Direction() != ActorToSystem {
				c.add(RuleOutputEventSyntax,
					"oe events must be modeled using continuous arrows and following this declaration syntax: theParticipant -> system : oeMessage(EP)",
					l.Number, withArrow())
			} else if l.Arrow != "->" {
				c.add(RuleOutputEventSyntax,
					"oe events must be modeled using continuous arrows (->).",
					l.Number, withArrow())
			}
		}

		checkParameters(l, content, c)
	}
}

// checkParameters enforces LDR23. Quoting is deliberately unrestricted:
// none, single, double, or any mixture within one list are all permitted
// (LDR22 is permissive); only the comma structure is validated.
func checkParameters(l Line, content string, c *collector) {
	params := l.Params
	if strings.ContainsAny(params, ";|") {
		c.add(RuleParamCommas,
			"Multiple parameters must be comma-separated.",
			l.Number, map[string]string{"line_content": content, "params": params})
	}
	parts := splitParams(strings.TrimSpace(params))
	if len(parts) > 1 {
		for _, p := range parts {
			if p == "" {
				c.add(RuleParamCommas,
					"Multiple parameters must be valid comma-separated values without empty items.",
					l.Number, map[string]string{"line_content": content, "params": params})
				break
			}
		}
	}
}

// splitParams splits a parameter list on commas while respecting single and
// double quotes. An empty list yields no parts.
func splitParams(p string) []string {
	var parts []string
	var buf strings.Builder
	inSingle, inDouble := false, false
	for _, ch := range p {
		switch {
		case ch == '\'' && !inDouble:
			inSingle = !inSingle
			buf.WriteRune(ch)
		case ch == '"' && !inSingle:
			inDouble = !inDouble
			buf.WriteRune(ch)
		case ch == ',' && !inSingle && !inDouble:
			parts = append(parts, strings.TrimSpace(buf.String()))
			buf.Reset()
		default:
			buf.WriteRune(ch)
		}
	}
	parts = append(parts, strings.TrimSpace(buf.String()))
	if len(parts) == 1 && parts[0] == "" {
		return nil
	}
	return parts
}
