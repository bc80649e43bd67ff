package diagram

import (
	"fmt"
	"strings"
)

// span is one reconstructed activation interval on an actor lifeline.
// msgLine is 0 for an activation that claimed no message.
type span struct {
	openLine int
	msgLine  int
}

// lifeline is the per-actor pairing state. Idle means no pending and no open
// spans, AwaitingActivation means pending is non-empty, Active means open is
// non-empty.
type lifeline struct {
	pending []int  // unclaimed message lines, oldest first
	open    []span // open activation spans, oldest first
}

// checkActivations reconstructs per-actor activation spans in a single
// forward pass and evaluates the sequencing rules:
//
//   - LDR10: any activate/deactivate naming the System lifeline, checked
//     before any pairing and without touching state.
//   - LDR8: activate while a previous activation of the same actor is open.
//   - LDR9: a new message touching an actor whose activation is still open.
//   - LDR20: activate not immediately after its claimed message (blank and
//     comment lines are transparent), deactivate with nothing open, and
//     spans left open at end of input.
//   - LDR7: messages never claimed by any activate.
//
// An activate claims the most recent unclaimed message to its actor, not the
// first: when several messages accumulate, the activation belongs to the
// latest stimulus and every earlier one independently reports LDR7. Claimed
// messages and matched activations are never reconsidered, so one structural
// gap is reported under exactly one rule.
func checkActivations(lines []Line, c *collector) {
	states := map[string]*lifeline{}
	state := func(alias string) *lifeline {
		s, ok := states[alias]
		if !ok {
			s = &lifeline{}
			states[alias] = s
		}
		return s
	}
	var actorOrder []string // deterministic end-of-input reporting

	for _, l := range lines {
		content := strings.TrimRight(l.Raw, " \t")
		switch l.Kind {
		case KindMessage:
			for _, alias := range []string{l.Sender, l.Receiver} {
				if isSystemToken(alias) {
					continue
				}
				if _, ok := states[alias]; !ok {
					actorOrder = append(actorOrder, alias)
				}
				s := state(alias)
				if len(s.open) > 0 {
					c.add(RuleNoOverlap,
						"Activation bars must never overlap. Following sequence is forbidden: an event, start of activation bar of this event, another event before the end of the activation bar.",
						l.Number, map[string]string{"line_content": content, "lifeline": alias})
				}
				s.pending = append(s.pending, l.Number)
			}

		case KindActivate:
			if isSystemToken(l.Target) {
				c.add(RuleNoSystemActivation,
					"There must be NO activation bar in the System lifeline. Never activate System.",
					l.Number, map[string]string{"line_content": content, "lifeline": l.Target})
				continue
			}
			if _, ok := states[l.Target]; !ok {
				actorOrder = append(actorOrder, l.Target)
			}
			s := state(l.Target)
			if len(s.open) > 0 {
				c.add(RuleNoNesting,
					"Activation bars must never be nested.",
					l.Number, map[string]string{"line_content": content, "lifeline": l.Target})
				s.open = append(s.open, span{openLine: l.Number})
				continue
			}
			sp := span{openLine: l.Number}
			if n := len(s.pending); n > 0 {
				sp.msgLine = s.pending[n-1]
				s.pending = s.pending[:n-1]
				if next := nextRelevant(lines, sp.msgLine+1); next != l.Number {
					c.add(RuleStrictSequence,
						"Strictly follow this sequence: (1) event declaration, (2) activate the participant, (3) deactivate the participant.",
						sp.msgLine, map[string]string{
							"lifeline":        l.Target,
							"activation_line": fmt.Sprintf("%d", l.Number),
							"next_line":       fmt.Sprintf("%d", next),
						})
				}
			}
			s.open = append(s.open, sp)

		case KindDeactivate:
			if isSystemToken(l.Target) {
				c.add(RuleNoSystemActivation,
					"There must be NO activation bar in the System lifeline. Never deactivate System.",
					l.Number, map[string]string{"line_content": content, "lifeline": l.Target})
				continue
			}
			if _, ok := states[l.Target]; !ok {
				actorOrder = append(actorOrder, l.Target)
			}
			s := state(l.Target)
			if len(s.open) == 0 {
				c.add(RuleStrictSequence,
					"Deactivation without a matching activation on this lifeline.",
					l.Number, map[string]string{"line_content": content, "lifeline": l.Target})
				continue
			}
			s.open = s.open[:len(s.open)-1]
		}
	}

	// End of input: unclosed spans and never-claimed messages.
	for _, alias := range actorOrder {
		s := states[alias]
		for _, sp := range s.open {
			c.add(RuleStrictSequence,
				"Strictly follow this sequence: (1) event declaration, (2) activate the participant, (3) deactivate the participant.",
				sp.openLine, map[string]string{
					"lifeline":             alias,
					"missing_deactivation": "true",
				})
		}
		for _, msgLine := range s.pending {
			c.add(RuleActivationRequired,
				"For each event, an activation must be used, it must occur on the Actor lifeline immediately after the event occurrence.",
				msgLine, map[string]string{"lifeline": alias})
		}
	}
}
