package diagram

import (
	"fmt"
	"strings"

	"github.com/benoitries/lucim-audit/catalog"
)

// checkCrossArtifact evaluates LDR28: declared actor instances must resolve
// to a type registered in the external reference catalogs. It runs only when
// BOTH the operation model and the scenario are supplied; a missing
// reference is a no-op, never a pass.
//
// Custom instance names are accepted for a registered type as long as they
// are camelCase (e.g. "chris" for ActEcologist), matching the rulebook's
// examples.
func checkCrossArtifact(lines []Line, om *catalog.OperationModel, sc *catalog.Scenario, c *collector) {
	if om == nil || sc == nil {
		return
	}
	for _, l := range lines {
		if l.Kind != KindParticipant || l.SystemDecl || isSystemToken(l.Alias) {
			continue
		}
		name, typ, ok := strings.Cut(l.Label, ":")
		if !ok {
			// Malformed declarations are LDR17's business.
			continue
		}

		if !om.HasType(typ) {
			c.add(RuleActorConsistency,
				fmt.Sprintf("Actor instance '%s' has type '%s' which is not defined in the Operation Model. Actor instance names must be consistent with their type definition.", l.Alias, typ),
				l.Number, map[string]string{
					"actor_instance":      l.Alias,
					"actor_instance_name": name,
					"actor_type":          typ,
					"expected_types":      strings.Join(om.Types(), ","),
					"source":              "Operation Model",
				})
			continue
		}

		if expected := om.InstanceFor(typ); expected != "" && name != expected && l.Alias != expected {
			if !camelAliasRe.MatchString(name) && !camelAliasRe.MatchString(l.Alias) {
				c.add(RuleActorConsistency,
					fmt.Sprintf("Actor instance '%s' (name: '%s') is not consistent with the expected instance name '%s' for type '%s' in the Operation Model, and does not follow camelCase naming convention.", l.Alias, name, expected, typ),
					l.Number, map[string]string{
						"actor_instance":         l.Alias,
						"actor_instance_name":    name,
						"actor_type":             typ,
						"expected_instance_name": expected,
						"source":                 "Operation Model",
					})
			}
		}

		if !camelAliasRe.MatchString(name) && !camelAliasRe.MatchString(l.Alias) {
			c.add(RuleActorConsistency,
				fmt.Sprintf("Actor instance '%s' (name: '%s') does not follow camelCase naming convention.", l.Alias, name),
				l.Number, map[string]string{
					"actor_instance":      l.Alias,
					"actor_instance_name": name,
					"actor_type":          typ,
					"source":              "Naming Convention",
				})
		}

		if len(sc.Types) > 0 && !sc.HasType(typ) {
			c.add(RuleActorConsistency,
				fmt.Sprintf("Actor instance '%s' (name: '%s') has type '%s' which is not consistent with the Scenario.", l.Alias, name, typ),
				l.Number, map[string]string{
					"actor_instance":      l.Alias,
					"actor_instance_name": name,
					"actor_type":          typ,
					"source":              "Scenario",
				})
		}
	}
}
