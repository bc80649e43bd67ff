package diagram

import "github.com/benoitries/lucim-audit/report"

// Category groups catalog rules by the engine that evaluates them.
type Category string

const (
	CategoryStructural    Category = "structural"
	CategorySequencing    Category = "sequencing"
	CategoryCrossArtifact Category = "cross-artifact"
	CategoryPermissive    Category = "permissive"
	CategoryGraphical     Category = "graphical"
)

// Stable rule identifiers. IDs must never change across versions; coverage
// accounting and downstream correctors key on them.
const (
	RuleBlockOnly          = "LDR0-PLANTUML-BLOCK-ONLY"
	RuleSystemUnique       = "LDR1-SYS-UNIQUE"
	RuleActorAfterSystem   = "LDR2-ACTOR-DECLARED-AFTER-SYSTEM"
	RuleSystemFirst        = "LDR3-SYSTEM-DECLARED-FIRST"
	RuleDirectionality     = "LDR4-EVENT-DIRECTIONALITY"
	RuleNoSystemSelfLoop   = "LDR5-SYSTEM-NO-SELF-LOOP"
	RuleNoActorActorLoop   = "LDR6-ACTOR-NO-ACTOR-LOOP"
	RuleActivationRequired = "LDR7-ACTIVATION-BAR-SEQUENCE"
	RuleNoNesting          = "LDR8-ACTIVATION-BAR-NESTING-FORBIDDEN"
	RuleNoOverlap          = "LDR9-ACTIVATION-BAR-OVERLAPPING-FORBIDDEN"
	RuleNoSystemActivation = "LDR10-ACTIVATION-BAR-ON-SYSTEM-FORBIDDEN"
	RuleActorDeclSyntax    = "LDR17-ACTOR-DECLARATION-SYNTAX"
	RuleLucimFormat        = "LDR18-DIAGRAM-LUCIM-REPRESENTATION"
	RuleBlankLinesAllowed  = "LDR19-DIAGRAM-ALLOW-BLANK-LINES-AND-COMMENTS"
	RuleStrictSequence     = "LDR20-ACTIVATION-BAR-SEQUENCE"
	RuleParamType          = "LDR21-EVENT-PARAMETER-TYPE"
	RuleParamQuoting       = "LDR22-EVENT-PARAMETER-FLEX-QUOTING"
	RuleParamCommas        = "LDR23-EVENT-PARAMETER-COMMA-SEPARATED"
	RuleSystemDeclSyntax   = "LDR24-SYSTEM-DECLARATION"
	RuleInputEventSyntax   = "LDR25-INPUT-EVENT-SYNTAX"
	RuleOutputEventSyntax  = "LDR26-OUTPUT-EVENT-SYNTAX"
	RuleActorInstanceCamel = "LDR27-ACTOR-INSTANCE-FORMAT"
	RuleActorConsistency   = "LDR28-ACTOR-INSTANCE-NAME-CONSISTENCY"
)

// Rule is one entry of the diagram rule catalog.
//
// Evaluated marks rules this auditor actually checks. Permissive and
// graphical rules stay in the table so coverage accounting against the full
// rulebook is mechanically checkable, but raise no violations here:
// permissive rules allow by definition, graphical rules need a rendered
// diagram, which is out of scope.
type Rule struct {
	ID        string
	Category  Category
	Evaluated bool
}

// Catalog is the fixed diagram rule table, in rulebook order.
var Catalog = []Rule{
	{ID: RuleBlockOnly, Category: CategoryStructural, Evaluated: true},
	{ID: RuleSystemUnique, Category: CategoryStructural, Evaluated: true},
	{ID: RuleActorAfterSystem, Category: CategoryStructural, Evaluated: true},
	{ID: RuleSystemFirst, Category: CategoryStructural, Evaluated: true},
	{ID: RuleDirectionality, Category: CategoryStructural, Evaluated: true},
	{ID: RuleNoSystemSelfLoop, Category: CategoryStructural, Evaluated: true},
	{ID: RuleNoActorActorLoop, Category: CategoryStructural, Evaluated: true},
	{ID: RuleActivationRequired, Category: CategorySequencing, Evaluated: true},
	{ID: RuleNoNesting, Category: CategorySequencing, Evaluated: true},
	{ID: RuleNoOverlap, Category: CategorySequencing, Evaluated: true},
	{ID: RuleNoSystemActivation, Category: CategorySequencing, Evaluated: true},
	{ID: "LDR11-SYSTEM-SHAPE", Category: CategoryGraphical},
	{ID: "LDR12-SYSTEM-COLOR", Category: CategoryGraphical},
	{ID: "LDR13-ACTOR-SHAPE", Category: CategoryGraphical},
	{ID: "LDR14-ACTOR-COLOR", Category: CategoryGraphical},
	{ID: "LDR15-ACTIVATION-BAR-INPUT-EVENT-COLOR", Category: CategoryGraphical},
	{ID: "LDR16-ACTIVATION-BAR-OUTPUT-EVENT-COLOR", Category: CategoryGraphical},
	{ID: RuleActorDeclSyntax, Category: CategoryStructural, Evaluated: true},
	{ID: RuleLucimFormat, Category: CategoryPermissive},
	{ID: RuleBlankLinesAllowed, Category: CategoryPermissive},
	{ID: RuleStrictSequence, Category: CategorySequencing, Evaluated: true},
	{ID: RuleParamType, Category: CategoryPermissive},
	{ID: RuleParamQuoting, Category: CategoryPermissive},
	{ID: RuleParamCommas, Category: CategoryStructural, Evaluated: true},
	{ID: RuleSystemDeclSyntax, Category: CategoryStructural, Evaluated: true},
	{ID: RuleInputEventSyntax, Category: CategoryStructural, Evaluated: true},
	{ID: RuleOutputEventSyntax, Category: CategoryStructural, Evaluated: true},
	{ID: RuleActorInstanceCamel, Category: CategoryStructural, Evaluated: true},
	{ID: RuleActorConsistency, Category: CategoryCrossArtifact, Evaluated: true},
}

// catalogCoverage derives the coverage block for one audit call.
// withRefs reports whether cross-artifact references were supplied; without
// them LDR28 is not applicable rather than evaluated. Likewise the
// block-format rule needs the raw artifact content.
func catalogCoverage(withRefs, withRaw bool) *report.Coverage {
	cov := &report.Coverage{
		TotalRules:        len(Catalog),
		Evaluated:         []string{},
		NotApplicable:     []string{},
		MissingEvaluation: []string{},
	}
	for _, r := range Catalog {
		evaluated := r.Evaluated
		if r.Category == CategoryCrossArtifact && !withRefs {
			evaluated = false
		}
		if r.ID == RuleBlockOnly && !withRaw {
			evaluated = false
		}
		if evaluated {
			cov.Evaluated = append(cov.Evaluated, r.ID)
		} else {
			cov.NotApplicable = append(cov.NotApplicable, r.ID)
		}
	}
	return cov
}
