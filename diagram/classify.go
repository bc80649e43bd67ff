package diagram

import (
	"regexp"
	"strings"
)

// LineKind is the syntactic category of one diagram body line.
type LineKind int

const (
	KindOther LineKind = iota
	KindParticipant
	KindMessage
	KindActivate
	KindDeactivate
)

// DirectionClass classifies a message by its endpoints. Exactly one class
// applies to every message.
type DirectionClass int

const (
	SystemToActor DirectionClass = iota
	ActorToSystem
	SystemToSystem
	ActorToActor
)

// Line is one physical line of the extracted diagram body.
//
// Number is 1-based and stable across the whole pipeline. Kind-specific
// fields are only meaningful for the matching Kind. Lines are immutable once
// classified.
type Line struct {
	Number int
	Raw    string
	Kind   LineKind

	// Participant fields.
	Alias       string
	Label       string
	SystemDecl  bool // matches the exact System declaration syntax
	QuotedLabel bool

	// Message fields.
	Sender   string
	Receiver string
	Arrow    string
	Event    string
	Params   string

	// Activate/Deactivate field.
	Target string
}

// Direction derives the direction class of a message line.
func (l Line) Direction() DirectionClass {
	from, to := isSystemToken(l.Sender), isSystemToken(l.Receiver)
	switch {
	case from && to:
		return SystemToSystem
	case from:
		return SystemToActor
	case to:
		return ActorToSystem
	default:
		return ActorToActor
	}
}

var (
	participantRe  = regexp.MustCompile(`^participant\s+"?(?P<label>[^"]+?)"?\s+as\s+(?P<alias>\w+)(\s+#[0-9A-Fa-f]{6})?\s*$`)
	systemSimpleRe = regexp.MustCompile(`^participant\s+System\s+as\s+system(\s+#[0-9A-Fa-f]{6})?\s*$`)
	messageRe      = regexp.MustCompile(`^(?P<lhs>\S+)\s*(?P<arrow>--?>)\s*(?P<rhs>\S+)\s*:\s*(?P<name>\w+)\s*\((?P<params>[^)]*)\)\s*$`)
	activateRe     = regexp.MustCompile(`^activate\s+(?P<who>\w+)\b`)
	deactivateRe   = regexp.MustCompile(`^deactivate\s+(?P<who>\w+)\b`)
	actorTypeRe    = regexp.MustCompile(`^Act[A-Z][A-Za-z0-9]*$`)
	camelAliasRe   = regexp.MustCompile(`^[a-z][a-zA-Z0-9]*$`)
)

func isSystemToken(tok string) bool {
	t := strings.TrimSpace(tok)
	return t == "system" || t == "System"
}

// isCommentLine reports whether a stripped line is a PlantUML comment or
// note. Comment lines keep their line number but are transparent to every
// adjacency check.
func isCommentLine(line string) bool {
	s := strings.TrimSpace(line)
	if s == "" {
		return false
	}
	if strings.HasPrefix(s, "//") {
		return true
	}
	if strings.HasPrefix(s, "'") {
		return true
	}
	if strings.HasPrefix(s, "/note ") && strings.HasSuffix(s, "/") {
		return true
	}
	if strings.HasPrefix(s, "note ") && strings.Contains(s, ":") {
		return true
	}
	if strings.HasPrefix(s, "note over ") {
		return true
	}
	return false
}

// isRelevant reports whether a raw line participates in rule evaluation:
// non-blank and not a comment.
func isRelevant(raw string) bool {
	s := strings.TrimSpace(raw)
	return s != "" && !isCommentLine(s)
}

// classify parses the diagram body into classified lines. Every physical
// line yields exactly one entry so numbering stays continuous; blank and
// comment lines come back as KindOther with empty fields.
func classify(body string) []Line {
	raws := strings.Split(body, "\n")
	out := make([]Line, 0, len(raws))
	for i, raw := range raws {
		l := Line{Number: i + 1, Raw: raw, Kind: KindOther}
		s := strings.TrimSpace(raw)
		if s == "" || isCommentLine(s) {
			out = append(out, l)
			continue
		}

		if m := participantRe.FindStringSubmatch(s); m != nil {
			l.Kind = KindParticipant
			l.Label = m[participantRe.SubexpIndex("label")]
			l.Alias = m[participantRe.SubexpIndex("alias")]
			l.SystemDecl = systemSimpleRe.MatchString(s)
			if idx := strings.Index(s, " as "); idx >= 0 {
				l.QuotedLabel = strings.Contains(s[:idx], `"`)
			}
			out = append(out, l)
			continue
		}
		if m := activateRe.FindStringSubmatch(s); m != nil {
			l.Kind = KindActivate
			l.Target = m[activateRe.SubexpIndex("who")]
			out = append(out, l)
			continue
		}
		if m := deactivateRe.FindStringSubmatch(s); m != nil {
			l.Kind = KindDeactivate
			l.Target = m[deactivateRe.SubexpIndex("who")]
			out = append(out, l)
			continue
		}
		if m := messageRe.FindStringSubmatch(s); m != nil {
			l.Kind = KindMessage
			l.Sender = m[messageRe.SubexpIndex("lhs")]
			l.Arrow = m[messageRe.SubexpIndex("arrow")]
			l.Receiver = m[messageRe.SubexpIndex("rhs")]
			l.Event = m[messageRe.SubexpIndex("name")]
			l.Params = m[messageRe.SubexpIndex("params")]
			out = append(out, l)
			continue
		}
		out = append(out, l)
	}
	return out
}

// nextRelevant returns the 1-based number of the first semantically relevant
// line at or after number start, or 0 when none remains. This is the single
// shared adjacency primitive: blank lines and comments are transparent to
// every "immediately after" check.
func nextRelevant(lines []Line, start int) int {
	for i := start - 1; i >= 0 && i < len(lines); i++ {
		if isRelevant(lines[i].Raw) {
			return lines[i].Number
		}
	}
	return 0
}
