package cert

import (
	"sort"
	"strings"
)

// Document is the in-memory representation for producing a canonical
// certificate. Rendered bytes are always canonical: fixed section order,
// lexicographic key order, single-space separators, one blank line between
// sections.
//
// Render performs no semantic validation; use ValidateCoreClaims on parsed
// output.
type Document struct {
	Meta     map[string]string
	Artifact map[string]string
	Audit    map[string]string
	Crypto   map[string]string
}

// Render produces canonical certificate bytes from a Document.
func Render(doc Document) ([]byte, error) {
	sections := []struct {
		name  string
		pairs map[string]string
	}{
		{name: "META", pairs: doc.Meta},
		{name: "ARTIFACT", pairs: doc.Artifact},
		{name: "AUDIT", pairs: doc.Audit},
		{name: "CRYPTO", pairs: doc.Crypto},
	}

	var sb strings.Builder
	sb.WriteString(Preamble)
	sb.WriteString("\n")

	for i, sec := range sections {
		sb.WriteString(sec.name)
		sb.WriteString("\n")

		keys := make([]string, 0, len(sec.pairs))
		for k := range sec.pairs {
			if k == "" {
				return nil, newError(KindRender, "CERT-RENDER-001", "empty key")
			}
			if !isASCII(k) {
				return nil, newError(KindRender, "CERT-RENDER-002", "non-ASCII key")
			}
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			v := sec.pairs[k]
			if v == "" {
				return nil, newError(KindRender, "CERT-RENDER-003", "empty value")
			}
			if strings.HasPrefix(v, " ") {
				return nil, newError(KindRender, "CERT-RENDER-004", "value must not start with a space")
			}
			if strings.Contains(v, "\n") || strings.Contains(v, "\r") {
				return nil, newError(KindRender, "CERT-RENDER-005", "value must not contain newlines")
			}
			if strings.HasSuffix(v, " ") || strings.HasSuffix(v, "\t") {
				return nil, newError(KindRender, "CERT-RENDER-006", "trailing whitespace forbidden")
			}
			sb.WriteString(k)
			sb.WriteString(": ")
			sb.WriteString(v)
			sb.WriteString("\n")
		}

		if i != len(sections)-1 {
			sb.WriteString("\n")
		}
	}

	sb.WriteString(Postamble)
	return []byte(sb.String()), nil
}
