// Package cert implements the canonical text format for signed audit
// certificates. A certificate binds an audited artifact (by CID) to the
// verdict and report produced for it, under an issuer signature.
package cert

import (
	"bufio"
	"bytes"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/benoitries/lucim-audit/cidutil"
)

// SectionOrder defines the canonical order of certificate sections.
var SectionOrder = []string{"META", "ARTIFACT", "AUDIT", "CRYPTO"}

const (
	Preamble  = "-----BEGIN LUCIM AUDIT CERTIFICATE-----"
	Postamble = "-----END LUCIM AUDIT CERTIFICATE-----"
)

// Certificate is a parsed audit certificate.
type Certificate struct {
	Sections map[string]Section
	Raw      []byte // Canonical bytes
	Signed   []byte // Bytes covered by signature (BEGIN..end of AUDIT, inclusive)
}

type Section struct {
	Name  string
	Pairs map[string]string // Key-value pairs, sorted lexicographically
}

// Parse parses a certificate and enforces the canonical serialization rules.
// Non-canonical inputs are rejected.
func Parse(data []byte) (*Certificate, error) {
	if !utf8.Valid(data) {
		return nil, newError(KindParse, "CERT-STR-001", "certificate must be valid UTF-8")
	}
	if len(data) > 0 && data[len(data)-1] == '\n' {
		return nil, newError(KindCanonical, "CERT-CANON-001", "trailing newline not allowed")
	}
	if bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) {
		return nil, newError(KindCanonical, "CERT-CANON-002", "BOM not allowed")
	}
	if bytes.Contains(data, []byte("\r")) {
		return nil, newError(KindCanonical, "CERT-CANON-003", "CR line endings not allowed")
	}
	if !bytes.HasPrefix(data, []byte(Preamble)) {
		return nil, newError(KindParse, "CERT-STR-010", "missing certificate preamble")
	}
	if !bytes.HasSuffix(data, []byte(Postamble)) {
		return nil, newError(KindParse, "CERT-STR-011", "missing certificate postamble")
	}
	for _, line := range bytes.Split(data, []byte("\n")) {
		if len(line) > 0 && (line[len(line)-1] == ' ' || line[len(line)-1] == '\t') {
			return nil, newError(KindCanonical, "CERT-CANON-004", "trailing whitespace forbidden")
		}
	}

	sections, err := parseSections(data)
	if err != nil {
		return nil, err
	}

	// Enforce full canonical byte identity by re-rendering and comparing, so
	// Parse strictly rejects any non-canonical input.
	doc := Document{
		Meta:     sections["META"].Pairs,
		Artifact: sections["ARTIFACT"].Pairs,
		Audit:    sections["AUDIT"].Pairs,
		Crypto:   sections["CRYPTO"].Pairs,
	}
	canonical, rerr := Render(doc)
	if rerr != nil {
		return nil, rerr
	}
	if !bytes.Equal(data, canonical) {
		return nil, newError(KindCanonical, "CERT-CANON-010", "non-canonical certificate")
	}

	// Signed bytes: BEGIN line through end of the AUDIT section, inclusive.
	// Render emits exactly one blank line between AUDIT and CRYPTO.
	marker := []byte("\nCRYPTO\n")
	idx := bytes.Index(canonical, marker)
	if idx < 0 {
		return nil, newError(KindInternal, "CERT-STR-090", "cannot determine signature scope")
	}
	signed := canonical[:idx+1]
	return &Certificate{Sections: sections, Raw: canonical, Signed: signed}, nil
}

func parseSections(data []byte) (map[string]Section, error) {
	sections := make(map[string]Section)
	reader := bufio.NewReader(bytes.NewReader(data))
	readLine := func() (string, error) {
		l, err := reader.ReadString('\n')
		if err == io.EOF {
			return strings.TrimRight(l, "\n"), io.EOF
		}
		if err != nil {
			return "", wrapError(KindParse, "CERT-STR-999", "read failure", err)
		}
		return strings.TrimRight(l, "\n"), nil
	}

	first, err := readLine()
	if err != nil && err != io.EOF {
		return nil, err
	}
	if first != Preamble {
		return nil, newError(KindParse, "CERT-STR-010", "certificate preamble must be exact")
	}

	sectionIndex := -1
	var currSection string
	var currPairs map[string]string
	var currKeyOrder []string
	seenSection := map[string]bool{}
	seenAnySection := false
	afterSeparator := false

	flushSection := func() error {
		if currSection == "" {
			return nil
		}
		sorted := append([]string(nil), currKeyOrder...)
		sort.Strings(sorted)
		for i := range sorted {
			if sorted[i] != currKeyOrder[i] {
				return newError(KindCanonical, "CERT-CANON-020", "keys not sorted lexicographically")
			}
		}
		sections[currSection] = Section{Name: currSection, Pairs: currPairs}
		currSection = ""
		currPairs = nil
		currKeyOrder = nil
		return nil
	}

	for {
		line, rerr := readLine()
		if rerr != nil && rerr != io.EOF {
			return nil, rerr
		}

		if line == Postamble {
			if afterSeparator {
				return nil, newError(KindCanonical, "CERT-CANON-011", "unexpected blank line before postamble")
			}
			if err := flushSection(); err != nil {
				return nil, err
			}
			break
		}

		if isSectionHeader(line) {
			seenAnySection = true
			if currSection != "" {
				return nil, newError(KindCanonical, "CERT-CANON-012", "missing blank line between sections")
			}
			if seenSection[line] {
				return nil, newError(KindParse, "CERT-STR-020", "duplicate section")
			}
			if err := flushSection(); err != nil {
				return nil, err
			}
			sectionIndex++
			if sectionIndex >= len(SectionOrder) || SectionOrder[sectionIndex] != line {
				return nil, newError(KindParse, "CERT-STR-021", "sections missing or out of order")
			}
			if sectionIndex == 0 {
				if afterSeparator {
					return nil, newError(KindCanonical, "CERT-CANON-013", "blank line before first section not allowed")
				}
			} else if !afterSeparator {
				return nil, newError(KindCanonical, "CERT-CANON-012", "missing blank line between sections")
			}
			afterSeparator = false
			seenSection[line] = true
			currSection = line
			currPairs = make(map[string]string)
			continue
		}

		if !seenAnySection {
			return nil, newError(KindParse, "CERT-STR-022", "unexpected content before first section")
		}

		if line == "" {
			if currSection == "" {
				return nil, newError(KindCanonical, "CERT-CANON-014", "blank line outside section not allowed")
			}
			if currSection == "CRYPTO" {
				return nil, newError(KindCanonical, "CERT-CANON-015", "blank line after CRYPTO section not allowed")
			}
			if afterSeparator {
				return nil, newError(KindCanonical, "CERT-CANON-016", "multiple blank lines between sections not allowed")
			}
			if err := flushSection(); err != nil {
				return nil, err
			}
			afterSeparator = true
			continue
		}

		if currSection == "" {
			return nil, newError(KindParse, "CERT-STR-023", "content outside section")
		}
		if afterSeparator {
			return nil, newError(KindParse, "CERT-STR-024", "expected section header after blank line")
		}
		if !strings.Contains(line, ": ") {
			return nil, newError(KindParse, "CERT-STR-030", "invalid key-value formatting")
		}
		key, val, _ := strings.Cut(line, ": ")
		if key == "" {
			return nil, newError(KindParse, "CERT-STR-031", "empty key")
		}
		if !isASCII(key) {
			return nil, newError(KindParse, "CERT-STR-032", "non-ASCII key")
		}
		if strings.HasPrefix(val, " ") {
			return nil, newError(KindCanonical, "CERT-CANON-021", "value must not start with a space")
		}
		if _, exists := currPairs[key]; exists {
			return nil, newError(KindParse, "CERT-STR-033", "duplicate key in section")
		}
		currPairs[key] = val
		currKeyOrder = append(currKeyOrder, key)

		if rerr == io.EOF {
			return nil, newError(KindParse, "CERT-STR-011", "missing certificate postamble")
		}
	}

	for _, s := range SectionOrder {
		if !seenSection[s] {
			return nil, newError(KindParse, "CERT-STR-021", "sections missing or out of order")
		}
	}
	return sections, nil
}

// CID returns a deterministic content identifier for the canonical
// certificate bytes (CIDv1, raw + sha2-256).
func (c *Certificate) CID() string {
	return cidutil.CIDv1RawSHA256(c.Raw)
}

func (c *Certificate) pair(section, key string) string {
	if sec, ok := c.Sections[section]; ok {
		return sec.Pairs[key]
	}
	return ""
}

// ArtifactCID returns the CID of the audited artifact.
func (c *Certificate) ArtifactCID() string { return c.pair("ARTIFACT", "CID") }

// ArtifactKind returns the artifact kind: diagram, operation-model, or
// scenario.
func (c *Certificate) ArtifactKind() string { return c.pair("ARTIFACT", "Kind") }

// Verdict returns the certified audit verdict.
func (c *Certificate) Verdict() string { return c.pair("AUDIT", "Verdict") }

// ReportCID returns the CID of the full archived report.
func (c *Certificate) ReportCID() string { return c.pair("AUDIT", "Report-CID") }

func (c *Certificate) IssuerKey() string    { return c.pair("CRYPTO", "Issuer-Key") }
func (c *Certificate) SignatureAlg() string { return c.pair("CRYPTO", "Signature-Alg") }
func (c *Certificate) HashAlg() string      { return c.pair("CRYPTO", "Hash-Alg") }
func (c *Certificate) Signature() string    { return c.pair("CRYPTO", "Signature") }

func isSectionHeader(line string) bool {
	for _, s := range SectionOrder {
		if line == s {
			return true
		}
	}
	return false
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 127 {
			return false
		}
	}
	return true
}
