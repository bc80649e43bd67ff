package cert

import (
	"strconv"

	"github.com/ipfs/go-cid"
)

// ValidateCoreClaims checks the semantic invariants of a parsed certificate.
// It does not verify the signature; use Verify for that.
func ValidateCoreClaims(c *Certificate) error {
	if c == nil {
		return newError(KindValidation, "CERT-VAL-001", "nil certificate")
	}
	if got := c.pair("META", "Format"); got != Format {
		return newError(KindValidation, "CERT-VAL-110", "unsupported certificate format")
	}

	if _, err := cid.Decode(c.ArtifactCID()); err != nil {
		return wrapError(KindValidation, "CERT-VAL-120", "invalid artifact CID", err)
	}
	switch c.ArtifactKind() {
	case "diagram", "operation-model", "scenario":
	default:
		return newError(KindValidation, "CERT-VAL-121", "unknown artifact kind")
	}

	if _, err := cid.Decode(c.ReportCID()); err != nil {
		return wrapError(KindValidation, "CERT-VAL-130", "invalid report CID", err)
	}
	count, err := strconv.Atoi(c.pair("AUDIT", "Violations"))
	if err != nil || count < 0 {
		return newError(KindValidation, "CERT-VAL-131", "invalid violation count")
	}
	switch c.Verdict() {
	case "compliant":
		if count != 0 {
			return newError(KindValidation, "CERT-VAL-132", "compliant verdict with violations")
		}
	case "non-compliant":
		if count == 0 {
			return newError(KindValidation, "CERT-VAL-133", "non-compliant verdict without violations")
		}
	default:
		return newError(KindValidation, "CERT-VAL-134", "unknown verdict")
	}
	return nil
}
