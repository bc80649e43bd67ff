package cert

import (
	"bytes"
	"crypto/ed25519"
	"strconv"

	"github.com/cloudflare/circl/sign/dilithium/mode3"

	"github.com/benoitries/lucim-audit/cidutil"
	"github.com/benoitries/lucim-audit/keys"
	"github.com/benoitries/lucim-audit/report"
)

// Format identifies the certificate layout version.
const Format = "lucim-audit-cert/v1"

// Subject names the artifact a certificate attests about.
type Subject struct {
	// Kind is one of: diagram, operation-model, scenario.
	Kind string
	// ArtifactCID is the CID of the audited artifact bytes.
	ArtifactCID string
}

// Signer holds the issuer identity and key material for one scheme.
type Signer struct {
	IssuerKey    string
	SignatureAlg string // ed25519 or dilithium3
	HashAlg      string // sha256, sha512, or sha3-256

	Ed25519Key    ed25519.PrivateKey
	Dilithium3Key *mode3.PrivateKey
}

// Ed25519Signer builds a Signer from an Ed25519 seed. The hash is sha256,
// matching what Verify expects for this scheme.
func Ed25519Signer(seed []byte) (Signer, error) {
	if len(seed) != ed25519.SeedSize {
		return Signer{}, newError(KindCrypto, "CERT-CRYPTO-501", "invalid ed25519 seed length")
	}
	priv := ed25519.NewKeyFromSeed(seed)
	issuer, err := keys.IssuerKeyFromPublicKey(priv.Public().(ed25519.PublicKey))
	if err != nil {
		return Signer{}, wrapError(KindCrypto, "CERT-CRYPTO-502", "issuer key derivation failed", err)
	}
	return Signer{
		IssuerKey:    issuer,
		SignatureAlg: "ed25519",
		HashAlg:      "sha256",
		Ed25519Key:   priv,
	}, nil
}

// Issue builds, signs, and parses a certificate for an audit result.
func Issue(res report.Result, subject Subject, signer Signer) (*Certificate, error) {
	if subject.ArtifactCID == "" {
		return nil, newError(KindValidation, "CERT-VAL-101", "missing artifact CID")
	}
	switch subject.Kind {
	case "diagram", "operation-model", "scenario":
	default:
		return nil, newError(KindValidation, "CERT-VAL-102", "unknown artifact kind")
	}

	reportCID, err := cidutil.ReportCID(res)
	if err != nil {
		return nil, wrapError(KindInternal, "CERT-VAL-103", "report encoding failed", err)
	}

	doc := Document{
		Meta: map[string]string{
			"Format": Format,
		},
		Artifact: map[string]string{
			"CID":  subject.ArtifactCID,
			"Kind": subject.Kind,
		},
		Audit: map[string]string{
			"Report-CID": reportCID,
			"Verdict":    string(res.Verdict),
			"Violations": strconv.Itoa(len(res.Violations)),
		},
		Crypto: map[string]string{
			"Hash-Alg":      signer.HashAlg,
			"Issuer-Key":    signer.IssuerKey,
			"Signature":     "pending",
			"Signature-Alg": signer.SignatureAlg,
		},
	}

	// Render once with a placeholder to locate the signed scope; the
	// signature only affects the CRYPTO section, which is outside it.
	draft, err := Render(doc)
	if err != nil {
		return nil, err
	}
	marker := []byte("\nCRYPTO\n")
	idx := bytes.Index(draft, marker)
	if idx < 0 {
		return nil, newError(KindInternal, "CERT-STR-090", "cannot determine signature scope")
	}
	signed := draft[:idx+1]

	var sig string
	switch signer.SignatureAlg {
	case "ed25519":
		if signer.Ed25519Key == nil {
			return nil, newError(KindCrypto, "CERT-CRYPTO-501", "missing private key")
		}
		if signer.HashAlg != "sha256" {
			return nil, newError(KindCrypto, "CERT-CRYPTO-201", "ed25519 certificates use sha256")
		}
		sig = keys.SignEd25519SHA256(signed, signer.Ed25519Key)
	case "dilithium3":
		sig, err = keys.SignDilithium3(signed, signer.HashAlg, signer.Dilithium3Key)
		if err != nil {
			return nil, wrapError(KindCrypto, "CERT-CRYPTO-503", "dilithium3 signing failed", err)
		}
	default:
		return nil, newError(KindCrypto, "CERT-CRYPTO-301", "unsupported Signature-Alg")
	}

	doc.Crypto["Signature"] = sig
	final, err := Render(doc)
	if err != nil {
		return nil, err
	}
	return Parse(final)
}
