package cert

import (
	"crypto/ed25519"
	"encoding/base64"
	"strings"

	"github.com/cloudflare/circl/sign/dilithium/mode3"

	"github.com/benoitries/lucim-audit/keys"
)

// IssuerPublicKeyBytes returns the raw public key bytes for the issuer.
// Supported encodings:
// - ed25519:<base64>
// - dilithium3:<base64>
func (c *Certificate) IssuerPublicKeyBytes() ([]byte, error) {
	issuer := c.IssuerKey()
	if issuer == "" {
		return nil, newError(KindCrypto, "CERT-CRYPTO-103", "missing Issuer-Key")
	}

	alg, enc, ok := strings.Cut(issuer, ":")
	if !ok {
		return nil, newError(KindCrypto, "CERT-CRYPTO-111", "invalid Issuer-Key encoding")
	}
	pub, err := decodeBase64(enc)
	if err != nil {
		return nil, wrapError(KindCrypto, "CERT-CRYPTO-113", "invalid issuer key base64", err)
	}

	switch alg {
	case "ed25519":
		if len(pub) != ed25519.PublicKeySize {
			return nil, newError(KindCrypto, "CERT-CRYPTO-114", "invalid ed25519 public key length")
		}
		return pub, nil
	case "dilithium3":
		var pk mode3.PublicKey
		if err := pk.UnmarshalBinary(pub); err != nil {
			return nil, wrapError(KindCrypto, "CERT-CRYPTO-115", "invalid dilithium3 public key", err)
		}
		return pub, nil
	default:
		return nil, newError(KindCrypto, "CERT-CRYPTO-112", "unsupported issuer key encoding")
	}
}

// SignatureBytes decodes the signature and checks fixed-size schemes.
func (c *Certificate) SignatureBytes() ([]byte, error) {
	s := c.Signature()
	if s == "" {
		return nil, newError(KindCrypto, "CERT-CRYPTO-104", "missing Signature")
	}
	sig, err := decodeBase64(s)
	if err != nil {
		return nil, wrapError(KindCrypto, "CERT-CRYPTO-131", "invalid signature base64", err)
	}
	switch c.SignatureAlg() {
	case "":
		return nil, newError(KindCrypto, "CERT-CRYPTO-101", "missing Signature-Alg")
	case "ed25519":
		if len(sig) != ed25519.SignatureSize {
			return nil, newError(KindCrypto, "CERT-CRYPTO-132", "invalid ed25519 signature length")
		}
	case "dilithium3":
		if len(sig) != mode3.SignatureSize {
			return nil, newError(KindCrypto, "CERT-CRYPTO-133", "invalid dilithium3 signature length")
		}
	}
	return sig, nil
}

func digestFor(hashAlg string, message []byte) ([]byte, error) {
	digest, err := keys.Digest(hashAlg, message)
	if err != nil {
		return nil, newError(KindCrypto, "CERT-CRYPTO-201", "unsupported Hash-Alg")
	}
	return digest, nil
}

// Verify checks the certificate signature.
//
// The signed message is hash(Signed), where Signed spans the BEGIN line
// through the end of the AUDIT section. Supported Hash-Alg values are
// sha256, sha512, and sha3-256; Signature-Alg may be ed25519 or dilithium3.
func (c *Certificate) Verify() error {
	if c == nil {
		return newError(KindCrypto, "CERT-CRYPTO-001", "nil certificate")
	}
	// Re-parse the receiver bytes so canonicalization cannot be bypassed via
	// a manually constructed or mutated Certificate.
	parsed, err := Parse(c.Raw)
	if err != nil {
		return err
	}
	c = parsed

	if c.SignatureAlg() == "" {
		return newError(KindCrypto, "CERT-CRYPTO-101", "missing Signature-Alg")
	}
	if c.HashAlg() == "" {
		return newError(KindCrypto, "CERT-CRYPTO-102", "missing Hash-Alg")
	}
	issuer := c.IssuerKey()
	if issuer == "" {
		return newError(KindCrypto, "CERT-CRYPTO-103", "missing Issuer-Key")
	}
	issuerAlg, _, ok := strings.Cut(issuer, ":")
	if !ok {
		return newError(KindCrypto, "CERT-CRYPTO-111", "invalid Issuer-Key encoding")
	}
	if issuerAlg != c.SignatureAlg() {
		return newError(KindCrypto, "CERT-CRYPTO-121", "Issuer-Key alg does not match Signature-Alg")
	}

	pub, err := c.IssuerPublicKeyBytes()
	if err != nil {
		return err
	}
	sig, err := c.SignatureBytes()
	if err != nil {
		return err
	}
	digest, err := digestFor(c.HashAlg(), c.Signed)
	if err != nil {
		return err
	}

	switch c.SignatureAlg() {
	case "ed25519":
		if !ed25519.Verify(ed25519.PublicKey(pub), digest, sig) {
			return newError(KindCrypto, "CERT-CRYPTO-401", "signature invalid")
		}
		return nil
	case "dilithium3":
		var pk mode3.PublicKey
		if err := pk.UnmarshalBinary(pub); err != nil {
			return wrapError(KindCrypto, "CERT-CRYPTO-115", "invalid dilithium3 public key", err)
		}
		if !mode3.Verify(&pk, digest, sig) {
			return newError(KindCrypto, "CERT-CRYPTO-401", "signature invalid")
		}
		return nil
	default:
		return newError(KindCrypto, "CERT-CRYPTO-301", "unsupported Signature-Alg")
	}
}

func decodeBase64(s string) ([]byte, error) {
	// Prefer standard padded encoding, but accept raw encoding too.
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return base64.RawStdEncoding.DecodeString(s)
}
