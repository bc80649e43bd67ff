package keys

import (
	"crypto/ed25519"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/cloudflare/circl/sign/dilithium/mode3"
	"golang.org/x/crypto/sha3"
)

// Digest hashes a certificate's signed scope with the named algorithm.
// Supported values mirror the Hash-Alg field of issued certificates:
// sha256, sha512, sha3-256.
func Digest(hashAlg string, signed []byte) ([]byte, error) {
	switch hashAlg {
	case "sha256":
		s := sha256.Sum256(signed)
		return s[:], nil
	case "sha512":
		s := sha512.Sum512(signed)
		return s[:], nil
	case "sha3-256":
		s := sha3.Sum256(signed)
		return s[:], nil
	default:
		return nil, fmt.Errorf("unsupported hash algorithm: %q", hashAlg)
	}
}

// SignEd25519SHA256 signs sha256(signed) and returns the base64 signature.
// This is the default scheme for issued audit certificates.
func SignEd25519SHA256(signed []byte, privateKey ed25519.PrivateKey) string {
	digest := sha256.Sum256(signed)
	return base64.StdEncoding.EncodeToString(ed25519.Sign(privateKey, digest[:]))
}

// SignDilithium3 signs hash(signed) with a Dilithium3 private key and
// returns the base64 signature. hashAlg must be accepted by Digest.
func SignDilithium3(signed []byte, hashAlg string, privateKey *mode3.PrivateKey) (string, error) {
	if privateKey == nil {
		return "", fmt.Errorf("missing private key")
	}
	digest, err := Digest(hashAlg, signed)
	if err != nil {
		return "", err
	}
	sig := make([]byte, mode3.SignatureSize)
	mode3.SignTo(privateKey, digest, sig)
	return base64.StdEncoding.EncodeToString(sig), nil
}

// GenerateDilithium3Keypair returns a fresh Dilithium3 keypair for issuers
// wanting a post-quantum signature scheme.
func GenerateDilithium3Keypair(rand io.Reader) (*mode3.PublicKey, *mode3.PrivateKey, error) {
	return mode3.GenerateKey(rand)
}
