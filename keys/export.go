package keys

import (
	"crypto/ed25519"
	"encoding/base64"
	"fmt"
)

// IssuerKeyFromPublicKey encodes an Ed25519 public key as the issuer-key
// string carried in a certificate's CRYPTO section ("ed25519:" + base64).
func IssuerKeyFromPublicKey(pub ed25519.PublicKey) (string, error) {
	if len(pub) != ed25519.PublicKeySize {
		return "", fmt.Errorf("ed25519 public key must be %d bytes, got %d", ed25519.PublicKeySize, len(pub))
	}
	return "ed25519:" + base64.StdEncoding.EncodeToString(pub), nil
}
