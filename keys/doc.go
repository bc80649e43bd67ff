// Package keys provides issuer-key helpers for signing audit certificates.
//
// The pure derivation and formatting primitives are deterministic and
// stable. The filesystem-backed KeyStore is a local-first convenience and is
// not part of the long-term certificate contract.
package keys
