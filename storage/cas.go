// Package storage defines the content-addressable archive used to retain
// audit artifacts (submitted diagrams, operation models, scenarios) and the
// reports produced for them.
package storage

import "github.com/ipfs/go-cid"

// CAS is a minimal content-addressable store.
//
// Contract:
// - Put MUST be idempotent.
// - Stored objects MUST be immutable.
// - CIDs MUST be derived from the bytes written (callers supply canonical bytes).
// - Get MUST return ErrNotFound when the CID is absent.
type CAS interface {
	Put(bytes []byte) (cid.Cid, error)
	Get(id cid.Cid) ([]byte, error)
	Has(id cid.Cid) bool
}
