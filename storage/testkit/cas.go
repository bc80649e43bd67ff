// Package testkit runs a shared conformance suite against archive backends.
package testkit

import (
	"bytes"
	"testing"

	"github.com/ipfs/go-cid"

	"github.com/benoitries/lucim-audit/cidutil"
	"github.com/benoitries/lucim-audit/storage"
)

// NewCAS constructs a fresh, empty CAS for one test.
type NewCAS func(t *testing.T) storage.CAS

// RunCASConformance exercises the storage.CAS contract against a backend.
func RunCASConformance(t *testing.T, newCAS NewCAS) {
	t.Helper()

	t.Run("PutGetRoundtrip", func(t *testing.T) {
		cas := newCAS(t)
		data := []byte(`{"verdict":"compliant","violations":[]}`)
		id, err := cas.Put(data)
		if err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		want, err := cidutil.CIDv1RawSHA256CID(data)
		if err != nil {
			t.Fatalf("cid derivation failed: %v", err)
		}
		if id != want {
			t.Fatalf("Put CID = %s, want %s", id, want)
		}
		got, err := cas.Get(id)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if !bytes.Equal(got, data) {
			t.Fatalf("Get bytes differ: %q", got)
		}
	})

	t.Run("PutIsIdempotent", func(t *testing.T) {
		cas := newCAS(t)
		data := []byte("artifact bytes")
		id1, err := cas.Put(data)
		if err != nil {
			t.Fatalf("first Put failed: %v", err)
		}
		id2, err := cas.Put(data)
		if err != nil {
			t.Fatalf("second Put failed: %v", err)
		}
		if id1 != id2 {
			t.Fatalf("Put CIDs differ: %s vs %s", id1, id2)
		}
	})

	t.Run("GetMissingIsNotFound", func(t *testing.T) {
		cas := newCAS(t)
		id, err := cidutil.CIDv1RawSHA256CID([]byte("never stored"))
		if err != nil {
			t.Fatalf("cid derivation failed: %v", err)
		}
		if _, err := cas.Get(id); !storage.IsNotFound(err) {
			t.Fatalf("Get missing: got %v, want ErrNotFound", err)
		}
	})

	t.Run("HasReflectsContents", func(t *testing.T) {
		cas := newCAS(t)
		data := []byte("present")
		id, err := cas.Put(data)
		if err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		if !cas.Has(id) {
			t.Fatalf("Has(%s) = false after Put", id)
		}
		missing, _ := cidutil.CIDv1RawSHA256CID([]byte("absent"))
		if cas.Has(missing) {
			t.Fatalf("Has(%s) = true for absent object", missing)
		}
	})

	t.Run("UndefinedCIDRejected", func(t *testing.T) {
		cas := newCAS(t)
		if _, err := cas.Get(cid.Undef); err != storage.ErrInvalidCID {
			t.Fatalf("Get(undef): got %v, want ErrInvalidCID", err)
		}
		if cas.Has(cid.Undef) {
			t.Fatal("Has(undef) = true")
		}
	})
}
