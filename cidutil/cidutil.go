// Package cidutil derives content identifiers for audit artifacts and reports.
//
// All identifiers are IPFS-compatible CIDv1 strings (raw multicodec,
// sha2-256 multihash) computed over exact bytes, so identical content always
// yields the same identifier.
package cidutil

import (
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"

	"github.com/benoitries/lucim-audit/report"
)

// CIDv1RawSHA256 returns the CIDv1 string for data.
func CIDv1RawSHA256(data []byte) string {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		// multihash.Sum only errors for invalid inputs; with SHA2_256 and -1
		// length this should be unreachable.
		return ""
	}
	return cid.NewCidV1(cid.Raw, sum).String()
}

// CIDv1RawSHA256CID returns a CIDv1 (raw + sha2-256) derived from data.
func CIDv1RawSHA256CID(data []byte) (cid.Cid, error) {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, sum), nil
}

// ReportCID returns the CIDv1 string for an audit result, computed over its
// canonical JSON encoding. Two identical audit outcomes share one CID.
func ReportCID(res report.Result) (string, error) {
	data, err := res.CanonicalJSON()
	if err != nil {
		return "", err
	}
	return CIDv1RawSHA256(data), nil
}
