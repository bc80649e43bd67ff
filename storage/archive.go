package storage

import (
	"encoding/json"
	"fmt"

	"github.com/ipfs/go-cid"

	"github.com/benoitries/lucim-audit/report"
)

// StoreReport archives an audit result under the CID of its canonical JSON
// encoding. Storing the same result twice yields the same CID.
func StoreReport(cas CAS, res report.Result) (cid.Cid, error) {
	data, err := res.CanonicalJSON()
	if err != nil {
		return cid.Undef, fmt.Errorf("storage: encode report: %w", err)
	}
	return cas.Put(data)
}

// LoadReport fetches and decodes an archived audit result.
func LoadReport(cas CAS, id cid.Cid) (report.Result, error) {
	var res report.Result
	data, err := cas.Get(id)
	if err != nil {
		return res, err
	}
	if err := json.Unmarshal(data, &res); err != nil {
		return res, fmt.Errorf("storage: decode report %s: %w", id, err)
	}
	return res, nil
}

// StoreArtifact archives the submitted artifact bytes as-is, so a report's
// subject can always be retrieved for re-audit.
func StoreArtifact(cas CAS, data []byte) (cid.Cid, error) {
	return cas.Put(data)
}
