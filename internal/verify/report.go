// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verify

import "github.com/pdiddy/citecheck/pkg/types"

// BuildReport aggregates records in the order given. FakeCount covers every
// record that is not valid; UnverifiedCount is the UNVERIFIED part of it.
func BuildReport(records []types.VerdictRecord) types.Report {
	if records == nil {
		records = []types.VerdictRecord{}
	}

	r := types.Report{References: records, Total: len(records)}
	for _, rec := range records {
		if rec.Valid {
			r.ValidCount++
			continue
		}
		r.FakeCount++
		if rec.Verdict == types.VerdictUnverified {
			r.UnverifiedCount++
		}
	}
	return r
}
