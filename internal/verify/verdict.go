// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verify

import (
	"time"

	"github.com/pdiddy/citecheck/pkg/types"
)

// Decision is the verdict for one reference.
type Decision struct {
	Verdict types.Verdict
	Valid   bool
	Reason  string
}

// isFutureYear reports whether year lies beyond next year.
func isFutureYear(year int, now time.Time) bool {
	return year > now.Year()+1
}

// needsLookup reports whether any registry has to be consulted. A future
// year or an empty identifier set settles the verdict up front.
func needsLookup(ids types.IdentifierSet, now time.Time) bool {
	return !isFutureYear(ids.Year, now) && !ids.Empty()
}

// Decide maps identifiers, the clock and the collected results to a
// verdict. The future-year veto wins over every registry outcome.
func Decide(ids types.IdentifierSet, checks map[string]types.CheckResult, now time.Time) Decision {
	if isFutureYear(ids.Year, now) {
		return Decision{Verdict: types.VerdictFake, Reason: types.ReasonFutureYear}
	}
	if ids.Empty() {
		return Decision{Verdict: types.VerdictUnverified, Reason: types.ReasonNoIdentifier}
	}
	for _, c := range checks {
		if c.Passed {
			return Decision{Verdict: types.VerdictValid, Valid: true, Reason: types.ReasonConfirmed}
		}
	}
	return Decision{Verdict: types.VerdictFake, Reason: types.ReasonNotFound}
}
