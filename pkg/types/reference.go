// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the citecheck pipeline:
// parsed identifiers, registry check results, per-reference verdicts and the
// aggregate verification report, plus the configuration structs.
package types

// IdentifierKind names a scholarly identifier scheme.
type IdentifierKind string

const (
	KindDOI   IdentifierKind = "doi"
	KindPMID  IdentifierKind = "pmid"
	KindArxiv IdentifierKind = "arxiv"
)

// Label returns the human-readable name used in check notes.
func (k IdentifierKind) Label() string {
	switch k {
	case KindDOI:
		return "DOI"
	case KindPMID:
		return "PMID"
	case KindArxiv:
		return "arXiv ID"
	default:
		return string(k)
	}
}

// IdentifierSet holds the identifiers found within one candidate reference.
// Empty strings and a zero Year mean "not found".
type IdentifierSet struct {
	// DOI is normalized with trailing punctuation stripped.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// PMID is the numeric PubMed identifier.
	PMID string `json:"pmid,omitempty" yaml:"pmid,omitempty"`

	// ArxivID is the arXiv identifier without its version suffix.
	ArxivID string `json:"arxiv_id,omitempty" yaml:"arxiv_id,omitempty"`

	// Year is the parenthesized publication year, 0 when absent.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`
}

// Empty reports whether no DOI, PMID or arXiv ID was found.
func (s IdentifierSet) Empty() bool {
	return s.DOI == "" && s.PMID == "" && s.ArxivID == ""
}

// Value returns the identifier of the given kind, or "" when absent.
func (s IdentifierSet) Value(kind IdentifierKind) string {
	switch kind {
	case KindDOI:
		return s.DOI
	case KindPMID:
		return s.PMID
	case KindArxiv:
		return s.ArxivID
	default:
		return ""
	}
}

// CheckOutcome classifies how a registry lookup ended.
type CheckOutcome string

const (
	OutcomeFound       CheckOutcome = "found"
	OutcomeNotFound    CheckOutcome = "not_found"
	OutcomeUnreachable CheckOutcome = "unreachable"
	OutcomeMalformed   CheckOutcome = "malformed"
	OutcomeHTTPError   CheckOutcome = "http_error"
	OutcomeNotChecked  CheckOutcome = "not_checked"
)

// CheckResult is the outcome of querying one registry for one identifier.
// Passed implies Checked and a non-empty URL.
type CheckResult struct {
	Registry string       `json:"registry" yaml:"registry"`
	Checked  bool         `json:"checked" yaml:"checked"`
	Passed   bool         `json:"passed" yaml:"passed"`
	Title    string       `json:"title,omitempty" yaml:"title,omitempty"`
	URL      string       `json:"url,omitempty" yaml:"url,omitempty"`
	Note     string       `json:"note" yaml:"note"`
	Outcome  CheckOutcome `json:"outcome" yaml:"outcome"`

	// StatusCode is the final HTTP status, 0 when no response arrived.
	StatusCode int `json:"status_code,omitempty" yaml:"status_code,omitempty"`

	// Detail carries the underlying transport or decode error text.
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Verdict is the final classification of a candidate reference.
type Verdict string

const (
	VerdictValid      Verdict = "VALID"
	VerdictFake       Verdict = "FAKE"
	VerdictUnverified Verdict = "UNVERIFIED"
)

// Verdict reasons.
const (
	ReasonFutureYear   = "future publication year"
	ReasonNoIdentifier = "no DOI, PMID, or arXiv ID found"
	ReasonConfirmed    = "confirmed by at least one trusted database"
	ReasonNotFound     = "identifier checked but not found in any database"
)

// VerdictRecord is one candidate reference's final outcome.
type VerdictRecord struct {
	// Text is the original (trimmed) reference string.
	Text string `json:"text" yaml:"text"`

	Identifiers IdentifierSet          `json:"identifiers" yaml:"identifiers"`
	Checks      map[string]CheckResult `json:"checks" yaml:"checks"`

	// Valid is true iff at least one check passed.
	Valid   bool    `json:"valid" yaml:"valid"`
	Verdict Verdict `json:"verdict" yaml:"verdict"`
	Reason  string  `json:"reason" yaml:"reason"`

	// Source, Title and URL come from the first passing registry.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
	Title  string `json:"title,omitempty" yaml:"title,omitempty"`
	URL    string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Report aggregates the verdicts of one verification request. Records keep
// extraction order.
type Report struct {
	References []VerdictRecord `json:"references" yaml:"references"`
	Total      int             `json:"total" yaml:"total"`
	ValidCount int             `json:"valid_count" yaml:"valid_count"`

	// FakeCount counts every record that is not valid, UNVERIFIED included.
	FakeCount int `json:"fake_count" yaml:"fake_count"`

	// UnverifiedCount is the UNVERIFIED subset of FakeCount.
	UnverifiedCount int `json:"unverified_count" yaml:"unverified_count"`
}
