// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/citecheck/pkg/types"
)

// Identifier regex patterns. Each runs independently; the first match wins.
var (
	// doiRe matches DOIs: "10.1145/1234567.1234568". The suffix stops at
	// whitespace, brackets, quotes, commas and semicolons.
	doiRe = regexp.MustCompile(`10\.\d{4,9}/[^\s\[\]<>{}",;]+`)

	// pmidRe matches "PMID: 12345678", "pmid 123", "PMID12345".
	pmidRe = regexp.MustCompile(`(?i)PMID[:\s]*(\d+)`)

	// arxivIDRe matches "arXiv:2301.07041v2", "arxiv 1706.03762".
	arxivIDRe = regexp.MustCompile(`(?i)arXiv[:\s]*(\d{4}\.\d{4,5})(?:v\d+)?`)

	// yearRe matches a parenthesized four-digit year like "(2021)".
	yearRe = regexp.MustCompile(`\((\d{4})\)`)
)

// ParseIdentifiers extracts the DOI, PMID, arXiv ID and publication year
// from one candidate reference. It never fails: a missing pattern leaves
// the corresponding field empty.
func ParseIdentifiers(ref string) types.IdentifierSet {
	var ids types.IdentifierSet

	if m := doiRe.FindString(ref); m != "" {
		ids.DOI = trimDOI(m)
	}
	if m := pmidRe.FindStringSubmatch(ref); m != nil {
		ids.PMID = m[1]
	}
	if m := arxivIDRe.FindStringSubmatch(ref); m != nil {
		ids.ArxivID = m[1]
	}
	if m := yearRe.FindStringSubmatch(ref); m != nil {
		// Four ASCII digits always parse.
		ids.Year, _ = strconv.Atoi(m[1])
	}

	return ids
}

// trimDOI strips trailing punctuation and any closing parentheses that have
// no opening partner inside the match, as in "(doi:10.1000/abc)".
func trimDOI(doi string) string {
	doi = strings.TrimRight(doi, ".,;")
	for strings.HasSuffix(doi, ")") && strings.Count(doi, ")") > strings.Count(doi, "(") {
		doi = strings.TrimRight(doi[:len(doi)-1], ".,;")
	}
	return doi
}
