// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract segments document text into candidate reference strings
// and parses the scholarly identifiers (DOI, PMID, arXiv ID) and publication
// year each candidate carries.
package extract

import (
	"regexp"
	"strings"
)

// DefaultMaxCandidates caps the candidates returned per document, which in
// turn caps registry fan-out.
const DefaultMaxCandidates = 60

// refMarkerRe matches a leading numbered or bracketed marker followed by
// whitespace: "12. ", "[3] ". Decimals like "3.5" and headings like "2.1"
// do not match.
var refMarkerRe = regexp.MustCompile(`^(?:\[\d+\]|\d+\.)(?:\s|$)`)

// lineEndings folds CRLF and bare CR into LF.
var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// refKeywords are case-insensitive substrings that open a new candidate.
var refKeywords = []string{"doi:", "10.", "pmid", "arxiv"}

// ExtractReferences splits text into candidate reference strings. A line
// that starts with a marker or contains an identifier keyword opens a new
// candidate; any other line is appended to the open candidate (lines before
// the first candidate are dropped). The result is deduplicated by exact
// text, keeps first-occurrence order and holds at most limit entries
// (DefaultMaxCandidates when limit <= 0). It is never nil.
func ExtractReferences(text string, limit int) []string {
	if limit <= 0 {
		limit = DefaultMaxCandidates
	}

	var candidates []string
	var current []string

	flush := func() {
		if len(current) > 0 {
			candidates = append(candidates, strings.Join(current, " "))
			current = nil
		}
	}

	for _, line := range strings.Split(lineEndings.Replace(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if isReferenceStart(line) {
			flush()
			current = []string{line}
			continue
		}
		if current != nil {
			current = append(current, line)
		}
	}
	flush()

	return dedupe(candidates, limit)
}

// isReferenceStart reports whether a trimmed line opens a new candidate.
func isReferenceStart(line string) bool {
	if refMarkerRe.MatchString(line) {
		return true
	}
	lower := strings.ToLower(line)
	for _, kw := range refKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// dedupe drops repeated candidates, preserving first occurrence, and stops
// once limit entries are collected.
func dedupe(candidates []string, limit int) []string {
	seen := make(map[string]bool, len(candidates))
	out := make([]string, 0, min(len(candidates), limit))
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
		if len(out) == limit {
			break
		}
	}
	return out
}
