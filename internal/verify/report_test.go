// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verify

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/citecheck/pkg/types"
)

func TestDecide(t *testing.T) {
	passed := map[string]types.CheckResult{
		"Crossref": {Checked: true, Passed: true, URL: "https://doi.org/10.1/x"},
		"OpenAlex": {Checked: true, Outcome: types.OutcomeUnreachable},
	}
	failed := map[string]types.CheckResult{
		"Crossref": {Checked: true, Outcome: types.OutcomeNotFound},
		"OpenAlex": {Checked: true, Outcome: types.OutcomeUnreachable},
	}

	tests := []struct {
		name   string
		ids    types.IdentifierSet
		checks map[string]types.CheckResult
		want   Decision
	}{
		{
			"future year overrides a pass",
			types.IdentifierSet{DOI: "10.1/x", Year: 2099},
			passed,
			Decision{Verdict: types.VerdictFake, Reason: types.ReasonFutureYear},
		},
		{
			"no identifiers",
			types.IdentifierSet{Year: 2020},
			nil,
			Decision{Verdict: types.VerdictUnverified, Reason: types.ReasonNoIdentifier},
		},
		{
			"any pass confirms",
			types.IdentifierSet{DOI: "10.1/x", Year: 2020},
			passed,
			Decision{Verdict: types.VerdictValid, Valid: true, Reason: types.ReasonConfirmed},
		},
		{
			"no pass",
			types.IdentifierSet{DOI: "10.1/x"},
			failed,
			Decision{Verdict: types.VerdictFake, Reason: types.ReasonNotFound},
		},
		{
			"next year allowed",
			types.IdentifierSet{PMID: "1", Year: 2027},
			passed,
			Decision{Verdict: types.VerdictValid, Valid: true, Reason: types.ReasonConfirmed},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.ids, tt.checks, fixedNow))
		})
	}
}

func sampleReport() types.Report {
	return BuildReport([]types.VerdictRecord{
		{Text: "[1] Kucsko G (2013). doi:10.1038/nature12373", Valid: true, Verdict: types.VerdictValid,
			Reason: types.ReasonConfirmed, Source: "Crossref", URL: "https://doi.org/10.1038/nature12373"},
		{Text: "[2] Doe A (2099). Impossible Paper.", Verdict: types.VerdictFake, Reason: types.ReasonFutureYear},
		{Text: "[3] Smith J (2020). A book.", Verdict: types.VerdictUnverified, Reason: types.ReasonNoIdentifier},
	})
}

func TestBuildReport(t *testing.T) {
	r := sampleReport()
	assert.Equal(t, 3, r.Total)
	assert.Equal(t, 1, r.ValidCount)
	assert.Equal(t, 2, r.FakeCount)
	assert.Equal(t, 1, r.UnverifiedCount)
	assert.Equal(t, r.Total, r.ValidCount+r.FakeCount)
	assert.Equal(t, "[2] Doe A (2099). Impossible Paper.", r.References[1].Text)
}

func TestBuildReport_Empty(t *testing.T) {
	r := BuildReport(nil)
	assert.NotNil(t, r.References)
	assert.Zero(t, r.Total)

	var buf bytes.Buffer
	require.NoError(t, FormatJSON(r, &buf))
	assert.Contains(t, buf.String(), `"references": []`)
}

func TestFormatTable(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(sampleReport(), &buf)
	out := buf.String()

	assert.Contains(t, out, "Verdict")
	assert.Contains(t, out, "VALID")
	assert.Contains(t, out, "UNVERIFIED")
	assert.Contains(t, out, "Crossref")
	assert.Contains(t, out, "3 references: 1 valid, 2 fake (1 unverified)")
}

func TestFormatTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(BuildReport(nil), &buf)
	assert.Equal(t, "No references found.\n", buf.String())
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatJSON(sampleReport(), &buf))

	var got types.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 3, got.Total)
	assert.Equal(t, types.VerdictValid, got.References[0].Verdict)
	assert.Contains(t, buf.String(), `"valid_count": 1`)
}

func TestFormatYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatYAML(sampleReport(), &buf))

	var got types.Report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 2, got.FakeCount)
	assert.Contains(t, buf.String(), "verdict: UNVERIFIED")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ééééééé...", truncate("éééééééééééé", 10))
}
