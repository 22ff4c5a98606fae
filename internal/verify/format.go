// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verify

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/citecheck/pkg/types"
)

// FormatTable writes the report as a human-readable table to w.
func FormatTable(report types.Report, w io.Writer) {
	if report.Total == 0 {
		fmt.Fprintln(w, "No references found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-10s  %-60s  %-10s  %s\n",
		"#", "Verdict", "Reference", "Source", "Reason")
	fmt.Fprintln(w, strings.Repeat("-", 120))

	for i, rec := range report.References {
		fmt.Fprintf(w, "%-4d  %-10s  %-60s  %-10s  %s\n",
			i+1, rec.Verdict, truncate(rec.Text, 60), rec.Source, rec.Reason)
	}

	fmt.Fprintf(w, "\n%d references: %d valid, %d fake", report.Total, report.ValidCount, report.FakeCount)
	if report.UnverifiedCount > 0 {
		fmt.Fprintf(w, " (%d unverified)", report.UnverifiedCount)
	}
	fmt.Fprintln(w)
}

// FormatJSON writes the report as indented JSON to w.
func FormatJSON(report types.Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// FormatYAML writes the report as YAML to w.
func FormatYAML(report types.Report, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

// truncate shortens s to max runes, marking the cut with "...".
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
