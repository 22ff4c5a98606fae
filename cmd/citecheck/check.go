// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/citecheck/internal/document"
	"github.com/pdiddy/citecheck/internal/verify"
)

var checkCmd = &cobra.Command{
	Use:   "check [file|-]",
	Short: "Verify the references cited in a document",
	Long: `Extract candidate references from a text, PDF or DOCX file (or stdin)
and verify each identifier against Crossref, OpenAlex, PubMed and arXiv.

Examples:
  citecheck check paper.pdf
  citecheck check --json draft.docx
  cat refs.txt | citecheck check -
  echo "[1] Kucsko G (2013). doi:10.1038/nature12373" | citecheck check --no-min-length -`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Bool("json", false, "output as JSON")
	checkCmd.Flags().Bool("yaml", false, "output as YAML")
	checkCmd.Flags().Bool("no-min-length", false, "accept input shorter than 100 characters (short reference lists)")
	checkCmd.Flags().Int("max-candidates", 0, "cap on references verified per document")
	checkCmd.Flags().Int("max-concurrent", 0, "cap on simultaneous registry calls")
	checkCmd.Flags().Duration("timeout", 0, "per-call registry timeout")
	_ = viper.BindPFlag("verify.max_candidates", checkCmd.Flags().Lookup("max-candidates"))
	_ = viper.BindPFlag("verify.max_concurrent", checkCmd.Flags().Lookup("max-concurrent"))
	_ = viper.BindPFlag("http.timeout", checkCmd.Flags().Lookup("timeout"))
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	jsonOut, _ := cmd.Flags().GetBool("json")
	yamlOut, _ := cmd.Flags().GetBool("yaml")
	noMinLength, _ := cmd.Flags().GetBool("no-min-length")
	if jsonOut && yamlOut {
		return fmt.Errorf("--json and --yaml are mutually exclusive")
	}

	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	text, err := readInput(path, cmd.InOrStdin())
	if err != nil {
		return err
	}
	if err := checkLength(text, noMinLength); err != nil {
		return err
	}

	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer syncLogger(a.logger)

	report := a.verifier.Verify(cmd.Context(), text)

	switch {
	case jsonOut:
		return verify.FormatJSON(report, os.Stdout)
	case yamlOut:
		return verify.FormatYAML(report, os.Stdout)
	default:
		verify.FormatTable(report, os.Stdout)
		return nil
	}
}

// checkLength applies the minimum-length precondition unless skip is set.
func checkLength(text string, skip bool) error {
	if skip {
		return nil
	}
	return document.Validate(text)
}
