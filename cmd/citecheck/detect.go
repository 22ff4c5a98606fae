// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/citecheck/internal/detect"
	"github.com/pdiddy/citecheck/pkg/types"
)

var detectCmd = &cobra.Command{
	Use:   "detect [file|-]",
	Short: "Score a document for AI-written text and verify its references",
	Long: `Run the sentence-level AI-likeness analysis on a document and verify its
references. The result is printed as JSON, matching the /api/detect response.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	text, err := readInput(path, cmd.InOrStdin())
	if err != nil {
		return err
	}

	analysis, err := detect.New().Analyze(text)
	if err != nil {
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

	out := struct {
		types.Analysis
		References types.Report `json:"references"`
	}{analysis, a.verifier.Verify(cmd.Context(), text)}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
