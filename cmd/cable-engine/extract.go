// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/dstowell/cable-engine/internal/cable"
	"github.com/dstowell/cable-engine/internal/ingest"
)

var extractCmd = &cobra.Command{
	Use:   "extract <document.pdf|document.txt>",
	Short: "Extract structured fields from a single cable document",
	Long: `Extract runs the field extractor on one document and prints the resulting
record as YAML. Useful for inspecting what a batch run would produce for a
problem document.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		formatted, _ := cmd.Flags().GetBool("formatted")

		text, err := ingest.ReadDocument(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}

		rec := cable.Extract(text, args[0])
		if formatted {
			rec = cable.Formatted(rec)
		}

		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		return enc.Encode(rec)
	},
}

func init() {
	extractCmd.Flags().Bool("formatted", false, "normalize the date and routing fields for display")

	rootCmd.AddCommand(extractCmd)
}
