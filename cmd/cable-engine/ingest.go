// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dstowell/cable-engine/internal/cleanup"
	"github.com/dstowell/cable-engine/internal/ingest"
	"github.com/dstowell/cable-engine/pkg/types"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Convert a directory of cable documents to markdown and a metadata table",
	Long: `Ingest walks the input directory for .pdf and .txt cable documents,
extracts header, footer, and body fields from each, renders a markdown
document per cable, and writes one combined metadata table as CSV plus a
SQLite snapshot.

Existing outputs are skipped unless --overwrite is set, so an interrupted
batch can be re-run safely. With --cleanup and an API key (secret file
cleanup-api-key or CABLE_ENGINE_CLEANUP_API_KEY), each body is passed
through a chat model to repair OCR artifacts; failures fall back to the
raw text.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		inputDir, _ := cmd.Flags().GetString("input-dir")
		outputDir, _ := cmd.Flags().GetString("output-dir")
		overwrite, _ := cmd.Flags().GetBool("overwrite")
		formatted, _ := cmd.Flags().GetBool("formatted")
		withCleanup, _ := cmd.Flags().GetBool("cleanup")

		cfg := types.IngestConfig{
			InputDir:  inputDir,
			OutputDir: outputDir,
			Overwrite: overwrite,
			Formatted: formatted,
			Cleanup:   withCleanup,
		}

		var cleaner *cleanup.Cleaner
		if withCleanup {
			cleaner = cleanup.New(cleanupConfig())
			if !cleaner.Enabled() {
				fmt.Fprintln(os.Stderr, "warning: no cleanup API key configured, bodies pass through unchanged")
			}
		}

		result, err := ingest.Run(cmd.Context(), cfg, nil, cleaner, os.Stdout)
		if err != nil {
			return err
		}
		if result.HasFailures() {
			return fmt.Errorf("%d of %d documents failed", result.Failed, result.Total())
		}
		return nil
	},
}

// cleanupConfig resolves the cleanup service settings from flags, config
// file, and secrets, in that order.
func cleanupConfig() types.CleanupConfig {
	return types.CleanupConfig{
		Model:        viper.GetString("cleanup.model"),
		BaseURL:      viper.GetString("cleanup.base_url"),
		APIKey:       secretDefault("cleanup-api-key", viper.GetString("cleanup.api_key")),
		CallInterval: viper.GetDuration("cleanup.call_interval"),
	}
}

func init() {
	ingestCmd.Flags().String("input-dir", "cables/raw", "directory of source documents (.pdf, .txt)")
	ingestCmd.Flags().String("output-dir", "cables/markdown", "directory for rendered markdown and the metadata table")
	ingestCmd.Flags().Bool("overwrite", false, "re-render documents whose output already exists")
	ingestCmd.Flags().Bool("formatted", false, "normalize dates and routing text for display")
	ingestCmd.Flags().Bool("cleanup", false, "repair OCR artifacts in body text via the cleanup service")

	viper.SetDefault("cleanup.call_interval", time.Second)

	rootCmd.AddCommand(ingestCmd)
}
