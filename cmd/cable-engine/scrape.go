// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dstowell/cable-engine/internal/scrape"
	"github.com/dstowell/cable-engine/pkg/types"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape <index.html|url>",
	Short: "Extract records from an archived HTML index page",
	Long: `Scrape parses the results table of an archive index page into one record
per logical row. Continuation rows are merged into the preceding row's
subject column, and document links are resolved to absolute URLs against
--base-url. The result is written as CSV.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		baseURL, _ := cmd.Flags().GetString("base-url")
		output, _ := cmd.Flags().GetString("output")
		continuation, _ := cmd.Flags().GetInt("continuation-column")

		cfg := types.ScrapeConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("scrape.timeout"),
				UserAgent: viper.GetString("scrape.user_agent"),
			},
			BaseURL:            baseURL,
			ContinuationColumn: continuation,
		}

		var table *scrape.Table
		var err error
		if strings.HasPrefix(args[0], "http://") || strings.HasPrefix(args[0], "https://") {
			table, err = scrape.Fetch(cmd.Context(), args[0], cfg)
		} else {
			var f *os.File
			f, err = os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()
			table, err = scrape.Parse(f, cfg)
		}
		if err != nil {
			return err
		}

		out := os.Stdout
		if output != "" {
			out, err = os.Create(output)
			if err != nil {
				return fmt.Errorf("creating %s: %w", output, err)
			}
			defer out.Close()
		}

		if err := scrape.WriteCSV(table, out); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "%d records scraped\n", len(table.Records))
		return nil
	},
}

func init() {
	scrapeCmd.Flags().String("base-url", "", "base URL for resolving relative document links")
	scrapeCmd.Flags().String("output", "", "CSV output path (default: stdout)")
	scrapeCmd.Flags().Int("continuation-column", -1, "column index continuation rows merge into (-1: last)")

	viper.SetDefault("scrape.timeout", 30*time.Second)
	viper.SetDefault("scrape.user_agent", "cable-engine/0.1")

	rootCmd.AddCommand(scrapeCmd)
}
