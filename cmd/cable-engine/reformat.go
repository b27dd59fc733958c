// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dstowell/cable-engine/internal/reformat"
)

var reformatCmd = &cobra.Command{
	Use:   "reformat <document.md|directory>",
	Short: "Relocate the metadata block of rendered markdown documents",
	Long: `Reformat moves the placeholder metadata block of each rendered document
to immediately follow the bold classification line. Documents already in
the relocated layout are skipped, so the pass can be re-run on a directory
at any time.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := os.Stat(args[0])
		if err != nil {
			return err
		}

		if info.IsDir() {
			result, err := reformat.Dir(args[0], os.Stdout)
			if err != nil {
				return err
			}
			if result.HasFailures() {
				return fmt.Errorf("%d of %d documents failed", result.Failed, result.Total())
			}
			return nil
		}

		status, err := reformat.File(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s: %s\n", status, args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reformatCmd)
}
