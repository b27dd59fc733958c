// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package reformat relocates the placeholder metadata block of a rendered
// cable document. The renderer emits the block above the heading; this pass
// moves it to immediately follow the bold classification line. Running it
// again is a no-op skip, so the pass is safe on mixed directories.
package reformat

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/dstowell/cable-engine/internal/ingest"
)

// Status is the outcome for one document.
type Status string

const (
	StatusMoved   Status = "moved"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// classificationLineRe matches the bold classification line.
var classificationLineRe = regexp.MustCompile(`^\*\*.+\*\*$`)

// Relocate moves the metadata block below the classification line and
// reports whether the content changed. Already-relocated documents come
// back unchanged with moved=false. Documents missing the block, the
// heading, or the classification line are errors.
func Relocate(content string) (out string, moved bool, err error) {
	lines := strings.Split(content, "\n")

	blockStart, blockEnd := findBlock(lines)
	if blockStart < 0 {
		return "", false, fmt.Errorf("no metadata block found")
	}
	if blockEnd < 0 {
		return "", false, fmt.Errorf("metadata block is not closed")
	}

	headingIdx := findLine(lines, func(s string) bool { return strings.HasPrefix(s, "# ") })
	if headingIdx < 0 {
		return "", false, fmt.Errorf("no top-level heading found")
	}
	classIdx := findLine(lines, func(s string) bool { return classificationLineRe.MatchString(s) })
	if classIdx < 0 {
		return "", false, fmt.Errorf("no classification line found")
	}

	// Already below the heading: relocation has happened.
	if blockStart > headingIdx {
		return content, false, nil
	}

	block := append([]string(nil), lines[blockStart:blockEnd+1]...)

	// Drop the block and the blank line that followed it.
	cut := blockEnd + 1
	if cut < len(lines) && strings.TrimSpace(lines[cut]) == "" {
		cut++
	}
	rest := append(append([]string(nil), lines[:blockStart]...), lines[cut:]...)

	// Anchor indexes shifted by the removal; find the classification line
	// again in the remaining lines.
	classIdx = findLine(rest, func(s string) bool { return classificationLineRe.MatchString(s) })
	if classIdx < 0 {
		return "", false, fmt.Errorf("no classification line found")
	}

	var merged []string
	merged = append(merged, rest[:classIdx+1]...)
	merged = append(merged, "")
	merged = append(merged, block...)
	merged = append(merged, rest[classIdx+1:]...)

	return strings.Join(merged, "\n"), true, nil
}

// File applies Relocate to one markdown document on disk.
func File(path string) (Status, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return StatusFailed, err
	}

	out, moved, err := Relocate(string(data))
	if err != nil {
		return StatusFailed, fmt.Errorf("%s: %w", path, err)
	}
	if !moved {
		return StatusSkipped, nil
	}

	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		return StatusFailed, err
	}
	return StatusMoved, nil
}

// BatchResult holds the outcome of reformatting a directory.
type BatchResult struct {
	Moved   int
	Skipped int
	Failed  int
}

// Total returns the number of documents processed.
func (r BatchResult) Total() int {
	return r.Moved + r.Skipped + r.Failed
}

// HasFailures reports whether any documents failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Dir reformats every .md file in dir, continuing past per-file failures.
func Dir(dir string, w io.Writer) (BatchResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return BatchResult{}, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var result BatchResult
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		status, err := File(path)
		switch status {
		case StatusMoved:
			fmt.Fprintf(w, "moved:   %s\n", entry.Name())
			result.Moved++
		case StatusSkipped:
			fmt.Fprintf(w, "skipped: %s (already relocated)\n", entry.Name())
			result.Skipped++
		case StatusFailed:
			log.Warn().Err(err).Str("document", entry.Name()).Msg("reformat failed, continuing")
			fmt.Fprintf(w, "failed:  %s (%v)\n", entry.Name(), err)
			result.Failed++
		}
	}

	fmt.Fprintf(w, "\nBatch summary: %d moved, %d skipped, %d failed (total: %d)\n",
		result.Moved, result.Skipped, result.Failed, result.Total())
	return result, nil
}

// findBlock locates the metadata block's first and last line indexes.
func findBlock(lines []string) (start, end int) {
	start, end = -1, -1
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if start < 0 {
			if strings.HasPrefix(trimmed, ingest.MetadataBlockOpen) {
				start = i
			}
			continue
		}
		if trimmed == ingest.MetadataBlockClose {
			return start, i
		}
	}
	return start, end
}

// findLine returns the index of the first line satisfying match, or -1.
func findLine(lines []string, match func(string) bool) int {
	for i, line := range lines {
		if match(strings.TrimSpace(line)) {
			return i
		}
	}
	return -1
}
