// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest drives the batch pipeline: walk a directory of cable
// documents, extract fields from each, render markdown, and collect every
// record into a combined CSV table and SQLite snapshot.
//
// Processing is strictly sequential; one document is fully extracted,
// rendered, and written before the next begins. Per-document failures are
// warnings, not batch failures.
package ingest

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/dstowell/cable-engine/internal/cable"
	"github.com/dstowell/cable-engine/internal/cleanup"
	"github.com/dstowell/cable-engine/internal/pdftext"
	"github.com/dstowell/cable-engine/pkg/types"
)

const (
	// csvFile is the combined metadata table written next to the markdown.
	csvFile = "cables.csv"
	// dbFile is the SQLite snapshot of the same table.
	dbFile = "cables.db"
)

// TextExtractor reads the plain text of one source document. Pluggable so
// tests can count invocations and skip real PDF parsing.
type TextExtractor func(path string) (string, error)

// ReadDocument is the default TextExtractor: PDFs go through the text-layer
// extractor, anything else is read as plain text.
func ReadDocument(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return pdftext.Extract(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// BatchResult holds the outcome of a batch ingestion run.
type BatchResult struct {
	Written int
	Skipped int
	Failed  int
}

// Total returns the total number of documents processed.
func (r BatchResult) Total() int {
	return r.Written + r.Skipped + r.Failed
}

// HasFailures reports whether any documents failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Run processes every .pdf and .txt document in cfg.InputDir. An input
// directory with no matching documents aborts the run before any processing;
// everything after that point is per-document and non-fatal.
func Run(ctx context.Context, cfg types.IngestConfig, extract TextExtractor, cleaner *cleanup.Cleaner, w io.Writer) (BatchResult, error) {
	if extract == nil {
		extract = ReadDocument
	}

	entries, err := os.ReadDir(cfg.InputDir)
	if err != nil {
		return BatchResult{}, fmt.Errorf("reading input directory %s: %w", cfg.InputDir, err)
	}

	var docs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".pdf", ".txt":
			docs = append(docs, entry.Name())
		}
	}
	if len(docs) == 0 {
		return BatchResult{}, fmt.Errorf("no cable documents (.pdf, .txt) in %s", cfg.InputDir)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return BatchResult{}, fmt.Errorf("creating output directory: %w", err)
	}

	var result BatchResult
	var records []types.CableRecord

	for _, name := range docs {
		base := strings.TrimSuffix(name, filepath.Ext(name))
		outPath := filepath.Join(cfg.OutputDir, base+".md")

		if !cfg.Overwrite {
			if _, err := os.Stat(outPath); err == nil {
				fmt.Fprintf(w, "skipped: %s (already exists)\n", base)
				result.Skipped++
				continue
			}
		}

		rec, err := processDocument(ctx, cfg, extract, cleaner, name)
		if err != nil {
			log.Warn().Err(err).Str("document", name).Msg("document failed, continuing batch")
			fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
			result.Failed++
			continue
		}

		if err := os.WriteFile(outPath, []byte(RenderMarkdown(rec)), 0o644); err != nil {
			log.Warn().Err(err).Str("document", name).Msg("write failed, continuing batch")
			fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
			result.Failed++
			continue
		}

		fmt.Fprintf(w, "rendered: %s\n", base)
		result.Written++
		records = append(records, rec)
	}

	if len(records) > 0 {
		if err := WriteCSV(filepath.Join(cfg.OutputDir, csvFile), records); err != nil {
			return result, fmt.Errorf("writing %s: %w", csvFile, err)
		}
		if err := WriteSnapshot(filepath.Join(cfg.OutputDir, dbFile), records); err != nil {
			return result, fmt.Errorf("writing %s: %w", dbFile, err)
		}
	}

	fmt.Fprintf(w, "\nBatch summary: %d rendered, %d skipped, %d failed (total: %d)\n",
		result.Written, result.Skipped, result.Failed, result.Total())
	return result, nil
}

// processDocument extracts one document into a CableRecord, applying the
// optional formatted variant and AI body cleanup.
func processDocument(ctx context.Context, cfg types.IngestConfig, extract TextExtractor, cleaner *cleanup.Cleaner, name string) (types.CableRecord, error) {
	text, err := extract(filepath.Join(cfg.InputDir, name))
	if err != nil {
		return types.CableRecord{}, fmt.Errorf("extracting text: %w", err)
	}

	rec := cable.Extract(text, name)
	if cfg.Formatted {
		rec = cable.Formatted(rec)
	}
	if cfg.Cleanup && cleaner.Enabled() {
		rec.BodyText = cleaner.Clean(ctx, name, rec.BodyText)
	}
	return rec, nil
}
