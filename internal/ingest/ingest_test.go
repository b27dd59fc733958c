// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dstowell/cable-engine/pkg/types"
)

const cableText = `Draft Date: 4 JUL 1979
FM AMEMBASSY LA PAZ
TO SECSTATE WASHDC
SUBJECT: TEST CABLE

1. This is a test.

KISSINGER
NNN

Message Attributes
Document Number: 1979LAPAZ05541
Current Classification: CONFIDENTIAL
`

// countingExtractor wraps ReadDocument and counts invocations.
type countingExtractor struct {
	calls int
}

func (c *countingExtractor) extract(path string) (string, error) {
	c.calls++
	return ReadDocument(path)
}

func setupDirs(t *testing.T, docs map[string]string) (in, out string) {
	t.Helper()
	in, out = t.TempDir(), t.TempDir()
	for name, content := range docs {
		require.NoError(t, os.WriteFile(filepath.Join(in, name), []byte(content), 0o644))
	}
	return in, out
}

func TestRunRendersDocuments(t *testing.T) {
	in, out := setupDirs(t, map[string]string{"1979LAPAZ05541.txt": cableText})
	cfg := types.IngestConfig{InputDir: in, OutputDir: out}

	var buf bytes.Buffer
	result, err := Run(context.Background(), cfg, nil, nil, &buf)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Written)
	assert.False(t, result.HasFailures())
	assert.Contains(t, buf.String(), "rendered: 1979LAPAZ05541")

	md, err := os.ReadFile(filepath.Join(out, "1979LAPAZ05541.md"))
	require.NoError(t, err)
	doc := string(md)

	assert.Contains(t, doc, `title: "TEST CABLE"`)
	assert.Contains(t, doc, `from: "AMEMBASSY LA PAZ"`)
	assert.Contains(t, doc, "# TEST CABLE")
	assert.Contains(t, doc, "**CONFIDENTIAL**")
	assert.Contains(t, doc, "This is a test.")
	assert.Contains(t, doc, "- Document Number: 1979LAPAZ05541")
	assert.Contains(t, doc, MetadataBlockOpen)

	// Combined table written alongside the markdown.
	csvData, err := os.ReadFile(filepath.Join(out, "cables.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(csvData), "1979LAPAZ05541.txt")
}

func TestRunSkipLaw(t *testing.T) {
	in, out := setupDirs(t, map[string]string{"cable.txt": cableText})
	cfg := types.IngestConfig{InputDir: in, OutputDir: out}

	outPath := filepath.Join(out, "cable.md")
	require.NoError(t, os.WriteFile(outPath, []byte("existing output"), 0o644))

	ce := &countingExtractor{}
	var buf bytes.Buffer
	result, err := Run(context.Background(), cfg, ce.extract, nil, &buf)
	require.NoError(t, err)

	// Existing output with overwrite unset: no extraction, no rewrite,
	// recorded skip.
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 0, result.Written)
	assert.Equal(t, 0, ce.calls)
	assert.Contains(t, buf.String(), "skipped: cable (already exists)")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "existing output", string(data))
}

func TestRunOverwrite(t *testing.T) {
	in, out := setupDirs(t, map[string]string{"cable.txt": cableText})
	cfg := types.IngestConfig{InputDir: in, OutputDir: out, Overwrite: true}

	outPath := filepath.Join(out, "cable.md")
	require.NoError(t, os.WriteFile(outPath, []byte("stale output"), 0o644))

	var buf bytes.Buffer
	result, err := Run(context.Background(), cfg, nil, nil, &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Written)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.NotEqual(t, "stale output", string(data))
}

func TestRunFormattedVariant(t *testing.T) {
	in, out := setupDirs(t, map[string]string{"cable.txt": cableText})
	cfg := types.IngestConfig{InputDir: in, OutputDir: out, Formatted: true}

	var buf bytes.Buffer
	_, err := Run(context.Background(), cfg, nil, nil, &buf)
	require.NoError(t, err)

	md, err := os.ReadFile(filepath.Join(out, "cable.md"))
	require.NoError(t, err)
	assert.Contains(t, string(md), `date: "July 04, 1979"`)
	assert.Contains(t, string(md), `from: "AmEmbassy La Paz"`)
}

func TestRunEmptyInputDirIsFatal(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	cfg := types.IngestConfig{InputDir: in, OutputDir: out}

	var buf bytes.Buffer
	_, err := Run(context.Background(), cfg, nil, nil, &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no cable documents")
}

func TestRunContinuesPastFailures(t *testing.T) {
	in, out := setupDirs(t, map[string]string{
		"bad.txt":  "ignored",
		"good.txt": cableText,
	})
	cfg := types.IngestConfig{InputDir: in, OutputDir: out}

	failing := func(path string) (string, error) {
		if strings.Contains(path, "bad") {
			return "", errors.New("corrupt input")
		}
		return ReadDocument(path)
	}

	var buf bytes.Buffer
	result, err := Run(context.Background(), cfg, failing, nil, &buf)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 1, result.Written)
	assert.True(t, result.HasFailures())
	assert.Contains(t, buf.String(), "failed:  bad")

	// The good document still made it into the combined table.
	csvData, err := os.ReadFile(filepath.Join(out, "cables.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(csvData), "good.txt")
	assert.NotContains(t, string(csvData), "bad.txt")
}

func TestWriteSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cables.db")
	records := []types.CableRecord{
		{SourceFile: "a.pdf", Subject: "FIRST", Signer: "Unknown"},
		{SourceFile: "b.pdf", Subject: "SECOND, WITH COMMA", Signer: "Todman"},
	}

	require.NoError(t, WriteSnapshot(path, records))
	// Rebuilding wholesale must not accumulate rows.
	require.NoError(t, WriteSnapshot(path, records))

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM cables`).Scan(&count))
	assert.Equal(t, 2, count)

	var subject string
	require.NoError(t, db.QueryRow(`SELECT subject FROM cables WHERE source_file = ?`, "b.pdf").Scan(&subject))
	assert.Equal(t, "SECOND, WITH COMMA", subject)
}

func TestWriteCSVQuotesCommas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cables.csv")
	records := []types.CableRecord{
		{SourceFile: "a.pdf", Tags: "PGOV, BL"},
	}
	require.NoError(t, WriteCSV(path, records))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"PGOV, BL"`)
}
