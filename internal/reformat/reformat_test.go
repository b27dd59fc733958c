// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reformat

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dstowell/cable-engine/internal/ingest"
	"github.com/dstowell/cable-engine/pkg/types"
)

func renderedDoc() string {
	return ingest.RenderMarkdown(types.CableRecord{
		SourceFile:     "1979LAPAZ05541.pdf",
		Subject:        "TEST CABLE",
		Classification: "CONFIDENTIAL",
		BodyText:       "1. This is a test.",
		Signer:         "Unknown",
	})
}

func TestRelocateMovesBlockBelowClassification(t *testing.T) {
	out, moved, err := Relocate(renderedDoc())
	if err != nil {
		t.Fatalf("Relocate: %v", err)
	}
	if !moved {
		t.Fatal("moved = false on un-relocated document")
	}

	blockIdx := strings.Index(out, ingest.MetadataBlockOpen)
	headingIdx := strings.Index(out, "# TEST CABLE")
	classIdx := strings.Index(out, "**CONFIDENTIAL**")
	bodyIdx := strings.Index(out, "1. This is a test.")

	if blockIdx < 0 || headingIdx < 0 || classIdx < 0 {
		t.Fatalf("output lost a marker:\n%s", out)
	}
	if blockIdx < headingIdx {
		t.Errorf("block still precedes heading:\n%s", out)
	}
	if blockIdx < classIdx {
		t.Errorf("block precedes classification line:\n%s", out)
	}
	if bodyIdx >= 0 && blockIdx > bodyIdx {
		t.Errorf("block moved past the body:\n%s", out)
	}
}

func TestRelocateIdempotent(t *testing.T) {
	once, moved, err := Relocate(renderedDoc())
	if err != nil || !moved {
		t.Fatalf("first Relocate: moved=%v err=%v", moved, err)
	}

	twice, moved, err := Relocate(once)
	if err != nil {
		t.Fatalf("second Relocate: %v", err)
	}
	if moved {
		t.Error("second Relocate reported moved")
	}
	if twice != once {
		t.Errorf("second Relocate changed content:\nonce:\n%s\ntwice:\n%s", once, twice)
	}
}

func TestRelocateErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing block", "# TITLE\n\n**SECRET**\n\nbody\n"},
		{"missing heading", ingest.MetadataBlockOpen + "\nsource: x\n" + ingest.MetadataBlockClose + "\n\n**SECRET**\n"},
		{"missing classification", ingest.MetadataBlockOpen + "\nsource: x\n" + ingest.MetadataBlockClose + "\n\n# TITLE\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := Relocate(tt.doc); err == nil {
				t.Error("want error")
			}
		})
	}
}

func TestDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.md"), []byte(renderedDoc()), 0o644); err != nil {
		t.Fatal(err)
	}
	relocated, _, err := Relocate(renderedDoc())
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.md"), []byte(relocated), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.md"), []byte("no markers here"), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	result, err := Dir(dir, &buf)
	if err != nil {
		t.Fatalf("Dir: %v", err)
	}

	if result.Moved != 1 || result.Skipped != 1 || result.Failed != 1 {
		t.Errorf("result = %+v", result)
	}
	if !strings.Contains(buf.String(), "skipped: b.md (already relocated)") {
		t.Errorf("missing skip line:\n%s", buf.String())
	}
}
