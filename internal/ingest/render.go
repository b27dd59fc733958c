// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"fmt"
	"strings"

	"github.com/dstowell/cable-engine/pkg/types"
)

// Markers delimiting the placeholder metadata block. The renderer emits the
// block above the heading; `cable-engine reformat` relocates it to follow
// the classification line.
const (
	MetadataBlockOpen  = "<!-- cable-metadata"
	MetadataBlockClose = "-->"
)

// defaultClassification labels documents whose archive block carried no
// current classification.
const defaultClassification = "UNCLASSIFIED"

// RenderMarkdown produces the output document for one record: YAML front
// matter, the placeholder metadata block, a top-level heading, the
// classification line in bold, the body, and the Message Attributes footer
// as a bullet list.
func RenderMarkdown(rec types.CableRecord) string {
	title := rec.Subject
	if title == "" {
		title = rec.SourceFile
	}
	classification := rec.Classification
	if classification == "" {
		classification = defaultClassification
	}

	var b strings.Builder

	b.WriteString("---\n")
	for _, kv := range [][2]string{
		{"title", title},
		{"source_file", rec.SourceFile},
		{"date", rec.Date},
		{"from", rec.From},
		{"to", rec.To},
		{"info", rec.Info},
		{"subject", rec.Subject},
		{"tags", rec.Tags},
		{"reference", rec.Reference},
		{"signer", rec.Signer},
	} {
		fmt.Fprintf(&b, "%s: %q\n", kv[0], kv[1])
	}
	b.WriteString("---\n\n")

	fmt.Fprintf(&b, "%s\nsource: %s\n%s\n\n", MetadataBlockOpen, rec.SourceFile, MetadataBlockClose)

	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "**%s**\n\n", classification)

	if rec.BodyText != "" {
		b.WriteString(rec.BodyText)
		b.WriteString("\n\n")
	}

	b.WriteString("---\n\n")
	b.WriteString("## Message Attributes\n\n")
	for _, kv := range [][2]string{
		{"Document Number", rec.DocumentNumber},
		{"Date", rec.Date},
		{"Current Classification", classification},
		{"Declassification Date", rec.DeclassificationDate},
		{"Concepts", rec.Concepts},
	} {
		fmt.Fprintf(&b, "- %s: %s\n", kv[0], kv[1])
	}

	return b.String()
}
