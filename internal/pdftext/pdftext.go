// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftext pulls the text layer out of an OCR'd PDF.
//
// Cables in the archive are scanned images with an OCR text layer, so the
// content streams carry plain Tj/TJ show-text operators. The extractor walks
// each page's content stream and decodes those operators; layout fidelity is
// not attempted.
package pdftext

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Extract returns the concatenated text of every page in the PDF at path,
// pages separated by single newlines.
func Extract(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return "", fmt.Errorf("reading pdf %s: %w", path, err)
	}

	var pages []string
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		text := pageText(ctx, pageNr)
		if text != "" {
			pages = append(pages, text)
		}
	}

	if len(pages) == 0 {
		return "", fmt.Errorf("no text layer in %s", path)
	}
	return strings.Join(pages, "\n"), nil
}

// pageText extracts the text of a single page from its content stream.
func pageText(ctx *model.Context, pageNr int) string {
	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return ""
	}
	return StreamText(string(data))
}

// literalRe matches PDF string literals in parentheses.
var literalRe = regexp.MustCompile(`\(((?:[^()\\]|\\.)*)\)`)

// StreamText decodes the show-text operators of one content stream.
// Tj and TJ emit their string literals; ' and T* start new lines; Td/TD
// positioning is rendered as a space so words do not run together.
func StreamText(stream string) string {
	var sb strings.Builder

	for _, line := range strings.Split(stream, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
		case strings.HasSuffix(line, "Tj") || strings.HasSuffix(line, "TJ"):
			for _, m := range literalRe.FindAllStringSubmatch(line, -1) {
				sb.WriteString(decodeLiteral(m[1]))
			}
		case strings.HasSuffix(line, "'") && strings.Contains(line, "("):
			for _, m := range literalRe.FindAllStringSubmatch(line, -1) {
				sb.WriteByte('\n')
				sb.WriteString(decodeLiteral(m[1]))
			}
		case line == "T*":
			sb.WriteByte('\n')
		case strings.HasSuffix(line, "Td") || strings.HasSuffix(line, "TD"):
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
		}
	}

	return strings.TrimSpace(sb.String())
}

// decodeLiteral resolves PDF string escape sequences, including octal codes.
func decodeLiteral(raw string) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch c := raw[i]; {
		case c == 'n':
			sb.WriteByte('\n')
		case c == 'r':
			sb.WriteByte('\r')
		case c == 't':
			sb.WriteByte('\t')
		case c == '\\' || c == '(' || c == ')':
			sb.WriteByte(c)
		case c >= '0' && c <= '7':
			val := int(c - '0')
			for n := 0; n < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; n++ {
				i++
				val = val*8 + int(raw[i]-'0')
			}
			sb.WriteByte(byte(val))
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}
