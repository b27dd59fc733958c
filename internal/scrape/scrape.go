// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scrape reads archived HTML index pages and turns the results
// table into one record per logical row.
//
// Index pages interleave continuation rows with the main rows: a
// continuation row spans the table width and carries overflow text that
// belongs to the preceding row's subject column, not a new record.
package scrape

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dstowell/cable-engine/internal/httputil"
	"github.com/dstowell/cable-engine/pkg/types"
)

// Record is one logical row of the index table.
type Record struct {
	// Fields holds one value per header column, continuation text merged in.
	Fields []string

	// URL is the absolute document link from the row's first cell, empty
	// when the cell carries no link.
	URL string
}

// Table is the parsed results table.
type Table struct {
	Header  []string
	Records []Record
}

// Parse reads an HTML page from r and extracts its first results table.
// Relative links are resolved against cfg.BaseURL.
func Parse(r io.Reader, cfg types.ScrapeConfig) (*Table, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}

	var base *url.URL
	if cfg.BaseURL != "" {
		base, err = url.Parse(cfg.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("parsing base url %q: %w", cfg.BaseURL, err)
		}
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("no table found in page")
	}

	out := &Table{}
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		if len(out.Header) == 0 {
			if header := headerCells(row); len(header) > 0 {
				out.Header = header
			}
			return
		}

		cells := row.Find("td")
		if cells.Length() == 0 {
			return
		}

		// Continuation rows have fewer cells than the header; their text
		// belongs to the previous record's designated column.
		if cells.Length() < len(out.Header) && len(out.Records) > 0 {
			prev := &out.Records[len(out.Records)-1]
			col := continuationColumn(cfg, len(out.Header))
			extra := collapse(cells.Text())
			if extra != "" {
				if prev.Fields[col] != "" {
					prev.Fields[col] += " " + extra
				} else {
					prev.Fields[col] = extra
				}
			}
			return
		}

		rec := Record{Fields: make([]string, len(out.Header))}
		cells.Each(func(i int, cell *goquery.Selection) {
			if i < len(rec.Fields) {
				rec.Fields[i] = collapse(cell.Text())
			}
		})
		if href, ok := cells.First().Find("a").First().Attr("href"); ok {
			rec.URL = resolveURL(base, href)
		}
		out.Records = append(out.Records, rec)
	})

	if len(out.Header) == 0 {
		return nil, fmt.Errorf("results table has no header row")
	}
	return out, nil
}

// Fetch downloads an index page and parses it. Rate-limit responses are
// retried with backoff.
func Fetch(ctx context.Context, pageURL string, cfg types.ScrapeConfig) (*Table, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", pageURL, err)
	}
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}

	client := &http.Client{Timeout: cfg.Timeout}
	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: HTTP %d", pageURL, resp.StatusCode)
	}
	return Parse(resp.Body, cfg)
}

// WriteCSV writes the table as CSV: header columns plus a trailing "url"
// column, one record per row.
func WriteCSV(t *Table, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append(append([]string{}, t.Header...), "url")); err != nil {
		return err
	}
	for _, rec := range t.Records {
		if err := cw.Write(append(append([]string{}, rec.Fields...), rec.URL)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// headerCells returns the header texts of a row containing th cells, or of
// a plain td row when the table has no th header.
func headerCells(row *goquery.Selection) []string {
	cells := row.Find("th")
	if cells.Length() == 0 {
		cells = row.Find("td")
	}
	var header []string
	cells.Each(func(_ int, cell *goquery.Selection) {
		header = append(header, collapse(cell.Text()))
	})
	return header
}

// continuationColumn clamps the configured merge column into the header
// range; negative or out-of-range means the last column.
func continuationColumn(cfg types.ScrapeConfig, width int) int {
	if cfg.ContinuationColumn >= 0 && cfg.ContinuationColumn < width {
		return cfg.ContinuationColumn
	}
	return width - 1
}

// resolveURL rewrites href against base, leaving absolute links untouched.
func resolveURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	if base == nil {
		return ref.String()
	}
	return base.ResolveReference(ref).String()
}

// collapse folds whitespace runs into single spaces and trims.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
