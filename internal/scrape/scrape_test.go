// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scrape

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dstowell/cable-engine/pkg/types"
)

const indexPage = `<html><body>
<table>
  <tr><th>Document</th><th>Date</th><th>Subject</th></tr>
  <tr>
    <td><a href="/documents/1979LAPAZ05541.pdf">1979LAPAZ05541</a></td>
    <td>4 JUL 1979</td>
    <td>TEST CABLE</td>
  </tr>
  <tr>
    <td colspan="3">CONTINUATION OF SUBJECT TEXT</td>
  </tr>
  <tr>
    <td><a href="https://other.example.org/doc2.pdf">1979QUITO00012</a></td>
    <td>5 JUL 1979</td>
    <td>SECOND CABLE</td>
  </tr>
</table>
</body></html>`

func testCfg() types.ScrapeConfig {
	return types.ScrapeConfig{
		BaseURL:            "https://archive.example.org/search",
		ContinuationColumn: -1,
	}
}

func TestParse(t *testing.T) {
	table, err := Parse(strings.NewReader(indexPage), testCfg())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	wantHeader := []string{"Document", "Date", "Subject"}
	if len(table.Header) != 3 {
		t.Fatalf("Header = %v", table.Header)
	}
	for i, h := range wantHeader {
		if table.Header[i] != h {
			t.Errorf("Header[%d] = %q, want %q", i, table.Header[i], h)
		}
	}

	if len(table.Records) != 2 {
		t.Fatalf("Records = %d, want 2 (continuation must not become a record)", len(table.Records))
	}

	first := table.Records[0]
	if first.Fields[0] != "1979LAPAZ05541" || first.Fields[1] != "4 JUL 1979" {
		t.Errorf("first record fields = %v", first.Fields)
	}
	if first.Fields[2] != "TEST CABLE CONTINUATION OF SUBJECT TEXT" {
		t.Errorf("continuation not merged: %q", first.Fields[2])
	}
	if first.URL != "https://archive.example.org/documents/1979LAPAZ05541.pdf" {
		t.Errorf("relative URL not resolved: %q", first.URL)
	}

	second := table.Records[1]
	if second.URL != "https://other.example.org/doc2.pdf" {
		t.Errorf("absolute URL rewritten: %q", second.URL)
	}
	if second.Fields[2] != "SECOND CABLE" {
		t.Errorf("second record fields = %v", second.Fields)
	}
}

func TestParseContinuationColumnOverride(t *testing.T) {
	cfg := testCfg()
	cfg.ContinuationColumn = 1
	table, err := Parse(strings.NewReader(indexPage), cfg)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := table.Records[0].Fields[1]; got != "4 JUL 1979 CONTINUATION OF SUBJECT TEXT" {
		t.Errorf("Fields[1] = %q", got)
	}
}

func TestParseNoTable(t *testing.T) {
	if _, err := Parse(strings.NewReader("<html><body><p>empty</p></body></html>"), testCfg()); err == nil {
		t.Error("Parse on page without table: want error")
	}
}

func TestWriteCSV(t *testing.T) {
	table, err := Parse(strings.NewReader(indexPage), testCfg())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteCSV(table, &buf); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("csv lines = %d, want 3:\n%s", len(lines), buf.String())
	}
	if lines[0] != "Document,Date,Subject,url" {
		t.Errorf("csv header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "1979LAPAZ05541") {
		t.Errorf("csv row = %q", lines[1])
	}
}
