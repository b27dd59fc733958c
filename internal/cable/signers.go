// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cable

import (
	"regexp"

	"github.com/dstowell/cable-engine/internal/format"
)

// signerNames maps known signer tokens to full names and titles. The table
// covers the officers who signed the bulk of the archive; anything else is
// title-cased as a best-effort guess.
var signerNames = map[string]string{
	"KISSINGER":   "Henry A. Kissinger, Secretary of State",
	"VANCE":       "Cyrus R. Vance, Secretary of State",
	"CHRISTOPHER": "Warren M. Christopher, Deputy Secretary of State",
	"HABIB":       "Philip C. Habib, Under Secretary for Political Affairs",
	"ROBINSON":    "Charles W. Robinson, Deputy Secretary of State",
	"INGERSOLL":   "Robert S. Ingersoll, Deputy Secretary of State",
	"SISCO":       "Joseph J. Sisco, Under Secretary for Political Affairs",
	"RUSH":        "Kenneth Rush, Deputy Secretary of State",
}

// signerRe finds the all-caps token immediately preceding the end-of-message
// token or the footer marker; that position is where cables carry the
// signing officer's surname.
var signerRe = regexp.MustCompile(`([A-Z]{2,})\s+(?:` + endOfMessage + `\b|` + attributesMarker + `)`)

// Attribute resolves the signing officer from the full document text.
// Unrecognized tokens are title-cased; a document with no signer token at
// all is attributed to "Unknown".
func Attribute(text string) string {
	m := signerRe.FindStringSubmatch(text)
	if m == nil {
		return "Unknown"
	}
	if name, ok := signerNames[m[1]]; ok {
		return name
	}
	return format.TitleWord(m[1])
}
