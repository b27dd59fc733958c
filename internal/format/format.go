// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package format normalizes dates and diplomatic routing text for display.
package format

import (
	"strings"
	"time"
	"unicode"
)

// dateLayouts is the ordered list of accepted input date formats. The first
// successful parse wins. Layouts with a two-digit year are marked so the
// century can be corrected after parsing.
var dateLayouts = []struct {
	layout       string
	twoDigitYear bool
}{
	{"2 Jan 2006", false},
	{"2 January 2006", false},
	{"Jan 2, 2006", false},
	{"January 2, 2006", false},
	{"2006-01-02", false},
	{"01/02/2006", false},
	{"2 Jan 06", true},
	{"2 January 06", true},
}

// displayLayout is the fixed output format for normalized dates.
const displayLayout = "January 02, 2006"

// Date parses s against the accepted input layouts and renders it as
// "Month DD, YYYY". Two-digit years are assumed to be in the 1900s. Input
// that matches no layout is returned unchanged.
func Date(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return s
	}

	// Month names in cables are usually upper case ("4 JUL 1979");
	// time.Parse only accepts canonical casing.
	candidate := TitleCase(trimmed)

	for _, dl := range dateLayouts {
		t, err := time.Parse(dl.layout, candidate)
		if err != nil {
			continue
		}
		// time.Parse puts two-digit years 00-68 in the 2000s; the
		// archive predates 2000, so every two-digit year is 19xx.
		if dl.twoDigitYear && t.Year() >= 2000 {
			t = t.AddDate(-100, 0, 0)
		}
		return t.Format(displayLayout)
	}
	return s
}

// diplomaticTokens maps upper-case routing tokens to their conventional
// mixed-case rendering. Kept as an explicit table so the heuristic stays
// auditable.
var diplomaticTokens = map[string]string{
	"AMEMBASSY": "AmEmbassy",
	"AMCONSUL":  "AmConsul",
	"SECSTATE":  "SecState",
	"SECDEF":    "SecDef",
	"WASHDC":    "WashDC",
	"USMISSION": "USMission",
	"USDEL":     "USDel",
	"USINT":     "USInt",
	"USUN":      "USUN",
	"USLO":      "USLO",
	"DEPT":      "Dept",
	"OSD":       "OSD",
	"JCS":       "JCS",
	"CIA":       "CIA",
	"NSC":       "NSC",
}

// recasePrefixes re-cases the remainder of tokens that begin with a known
// compound prefix but are not in the token table (e.g. "AMEMBOFFICE").
var recasePrefixes = map[string]string{
	"amemb": "AmEmb",
	"amcon": "AmCon",
	"usdel": "USDel",
	"usmis": "USMis",
}

// Diplomatic renders an all-caps routing string ("AMEMBASSY LA PAZ") in its
// conventional mixed-case form ("AmEmbassy La Paz"). Tokens outside the
// replacement table are title-cased.
func Diplomatic(s string) string {
	if strings.TrimSpace(s) == "" {
		return s
	}

	fields := strings.Fields(s)
	for i, tok := range fields {
		if repl, ok := diplomaticTokens[strings.ToUpper(tok)]; ok {
			fields[i] = repl
			continue
		}
		fields[i] = recase(TitleWord(tok))
	}
	return strings.Join(fields, " ")
}

// recase applies the compound-prefix rule to a title-cased token.
func recase(tok string) string {
	lower := strings.ToLower(tok)
	for prefix, cased := range recasePrefixes {
		if len(lower) > len(prefix) && strings.HasPrefix(lower, prefix) {
			return cased + TitleWord(lower[len(prefix):])
		}
	}
	return tok
}

// TitleWord upper-cases the first letter of a single word and lower-cases
// the rest.
func TitleWord(w string) string {
	if w == "" {
		return w
	}
	runes := []rune(strings.ToLower(w))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// TitleCase title-cases every whitespace-separated word in s.
func TitleCase(s string) string {
	fields := strings.Fields(s)
	for i, w := range fields {
		fields[i] = TitleWord(w)
	}
	return strings.Join(fields, " ")
}
