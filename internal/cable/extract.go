// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cable extracts structured header, footer, and body fields from the
// plain text of one diplomatic cable document.
//
// Extraction is a pure, single-pass text transform: each field is located by
// the first pattern in an ordered fallback list that matches, and a field
// that matches nothing is simply absent. Extraction never fails.
package cable

import (
	"regexp"
	"strings"

	"github.com/dstowell/cable-engine/internal/format"
	"github.com/dstowell/cable-engine/pkg/types"
)

const (
	// attributesMarker opens the trailing archive metadata block.
	attributesMarker = "Message Attributes"
	// endOfMessage is the telegraphic end-of-message token.
	endOfMessage = "NNN"
)

// headerTerminator ends a multi-line routing block: the next colon-terminated
// all-caps label, or a classification stamp standing on a line of its own.
// The alternation keeps the lazy capture stopping at whichever comes first;
// recipient continuation lines match neither branch.
const headerTerminator = `(?:[A-Z][A-Z0-9 ./]*:|(?:UNCLAS(?:SIFIED)?|CONFIDENTIAL|SECRET|LIMITED OFFICIAL USE)[ \t]*$)`

// Header field patterns, each an ordered fallback list. The first capture
// group of the first matching pattern is the field value.
var (
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`Draft Date:[ \t]*([^\n]+)`),
		regexp.MustCompile(`\bDate:[ \t]*([^\n]+)`),
	}

	fromPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?ms)^FM[ \t]+(.+?)\n\s*TO\b`),
	}

	toPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?ms)^TO[ \t]+(.+?)\n\s*INFO\b`),
		regexp.MustCompile(`(?ms)^TO[ \t]+(.+?)\n\s*` + headerTerminator),
	}

	infoPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?ms)^INFO[ \t]+(.+?)\n\s*E\.[ \t]?O\.`),
		regexp.MustCompile(`(?ms)^INFO[ \t]+(.+?)\n\s*` + headerTerminator),
	}

	subjectPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?s)SUBJ(?:ECT)?:[ \t]*(.+?)[ \t]*\n\s*(?:1\.|REFS?\b|SUMMARY\b)`),
		regexp.MustCompile(`SUBJ(?:ECT)?:[ \t]*([^\n]+)`),
	}

	tagsPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?m)\bTAGS:[ \t]*(.+)$`),
	}

	referencePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?s)\bREFS?:[ \t]*(.+?)[ \t]*\n\s*(?:1\.|SUMMARY\b)`),
		regexp.MustCompile(`(?m)\bREFS?:[ \t]*(.+)$`),
	}
)

// Footer field patterns, searched anywhere in the text.
var (
	documentNumberPatterns = []*regexp.Regexp{
		regexp.MustCompile(`Document Number:[ \t]*([^\n]+)`),
	}
	classificationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`Current Classification:[ \t]*([^\n]+)`),
	}
	conceptsPatterns = []*regexp.Regexp{
		regexp.MustCompile(`Concepts:[ \t]*([^\n]+)`),
	}
	declassificationPatterns = []*regexp.Regexp{
		regexp.MustCompile(releaseBoilerplate + `[ \t]*([0-9]{1,2}[ \t]+[A-Za-z]{3,9}\.?[ \t]+[0-9]{2,4})`),
		regexp.MustCompile(`Decaption Date:[ \t]*([^\n]+)`),
	}
)

// releaseBoilerplate is the declassification notice stamped on every page of
// a released cable.
const releaseBoilerplate = `Declassified/Released US Department of State EO Systematic Review`

// endOfMessageRe matches the end-of-message token on a line of its own.
var endOfMessageRe = regexp.MustCompile(`(?m)^[ \t]*NNN[ \t]*$`)

// Extract parses the full plain text of one cable document. Fields that
// cannot be located are left absent; when no body anchor is found the entire
// input becomes the body.
func Extract(text, sourceFile string) types.CableRecord {
	rec := types.CableRecord{SourceFile: sourceFile}

	rec.Date = firstMatch(text, datePatterns)
	rec.From = firstMatch(text, fromPatterns)
	rec.To = firstMatch(text, toPatterns)
	rec.Info = firstMatch(text, infoPatterns)
	rec.Subject = firstMatch(text, subjectPatterns)
	rec.Tags = firstMatch(text, tagsPatterns)
	rec.Reference = firstMatch(text, referencePatterns)

	rec.DocumentNumber = firstMatch(text, documentNumberPatterns)
	rec.Classification = firstMatch(text, classificationPatterns)
	rec.Concepts = firstMatch(text, conceptsPatterns)
	rec.DeclassificationDate = firstMatch(text, declassificationPatterns)

	rec.Signer = Attribute(text)
	rec.BodyText = CleanBody(isolateBody(text))

	return rec
}

// Formatted returns a copy of rec with the date normalized to
// "Month DD, YYYY" and the routing fields rendered in conventional mixed
// case. Absent fields stay absent.
func Formatted(rec types.CableRecord) types.CableRecord {
	rec.Date = format.Date(rec.Date)
	rec.From = format.Diplomatic(rec.From)
	rec.To = format.Diplomatic(rec.To)
	rec.Info = format.Diplomatic(rec.Info)
	return rec
}

// firstMatch returns the first capture group of the first pattern that
// matches, with internal whitespace runs collapsed to single spaces and the
// result trimmed. An empty string means no pattern matched.
func firstMatch(text string, patterns []*regexp.Regexp) string {
	for _, re := range patterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if v := collapseWhitespace(m[1]); v != "" {
			return v
		}
	}
	return ""
}

// matchEnd reports the end offset of the first capture group of the first
// matching pattern.
func matchEnd(text string, patterns []*regexp.Regexp) (int, bool) {
	for _, re := range patterns {
		if loc := re.FindStringSubmatchIndex(text); loc != nil && loc[3] >= 0 {
			return loc[3], true
		}
	}
	return 0, false
}

// isolateBody slices the narrative content out of the full document text.
// The body starts after the later of the subject and reference fields and
// ends before the first footer marker or end-of-message token. With no start
// anchor the whole text is the body; a start anchor past the end anchor
// yields an empty body rather than a negative slice.
func isolateBody(text string) string {
	start, found := 0, false
	if end, ok := matchEnd(text, subjectPatterns); ok {
		start, found = end, true
	}
	if end, ok := matchEnd(text, referencePatterns); ok && end > start {
		start, found = end, true
	}
	if !found {
		return text
	}

	end := len(text)
	if i := strings.Index(text, attributesMarker); i >= 0 && i < end {
		end = i
	}
	if loc := endOfMessageRe.FindStringIndex(text); loc != nil && loc[0] < end {
		end = loc[0]
	}

	if start >= end {
		return ""
	}
	return text[start:end]
}

// bodyCleanupPatterns are applied in order; each removal must leave no text
// that an earlier pattern would still match, so the sequence is idempotent.
var bodyCleanupPatterns = []*regexp.Regexp{
	// 1. Repeated declassification/release notices.
	regexp.MustCompile(`(?m)^.*` + releaseBoilerplate + `.*$\n?`),
	// 2a. Classification stamps on lines of their own.
	regexp.MustCompile(`(?m)^[ \t]*(?:UNCLASSIFIED|CONFIDENTIAL|SECRET|LIMITED OFFICIAL USE)[ \t]*$\n?`),
	// 2b. Restricted-distribution markers wherever they stand alone.
	regexp.MustCompile(`\b(?:LIMDIS|NODIS|EXDIS|STADIS)\b`),
	// 3. Page-number artifacts, e.g. "PAGE 02 LAPAZ 05541 121456Z".
	regexp.MustCompile(`(?m)^[ \t]*PAGE[ \t]+[0-9]+[ \t]+[A-Z]+[ \t]+[0-9]+.*$\n?`),
	// 4. A stray footer block the end-anchor search failed to cut.
	regexp.MustCompile(`(?s)` + attributesMarker + `.*\z`),
}

// CleanBody strips known boilerplate from an isolated body and trims it.
// Cleaning already-clean text is a no-op.
func CleanBody(body string) string {
	for _, re := range bodyCleanupPatterns {
		body = re.ReplaceAllString(body, "")
	}
	return strings.TrimSpace(body)
}

// collapseWhitespace folds every run of whitespace, newlines included, into
// a single space and trims the ends.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
