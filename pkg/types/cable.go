// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// CableRecord holds the structured fields extracted from one cable document.
// Every field except SourceFile and BodyText is optional: an empty string
// means the field was absent from the input, never that extraction failed.
// Present fields are always trimmed and non-empty.
type CableRecord struct {
	// SourceFile identifies the origin document (filename or path).
	SourceFile string `json:"source_file" yaml:"source_file"`

	// Date is the cable transmission date as found in the header, or the
	// normalized "Month DD, YYYY" form when formatting was requested.
	Date string `json:"date,omitempty" yaml:"date,omitempty"`

	// From is the sending post.
	From string `json:"from,omitempty" yaml:"from,omitempty"`

	// To lists the action recipients.
	To string `json:"to,omitempty" yaml:"to,omitempty"`

	// Info lists the info-distribution recipients.
	Info string `json:"info,omitempty" yaml:"info,omitempty"`

	// Subject is the cable subject line.
	Subject string `json:"subject,omitempty" yaml:"subject,omitempty"`

	// Tags holds the raw TAGS codes, unparsed.
	Tags string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// Reference cites related cables.
	Reference string `json:"reference,omitempty" yaml:"reference,omitempty"`

	// DocumentNumber is the archive document number from the trailing
	// Message Attributes block.
	DocumentNumber string `json:"document_number,omitempty" yaml:"document_number,omitempty"`

	// Classification is the current classification from the trailing block.
	Classification string `json:"classification,omitempty" yaml:"classification,omitempty"`

	// DeclassificationDate is the date the cable was declassified.
	DeclassificationDate string `json:"declassification_date,omitempty" yaml:"declassification_date,omitempty"`

	// Concepts holds the archive concept keywords from the trailing block.
	Concepts string `json:"concepts,omitempty" yaml:"concepts,omitempty"`

	// Signer is the attributed signing officer, "Unknown" when no signer
	// token was found.
	Signer string `json:"signer,omitempty" yaml:"signer,omitempty"`

	// BodyText is the narrative content with boilerplate stripped.
	BodyText string `json:"body_text,omitempty" yaml:"body_text,omitempty"`
}
