// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "cable-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// IngestConfig holds settings for the batch ingestion stage.
type IngestConfig struct {
	// InputDir is the directory scanned for cable documents (.pdf, .txt).
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// OutputDir is the directory for rendered markdown, the combined CSV
	// table, and the SQLite snapshot.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Overwrite re-renders documents whose markdown output already exists.
	// When false, existing outputs are skipped without re-extraction.
	Overwrite bool `json:"overwrite" yaml:"overwrite"`

	// Formatted applies date normalization and diplomatic-text casing to
	// the extracted header fields.
	Formatted bool `json:"formatted" yaml:"formatted"`

	// Cleanup enables the AI body-cleanup call per document.
	Cleanup bool `json:"cleanup" yaml:"cleanup"`
}

// CleanupConfig holds settings for the AI body-cleanup service.
type CleanupConfig struct {
	// Model is the chat model identifier.
	Model string `json:"model" yaml:"model"`

	// APIKey authenticates against the cleanup endpoint. An empty key
	// disables cleanup entirely; documents pass through unchanged.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL overrides the API endpoint (for OpenAI-compatible backends).
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// CallInterval is the fixed pause enforced between consecutive calls
	// to respect the service rate limit (default 1s).
	CallInterval time.Duration `json:"call_interval" yaml:"call_interval"`
}

// ScrapeConfig holds settings for the HTML index scraper.
type ScrapeConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the URL relative document links are resolved against.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// ContinuationColumn is the index of the column continuation rows are
	// merged into. Negative means the last column.
	ContinuationColumn int `json:"continuation_column" yaml:"continuation_column"`
}
