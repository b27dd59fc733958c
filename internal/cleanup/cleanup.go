// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cleanup sends extracted cable bodies to a chat model for OCR
// cleanup. The call is strictly best-effort: any failure falls back to the
// raw text with a warning, and a missing API key disables the stage.
package cleanup

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/dstowell/cable-engine/pkg/types"
)

// systemPrompt is the fixed instruction sent with every cleanup request.
const systemPrompt = `You are cleaning the OCR text of a declassified diplomatic cable. ` +
	`Fix OCR artifacts (broken words, stray characters, garbled punctuation) without ` +
	`changing wording, spelling of names, or paragraph numbering. Return only the ` +
	`corrected cable text with no commentary.`

// Client is the minimal chat-completion surface the cleaner needs, so tests
// can supply a mock instead of a live backend.
type Client interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Cleaner wraps a chat client with a fixed-interval rate limit.
type Cleaner struct {
	client  Client
	model   string
	limiter *rate.Limiter
}

// New builds a Cleaner from config. A missing API key disables cleanup:
// New returns nil and callers pass bodies through unchanged.
func New(cfg types.CleanupConfig) *Cleaner {
	if cfg.APIKey == "" {
		return nil
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	return NewWithClient(openai.NewClientWithConfig(oc), cfg)
}

// NewWithClient builds a Cleaner around an existing client. Used by tests.
func NewWithClient(client Client, cfg types.CleanupConfig) *Cleaner {
	interval := cfg.CallInterval
	if interval <= 0 {
		interval = time.Second
	}
	model := cfg.Model
	if model == "" {
		model = openai.GPT4o
	}
	return &Cleaner{
		client:  client,
		model:   model,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

// Enabled reports whether cleanup calls will actually be made.
func (c *Cleaner) Enabled() bool {
	return c != nil && c.client != nil
}

// Clean sends body to the model and returns the first candidate's text
// verbatim. On any failure the original body is returned and a warning is
// logged; Clean never aborts a batch.
func (c *Cleaner) Clean(ctx context.Context, sourceFile, body string) string {
	if !c.Enabled() || strings.TrimSpace(body) == "" {
		return body
	}

	// Fixed pause between calls to respect the service rate limit.
	if err := c.limiter.Wait(ctx); err != nil {
		return body
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: body},
		},
	})
	if err != nil {
		log.Warn().Err(err).Str("source", sourceFile).Msg("body cleanup failed, using raw text")
		return body
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		log.Warn().Str("source", sourceFile).Msg("body cleanup returned no content, using raw text")
		return body
	}
	return resp.Choices[0].Message.Content
}
