// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cleanup

import (
	"context"
	"errors"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/dstowell/cable-engine/pkg/types"
)

// fakeClient implements Client with a canned response or error.
type fakeClient struct {
	content string
	err     error
	calls   int
	lastReq openai.ChatCompletionRequest
}

func (f *fakeClient) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: f.content}},
		},
	}, nil
}

func testConfig() types.CleanupConfig {
	return types.CleanupConfig{
		Model:        "test-model",
		CallInterval: time.Millisecond,
	}
}

func TestCleanUsesFirstChoiceVerbatim(t *testing.T) {
	fc := &fakeClient{content: "1. Cleaned text.\n"}
	c := NewWithClient(fc, testConfig())

	got := c.Clean(context.Background(), "a.pdf", "1. RAW TEXT.")
	if got != "1. Cleaned text.\n" {
		t.Errorf("Clean() = %q", got)
	}
	if fc.calls != 1 {
		t.Errorf("calls = %d, want 1", fc.calls)
	}
	if len(fc.lastReq.Messages) != 2 || fc.lastReq.Messages[1].Content != "1. RAW TEXT." {
		t.Errorf("request did not carry raw body: %+v", fc.lastReq.Messages)
	}
}

func TestCleanFallsBackOnError(t *testing.T) {
	fc := &fakeClient{err: errors.New("endpoint down")}
	c := NewWithClient(fc, testConfig())

	got := c.Clean(context.Background(), "a.pdf", "1. RAW TEXT.")
	if got != "1. RAW TEXT." {
		t.Errorf("Clean() = %q, want raw text back", got)
	}
}

func TestCleanFallsBackOnEmptyResponse(t *testing.T) {
	fc := &fakeClient{content: ""}
	c := NewWithClient(fc, testConfig())

	if got := c.Clean(context.Background(), "a.pdf", "body"); got != "body" {
		t.Errorf("Clean() = %q, want raw text back", got)
	}
}

func TestCleanSkipsEmptyBody(t *testing.T) {
	fc := &fakeClient{content: "should not be used"}
	c := NewWithClient(fc, testConfig())

	if got := c.Clean(context.Background(), "a.pdf", "   "); got != "   " {
		t.Errorf("Clean() = %q", got)
	}
	if fc.calls != 0 {
		t.Errorf("calls = %d, want 0", fc.calls)
	}
}

func TestMissingKeyDisablesCleanup(t *testing.T) {
	c := New(types.CleanupConfig{})
	if c.Enabled() {
		t.Error("Enabled() = true without API key")
	}
	if got := c.Clean(context.Background(), "a.pdf", "body"); got != "body" {
		t.Errorf("Clean() on disabled cleaner = %q", got)
	}
}
