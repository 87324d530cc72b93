// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package inference sends one image plus an instruction to a remote
// multimodal chat model and returns the text of its reply.
package inference

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"

	"github.com/pdiddy/parcelles/pkg/types"
)

// ErrMissingAPIKey is returned before any request when no credential is set.
var ErrMissingAPIKey = errors.New("missing API key")

// ErrEmptyReply means the endpoint answered without any choice.
var ErrEmptyReply = errors.New("model returned no choices")

// ErrQuotaExceeded marks HTTP 429 responses from the provider.
var ErrQuotaExceeded = errors.New("ai quota exceeded")

// Backend abstracts the chat endpoint so the pipeline can be tested
// without a network.
type Backend interface {
	Complete(ctx context.Context, prompt, imageDataURL string) (string, error)
}

// InferenceError wraps every failure of the remote call.
type InferenceError struct {
	Model string
	// StatusCode is the HTTP status when the endpoint answered, 0 otherwise.
	StatusCode int
	Err        error
}

func (e *InferenceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("inference with %s failed (HTTP %d): %v", e.Model, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("inference with %s failed: %v", e.Model, e.Err)
}

func (e *InferenceError) Unwrap() []error {
	if e.StatusCode == http.StatusTooManyRequests {
		return []error{e.Err, ErrQuotaExceeded}
	}
	return []error{e.Err}
}

// OpenRouter calls an OpenAI-compatible chat completions API. The default
// base URL points at OpenRouter.
type OpenRouter struct {
	client *openai.Client
	model  string
	hasKey bool
}

// NewOpenRouter builds a backend from cfg. Empty model and base URL fall
// back to the package defaults. httpClient may be nil for the library
// default, which applies no timeout of its own.
func NewOpenRouter(cfg types.AIConfig, httpClient *http.Client) *OpenRouter {
	if cfg.Model == "" {
		cfg.Model = types.DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = types.DefaultBaseURL
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	oc.BaseURL = cfg.BaseURL
	if httpClient != nil {
		oc.HTTPClient = httpClient
	}
	return &OpenRouter{
		client: openai.NewClientWithConfig(oc),
		model:  cfg.Model,
		hasKey: cfg.APIKey != "",
	}
}

// Model returns the model identifier requested on every call.
func (o *OpenRouter) Model() string { return o.model }

// Complete sends a single user message holding the prompt and the image,
// and returns the content of the first choice. There is no retry.
func (o *OpenRouter) Complete(ctx context.Context, prompt, imageDataURL string) (string, error) {
	if !o.hasKey {
		return "", &InferenceError{Model: o.model, Err: ErrMissingAPIKey}
	}

	req := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: prompt},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: imageDataURL},
					},
				},
			},
		},
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", &InferenceError{Model: o.model, StatusCode: statusCode(err), Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &InferenceError{Model: o.model, Err: ErrEmptyReply}
	}
	return resp.Choices[0].Message.Content, nil
}

// statusCode digs the HTTP status out of go-openai's error types.
func statusCode(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}
