package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrNoCompletion is returned when the provider answers without any choice.
var ErrNoCompletion = errors.New("LLM did not return a valid completion structure")

// OpenAIProvider implements port.CompletionProvider against any
// OpenAI-compatible chat completions endpoint, such as the Hugging Face
// inference router.
type OpenAIProvider struct {
	cfg        EndpointConfig
	httpClient *http.Client
}

// NewOpenAIProvider creates a provider. BaseURL must include the version
// prefix, e.g. https://router.huggingface.co/v1.
func NewOpenAIProvider(cfg EndpointConfig) *OpenAIProvider {
	return &OpenAIProvider{
		cfg:        cfg,
		httpClient: &http.Client{},
	}
}

// ModelName returns the chat model identifier.
func (o *OpenAIProvider) ModelName() string {
	return o.cfg.Model
}

// Complete sends prompt as a single user message and returns the first
// choice's content.
func (o *OpenAIProvider) Complete(ctx context.Context, prompt string) (string, error) {
	payload := map[string]interface{}{
		"model": o.cfg.Model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}

	body, err := postJSON(ctx, o.httpClient, o.cfg, "/chat/completions", payload)
	if err != nil {
		return "", fmt.Errorf("chat completions: %w", err)
	}

	var resp struct {
		Choices []struct {
			Message *struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("chat completions decode: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message == nil {
		return "", ErrNoCompletion
	}
	return resp.Choices[0].Message.Content, nil
}
