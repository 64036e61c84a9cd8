package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// EndpointConfig holds the configuration for a single completion endpoint.
type EndpointConfig struct {
	BaseURL string // e.g. http://localhost:11434 or https://router.huggingface.co/v1
	Model   string // e.g. qwen3, meta-llama/Llama-3.1-8B-Instruct
	Token   string // Bearer token (empty = no auth)
}

// OllamaProvider implements port.CompletionProvider using the Ollama REST API.
type OllamaProvider struct {
	cfg        EndpointConfig
	httpClient *http.Client
}

// NewOllamaProvider creates a new Ollama-backed completion provider.
func NewOllamaProvider(cfg EndpointConfig) *OllamaProvider {
	return &OllamaProvider{
		cfg:        cfg,
		httpClient: &http.Client{},
	}
}

// ModelName returns the chat model identifier.
func (o *OllamaProvider) ModelName() string {
	return o.cfg.Model
}

// Complete sends prompt as a single user message and returns the reply.
func (o *OllamaProvider) Complete(ctx context.Context, prompt string) (string, error) {
	payload := map[string]interface{}{
		"model": o.cfg.Model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"stream": false,
	}

	body, err := postJSON(ctx, o.httpClient, o.cfg, "/api/chat", payload)
	if err != nil {
		return "", fmt.Errorf("ollama chat: %w", err)
	}

	var resp struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("ollama chat decode: %w", err)
	}

	return resp.Message.Content, nil
}

// postJSON POSTs payload to cfg.BaseURL+path with an optional bearer token.
func postJSON(ctx context.Context, client *http.Client, cfg EndpointConfig, path string, payload interface{}) ([]byte, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.BaseURL+path, bytes.NewReader(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.Token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API error (%d): %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}
