package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"cadence/internal/config"
)

// Ollama uses the native Ollama HTTP API.
type Ollama struct {
	baseURL    string
	httpClient *http.Client
	opts       GenerationOptions
}

// NewOllama creates an Ollama client.
func NewOllama(baseURL string, opts GenerationOptions) *Ollama {
	if baseURL == "" {
		baseURL = config.DefaultOllamaHost
	}
	if opts.Model == "" {
		opts.Model = "llama3.2:3b"
	}

	return &Ollama{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: opts.Timeout},
		opts:       opts,
	}
}

func (s *Ollama) Name() string { return "ollama" }

// IsAvailable checks if Ollama is running and accessible
func (s *Ollama) IsAvailable(ctx context.Context) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/tags", nil)
	if err != nil {
		return false, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("ollama not accessible: %w", err)
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK, nil
}

// Initialize ensures Ollama is reachable and the configured model has been pulled.
func (s *Ollama) Initialize(ctx context.Context) error {
	available, err := s.IsAvailable(ctx)
	if err != nil {
		return fmt.Errorf("ollama initialization failed: %w", err)
	}
	if !available {
		return fmt.Errorf("ollama service not available at %s", s.baseURL)
	}

	hasModel, err := s.HasModel(ctx)
	if err != nil {
		return fmt.Errorf("failed to check model availability: %w", err)
	}
	if !hasModel {
		return fmt.Errorf("model %s not available in Ollama - please run: ollama pull %s", s.opts.Model, s.opts.Model)
	}

	return nil
}

// HasModel checks if the configured model has been pulled.
func (s *Ollama) HasModel(ctx context.Context) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/tags", nil)
	if err != nil {
		return false, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	var result struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, err
	}

	for _, m := range result.Models {
		if strings.HasPrefix(m.Name, s.opts.Model) {
			return true, nil
		}
	}
	return false, nil
}

type ollamaRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

// Complete runs a non-streaming generation.
func (s *Ollama) Complete(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	options := map[string]any{}
	if s.opts.Temperature > 0 {
		options["temperature"] = s.opts.Temperature
	}
	if s.opts.MaxTokens > 0 {
		options["num_predict"] = s.opts.MaxTokens
	}

	body, err := json.Marshal(ollamaRequest{
		Model:   s.opts.Model,
		Prompt:  prompt,
		Stream:  false,
		Options: options,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("ollama request failed: %d - %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var response struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode ollama response: %w", err)
	}

	text := strings.TrimSpace(response.Response)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
