// Package llm provides the text-completion backends used to rewrite captions.
package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cadence/internal/config"
)

// Provider is a text-completion backend.
type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Name() string
}

// Initializer is implemented by providers that can check they are ready
// before the first completion.
type Initializer interface {
	Initialize(ctx context.Context) error
}

// GenerationOptions contains options shared by every provider.
type GenerationOptions struct {
	Model       string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration // HTTP client timeout; 0 means none
}

// ErrEmptyResponse is returned when a provider answers with no text.
var ErrEmptyResponse = errors.New("empty response from model")

// New builds the provider selected by cfg.Provider. modelPath overrides the
// configured model; when it names a local file (a .gguf or anything with a
// path separator) the file must exist and its base name becomes the model name.
func New(cfg config.LLM, modelPath string) (Provider, error) {
	if modelPath == "" {
		modelPath = cfg.ModelPath
	}
	model, err := resolveModel(modelPath)
	if err != nil {
		return nil, err
	}

	opts := GenerationOptions{
		Model:       model,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
		Timeout:     cfg.CallTimeout(),
	}

	switch strings.ToLower(cfg.Provider) {
	case "", config.ProviderOpenAI:
		if opts.Model == "" {
			opts.Model = cfg.OpenAI.Model
		}
		return NewOpenAI(cfg.OpenAI.BaseURL, cfg.OpenAI.APIKey, opts), nil
	case config.ProviderOllama:
		if opts.Model == "" {
			opts.Model = cfg.Ollama.Model
		}
		return NewOllama(cfg.Ollama.Host, opts), nil
	case config.ProviderGemini:
		if opts.Model == "" {
			opts.Model = cfg.Gemini.Model
		}
		return NewGemini(context.Background(), cfg.Gemini.APIKey, opts)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q (supported: openai, ollama, gemini)", cfg.Provider)
	}
}

func resolveModel(modelPath string) (string, error) {
	modelPath = strings.TrimSpace(modelPath)
	if modelPath == "" {
		return "", nil
	}
	if !looksLikeFile(modelPath) {
		return modelPath, nil
	}

	info, err := os.Stat(modelPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("model file not found: %s", modelPath)
		}
		return "", fmt.Errorf("failed to access model file %s: %w", modelPath, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("model path %s is a directory, expected a model file", modelPath)
	}

	base := filepath.Base(modelPath)
	return strings.TrimSuffix(base, filepath.Ext(base)), nil
}

func looksLikeFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".gguf") || strings.ContainsRune(path, os.PathSeparator) || strings.Contains(path, "/")
}
