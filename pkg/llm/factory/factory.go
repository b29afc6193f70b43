package factory

import (
	"context"
	"fmt"

	"paraphrase-be/pkg/llm"
	"paraphrase-be/pkg/llm/gemini"
	"paraphrase-be/pkg/llm/ollama"
	"paraphrase-be/pkg/llm/openai"
)

type Config struct {
	Provider string // ollama | openai | huggingface | gemini
	Model    string
	BaseURL  string
	APIKey   string
}

// NewLLMProvider returns llm.ErrNotConfigured when a hosted provider is
// selected without an API key.
func NewLLMProvider(ctx context.Context, cfg Config) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "ollama", "":
		return ollama.NewOllamaProvider(cfg.BaseURL, cfg.Model), nil
	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai: %w", llm.ErrNotConfigured)
		}
		return openai.NewProvider("openai", cfg.APIKey, cfg.BaseURL, cfg.Model), nil
	case "huggingface":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("huggingface: %w", llm.ErrNotConfigured)
		}
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = openai.HuggingFaceBaseURL
		}
		return openai.NewProvider("huggingface", cfg.APIKey, baseURL, cfg.Model), nil
	case "gemini":
		p, err := gemini.NewGeminiProvider(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, fmt.Errorf("gemini: %w", err)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
