package services

import (
	"context"
	"fmt"

	"alfredoptarigan/resume-screener/internal/config"
)

// Sampling parameters shared by every provider.
const (
	ScreeningTemperature float32 = 0.2
	ScreeningMaxTokens           = 500
)

// LLMService sends a single user prompt and returns the first completion text.
type LLMService interface {
	Complete(ctx context.Context, prompt string) (string, error)
	ModelName() string
}

func NewLLMService(cfg config.LLMConfig) (LLMService, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAIService(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel), nil
	case config.ProviderGemini:
		return NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel, "")
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %q", cfg.Provider)
	}
}
