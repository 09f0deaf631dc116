package services

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

type geminiService struct {
	client    *genai.Client
	modelName string
}

// NewGeminiService creates a Gemini API client. baseURL overrides the endpoint and is empty in production.
func NewGeminiService(apiKey, modelName, baseURL string) (LLMService, error) {
	ctx := context.Background()

	clientConfig := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:    client,
		modelName: modelName,
	}, nil
}

func (g *geminiService) ModelName() string {
	return g.modelName
}

// Complete implements LLMService.
func (g *geminiService) Complete(ctx context.Context, prompt string) (string, error) {
	temperature := ScreeningTemperature
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: ScreeningMaxTokens,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("no candidates returned by model")
	}

	return resp.Text(), nil
}
