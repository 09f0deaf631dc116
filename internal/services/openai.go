package services

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

type openAIService struct {
	client    *openai.Client
	modelName string
}

// NewOpenAIService builds a chat-completions client. An empty baseURL uses the public API.
func NewOpenAIService(apiKey, baseURL, modelName string) LLMService {
	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}

	return &openAIService{
		client:    openai.NewClientWithConfig(clientConfig),
		modelName: modelName,
	}
}

func (o *openAIService) ModelName() string {
	return o.modelName
}

// Complete implements LLMService.
func (o *openAIService) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.modelName,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: ScreeningTemperature,
		MaxTokens:   ScreeningMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no choices returned by model")
	}

	return resp.Choices[0].Message.Content, nil
}
