package ai

import (
	"context"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient не хранит ключ: клиент собирается на каждый вызов
// из ключа, который пользователь ввёл в форме.
type OpenAIClient struct {
	model   string
	baseURL string
}

func NewOpenAIClient(model, baseURL string) *OpenAIClient {
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}
	return &OpenAIClient{
		model:   model,
		baseURL: baseURL,
	}
}

func (c *OpenAIClient) GetCompletion(ctx context.Context, credential string, messages []openai.ChatCompletionMessage) (string, error) {
	cfg := openai.DefaultConfig(credential)
	if c.baseURL != "" {
		cfg.BaseURL = c.baseURL
	}

	resp, err := openai.NewClientWithConfig(cfg).CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion has no choices")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", errors.New("completion is empty")
	}
	return content, nil
}
