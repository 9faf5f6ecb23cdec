package ai

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

type CompletionClient interface {
	GetCompletion(ctx context.Context, credential string, messages []openai.ChatCompletionMessage) (string, error)
}
