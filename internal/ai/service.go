package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Vovarama1992/universal_translator/internal/domain"
	openai "github.com/sashabaranov/go-openai"
)

const systemPrompt = "You are a professional translator."

type Service struct {
	client  CompletionClient
	timeout time.Duration
}

func NewService(client CompletionClient, timeout time.Duration) *Service {
	return &Service{
		client:  client,
		timeout: timeout,
	}
}

// BuildMessages: system + user промпт для перевода
func BuildMessages(text, sourceName, targetName string) []openai.ChatCompletionMessage {
	return []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
		{
			Role:    openai.ChatMessageRoleUser,
			Content: fmt.Sprintf("Translate from %s to %s: %s", sourceName, targetName, text),
		},
	}
}

// Translate: любой сбой заворачивается в AITranslationError
func (s *Service) Translate(ctx context.Context, text, sourceName, targetName, credential string) (string, error) {
	if credential == "" {
		return "", &domain.AITranslationError{Err: errors.New("credential is empty")}
	}
	if strings.TrimSpace(text) == "" {
		return "", &domain.AITranslationError{Err: domain.ErrEmptyText}
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	out, err := s.client.GetCompletion(ctx, credential, BuildMessages(text, sourceName, targetName))
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("timed out after %s: %w", s.timeout, err)
		}
		return "", &domain.AITranslationError{Err: err, Diagnosis: analyzeOpenAIError(err)}
	}

	return out, nil
}

// диагностика ошибок GPT
func analyzeOpenAIError(err error) string {
	status := 0

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}

	switch status {
	case http.StatusUnauthorized:
		return "invalid API key"
	case http.StatusNotFound:
		return "model not found"
	case http.StatusTooManyRequests:
		return "rate limit or quota exceeded"
	case http.StatusBadRequest:
		return "bad request"
	}
	if status >= 500 {
		return "provider internal error"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "request timed out"
	}
	return ""
}
