package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Vovarama1992/universal_translator/internal/domain"
	openai "github.com/sashabaranov/go-openai"
)

// fakeOpenAI поднимает httptest-сервер вместо api.openai.com
func fakeOpenAI(t *testing.T, status int, content string, got *openai.ChatCompletionRequest, auth *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		if auth != nil {
			*auth = r.Header.Get("Authorization")
		}
		if got != nil {
			_ = json.NewDecoder(r.Body).Decode(got)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"choices": []map[string]any{{"index": 0, "message": map[string]string{"role": "assistant", "content": content}}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestTranslateSendsPromptAndReturnsContent(t *testing.T) {
	var req openai.ChatCompletionRequest
	var auth string
	srv := fakeOpenAI(t, http.StatusOK, "¡Hola!", &req, &auth)

	s := NewService(NewOpenAIClient("gpt-3.5-turbo", srv.URL+"/v1"), time.Second)
	out, err := s.Translate(context.Background(), "Hello", "English", "Spanish", "sk-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "¡Hola!" {
		t.Errorf("got %q", out)
	}

	if auth != "Bearer sk-test" {
		t.Errorf("Authorization = %q", auth)
	}
	if req.Model != "gpt-3.5-turbo" {
		t.Errorf("model = %q", req.Model)
	}
	if len(req.Messages) != 2 {
		t.Fatalf("messages = %d, want 2", len(req.Messages))
	}
	if req.Messages[0].Role != openai.ChatMessageRoleSystem || req.Messages[0].Content != systemPrompt {
		t.Errorf("system message = %+v", req.Messages[0])
	}
	if req.Messages[1].Content != "Translate from English to Spanish: Hello" {
		t.Errorf("user message = %q", req.Messages[1].Content)
	}
}

func TestTranslateAuthFailureIsAIError(t *testing.T) {
	srv := fakeOpenAI(t, http.StatusUnauthorized, "", nil, nil)

	s := NewService(NewOpenAIClient("gpt-3.5-turbo", srv.URL+"/v1"), time.Second)
	_, err := s.Translate(context.Background(), "Hello", "English", "Spanish", "sk-bad")

	var aiErr *domain.AITranslationError
	if !errors.As(err, &aiErr) {
		t.Fatalf("err = %v, want AITranslationError", err)
	}
	if aiErr.Diagnosis != "invalid API key" {
		t.Errorf("diagnosis = %q", aiErr.Diagnosis)
	}
}

func TestTranslateEmptyChoices(t *testing.T) {
	srv := fakeOpenAI(t, http.StatusOK, "", nil, nil)

	s := NewService(NewOpenAIClient("", srv.URL+"/v1"), time.Second)
	_, err := s.Translate(context.Background(), "Hello", "English", "Spanish", "sk-test")

	var aiErr *domain.AITranslationError
	if !errors.As(err, &aiErr) {
		t.Fatalf("err = %v, want AITranslationError", err)
	}
}

type stubClient struct{ calls int }

func (s *stubClient) GetCompletion(context.Context, string, []openai.ChatCompletionMessage) (string, error) {
	s.calls++
	return "x", nil
}

func TestTranslateWithoutCredentialNeverCallsClient(t *testing.T) {
	c := &stubClient{}
	s := NewService(c, time.Second)

	_, err := s.Translate(context.Background(), "Hello", "English", "Spanish", "")
	var aiErr *domain.AITranslationError
	if !errors.As(err, &aiErr) {
		t.Fatalf("err = %v, want AITranslationError", err)
	}
	if c.calls != 0 {
		t.Error("client must not be called without credential")
	}
}
