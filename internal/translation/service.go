package translation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Vovarama1992/universal_translator/internal/domain"
	"github.com/Vovarama1992/universal_translator/internal/ports"
)

type Service struct {
	backend ports.BasicTranslator
	timeout time.Duration
}

func NewService(backend ports.BasicTranslator, timeout time.Duration) *Service {
	return &Service{
		backend: backend,
		timeout: timeout,
	}
}

// Translate: одна попытка, без ретраев. Любой сбой → TranslationServiceError.
func (s *Service) Translate(ctx context.Context, text, sourceCode, targetCode string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", &domain.TranslationServiceError{Err: domain.ErrEmptyText}
	}

	// одинаковые языки: отдаём текст как есть
	if sourceCode == targetCode {
		return text, nil
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	out, err := s.backend.Translate(ctx, text, sourceCode, targetCode)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("timed out after %s: %w", s.timeout, err)
		}
		return "", &domain.TranslationServiceError{Err: err}
	}

	out = strings.TrimSpace(out)
	if out == "" {
		return "", &domain.TranslationServiceError{Err: errors.New("backend returned empty translation")}
	}

	return out, nil
}
