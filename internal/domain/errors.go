package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownLanguage     = errors.New("unknown language")
	ErrEmptyText           = errors.New("text is empty")
	ErrNothingToSynthesize = errors.New("nothing to synthesize: translate first")
)

// TranslationServiceError: отказ базового перевода, фатален для запроса
type TranslationServiceError struct {
	Err error
}

func (e *TranslationServiceError) Error() string {
	return fmt.Sprintf("translation service: %v", e.Err)
}

func (e *TranslationServiceError) Unwrap() error { return e.Err }

// AITranslationError: отказ AI-перевода, не фатален
type AITranslationError struct {
	Err       error
	Diagnosis string
}

func (e *AITranslationError) Error() string {
	if e.Diagnosis != "" {
		return fmt.Sprintf("ai translation: %s: %v", e.Diagnosis, e.Err)
	}
	return fmt.Sprintf("ai translation: %v", e.Err)
}

func (e *AITranslationError) Unwrap() error { return e.Err }

// SynthesisError: отказ синтеза, фатален только для генерации аудио
type SynthesisError struct {
	Backend AudioBackend
	Err     error
}

func (e *SynthesisError) Error() string {
	if e.Backend != "" {
		return fmt.Sprintf("synthesis (%s): %v", e.Backend, e.Err)
	}
	return fmt.Sprintf("synthesis: %v", e.Err)
}

func (e *SynthesisError) Unwrap() error { return e.Err }
