package delivery

import (
	"errors"
	"net/http"

	"github.com/Vovarama1992/universal_translator/internal/domain"
)

// statusFor: HTTP-код для ошибки действия
func statusFor(err error) int {
	var tse *domain.TranslationServiceError
	var se *domain.SynthesisError

	switch {
	case errors.Is(err, domain.ErrEmptyText),
		errors.Is(err, domain.ErrUnknownLanguage),
		errors.Is(err, domain.ErrNothingToSynthesize):
		return http.StatusBadRequest
	case errors.As(err, &tse), errors.As(err, &se):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// userMessage: текст ошибки для формы
func userMessage(err error) string {
	var tse *domain.TranslationServiceError
	var se *domain.SynthesisError

	switch {
	case errors.Is(err, domain.ErrEmptyText):
		return "Please enter some text to translate."
	case errors.Is(err, domain.ErrUnknownLanguage):
		return "Please pick languages from the list."
	case errors.Is(err, domain.ErrNothingToSynthesize):
		return "Translate something first, then generate audio."
	case errors.As(err, &tse):
		return "Translation failed: " + tse.Err.Error()
	case errors.As(err, &se):
		return "Audio generation failed: " + se.Err.Error()
	}
	return "Unexpected error: " + err.Error()
}
