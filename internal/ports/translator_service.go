package ports

import (
	"context"

	"github.com/Vovarama1992/universal_translator/internal/domain"
	"github.com/Vovarama1992/universal_translator/internal/languages"
)

type TranslatorService interface {
	Languages() []languages.Entry
	Session(sessionID string) domain.SessionState
	Translate(ctx context.Context, sessionID string, req domain.TranslationRequest) (domain.Outcome, error)
	GenerateAudio(ctx context.Context, sessionID string, backend domain.AudioBackend) (domain.AudioArtifact, error)
}

// ArtifactLocator отдаёт путь к локальному аудиофайлу по имени
type ArtifactLocator interface {
	Path(name string) (string, bool)
}
