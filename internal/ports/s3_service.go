package ports

import (
	"context"

	"github.com/Vovarama1992/universal_translator/internal/domain"
)

// ArtifactPublisher выкладывает готовый аудиофайл и возвращает URL для плеера
type ArtifactPublisher interface {
	ObjectKey(artifact domain.AudioArtifact) string
	Publish(ctx context.Context, artifact domain.AudioArtifact) (string, error)
}
