package ports

import (
	"context"

	"github.com/Vovarama1992/universal_translator/internal/domain"
)

type Synthesizer interface {
	Synthesize(ctx context.Context, text, targetCode string, backend domain.AudioBackend) (domain.AudioArtifact, error)
}
