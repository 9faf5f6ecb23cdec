package infra

import (
	"context"
	"fmt"
	"os"

	"github.com/Vovarama1992/universal_translator/internal/domain"
	"github.com/Vovarama1992/universal_translator/internal/ports"
)

type artifactPublisher struct {
	client ports.S3Client
}

func NewArtifactPublisher(client ports.S3Client) ports.ArtifactPublisher {
	return &artifactPublisher{client: client}
}

// ObjectKey: путь в бакете: audio/<дата>/<имя файла>
func (p *artifactPublisher) ObjectKey(a domain.AudioArtifact) string {
	return fmt.Sprintf("audio/%s/%s", a.CreatedAt.Format("2006-01-02"), a.FileName)
}

func (p *artifactPublisher) Publish(ctx context.Context, a domain.AudioArtifact) (string, error) {
	f, err := os.Open(a.FilePath)
	if err != nil {
		return "", fmt.Errorf("open artifact: %w", err)
	}
	defer f.Close()

	return p.client.PutObject(ctx, p.ObjectKey(a), f, a.Size, contentType(a.Backend))
}

func contentType(b domain.AudioBackend) string {
	if b == domain.BackendLocal {
		return "audio/wav"
	}
	return "audio/mpeg"
}
