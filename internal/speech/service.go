package speech

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/universal_translator/internal/domain"
	"github.com/Vovarama1992/universal_translator/internal/ports"
	"github.com/google/uuid"
)

var artifactName = regexp.MustCompile(`^[0-9a-f-]{36}-(cloud|local)\.(mp3|wav)$`)

// Service выбирает движок по backend и раздаёт каждому артефакту своё имя
type Service struct {
	engines   map[domain.AudioBackend]Engine
	outDir    string
	timeout   time.Duration
	publisher ports.ArtifactPublisher
	log       *logger.ZapLogger
}

func NewService(
	cloud Engine,
	local Engine,
	outDir string,
	timeout time.Duration,
	publisher ports.ArtifactPublisher,
	log *logger.ZapLogger,
) *Service {
	return &Service{
		engines: map[domain.AudioBackend]Engine{
			domain.BackendCloud: cloud,
			domain.BackendLocal: local,
		},
		outDir:    outDir,
		timeout:   timeout,
		publisher: publisher,
		log:       log,
	}
}

func (s *Service) Synthesize(ctx context.Context, text, targetCode string, backend domain.AudioBackend) (domain.AudioArtifact, error) {
	fail := func(err error) (domain.AudioArtifact, error) {
		return domain.AudioArtifact{}, &domain.SynthesisError{Backend: backend, Err: err}
	}

	if strings.TrimSpace(text) == "" {
		return fail(domain.ErrEmptyText)
	}

	engine, ok := s.engines[backend]
	if !ok || engine == nil {
		return fail(fmt.Errorf("unsupported backend %q", backend))
	}

	if err := os.MkdirAll(s.outDir, 0755); err != nil {
		return fail(fmt.Errorf("prepare output dir: %w", err))
	}

	id := uuid.NewString()
	name := fmt.Sprintf("%s-%s.%s", id, backend, engine.Ext())
	path := filepath.Join(s.outDir, name)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	if err := engine.Synthesize(ctx, text, targetCode, path); err != nil {
		_ = os.Remove(path)
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("timed out after %s: %w", s.timeout, err)
		}
		return fail(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fail(fmt.Errorf("stat artifact: %w", err))
	}
	if info.Size() == 0 {
		_ = os.Remove(path)
		return fail(errors.New("engine produced empty file"))
	}

	artifact := domain.AudioArtifact{
		ID:        id,
		FilePath:  path,
		FileName:  name,
		URL:       "/audio/" + name,
		Backend:   backend,
		Size:      info.Size(),
		CreatedAt: time.Now(),
	}

	// S3 опционален: если не вышло, играем локальный файл
	if s.publisher != nil {
		publicURL, err := s.publisher.Publish(ctx, artifact)
		if err != nil {
			s.log.Log(logger.LogEntry{Level: "warn", Message: "artifact publish failed, serving local file", Error: err})
		} else {
			artifact.URL = publicURL
		}
	}

	return artifact, nil
}

// Path: путь к артефакту по имени из URL; чужие имена не пропускаем
func (s *Service) Path(name string) (string, bool) {
	if !artifactName.MatchString(name) {
		return "", false
	}
	path := filepath.Join(s.outDir, name)
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}
