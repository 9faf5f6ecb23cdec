// Package translator sequences one user action at a time: basic
// translation, the optional AI refinement, and audio generation from the
// result the session currently displays.
package translator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/universal_translator/internal/domain"
	"github.com/Vovarama1992/universal_translator/internal/error_notificator"
	"github.com/Vovarama1992/universal_translator/internal/languages"
	"github.com/Vovarama1992/universal_translator/internal/ports"
)

type Service struct {
	registry *languages.Registry
	basic    ports.BasicTranslator
	ai       ports.AITranslator
	speech   ports.Synthesizer
	sessions ports.SessionStore
	notifier error_notificator.Notificator
	log      *logger.ZapLogger
}

func NewService(
	registry *languages.Registry,
	basic ports.BasicTranslator,
	ai ports.AITranslator,
	speech ports.Synthesizer,
	sessions ports.SessionStore,
	notifier error_notificator.Notificator,
	log *logger.ZapLogger,
) *Service {
	return &Service{
		registry: registry,
		basic:    basic,
		ai:       ai,
		speech:   speech,
		sessions: sessions,
		notifier: notifier,
		log:      log,
	}
}

func (s *Service) Languages() []languages.Entry {
	return s.registry.Entries()
}

func (s *Service) Session(sessionID string) domain.SessionState {
	st, _ := s.sessions.Get(sessionID)
	return st
}

func (s *Service) Translate(ctx context.Context, sessionID string, req domain.TranslationRequest) (domain.Outcome, error) {
	// пустой текст: никаких вызовов бэкендов
	if strings.TrimSpace(req.SourceText) == "" {
		return domain.Outcome{}, domain.ErrEmptyText
	}

	srcCode, err := s.registry.Code(req.SourceName)
	if err != nil {
		return domain.Outcome{}, err
	}
	dstCode, err := s.registry.Code(req.TargetName)
	if err != nil {
		return domain.Outcome{}, err
	}

	s.sessions.Update(sessionID, func(st *domain.SessionState) {
		st.Phase = domain.PhaseTextEntered
		st.SourceText = req.SourceText
		st.SourceCode = srcCode
		st.TargetCode = dstCode
		// аудио привязано к прошлому результату
		st.Artifacts = nil
	})

	// 1) базовый перевод, обязательный
	text, err := s.basic.Translate(ctx, req.SourceText, srcCode, dstCode)
	if err != nil {
		var tse *domain.TranslationServiceError
		if !errors.As(err, &tse) {
			err = &domain.TranslationServiceError{Err: err}
		}

		// старый результат больше не соответствует форме
		s.sessions.Update(sessionID, func(st *domain.SessionState) {
			st.Result = nil
		})

		s.log.Log(logger.LogEntry{Level: "error", Message: "basic translation failed", Error: err, Service: "translator"})
		s.notify(ctx, "translate", err, fmt.Sprintf("%s -> %s, %d chars", srcCode, dstCode, len(req.SourceText)))
		return domain.Outcome{}, err
	}

	result := domain.TranslationResult{
		Text:       text,
		ProducedBy: domain.ProducedByBasic,
		SourceCode: srcCode,
		TargetCode: dstCode,
	}
	phase := domain.PhaseTranslated
	out := domain.Outcome{}

	// 2) AI-шаг, опциональный
	switch req.Mode() {
	case domain.ModeAI:
		refined, err := s.ai.Translate(ctx, req.SourceText, req.SourceName, req.TargetName, req.Credential)
		if err != nil {
			var aiErr *domain.AITranslationError
			if !errors.As(err, &aiErr) {
				err = &domain.AITranslationError{Err: err}
			}
			out.Warning = err
			s.log.Log(logger.LogEntry{Level: "warn", Message: "ai translation failed, keeping basic result", Error: err, Service: "translator"})
			break
		}
		result.Text = refined
		result.ProducedBy = domain.ProducedByAI
		phase = domain.PhaseAIRefined
	case domain.ModeBasic:
	}

	out.Result = result
	s.sessions.Update(sessionID, func(st *domain.SessionState) {
		st.Phase = phase
		st.Result = &result
	})

	return out, nil
}

// GenerateAudio озвучивает последний показанный результат сессии
func (s *Service) GenerateAudio(ctx context.Context, sessionID string, backend domain.AudioBackend) (domain.AudioArtifact, error) {
	st, _ := s.sessions.Get(sessionID)
	if st.Result == nil || strings.TrimSpace(st.Result.Text) == "" {
		return domain.AudioArtifact{}, domain.ErrNothingToSynthesize
	}
	spoken := *st.Result

	artifact, err := s.speech.Synthesize(ctx, spoken.Text, spoken.TargetCode, backend)
	if err != nil {
		var se *domain.SynthesisError
		if !errors.As(err, &se) {
			err = &domain.SynthesisError{Backend: backend, Err: err}
		}
		s.log.Log(logger.LogEntry{Level: "error", Message: "audio generation failed", Error: err, Service: "translator"})
		s.notify(ctx, "audio", err, fmt.Sprintf("backend=%s lang=%s", backend, spoken.TargetCode))
		return domain.AudioArtifact{}, err
	}

	// пока шёл синтез, сессия могла перевести другой текст
	attached := false
	s.sessions.Update(sessionID, func(st *domain.SessionState) {
		if st.Result == nil || st.Result.Text != spoken.Text || st.Result.TargetCode != spoken.TargetCode {
			return
		}
		st.Artifacts = append(st.Artifacts, artifact)
		st.Phase = domain.PhaseAudioGenerated
		attached = true
	})
	if !attached {
		s.log.Log(logger.LogEntry{Level: "warn", Message: "result changed during synthesis, artifact not attached", Service: "translator"})
	}

	return artifact, nil
}

func (s *Service) notify(ctx context.Context, action string, err error, details string) {
	if s.notifier == nil {
		return
	}
	if nerr := s.notifier.Notify(ctx, action, err, details); nerr != nil {
		s.log.Log(logger.LogEntry{Level: "warn", Message: "notify failed", Error: nerr, Service: "translator"})
	}
}
