package error_notificator

import (
	"context"
	"sync"
	"time"
)

// Service глушит повторы: одинаковая ошибка одного действия уходит админу
// не чаще раза в window
type Service struct {
	infra  Notificator
	window time.Duration
	now    func() time.Time

	mu   sync.Mutex
	sent map[string]time.Time
}

func NewService(infra Notificator, window time.Duration) *Service {
	return &Service{
		infra:  infra,
		window: window,
		now:    time.Now,
		sent:   make(map[string]time.Time),
	}
}

func (s *Service) Notify(ctx context.Context, action string, err error, details string) error {
	key := action
	if err != nil {
		key += "|" + err.Error()
	}

	if !s.allow(key) {
		return nil
	}
	return s.infra.Notify(ctx, action, err, details)
}

func (s *Service) allow(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if last, ok := s.sent[key]; ok && s.window > 0 && now.Sub(last) < s.window {
		return false
	}
	s.sent[key] = now

	// старые ключи чистим, чтобы карта не росла
	for k, t := range s.sent {
		if now.Sub(t) >= s.window {
			delete(s.sent, k)
		}
	}
	return true
}
