package session

import (
	"sync"
	"time"

	"github.com/Vovarama1992/universal_translator/internal/domain"
)

// Store: состояние сессий в памяти, у каждой сессии своё
type Store struct {
	mu    sync.Mutex
	items map[string]domain.SessionState
	now   func() time.Time
}

func NewStore() *Store {
	return &Store{
		items: make(map[string]domain.SessionState),
		now:   time.Now,
	}
}

func (s *Store) Get(id string) (domain.SessionState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.items[id]
	if !ok {
		return domain.SessionState{Phase: domain.PhaseIdle}, false
	}
	return clone(st), true
}

// Update применяет fn к текущему состоянию атомарно и возвращает снимок
func (s *Store) Update(id string, fn func(st *domain.SessionState)) domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.items[id]
	if !ok {
		st = domain.SessionState{Phase: domain.PhaseIdle}
	}
	st = clone(st)
	fn(&st)
	st.UpdatedAt = s.now()
	s.items[id] = st
	return clone(st)
}

// Cleanup удаляет сессии, простоявшие дольше maxIdle. Возвращает их число.
func (s *Store) Cleanup(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxIdle)
	removed := 0
	for id, st := range s.items {
		if st.UpdatedAt.Before(cutoff) {
			delete(s.items, id)
			removed++
		}
	}
	return removed
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func clone(st domain.SessionState) domain.SessionState {
	if st.Result != nil {
		r := *st.Result
		st.Result = &r
	}
	if st.Artifacts != nil {
		st.Artifacts = append([]domain.AudioArtifact(nil), st.Artifacts...)
	}
	return st
}
