package session

import (
	"sync"
	"testing"
	"time"

	"github.com/Vovarama1992/universal_translator/internal/domain"
)

func TestSessionsAreIsolated(t *testing.T) {
	s := NewStore()

	s.Update("a", func(st *domain.SessionState) {
		st.Phase = domain.PhaseTranslated
		st.Result = &domain.TranslationResult{Text: "Hola"}
	})

	if st, ok := s.Get("b"); ok || st.Result != nil || st.Phase != domain.PhaseIdle {
		t.Errorf("unknown session leaked state: %+v", st)
	}

	st, ok := s.Get("a")
	if !ok || st.Result == nil || st.Result.Text != "Hola" {
		t.Fatalf("Get(a) = %+v, %v", st, ok)
	}

	// изменения снапшота не должны протекать в стор
	st.Result.Text = "changed"
	st.Artifacts = append(st.Artifacts, domain.AudioArtifact{ID: "x"})
	again, _ := s.Get("a")
	if again.Result.Text != "Hola" || len(again.Artifacts) != 0 {
		t.Errorf("store mutated through snapshot: %+v", again)
	}
}

func TestCleanup(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	s := NewStore()
	s.now = func() time.Time { return now }

	s.Update("old", func(*domain.SessionState) {})
	now = now.Add(2 * time.Hour)
	s.Update("fresh", func(*domain.SessionState) {})

	if n := s.Cleanup(time.Hour); n != 1 {
		t.Errorf("removed %d, want 1", n)
	}
	if _, ok := s.Get("old"); ok {
		t.Error("old session survived cleanup")
	}
	if _, ok := s.Get("fresh"); !ok {
		t.Error("fresh session removed")
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d", s.Len())
	}
}

func TestUpdateIsAtomic(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Update("a", func(st *domain.SessionState) {
				st.Artifacts = append(st.Artifacts, domain.AudioArtifact{ID: "x"})
			})
		}()
	}
	wg.Wait()

	st, ok := s.Get("a")
	if !ok || len(st.Artifacts) != 50 {
		t.Errorf("artifacts = %d, want 50", len(st.Artifacts))
	}
}

func TestUpdateStartsFromIdle(t *testing.T) {
	s := NewStore()

	got := s.Update("new", func(st *domain.SessionState) {
		if st.Phase != domain.PhaseIdle {
			t.Errorf("phase = %q, want idle", st.Phase)
		}
		st.Phase = domain.PhaseTextEntered
	})
	if got.Phase != domain.PhaseTextEntered || got.UpdatedAt.IsZero() {
		t.Errorf("returned %+v", got)
	}
}
