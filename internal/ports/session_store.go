package ports

import "github.com/Vovarama1992/universal_translator/internal/domain"

type SessionStore interface {
	Get(id string) (domain.SessionState, bool)
	// Update меняет состояние под замком стора, без гонки get/save
	Update(id string, fn func(st *domain.SessionState)) domain.SessionState
}
