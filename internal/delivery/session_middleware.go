package delivery

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const sessionCookie = "translator_session"

type ctxKey struct{}

// SessionMiddleware выдаёт каждому браузеру свой id сессии
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if c, err := r.Cookie(sessionCookie); err == nil {
			if _, perr := uuid.Parse(c.Value); perr == nil {
				id = c.Value
			}
		}

		if id == "" {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

func sessionID(r *http.Request) string {
	id, _ := r.Context().Value(ctxKey{}).(string)
	return id
}
