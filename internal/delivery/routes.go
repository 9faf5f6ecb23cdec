package delivery

import (
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

func RegisterRoutes(r chi.Router, h *TranslateHandler, actionsPerMinute int) {
	r.With(httputil.RecoverMiddleware).Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Route("/", func(pr chi.Router) {
		pr.Use(
			httputil.RecoverMiddleware,
			SessionMiddleware,
		)

		// --- форма ---
		pr.Get("/", h.Index)
		pr.Get("/audio/{name}", h.ServeAudio)
		pr.Get("/api/languages", h.ListLanguages)

		// --- действия, с лимитом по IP ---
		pr.Group(func(ar chi.Router) {
			ar.Use(httprate.LimitByIP(actionsPerMinute, time.Minute))

			ar.Post("/translate", h.Translate)
			ar.Post("/audio", h.GenerateAudio)
			ar.Post("/api/translate", h.TranslateJSON)
			ar.Post("/api/audio", h.GenerateAudioJSON)
		})
	})
}
