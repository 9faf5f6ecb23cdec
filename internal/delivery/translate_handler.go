package delivery

import (
	"embed"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/universal_translator/internal/domain"
	"github.com/Vovarama1992/universal_translator/internal/languages"
	"github.com/Vovarama1992/universal_translator/internal/ports"
	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
)

//go:embed templates/index.html
var templatesFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

type TranslateHandler struct {
	svc       ports.TranslatorService
	artifacts ports.ArtifactLocator
	log       *logger.ZapLogger
}

func NewTranslateHandler(svc ports.TranslatorService, artifacts ports.ArtifactLocator, log *logger.ZapLogger) *TranslateHandler {
	return &TranslateHandler{
		svc:       svc,
		artifacts: artifacts,
		log:       log,
	}
}

type audioView struct {
	URL     string
	Backend domain.AudioBackend
	Size    string
}

type pageData struct {
	Languages  []languages.Entry
	SourceName string
	TargetName string
	SourceText string
	UseAI      bool
	Backend    string
	Result     *domain.TranslationResult
	Audio      *audioView
	Error      string
	Warning    string
}

// page собирает форму из состояния сессии
func (h *TranslateHandler) page(r *http.Request) pageData {
	langs := h.svc.Languages()
	st := h.svc.Session(sessionID(r))

	data := pageData{
		Languages:  langs,
		SourceText: st.SourceText,
		Result:     st.Result,
		UseAI:      st.Result != nil && st.Result.ProducedBy == domain.ProducedByAI,
		Backend:    string(domain.BackendCloud),
	}

	// по умолчанию первый и второй язык реестра
	if len(langs) > 0 {
		data.SourceName = langs[0].DisplayName
		data.TargetName = langs[0].DisplayName
	}
	if len(langs) > 1 {
		data.TargetName = langs[1].DisplayName
	}
	if name := nameOf(langs, st.SourceCode); name != "" {
		data.SourceName = name
	}
	if name := nameOf(langs, st.TargetCode); name != "" {
		data.TargetName = name
	}

	if a := st.LastArtifact(); a != nil {
		data.Backend = string(a.Backend)
		data.Audio = &audioView{
			URL:     a.URL,
			Backend: a.Backend,
			Size:    humanize.Bytes(uint64(a.Size)),
		}
	}

	return data
}

func nameOf(langs []languages.Entry, code string) string {
	for _, e := range langs {
		if e.Code == code {
			return e.DisplayName
		}
	}
	return ""
}

func (h *TranslateHandler) render(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTmpl.Execute(w, data); err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "render page", Error: err})
	}
}

func (h *TranslateHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, h.page(r))
}

func (h *TranslateHandler) Translate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form: "+err.Error(), http.StatusBadRequest)
		return
	}

	req := domain.TranslationRequest{
		SourceText: r.FormValue("text"),
		SourceName: r.FormValue("source"),
		TargetName: r.FormValue("target"),
		UseAI:      r.FormValue("use_ai") == "on",
		Credential: r.FormValue("api_key"),
	}

	out, err := h.svc.Translate(r.Context(), sessionID(r), req)

	data := h.page(r)
	data.UseAI = req.UseAI
	data.SourceText = req.SourceText
	if req.SourceName != "" {
		data.SourceName = req.SourceName
	}
	if req.TargetName != "" {
		data.TargetName = req.TargetName
	}

	if err != nil {
		data.Result = nil
		data.Audio = nil
		data.Error = userMessage(err)
		h.render(w, statusFor(err), data)
		return
	}

	// после нового перевода старый плеер не показываем
	data.Result = &out.Result
	data.Audio = nil
	if out.Warning != nil {
		data.Warning = "AI Translation Error: " + out.Warning.Error() + " (showing basic translation)"
	}
	h.render(w, http.StatusOK, data)
}

func (h *TranslateHandler) GenerateAudio(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form: "+err.Error(), http.StatusBadRequest)
		return
	}

	backend, ok := domain.ParseAudioBackend(r.FormValue("backend"))
	if !ok {
		data := h.page(r)
		data.Error = "Unknown audio method."
		h.render(w, http.StatusBadRequest, data)
		return
	}

	_, err := h.svc.GenerateAudio(r.Context(), sessionID(r), backend)

	data := h.page(r)
	data.Backend = string(backend)
	if err != nil {
		data.Error = userMessage(err)
		h.render(w, statusFor(err), data)
		return
	}
	h.render(w, http.StatusOK, data)
}

func (h *TranslateHandler) ServeAudio(w http.ResponseWriter, r *http.Request) {
	path, ok := h.artifacts.Path(chi.URLParam(r, "name"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, path)
}

// --- JSON API ---

func (h *TranslateHandler) ListLanguages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Languages())
}

func (h *TranslateHandler) TranslateJSON(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text   string `json:"text"`
		Source string `json:"source"`
		Target string `json:"target"`
		UseAI  bool   `json:"use_ai"`
		APIKey string `json:"api_key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid json: " + err.Error()})
		return
	}

	out, err := h.svc.Translate(r.Context(), sessionID(r), domain.TranslationRequest{
		SourceText: body.Text,
		SourceName: body.Source,
		TargetName: body.Target,
		UseAI:      body.UseAI,
		Credential: body.APIKey,
	})
	if err != nil {
		writeJSON(w, statusFor(err), map[string]any{"error": err.Error()})
		return
	}

	resp := map[string]any{"result": out.Result}
	if out.Warning != nil {
		resp["warning"] = out.Warning.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *TranslateHandler) GenerateAudioJSON(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Backend string `json:"backend"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid json: " + err.Error()})
		return
	}

	backend, ok := domain.ParseAudioBackend(body.Backend)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "unknown backend " + body.Backend})
		return
	}

	a, err := h.svc.GenerateAudio(r.Context(), sessionID(r), backend)
	if err != nil {
		writeJSON(w, statusFor(err), map[string]any{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"artifact": a})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
