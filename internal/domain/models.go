package domain

import "time"

// Producer: какой бэкенд дал текущий перевод
type Producer string

const (
	ProducedByBasic Producer = "basic"
	ProducedByAI    Producer = "ai"
)

// AudioBackend: движок синтеза речи
type AudioBackend string

const (
	BackendCloud AudioBackend = "cloud"
	BackendLocal AudioBackend = "local"
)

func ParseAudioBackend(s string) (AudioBackend, bool) {
	switch AudioBackend(s) {
	case BackendCloud:
		return BackendCloud, true
	case BackendLocal:
		return BackendLocal, true
	}
	return "", false
}

// TranslationMode: какой путь перевода выбран для запроса
type TranslationMode int

const (
	ModeBasic TranslationMode = iota
	ModeAI
)

// TranslationRequest живёт ровно один запрос.
// Credential нигде не сохраняется и не логируется.
type TranslationRequest struct {
	SourceText string
	SourceName string
	TargetName string
	UseAI      bool
	Credential string
}

// Mode: AI только если включён флажок И есть ключ, иначе молча basic.
func (r TranslationRequest) Mode() TranslationMode {
	if r.UseAI && r.Credential != "" {
		return ModeAI
	}
	return ModeBasic
}

type TranslationResult struct {
	Text       string   `json:"text"`
	ProducedBy Producer `json:"produced_by"`
	SourceCode string   `json:"source_code"`
	TargetCode string   `json:"target_code"`
}

// Outcome: результат действия Translate.
// Warning заполнен, если AI-шаг упал и показан базовый перевод.
type Outcome struct {
	Result  TranslationResult
	Warning error
}

type AudioArtifact struct {
	ID        string       `json:"id"`
	FilePath  string       `json:"-"`
	FileName  string       `json:"file_name"`
	URL       string       `json:"url"`
	Backend   AudioBackend `json:"backend"`
	Size      int64        `json:"size"`
	CreatedAt time.Time    `json:"created_at"`
}

// Phase: состояние сессии пользователя
type Phase string

const (
	PhaseIdle           Phase = "idle"
	PhaseTextEntered    Phase = "text_entered"
	PhaseTranslated     Phase = "translated"
	PhaseAIRefined      Phase = "ai_refined"
	PhaseAudioGenerated Phase = "audio_generated"
)

// SessionState: всё, что сессия помнит между действиями
type SessionState struct {
	Phase      Phase
	SourceText string
	SourceCode string
	TargetCode string
	Result     *TranslationResult
	Artifacts  []AudioArtifact
	UpdatedAt  time.Time
}

// LastArtifact: последний сгенерированный файл или nil
func (s SessionState) LastArtifact() *AudioArtifact {
	if len(s.Artifacts) == 0 {
		return nil
	}
	a := s.Artifacts[len(s.Artifacts)-1]
	return &a
}
