package translator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/universal_translator/internal/domain"
	"github.com/Vovarama1992/universal_translator/internal/languages"
	"github.com/Vovarama1992/universal_translator/internal/session"
	"go.uber.org/zap"
)

type fakeBasic struct {
	calls int
	reply string
	err   error
}

func (f *fakeBasic) Translate(_ context.Context, text, src, dst string) (string, error) {
	f.calls++
	return f.reply, f.err
}

type fakeAI struct {
	calls      int
	reply      string
	err        error
	credential string
}

func (f *fakeAI) Translate(_ context.Context, text, srcName, dstName, credential string) (string, error) {
	f.calls++
	f.credential = credential
	return f.reply, f.err
}

type fakeSpeech struct {
	calls int
	text  string
	code  string
	err   error
}

func (f *fakeSpeech) Synthesize(_ context.Context, text, code string, backend domain.AudioBackend) (domain.AudioArtifact, error) {
	f.calls++
	f.text, f.code = text, code
	if f.err != nil {
		return domain.AudioArtifact{}, f.err
	}
	return domain.AudioArtifact{
		ID:        "id",
		FilePath:  "/tmp/id-" + string(backend) + ".wav",
		FileName:  "id-" + string(backend) + ".wav",
		Backend:   backend,
		Size:      10,
		CreatedAt: time.Now(),
	}, nil
}

type fakeNotifier struct{ actions []string }

func (f *fakeNotifier) Notify(_ context.Context, action string, _ error, _ string) error {
	f.actions = append(f.actions, action)
	return nil
}

type fixture struct {
	svc    *Service
	basic  *fakeBasic
	ai     *fakeAI
	speech *fakeSpeech
	notify *fakeNotifier
}

func newFixture() *fixture {
	f := &fixture{
		basic:  &fakeBasic{reply: "Hola"},
		ai:     &fakeAI{reply: "¡Hola!"},
		speech: &fakeSpeech{},
		notify: &fakeNotifier{},
	}
	f.svc = NewService(
		languages.MustDefault(),
		f.basic, f.ai, f.speech,
		session.NewStore(),
		f.notify,
		logger.NewZapLogger(zap.NewNop().Sugar()),
	)
	return f
}

func hello(useAI bool, credential string) domain.TranslationRequest {
	return domain.TranslationRequest{
		SourceText: "Hello",
		SourceName: "English",
		TargetName: "Spanish",
		UseAI:      useAI,
		Credential: credential,
	}
}

func TestBasicTranslation(t *testing.T) {
	f := newFixture()

	out, err := f.svc.Translate(context.Background(), "s1", hello(false, ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Result.Text != "Hola" || out.Result.ProducedBy != domain.ProducedByBasic {
		t.Errorf("result = %+v", out.Result)
	}
	if out.Warning != nil {
		t.Errorf("warning = %v", out.Warning)
	}
	if f.ai.calls != 0 {
		t.Error("AI must not be called when toggle is off")
	}

	st := f.svc.Session("s1")
	if st.Phase != domain.PhaseTranslated || st.Result.Text != "Hola" || st.Result.TargetCode != "es" {
		t.Errorf("session = %+v", st)
	}
}

func TestAITranslationReplacesResult(t *testing.T) {
	f := newFixture()

	out, err := f.svc.Translate(context.Background(), "s1", hello(true, "sk-test"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Result.Text != "¡Hola!" || out.Result.ProducedBy != domain.ProducedByAI {
		t.Errorf("result = %+v", out.Result)
	}
	if f.ai.credential != "sk-test" {
		t.Errorf("credential passed = %q", f.ai.credential)
	}
	if st := f.svc.Session("s1"); st.Phase != domain.PhaseAIRefined {
		t.Errorf("phase = %s", st.Phase)
	}
}

func TestAIFailureKeepsBasicResult(t *testing.T) {
	f := newFixture()
	f.ai.err = errors.New("connection reset")

	out, err := f.svc.Translate(context.Background(), "s1", hello(true, "sk-test"))
	if err != nil {
		t.Fatalf("AI failure must not fail the request: %v", err)
	}
	if out.Result.Text != "Hola" || out.Result.ProducedBy != domain.ProducedByBasic {
		t.Errorf("result = %+v", out.Result)
	}

	var aiErr *domain.AITranslationError
	if !errors.As(out.Warning, &aiErr) {
		t.Errorf("warning = %v, want AITranslationError", out.Warning)
	}
	if st := f.svc.Session("s1"); st.Result.Text != "Hola" {
		t.Errorf("session text = %q", st.Result.Text)
	}
	if len(f.notify.actions) != 0 {
		t.Error("AI failure is not an admin alert")
	}
}

func TestAIToggleWithoutCredentialSkipsAI(t *testing.T) {
	f := newFixture()

	out, err := f.svc.Translate(context.Background(), "s1", hello(true, ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.ai.calls != 0 {
		t.Error("AI adapter invoked without credential")
	}
	if out.Result.Text != "Hola" || out.Warning != nil {
		t.Errorf("outcome = %+v", out)
	}
}

func TestEmptyTextBlocksRequest(t *testing.T) {
	f := newFixture()

	for _, text := range []string{"", "   \n"} {
		req := hello(true, "sk-test")
		req.SourceText = text
		_, err := f.svc.Translate(context.Background(), "s1", req)
		if !errors.Is(err, domain.ErrEmptyText) {
			t.Errorf("err = %v, want ErrEmptyText", err)
		}
	}
	if f.basic.calls != 0 || f.ai.calls != 0 {
		t.Error("backend called for empty text")
	}
	if st := f.svc.Session("s1"); st.Result != nil || st.Phase != domain.PhaseIdle {
		t.Errorf("session changed: %+v", st)
	}
}

func TestUnknownLanguage(t *testing.T) {
	f := newFixture()
	req := hello(false, "")
	req.TargetName = "Klingon"

	_, err := f.svc.Translate(context.Background(), "s1", req)
	if !errors.Is(err, domain.ErrUnknownLanguage) {
		t.Errorf("err = %v, want ErrUnknownLanguage", err)
	}
	if f.basic.calls != 0 {
		t.Error("backend called for unknown language")
	}
}

func TestBasicFailureIsFatal(t *testing.T) {
	f := newFixture()

	if _, err := f.svc.Translate(context.Background(), "s1", hello(false, "")); err != nil {
		t.Fatal(err)
	}

	f.basic.err = errors.New("unreachable")
	_, err := f.svc.Translate(context.Background(), "s1", hello(true, "sk-test"))

	var tse *domain.TranslationServiceError
	if !errors.As(err, &tse) {
		t.Fatalf("err = %v, want TranslationServiceError", err)
	}
	if f.ai.calls != 0 {
		t.Error("AI must not run after basic failure")
	}
	if st := f.svc.Session("s1"); st.Result != nil {
		t.Errorf("stale result kept: %+v", st.Result)
	}
	if len(f.notify.actions) != 1 || f.notify.actions[0] != "translate" {
		t.Errorf("notifications = %v", f.notify.actions)
	}
}

func TestGenerateAudioUsesDisplayedResult(t *testing.T) {
	f := newFixture()

	if _, err := f.svc.Translate(context.Background(), "s1", hello(false, "")); err != nil {
		t.Fatal(err)
	}

	a, err := f.svc.GenerateAudio(context.Background(), "s1", domain.BackendLocal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Backend != domain.BackendLocal || a.FilePath == "" {
		t.Errorf("artifact = %+v", a)
	}
	if f.speech.text != "Hola" || f.speech.code != "es" {
		t.Errorf("synthesized %q in %q", f.speech.text, f.speech.code)
	}

	st := f.svc.Session("s1")
	if st.Phase != domain.PhaseAudioGenerated || st.LastArtifact() == nil || st.LastArtifact().FilePath != a.FilePath {
		t.Errorf("session = %+v", st)
	}
}

func TestGenerateAudioFollowsAIRefinement(t *testing.T) {
	f := newFixture()

	if _, err := f.svc.Translate(context.Background(), "s1", hello(true, "sk-test")); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.GenerateAudio(context.Background(), "s1", domain.BackendCloud); err != nil {
		t.Fatal(err)
	}
	if f.speech.text != "¡Hola!" {
		t.Errorf("synthesized %q, want AI result", f.speech.text)
	}
}

func TestGenerateAudioRequiresTranslation(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GenerateAudio(context.Background(), "s1", domain.BackendLocal)
	if !errors.Is(err, domain.ErrNothingToSynthesize) {
		t.Errorf("err = %v, want ErrNothingToSynthesize", err)
	}
	if f.speech.calls != 0 {
		t.Error("synthesizer called without translation")
	}
}

func TestSynthesisFailureKeepsText(t *testing.T) {
	f := newFixture()
	if _, err := f.svc.Translate(context.Background(), "s1", hello(false, "")); err != nil {
		t.Fatal(err)
	}

	f.speech.err = errors.New("espeak-ng not found")
	_, err := f.svc.GenerateAudio(context.Background(), "s1", domain.BackendLocal)

	var se *domain.SynthesisError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want SynthesisError", err)
	}
	st := f.svc.Session("s1")
	if st.Result == nil || st.Result.Text != "Hola" || st.Phase != domain.PhaseTranslated {
		t.Errorf("session = %+v", st)
	}
}

func TestSessionsDoNotShareResults(t *testing.T) {
	f := newFixture()
	if _, err := f.svc.Translate(context.Background(), "alice", hello(false, "")); err != nil {
		t.Fatal(err)
	}

	if _, err := f.svc.GenerateAudio(context.Background(), "bob", domain.BackendLocal); !errors.Is(err, domain.ErrNothingToSynthesize) {
		t.Errorf("bob saw alice's result: %v", err)
	}
}

// slowSpeech держит синтез, пока тест не отпустит release
type slowSpeech struct {
	started chan struct{}
	release chan struct{}
}

func (s *slowSpeech) Synthesize(_ context.Context, text, code string, backend domain.AudioBackend) (domain.AudioArtifact, error) {
	close(s.started)
	<-s.release
	return domain.AudioArtifact{ID: "slow", FileName: "slow-" + string(backend) + ".mp3", Backend: backend}, nil
}

func TestNewerTranslationSurvivesSlowAudio(t *testing.T) {
	basic := &fakeBasic{reply: "Hola"}
	sp := &slowSpeech{started: make(chan struct{}), release: make(chan struct{})}
	svc := NewService(
		languages.MustDefault(),
		basic, &fakeAI{}, sp,
		session.NewStore(),
		nil,
		logger.NewZapLogger(zap.NewNop().Sugar()),
	)

	if _, err := svc.Translate(context.Background(), "s1", hello(false, "")); err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := svc.GenerateAudio(context.Background(), "s1", domain.BackendCloud)
		done <- err
	}()
	<-sp.started

	// вторая вкладка переводит другой текст, пока идёт синтез
	basic.reply = "Adiós"
	req := hello(false, "")
	req.SourceText = "Goodbye"
	if _, err := svc.Translate(context.Background(), "s1", req); err != nil {
		t.Fatal(err)
	}

	close(sp.release)
	if err := <-done; err != nil {
		t.Fatalf("GenerateAudio: %v", err)
	}

	st := svc.Session("s1")
	if st.Result == nil || st.Result.Text != "Adiós" || st.SourceText != "Goodbye" {
		t.Fatalf("newer result lost: %+v", st)
	}
	if st.LastArtifact() != nil || st.Phase != domain.PhaseTranslated {
		t.Errorf("stale audio attached to newer result: %+v", st)
	}
}
