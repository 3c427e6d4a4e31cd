package stage

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/jinchangsung/safetyspeak2/internal/models"
)

type stubExtractor struct {
	text string
	err  error
}

func (s stubExtractor) Extract(ctx context.Context, source models.Source) (string, error) {
	return s.text, s.err
}

type stubTranslator struct {
	text string
	err  error
}

func (s stubTranslator) Translate(ctx context.Context, text string, target models.Language) (string, error) {
	return s.text, s.err
}

type stubSynthesizer struct {
	audio *models.AudioArtifact
	err   error
	calls int
}

func (s *stubSynthesizer) Synthesize(ctx context.Context, text string) (*models.AudioArtifact, error) {
	s.calls++
	return s.audio, s.err
}

// TestTruncate verifies rune-safe clipping at the input limit.
func TestTruncate(t *testing.T) {
	short := "안전 주의 사항"
	if got := Truncate(short); got != short {
		t.Fatalf("short text modified: %q", got)
	}

	long := strings.Repeat("안", MaxInputRunes+100)
	got := Truncate(long)
	if n := utf8.RuneCountInString(got); n != MaxInputRunes {
		t.Fatalf("truncated to %d runes, want %d", n, MaxInputRunes)
	}
	if !utf8.ValidString(got) {
		t.Fatal("truncation split a rune")
	}
}

// TestExtractWrapsErrors verifies backend failures surface as *ExtractionError.
func TestExtractWrapsErrors(t *testing.T) {
	cause := errors.New("connection refused")
	g := NewGateway(stubExtractor{err: cause}, nil, nil)

	_, err := g.Extract(context.Background(), models.Source{Type: models.SourceTypeURL, URL: "https://example.com"})
	var extractErr *ExtractionError
	if !errors.As(err, &extractErr) {
		t.Fatalf("err = %T, want *ExtractionError", err)
	}
	if !errors.Is(err, cause) {
		t.Fatal("cause not wrapped")
	}
}

// TestTranslateRejectsEmptyResult verifies a silent translator is an error.
func TestTranslateRejectsEmptyResult(t *testing.T) {
	g := NewGateway(nil, stubTranslator{text: ""}, nil)

	_, err := g.Translate(context.Background(), "안전모를 착용하세요", models.LanguageChinese)
	var translateErr *TranslationError
	if !errors.As(err, &translateErr) {
		t.Fatalf("err = %T, want *TranslationError", err)
	}
}

// TestSynthesizeLengthLimit verifies over-long text is rejected before the
// backend is called.
func TestSynthesizeLengthLimit(t *testing.T) {
	backend := &stubSynthesizer{}
	g := NewGateway(nil, nil, backend)

	long := strings.Repeat("가", MaxSpeechRunes+1)
	_, err := g.Synthesize(context.Background(), long)
	var synthErr *SynthesisError
	if !errors.As(err, &synthErr) {
		t.Fatalf("err = %T, want *SynthesisError", err)
	}
	if backend.calls != 0 {
		t.Fatal("backend called despite length rejection")
	}

	backend.audio = &models.AudioArtifact{Samples: make([]float32, 160), SampleRate: 16000}
	if _, err := g.Synthesize(context.Background(), strings.Repeat("가", MaxSpeechRunes)); err != nil {
		t.Fatalf("text at the limit rejected: %v", err)
	}
}

// TestSynthesizeRejectsEmptyAudio verifies a nil or empty buffer is an error.
func TestSynthesizeRejectsEmptyAudio(t *testing.T) {
	g := NewGateway(nil, nil, &stubSynthesizer{audio: nil})
	if _, err := g.Synthesize(context.Background(), "짧은 문장"); err == nil {
		t.Fatal("nil audio accepted")
	}

	g = NewGateway(nil, nil, &stubSynthesizer{audio: &models.AudioArtifact{SampleRate: 16000}})
	if _, err := g.Synthesize(context.Background(), "짧은 문장"); err == nil {
		t.Fatal("empty sample buffer accepted")
	}
}
