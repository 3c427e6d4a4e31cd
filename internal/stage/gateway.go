package stage

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/jinchangsung/safetyspeak2/internal/models"
)

const (
	// MaxInputRunes caps extracted document text. Longer documents are
	// clipped, not rejected.
	MaxInputRunes = 8000

	// MaxSpeechRunes caps a single speech synthesis request.
	MaxSpeechRunes = 4000
)

// Extractor pulls plain text out of a document source.
type Extractor interface {
	Extract(ctx context.Context, source models.Source) (string, error)
}

// Translator converts text into a target language.
type Translator interface {
	Translate(ctx context.Context, text string, target models.Language) (string, error)
}

// Synthesizer converts text into a playable audio buffer.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (*models.AudioArtifact, error)
}

// Gateway bundles the three pipeline backends behind one value and applies
// the request limits the backends themselves do not know about.
type Gateway struct {
	extractor   Extractor
	translator  Translator
	synthesizer Synthesizer
}

// NewGateway creates a Gateway over the given backends.
func NewGateway(e Extractor, t Translator, s Synthesizer) *Gateway {
	return &Gateway{extractor: e, translator: t, synthesizer: s}
}

// Extract pulls text from the source. Failures wrap as *ExtractionError.
func (g *Gateway) Extract(ctx context.Context, source models.Source) (string, error) {
	text, err := g.extractor.Extract(ctx, source)
	if err != nil {
		if _, ok := err.(*ExtractionError); ok {
			return "", err
		}
		return "", &ExtractionError{Detail: string(source.Type), Err: err}
	}
	return text, nil
}

// Translate converts text to the target language. An empty backend result is
// an error: silence from the translator is never a valid translation.
func (g *Gateway) Translate(ctx context.Context, text string, target models.Language) (string, error) {
	out, err := g.translator.Translate(ctx, text, target)
	if err != nil {
		if _, ok := err.(*TranslationError); ok {
			return "", err
		}
		return "", &TranslationError{Detail: string(target), Err: err}
	}
	if out == "" {
		return "", &TranslationError{Detail: fmt.Sprintf("empty result for %s", target)}
	}
	return out, nil
}

// Synthesize produces an audio buffer from text. Text over MaxSpeechRunes is
// rejected before the backend is called.
func (g *Gateway) Synthesize(ctx context.Context, text string) (*models.AudioArtifact, error) {
	if n := utf8.RuneCountInString(text); n > MaxSpeechRunes {
		return nil, &SynthesisError{Detail: fmt.Sprintf("text too long for speech request (%d > %d characters)", n, MaxSpeechRunes)}
	}
	audio, err := g.synthesizer.Synthesize(ctx, text)
	if err != nil {
		if _, ok := err.(*SynthesisError); ok {
			return nil, err
		}
		return nil, &SynthesisError{Detail: "backend", Err: err}
	}
	if audio == nil || len(audio.Samples) == 0 {
		return nil, &SynthesisError{Detail: "backend returned no audio payload"}
	}
	return audio, nil
}

// Truncate clips text to MaxInputRunes, preserving whole runes.
func Truncate(text string) string {
	if utf8.RuneCountInString(text) <= MaxInputRunes {
		return text
	}
	runes := []rune(text)
	return string(runes[:MaxInputRunes])
}
