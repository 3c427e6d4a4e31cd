// Package speech synthesizes text into audio using Sherpa-ONNX offline TTS.
package speech

import (
	"context"
	"fmt"

	sherpa "github.com/k2-fsa/sherpa-onnx-go/sherpa_onnx"

	"github.com/jinchangsung/safetyspeak2/internal/models"
)

// Synthesizer handles speech synthesis using Sherpa-ONNX.
type Synthesizer struct {
	config *Config
	tts    *sherpa.OfflineTts
}

// NewSynthesizer creates a new TTS synthesizer with the given configuration.
func NewSynthesizer(config *Config) (*Synthesizer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	sherpaConfig := sherpa.OfflineTtsConfig{
		Model: sherpa.OfflineTtsModelConfig{
			Vits: sherpa.OfflineTtsVitsModelConfig{
				Model:   config.ModelPath,
				Tokens:  config.TokensPath,
				Lexicon: config.LexiconPath,
				DataDir: config.DataDir,
			},
			NumThreads: config.NumThreads,
			Debug:      0,
		},
		MaxNumSentences: 1,
	}

	tts := sherpa.NewOfflineTts(&sherpaConfig)
	if tts == nil {
		return nil, fmt.Errorf("failed to create offline tts")
	}

	return &Synthesizer{config: config, tts: tts}, nil
}

// Synthesize converts text into a mono PCM audio buffer.
func (s *Synthesizer) Synthesize(ctx context.Context, text string) (*models.AudioArtifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	generated := s.tts.Generate(text, s.config.SpeakerID, s.config.Speed)
	if generated == nil || len(generated.Samples) == 0 {
		return nil, fmt.Errorf("backend returned no audio payload")
	}
	if generated.SampleRate <= 0 {
		return nil, fmt.Errorf("audio could not be decoded: invalid sample rate %d", generated.SampleRate)
	}

	return &models.AudioArtifact{
		Samples:    generated.Samples,
		SampleRate: generated.SampleRate,
	}, nil
}

// Close releases the underlying model.
func (s *Synthesizer) Close() {
	if s.tts != nil {
		sherpa.DeleteOfflineTts(s.tts)
		s.tts = nil
	}
}
