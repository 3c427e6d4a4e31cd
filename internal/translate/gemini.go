// Package translate converts document text into a worker's language via the
// Gemini API.
package translate

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/jinchangsung/safetyspeak2/internal/models"
)

const translatePrompt = `다음 문서를 %s(으)로 번역하세요.

요구사항:
- 의미를 정확하게 유지하고, 안전 관련 경고와 지시는 절대 완화하지 마세요
- 전문 용어는 대상 언어의 표준 용어를 사용하세요
- 번역문만 출력하세요. 설명이나 머리말을 붙이지 마세요

문서:
---
%s
---`

var languagePromptNames = map[models.Language]string{
	models.LanguageChinese:    "중국어(간체)",
	models.LanguageVietnamese: "베트남어",
	models.LanguageEnglish:    "영어",
	models.LanguageThai:       "태국어",
	models.LanguageJapanese:   "일본어",
}

// Gemini translates text using the Gemini API, rotating through the supplied
// API keys on quota errors.
type Gemini struct {
	apiKeys []string
	model   string

	mu         sync.Mutex
	currentKey int
}

// NewGemini creates a translator over the given API keys.
func NewGemini(apiKeys []string, model string) *Gemini {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &Gemini{apiKeys: apiKeys, model: model}
}

// Translate converts text into the target language.
func (g *Gemini) Translate(ctx context.Context, text string, target models.Language) (string, error) {
	if len(g.apiKeys) == 0 {
		return "", fmt.Errorf("translation backend not configured (no API keys)")
	}

	prompt := BuildPrompt(text, target)

	attempts := len(g.apiKeys)
	var lastErr error

	for range attempts {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  g.nextKey(),
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				g.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var out string
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					out += part.Text
				}
			}
			return strings.TrimSpace(out), nil
		}

		return "", fmt.Errorf("empty response from Gemini")
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

// BuildPrompt renders the translation prompt for the target language.
func BuildPrompt(text string, target models.Language) string {
	name, ok := languagePromptNames[target]
	if !ok {
		name = target.DisplayName()
	}
	return fmt.Sprintf(translatePrompt, name, text)
}

func (g *Gemini) nextKey() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.apiKeys[g.currentKey]
}

func (g *Gemini) rotateKey() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
}
