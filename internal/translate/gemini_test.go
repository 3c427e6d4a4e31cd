package translate

import (
	"context"
	"strings"
	"testing"

	"github.com/jinchangsung/safetyspeak2/internal/models"
)

// TestBuildPrompt verifies the prompt names the target language and embeds
// the document body.
func TestBuildPrompt(t *testing.T) {
	doc := "작업 전 안전점검을 실시하세요."
	prompt := BuildPrompt(doc, models.LanguageVietnamese)

	if !strings.Contains(prompt, "베트남어") {
		t.Fatalf("prompt missing target language name:\n%s", prompt)
	}
	if !strings.Contains(prompt, doc) {
		t.Fatal("prompt missing document body")
	}
	if !strings.Contains(prompt, "번역문만 출력") {
		t.Fatal("prompt missing output instruction")
	}
}

// TestBuildPromptUnknownLanguage verifies the display-name fallback.
func TestBuildPromptUnknownLanguage(t *testing.T) {
	prompt := BuildPrompt("본문", models.Language("xx"))
	if prompt == "" || !strings.Contains(prompt, "본문") {
		t.Fatalf("prompt = %q", prompt)
	}
}

// TestTranslateWithoutKeys verifies a clean error when no keys are configured.
func TestTranslateWithoutKeys(t *testing.T) {
	g := NewGemini(nil, "")
	_, err := g.Translate(context.Background(), "안전제일", models.LanguageChinese)
	if err == nil {
		t.Fatal("expected configuration error")
	}
	if !strings.Contains(err.Error(), "no API keys") {
		t.Fatalf("err = %v", err)
	}
}

// TestKeyRotation verifies rotation wraps around the key list.
func TestKeyRotation(t *testing.T) {
	g := NewGemini([]string{"key-a", "key-b"}, "")
	if g.nextKey() != "key-a" {
		t.Fatal("first key not used first")
	}
	g.rotateKey()
	if g.nextKey() != "key-b" {
		t.Fatal("rotation did not advance")
	}
	g.rotateKey()
	if g.nextKey() != "key-a" {
		t.Fatal("rotation did not wrap")
	}
}
