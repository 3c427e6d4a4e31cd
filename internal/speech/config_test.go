package speech

import (
	"os"
	"path/filepath"
	"testing"
)

func writeModelDir(t *testing.T, files ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("stub"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

// TestNewConfigDiscoversModelFiles verifies the standard layout is detected.
func TestNewConfigDiscoversModelFiles(t *testing.T) {
	dir := writeModelDir(t, "model.onnx", "tokens.txt", "lexicon.txt")

	config, err := NewConfig(dir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if config.ModelPath != filepath.Join(dir, "model.onnx") {
		t.Fatalf("model path = %q", config.ModelPath)
	}
	if config.TokensPath != filepath.Join(dir, "tokens.txt") {
		t.Fatalf("tokens path = %q", config.TokensPath)
	}
	if config.LexiconPath != filepath.Join(dir, "lexicon.txt") {
		t.Fatalf("lexicon path = %q", config.LexiconPath)
	}
	if config.NumThreads != 2 || config.Speed != 1.0 {
		t.Fatalf("defaults = threads %d speed %v", config.NumThreads, config.Speed)
	}
	if err := config.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

// TestNewConfigFallsBackToAnyONNX verifies models without the canonical name
// are still found.
func TestNewConfigFallsBackToAnyONNX(t *testing.T) {
	dir := writeModelDir(t, "ko_KO-kss_low.onnx", "tokens.txt")

	config, err := NewConfig(dir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if config.ModelPath != filepath.Join(dir, "ko_KO-kss_low.onnx") {
		t.Fatalf("model path = %q", config.ModelPath)
	}
	if config.LexiconPath != "" {
		t.Fatalf("lexicon path = %q, want empty", config.LexiconPath)
	}
}

// TestNewConfigMissingFiles verifies required files are enforced.
func TestNewConfigMissingFiles(t *testing.T) {
	if _, err := NewConfig(writeModelDir(t, "tokens.txt")); err == nil {
		t.Fatal("missing model accepted")
	}
	if _, err := NewConfig(writeModelDir(t, "model.onnx")); err == nil {
		t.Fatal("missing tokens accepted")
	}
}

// TestValidateRejectsBadSettings verifies thread and speed bounds.
func TestValidateRejectsBadSettings(t *testing.T) {
	dir := writeModelDir(t, "model.onnx", "tokens.txt")
	config, err := NewConfig(dir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}

	config.NumThreads = 0
	if err := config.Validate(); err == nil {
		t.Fatal("zero threads accepted")
	}
	config.NumThreads = 2
	config.Speed = 0
	if err := config.Validate(); err == nil {
		t.Fatal("zero speed accepted")
	}
}
