package speech

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds the configuration for the offline TTS synthesizer.
type Config struct {
	ModelDir    string  // Base directory for the VITS model
	ModelPath   string  // Path to the .onnx model
	TokensPath  string  // Path to tokens.txt
	LexiconPath string  // Path to lexicon.txt (optional for some models)
	DataDir     string  // Path to espeak-ng-data (optional)
	NumThreads  int     // Threads for inference
	SpeakerID   int     // Speaker id for multi-speaker models
	Speed       float32 // Speech speed (1.0 = normal)
}

// NewConfig creates a configuration from a model directory, detecting the
// model files it contains.
func NewConfig(modelDir string) (*Config, error) {
	config := &Config{
		ModelDir:   modelDir,
		NumThreads: 2,
		Speed:      1.0,
	}

	modelPath := findModelFile(modelDir, []string{"model.onnx"})
	if modelPath == "" {
		modelPath = findByExtension(modelDir, ".onnx")
	}
	if modelPath == "" {
		return nil, fmt.Errorf("VITS model (.onnx) not found in %s", modelDir)
	}
	config.ModelPath = modelPath

	tokensPath := findModelFile(modelDir, []string{"tokens.txt"})
	if tokensPath == "" {
		return nil, fmt.Errorf("tokens.txt not found in %s", modelDir)
	}
	config.TokensPath = tokensPath

	// Optional files, present depending on the model family.
	config.LexiconPath = findModelFile(modelDir, []string{"lexicon.txt"})
	if dataDir := filepath.Join(modelDir, "espeak-ng-data"); dirExists(dataDir) {
		config.DataDir = dataDir
	}

	return config, nil
}

// Validate checks that the referenced model files exist.
func (c *Config) Validate() error {
	if c.ModelPath == "" || !fileExists(c.ModelPath) {
		return fmt.Errorf("model file not found: %s", c.ModelPath)
	}
	if c.TokensPath == "" || !fileExists(c.TokensPath) {
		return fmt.Errorf("tokens file not found: %s", c.TokensPath)
	}
	if c.NumThreads < 1 {
		return fmt.Errorf("num threads must be at least 1")
	}
	if c.Speed <= 0 {
		return fmt.Errorf("speed must be positive")
	}
	return nil
}

// findModelFile returns the first existing candidate in dir.
func findModelFile(dir string, candidates []string) string {
	for _, name := range candidates {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// findByExtension returns the first file in dir with the given extension.
func findByExtension(dir, ext string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ext) {
			return filepath.Join(dir, e.Name())
		}
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
