package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds runtime configuration loaded from environment variables.
type Config struct {
	Port          string   // HTTP listen port
	DataDir       string   // Uploaded documents and generated files
	DBPath        string   // SQLite history database
	TTSModelDir   string   // sherpa-onnx VITS model directory
	TTSNumThreads int      // Inference threads for synthesis
	GeminiAPIKeys []string // Translation disabled when empty
	GeminiModel   string
	BrowserPath   string // Optional browser binary for web extraction
}

// Load reads configuration from the environment, applying defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		DataDir:       getEnv("DATA_DIR", "data"),
		DBPath:        getEnv("DB_PATH", "data/safetyspeak.db"),
		TTSModelDir:   getEnv("TTS_MODEL_DIR", "models/vits-mimic3-ko_KO-kss_low"),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		BrowserPath:   os.Getenv("BROWSER_PATH"),
		TTSNumThreads: 2,
	}

	if v := os.Getenv("TTS_NUM_THREADS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid TTS_NUM_THREADS: %q", v)
		}
		cfg.TTSNumThreads = n
	}

	// Comma-separated key list. Translation is disabled when empty.
	if keys := os.Getenv("GEMINI_API_KEYS"); keys != "" {
		for _, k := range strings.Split(keys, ",") {
			if k = strings.TrimSpace(k); k != "" {
				cfg.GeminiAPIKeys = append(cfg.GeminiAPIKeys, k)
			}
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
