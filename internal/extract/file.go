package extract

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/jinchangsung/safetyspeak2/internal/stage"
)

// FileExtractor reads plain-text document files from disk. Opaque formats
// (scans, PDFs) are handled by external extraction backends, not here.
type FileExtractor struct{}

// NewFileExtractor creates a FileExtractor.
func NewFileExtractor() *FileExtractor {
	return &FileExtractor{}
}

var textExtensions = map[string]struct{}{
	".txt":      {},
	".md":       {},
	".markdown": {},
}

// Extract returns the file's content as text.
func (e *FileExtractor) Extract(ctx context.Context, path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := textExtensions[ext]; !ok {
		return "", &stage.ExtractionError{Detail: "unsupported document format: " + ext}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", &stage.ExtractionError{Detail: path, Err: err}
	}
	return string(data), nil
}
