// Package ingestion turns user-supplied documents into queue items.
package ingestion

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jinchangsung/safetyspeak2/internal/models"
)

// DocumentIngester saves uploaded documents and builds queue items for them.
type DocumentIngester struct {
	dataDir string
}

// NewDocumentIngester creates a new DocumentIngester.
func NewDocumentIngester(dataDir string) *DocumentIngester {
	return &DocumentIngester{dataDir: dataDir}
}

// Upload is one uploaded document file.
type Upload struct {
	Filename string
	Reader   io.Reader
}

// IngestFile saves an uploaded document under the data directory and returns
// an Idle queue item pointing at the saved file.
func (i *DocumentIngester) IngestFile(upload Upload, lang models.Language) (*models.QueueItem, error) {
	if upload.Filename == "" {
		return nil, fmt.Errorf("no document provided")
	}

	docID := uuid.New().String()
	docDir := filepath.Join(i.dataDir, "documents", docID)
	if err := os.MkdirAll(docDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create document directory: %w", err)
	}

	destPath := filepath.Join(docDir, filepath.Base(upload.Filename))
	dest, err := os.Create(destPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	_, err = io.Copy(dest, upload.Reader)
	dest.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	name := strings.TrimSuffix(upload.Filename, filepath.Ext(upload.Filename))
	source := models.Source{Type: models.SourceTypeFile, FilePath: destPath}
	return models.NewQueueItem(name, source, lang), nil
}

// IngestText builds a queue item from raw text. Extraction is pre-satisfied.
func (i *DocumentIngester) IngestText(name, text string, lang models.Language) (*models.QueueItem, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("no text provided")
	}
	if name == "" {
		name = "untitled"
	}
	source := models.Source{Type: models.SourceTypeText, RawText: text}
	return models.NewQueueItem(name, source, lang), nil
}

// IngestURL builds a queue item for a web page or video URL.
func (i *DocumentIngester) IngestURL(url string, lang models.Language) (*models.QueueItem, error) {
	if url == "" {
		return nil, fmt.Errorf("no url provided")
	}
	sourceType := models.SourceTypeURL
	if isYouTubeURL(url) {
		sourceType = models.SourceTypeYouTube
	}
	source := models.Source{Type: sourceType, URL: url}
	return models.NewQueueItem(url, source, lang), nil
}

func isYouTubeURL(url string) bool {
	return strings.Contains(url, "youtube.com/") || strings.Contains(url, "youtu.be/")
}
