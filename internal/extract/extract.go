// Package extract pulls plain text out of heterogeneous document sources.
package extract

import (
	"context"

	"github.com/jinchangsung/safetyspeak2/internal/models"
	"github.com/jinchangsung/safetyspeak2/internal/stage"
)

// Service dispatches extraction to the backend matching the source type.
type Service struct {
	file *FileExtractor
	web  *WebExtractor
	yt   *YouTubeExtractor
}

// NewService creates an extraction service. web may be nil when browser-based
// extraction is not available; URL sources then fail with an extraction error.
func NewService(web *WebExtractor) *Service {
	return &Service{
		file: NewFileExtractor(),
		web:  web,
		yt:   NewYouTubeExtractor(),
	}
}

// Extract returns the plain text content of the source.
func (s *Service) Extract(ctx context.Context, source models.Source) (string, error) {
	switch source.Type {
	case models.SourceTypeText:
		return source.RawText, nil
	case models.SourceTypeFile:
		return s.file.Extract(ctx, source.FilePath)
	case models.SourceTypeURL:
		if s.web == nil {
			return "", &stage.ExtractionError{Detail: "web extraction not available"}
		}
		return s.web.Extract(ctx, source.URL)
	case models.SourceTypeYouTube:
		return s.yt.Extract(ctx, source.URL)
	default:
		return "", &stage.ExtractionError{Detail: "unsupported source type: " + string(source.Type)}
	}
}
