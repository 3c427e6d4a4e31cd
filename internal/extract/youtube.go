package extract

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/kkdai/youtube/v2"

	"github.com/jinchangsung/safetyspeak2/internal/stage"
)

// YouTubeExtractor pulls a video's caption track as plain text.
type YouTubeExtractor struct {
	client youtube.Client
}

// NewYouTubeExtractor creates a YouTubeExtractor.
func NewYouTubeExtractor() *YouTubeExtractor {
	return &YouTubeExtractor{client: youtube.Client{}}
}

// Caption track timedtext XML structure.
type xmlTranscript struct {
	XMLName xml.Name  `xml:"timedtext"`
	Text    []xmlText `xml:"body>p"`
}

type xmlText struct {
	Segments []xmlSegment `xml:"s"`
}

type xmlSegment struct {
	Text string `xml:",chardata"`
}

// Extract fetches the video's caption track and joins it into plain text.
// Korean captions are preferred; the first available track is the fallback.
func (e *YouTubeExtractor) Extract(ctx context.Context, url string) (string, error) {
	video, err := e.client.GetVideoContext(ctx, url)
	if err != nil {
		return "", &stage.ExtractionError{Detail: url, Err: err}
	}
	if len(video.CaptionTracks) == 0 {
		return "", &stage.ExtractionError{Detail: "no captions available: " + url}
	}

	track := video.CaptionTracks[0]
	for _, t := range video.CaptionTracks {
		if strings.HasPrefix(t.LanguageCode, "ko") {
			track = t
			break
		}
	}

	text, err := fetchCaptionText(ctx, track.BaseURL)
	if err != nil {
		return "", &stage.ExtractionError{Detail: url, Err: err}
	}
	return text, nil
}

// fetchCaptionText downloads and parses a timedtext caption track.
func fetchCaptionText(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	return parseTranscriptXML(body)
}

// parseTranscriptXML joins caption entries into plain text, one per line.
func parseTranscriptXML(data []byte) (string, error) {
	var transcript xmlTranscript
	if err := xml.Unmarshal(data, &transcript); err != nil {
		return "", fmt.Errorf("XML parse failed: %w", err)
	}

	var sb strings.Builder
	for _, p := range transcript.Text {
		var text string
		for _, seg := range p.Segments {
			text += seg.Text
		}
		if len(text) == 0 {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String()), nil
}
