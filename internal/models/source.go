package models

// SourceType identifies where a document's content comes from.
type SourceType string

const (
	SourceTypeText    SourceType = "text"    // Raw text supplied at creation
	SourceTypeFile    SourceType = "file"    // Local document file
	SourceTypeURL     SourceType = "url"     // Web page
	SourceTypeYouTube SourceType = "youtube" // Video captions
)

// Source is the input a queue item was created from.
// Exactly one of RawText, FilePath or URL is authoritative, selected by Type.
type Source struct {
	Type     SourceType `json:"type"`
	RawText  string     `json:"raw_text,omitempty"`
	FilePath string     `json:"file_path,omitempty"`
	URL      string     `json:"url,omitempty"`
}

// NeedsExtraction reports whether the source requires an extraction stage.
// Raw-text sources arrive with their content already in hand.
func (s Source) NeedsExtraction() bool {
	return s.Type != SourceTypeText && s.Type != ""
}
