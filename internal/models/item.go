package models

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle stage of a queue item.
type Status string

const (
	StatusIdle        Status = "idle"
	StatusExtracting  Status = "extracting"
	StatusTranslating Status = "translating"
	StatusSpeaking    Status = "speaking"
	StatusCompleted   Status = "completed"
	StatusError       Status = "error"
)

// IsTerminal reports whether no further automatic transitions occur.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusError
}

// ValidTransition enforces the allowed status edges. Status only advances
// forward through the pipeline; Error is reachable from any non-terminal state.
func ValidTransition(from, to Status) bool {
	if from.IsTerminal() {
		return false
	}
	if to == StatusError {
		return true
	}
	switch from {
	case StatusIdle:
		return to == StatusExtracting || to == StatusTranslating
	case StatusExtracting:
		return to == StatusTranslating
	case StatusTranslating:
		return to == StatusSpeaking
	case StatusSpeaking:
		return to == StatusCompleted
	default:
		return false
	}
}

// QueueItem is one unit of work: a document on its way to translated speech.
type QueueItem struct {
	ID             string         `json:"id"`
	DisplayName    string         `json:"display_name"`
	Source         Source         `json:"source"`
	OriginalText   string         `json:"original_text,omitempty"`
	TranslatedText string         `json:"translated_text,omitempty"`
	TargetLanguage Language       `json:"target_language"`
	Status         Status         `json:"status"`
	ErrorMessage   string         `json:"error_message,omitempty"`
	Audio          *AudioArtifact `json:"-"`
	HasAudio       bool           `json:"has_audio"`
	CreatedAt      time.Time      `json:"created_at"`
	CompletedAt    *time.Time     `json:"completed_at,omitempty"`
}

// NewQueueItem creates an Idle item for the given source and target language.
func NewQueueItem(name string, source Source, lang Language) *QueueItem {
	item := &QueueItem{
		ID:             uuid.New().String(),
		DisplayName:    name,
		Source:         source,
		TargetLanguage: lang,
		Status:         StatusIdle,
		CreatedAt:      time.Now(),
	}
	if source.Type == SourceTypeText {
		item.OriginalText = source.RawText
	}
	return item
}

// NewDerivedItem creates an Idle item that reuses already-extracted text from
// an existing item, targeting a different language. Extraction never re-runs.
func NewDerivedItem(parent *QueueItem, lang Language) *QueueItem {
	return &QueueItem{
		ID:             uuid.New().String(),
		DisplayName:    parent.DisplayName + " (" + lang.DisplayName() + ")",
		Source:         Source{Type: SourceTypeText, RawText: parent.OriginalText},
		OriginalText:   parent.OriginalText,
		TargetLanguage: lang,
		Status:         StatusIdle,
		CreatedAt:      time.Now(),
	}
}
