package stage

import (
	"errors"
	"fmt"
)

// ErrEmptyContent is returned when a document yields no usable text.
var ErrEmptyContent = errors.New("no content to translate")

// ExtractionError indicates a document could not be read or parsed.
type ExtractionError struct {
	Detail string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extraction failed: %s: %v", e.Detail, e.Err)
	}
	return fmt.Sprintf("extraction failed: %s", e.Detail)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// TranslationError indicates the translation backend failed or returned
// an empty result.
type TranslationError struct {
	Detail string
	Err    error
}

func (e *TranslationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("translation failed: %s: %v", e.Detail, e.Err)
	}
	return fmt.Sprintf("translation failed: %s", e.Detail)
}

func (e *TranslationError) Unwrap() error { return e.Err }

// SynthesisError indicates speech synthesis failed. Synthesis failures are
// soft: the enclosing item still completes, with the audio artifact absent.
type SynthesisError struct {
	Detail string
	Err    error
}

func (e *SynthesisError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("speech synthesis failed: %s: %v", e.Detail, e.Err)
	}
	return fmt.Sprintf("speech synthesis failed: %s", e.Detail)
}

func (e *SynthesisError) Unwrap() error { return e.Err }
