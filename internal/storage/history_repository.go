package storage

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/jinchangsung/safetyspeak2/internal/models"
)

// HistoryEntry is one archived pipeline result.
type HistoryEntry struct {
	ID              string     `json:"id"`
	DisplayName     string     `json:"display_name"`
	SourceType      string     `json:"source_type"`
	TargetLanguage  string     `json:"target_language"`
	Status          string     `json:"status"`
	OriginalChars   int        `json:"original_chars"`
	TranslatedChars int        `json:"translated_chars"`
	HasAudio        bool       `json:"has_audio"`
	ErrorMessage    string     `json:"error_message,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

// HistoryRepository is the data access layer for the history archive.
type HistoryRepository struct {
	db *DB
}

// NewHistoryRepository creates a new HistoryRepository.
func NewHistoryRepository(db *DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Record archives a finished item. Re-recording the same id overwrites.
func (r *HistoryRepository) Record(ctx context.Context, item models.QueueItem) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO history
			(id, display_name, source_type, target_language, status,
			 original_chars, translated_chars, has_audio, error_message,
			 created_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID,
		item.DisplayName,
		string(item.Source.Type),
		string(item.TargetLanguage),
		string(item.Status),
		utf8.RuneCountInString(item.OriginalText),
		utf8.RuneCountInString(item.TranslatedText),
		item.HasAudio,
		item.ErrorMessage,
		item.CreatedAt,
		item.CompletedAt,
	)
	return err
}

// ListRecent returns the most recently completed entries.
func (r *HistoryRepository) ListRecent(ctx context.Context, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, display_name, source_type, target_language, status,
		       original_chars, translated_chars, has_audio, error_message,
		       created_at, completed_at
		FROM history
		ORDER BY completed_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		var errMsg *string
		if err := rows.Scan(
			&e.ID, &e.DisplayName, &e.SourceType, &e.TargetLanguage, &e.Status,
			&e.OriginalChars, &e.TranslatedChars, &e.HasAudio, &errMsg,
			&e.CreatedAt, &e.CompletedAt,
		); err != nil {
			return nil, err
		}
		if errMsg != nil {
			e.ErrorMessage = *errMsg
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CountByStatus returns entry counts per terminal status.
func (r *HistoryRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM history GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// CleanupBefore deletes entries completed before the cutoff.
func (r *HistoryRepository) CleanupBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM history WHERE completed_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
