package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jinchangsung/safetyspeak2/internal/models"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func finishedItem(name string, status models.Status, completedAt time.Time) models.QueueItem {
	item := models.NewQueueItem(name, models.Source{Type: models.SourceTypeText, RawText: "고소작업 시 안전벨트 착용"}, models.LanguageChinese)
	item.Status = status
	item.TranslatedText = "高处作业时请系好安全带"
	item.HasAudio = status == models.StatusCompleted
	item.CompletedAt = &completedAt
	return *item
}

// TestRecordAndListRecent verifies archived entries round-trip with rune
// counts instead of full text.
func TestRecordAndListRecent(t *testing.T) {
	repo := NewHistoryRepository(testDB(t))
	ctx := context.Background()

	now := time.Now().UTC()
	old := finishedItem("old", models.StatusCompleted, now.Add(-time.Hour))
	recent := finishedItem("recent", models.StatusCompleted, now)
	for _, item := range []models.QueueItem{old, recent} {
		if err := repo.Record(ctx, item); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	entries, err := repo.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].DisplayName != "recent" {
		t.Fatalf("first entry = %q, want most recent", entries[0].DisplayName)
	}
	e := entries[0]
	if e.OriginalChars != 14 || e.TranslatedChars != 11 {
		t.Fatalf("char counts = %d/%d", e.OriginalChars, e.TranslatedChars)
	}
	if !e.HasAudio || e.Status != "completed" || e.TargetLanguage != "zh" {
		t.Fatalf("entry = %+v", e)
	}
}

// TestRecordOverwritesSameID verifies re-recording an item replaces the row.
func TestRecordOverwritesSameID(t *testing.T) {
	repo := NewHistoryRepository(testDB(t))
	ctx := context.Background()

	item := finishedItem("notice", models.StatusCompleted, time.Now().UTC())
	if err := repo.Record(ctx, item); err != nil {
		t.Fatalf("record: %v", err)
	}
	item.Status = models.StatusError
	item.ErrorMessage = "retry failed"
	if err := repo.Record(ctx, item); err != nil {
		t.Fatalf("re-record: %v", err)
	}

	entries, err := repo.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Status != "error" || entries[0].ErrorMessage != "retry failed" {
		t.Fatalf("entry = %+v", entries[0])
	}
}

// TestCountByStatus verifies the per-status aggregate.
func TestCountByStatus(t *testing.T) {
	repo := NewHistoryRepository(testDB(t))
	ctx := context.Background()

	now := time.Now().UTC()
	for i, status := range []models.Status{models.StatusCompleted, models.StatusCompleted, models.StatusError} {
		item := finishedItem("item", status, now)
		item.ID = item.ID + string(rune('a'+i))
		if err := repo.Record(ctx, item); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	counts, err := repo.CountByStatus(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if counts["completed"] != 2 || counts["error"] != 1 {
		t.Fatalf("counts = %v", counts)
	}
}

// TestCleanupBefore verifies old entries are deleted and fresh ones kept.
func TestCleanupBefore(t *testing.T) {
	repo := NewHistoryRepository(testDB(t))
	ctx := context.Background()

	now := time.Now().UTC()
	stale := finishedItem("stale", models.StatusCompleted, now.Add(-48*time.Hour))
	fresh := finishedItem("fresh", models.StatusCompleted, now)
	for _, item := range []models.QueueItem{stale, fresh} {
		if err := repo.Record(ctx, item); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	deleted, err := repo.CleanupBefore(ctx, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("deleted = %d, want 1", deleted)
	}
	entries, err := repo.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 || entries[0].DisplayName != "fresh" {
		t.Fatalf("entries = %+v", entries)
	}
}
