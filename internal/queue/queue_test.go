package queue

import (
	"testing"

	"github.com/jinchangsung/safetyspeak2/internal/models"
)

func textItem(name string, lang models.Language) *models.QueueItem {
	return models.NewQueueItem(name, models.Source{Type: models.SourceTypeText, RawText: name + " body"}, lang)
}

// TestQueueOrder verifies insertion order is preserved.
func TestQueueOrder(t *testing.T) {
	q := NewQueue()
	a := textItem("a", models.LanguageChinese)
	b := textItem("b", models.LanguageKorean)
	c := textItem("c", models.LanguageEnglish)
	q.Enqueue(a, b)
	q.Enqueue(c)

	items := q.Items()
	if len(items) != 3 {
		t.Fatalf("len = %d, want 3", len(items))
	}
	for i, want := range []string{a.ID, b.ID, c.ID} {
		if items[i].ID != want {
			t.Fatalf("items[%d] = %s, want %s", i, items[i].ID, want)
		}
	}
}

// TestNextIdleSkipsTerminal verifies the scan selects the earliest Idle item.
func TestNextIdleSkipsTerminal(t *testing.T) {
	q := NewQueue()
	a := textItem("a", models.LanguageChinese)
	b := textItem("b", models.LanguageChinese)
	c := textItem("c", models.LanguageChinese)
	a.Status = models.StatusError
	b.Status = models.StatusCompleted
	q.Enqueue(a, b, c)

	id, ok := q.NextIdle()
	if !ok || id != c.ID {
		t.Fatalf("NextIdle = %s, %v, want %s", id, ok, c.ID)
	}

	q.Update(c.ID, func(it *models.QueueItem) { it.Status = models.StatusCompleted })
	if _, ok := q.NextIdle(); ok {
		t.Fatal("expected no idle items")
	}
}

// TestUpdateMissing verifies updates for removed items are dropped.
func TestUpdateMissing(t *testing.T) {
	q := NewQueue()
	a := textItem("a", models.LanguageChinese)
	q.Enqueue(a)
	if !q.Remove(a.ID) {
		t.Fatal("remove failed")
	}

	if q.Update(a.ID, func(it *models.QueueItem) { it.Status = models.StatusError }) {
		t.Fatal("update of removed item should report missing")
	}
	if q.Remove(a.ID) {
		t.Fatal("second remove should fail")
	}
}

// TestItemsSnapshotIsolation verifies snapshots do not alias queue state.
func TestItemsSnapshotIsolation(t *testing.T) {
	q := NewQueue()
	a := textItem("a", models.LanguageChinese)
	q.Enqueue(a)

	snap := q.Items()
	snap[0].Status = models.StatusError

	got, _ := q.Get(a.ID)
	if got.Status != models.StatusIdle {
		t.Fatalf("status = %s, want idle (snapshot mutated queue state)", got.Status)
	}
}

// TestClear verifies all items are dropped.
func TestClear(t *testing.T) {
	q := NewQueue()
	q.Enqueue(textItem("a", models.LanguageChinese), textItem("b", models.LanguageKorean))
	q.Clear()
	if q.Len() != 0 {
		t.Fatalf("len = %d, want 0", q.Len())
	}
}
