package queue

import (
	"sync"

	"github.com/jinchangsung/safetyspeak2/internal/models"
)

// Queue is an insertion-order-preserving collection of queue items.
// Items are never reordered; removal is explicit and allowed at any status.
type Queue struct {
	mu    sync.RWMutex
	items []*models.QueueItem
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Enqueue appends items, preserving order.
func (q *Queue) Enqueue(items ...*models.QueueItem) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, items...)
}

// Items returns a snapshot copy of all items in insertion order.
func (q *Queue) Items() []models.QueueItem {
	q.mu.RLock()
	defer q.mu.RUnlock()
	out := make([]models.QueueItem, len(q.items))
	for i, item := range q.items {
		out[i] = *item
	}
	return out
}

// Get returns a snapshot copy of the item with the given id.
func (q *Queue) Get(id string) (models.QueueItem, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	for _, item := range q.items {
		if item.ID == id {
			return *item, true
		}
	}
	return models.QueueItem{}, false
}

// NextIdle returns the id of the earliest item whose status is Idle.
func (q *Queue) NextIdle() (string, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	for _, item := range q.items {
		if item.Status == models.StatusIdle {
			return item.ID, true
		}
	}
	return "", false
}

// Update applies fn to the item with the given id under the queue lock.
// It reports whether the item was found: updates for an item removed
// mid-flight are dropped, never applied to stale state.
func (q *Queue) Update(id string, fn func(*models.QueueItem)) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, item := range q.items {
		if item.ID == id {
			fn(item)
			return true
		}
	}
	return false
}

// Remove deletes the item with the given id.
func (q *Queue) Remove(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, item := range q.items {
		if item.ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return true
		}
	}
	return false
}

// Clear removes all items.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = nil
}

// Len returns the number of items.
func (q *Queue) Len() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.items)
}
