package memstore

import (
	"container/list"
	"math/rand"
	"sync"
	"time"

	"telegram-trending-ads/internal/domain/model"
	"telegram-trending-ads/internal/domain/ports/repository"

	"github.com/oklog/ulid/v2"
)

var _ repository.PendingQueue = (*PendingQueue)(nil)

// PendingQueue is a mutex-guarded FIFO of pending submissions. Entry ids are
// ULIDs, so they sort in enqueue order.
type PendingQueue struct {
	mu      sync.Mutex
	entries *list.List
	entropy *rand.Rand
}

func NewPendingQueue() *PendingQueue {
	return &PendingQueue{
		entries: list.New(),
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (q *PendingQueue) Enqueue(entry model.PendingEntry) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if entry.ID == "" {
		entry.ID = ulid.MustNew(ulid.Timestamp(time.Now()), q.entropy).String()
	}
	if entry.EnqueuedAt.IsZero() {
		entry.EnqueuedAt = time.Now()
	}
	q.entries.PushBack(entry)
}

func (q *PendingQueue) Dequeue() (model.PendingEntry, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	front := q.entries.Front()
	if front == nil {
		return model.PendingEntry{}, false
	}
	q.entries.Remove(front)
	return front.Value.(model.PendingEntry), true
}

func (q *PendingQueue) Requeue(entry model.PendingEntry) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries.PushFront(entry)
}

func (q *PendingQueue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.entries.Len()
}

func (q *PendingQueue) ClearAll() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := q.entries.Len()
	q.entries.Init()
	return n
}

func (q *PendingQueue) ClearOne() (model.PendingEntry, bool) {
	return q.Dequeue()
}
