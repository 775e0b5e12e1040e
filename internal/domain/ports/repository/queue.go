package repository

import "telegram-trending-ads/internal/domain/model"

// PendingQueue is a strict FIFO of submissions awaiting publication. It does
// no filtering; consumers must check the dequeued entry's submitter
// themselves and Requeue entries that are not theirs.
type PendingQueue interface {
	Enqueue(entry model.PendingEntry)
	Dequeue() (model.PendingEntry, bool)
	// Requeue puts an entry back at the head so FIFO order is preserved for
	// the next consumer.
	Requeue(entry model.PendingEntry)
	Size() int
	// ClearAll empties the queue and reports how many entries were dropped.
	ClearAll() int
	// ClearOne removes and returns the oldest entry.
	ClearOne() (model.PendingEntry, bool)
}
