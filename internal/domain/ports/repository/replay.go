package repository

import "context"

// ReplayGuard is the set of transaction ids already consumed by a successful
// verification. MarkUsed is the single critical section that prevents two
// racing verifications of the same tx from both succeeding.
type ReplayGuard interface {
	// Used reports whether txID has already been consumed. Cheap read used
	// as a fast path before any network call.
	Used(ctx context.Context, txID string) (bool, error)
	// MarkUsed atomically records txID, returning false if it was already
	// present.
	MarkUsed(ctx context.Context, txID string) (bool, error)
}
