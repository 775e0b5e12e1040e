package memstore

import (
	"context"
	"sync"

	"telegram-trending-ads/internal/domain/ports/repository"
)

var _ repository.ReplayGuard = (*ReplayGuard)(nil)

// ReplayGuard is the in-process consumed-transaction set. Append-only for
// the process lifetime.
type ReplayGuard struct {
	mu   sync.Mutex
	used map[string]struct{}
}

func NewReplayGuard() *ReplayGuard {
	return &ReplayGuard{used: make(map[string]struct{})}
}

func (g *ReplayGuard) Used(ctx context.Context, txID string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.used[txID]
	return ok, nil
}

func (g *ReplayGuard) MarkUsed(ctx context.Context, txID string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.used[txID]; ok {
		return false, nil
	}
	g.used[txID] = struct{}{}
	return true, nil
}
