package redis

import (
	"context"

	"telegram-trending-ads/internal/domain/ports/repository"
)

var _ repository.ReplayGuard = (*ReplayGuard)(nil)

const usedTxPrefix = "used_tx:"

// ReplayGuard stores consumed transaction ids in redis, so a restart does
// not reopen old transactions for reuse. SETNX gives the atomic
// check-and-insert the verification path needs.
type ReplayGuard struct {
	client RedisClient
}

func NewReplayGuard(client RedisClient) *ReplayGuard {
	return &ReplayGuard{client: client}
}

func (g *ReplayGuard) Used(ctx context.Context, txID string) (bool, error) {
	return g.client.Exists(ctx, usedTxPrefix+txID)
}

func (g *ReplayGuard) MarkUsed(ctx context.Context, txID string) (bool, error) {
	// No expiration: consumed ids stay consumed.
	return g.client.SetNX(ctx, usedTxPrefix+txID, 1, 0)
}
