package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"

	"telegram-trending-ads/internal/domain/ports/repository"
)

var _ repository.ReplayGuard = (*replayGuard)(nil)

// replayGuard persists consumed transaction ids, so a restart cannot reopen
// a paid transaction for reuse.
type replayGuard struct{ pool *pgxpool.Pool }

func NewReplayGuard(pool *pgxpool.Pool) *replayGuard {
	return &replayGuard{pool: pool}
}

func (g *replayGuard) Used(ctx context.Context, txID string) (bool, error) {
	var used bool
	err := g.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM consumed_transactions WHERE tx_id=$1);`, txID).Scan(&used)
	return used, err
}

func (g *replayGuard) MarkUsed(ctx context.Context, txID string) (bool, error) {
	// The primary key makes insert-if-absent atomic across processes.
	tag, err := g.pool.Exec(ctx,
		`INSERT INTO consumed_transactions (tx_id) VALUES ($1) ON CONFLICT (tx_id) DO NOTHING;`, txID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
