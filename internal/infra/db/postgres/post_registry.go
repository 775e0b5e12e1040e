package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"telegram-trending-ads/internal/domain/model"
	"telegram-trending-ads/internal/domain/ports/repository"
)

var _ repository.PostRegistry = (*postRegistry)(nil)

// postRegistry keeps live posts in postgres so a restart can pick scheduled
// expirations back up.
type postRegistry struct{ pool *pgxpool.Pool }

func NewPostRegistry(pool *pgxpool.Pool) *postRegistry {
	return &postRegistry{pool: pool}
}

func (r *postRegistry) Put(ctx context.Context, post model.PublishedPost) (*model.PublishedPost, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	prev, err := scanPost(tx.QueryRow(ctx,
		`SELECT submitter_id, channel_message_id, plan_id, published_at, expires_at
		   FROM published_posts WHERE submitter_id=$1 FOR UPDATE;`, post.SubmitterID))
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO published_posts (submitter_id, channel_message_id, plan_id, published_at, expires_at)
		 VALUES ($1,$2,$3,$4,$5)
		 ON CONFLICT (submitter_id) DO UPDATE SET
		   channel_message_id=$2, plan_id=$3, published_at=$4, expires_at=$5;`,
		post.SubmitterID, post.ChannelMessageID, string(post.PlanID), post.PublishedAt, post.ExpiresAt)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return prev, nil
}

func (r *postRegistry) Get(ctx context.Context, submitterID int64) (*model.PublishedPost, error) {
	return scanPost(r.pool.QueryRow(ctx,
		`SELECT submitter_id, channel_message_id, plan_id, published_at, expires_at
		   FROM published_posts WHERE submitter_id=$1;`, submitterID))
}

func (r *postRegistry) Remove(ctx context.Context, submitterID int64) (*model.PublishedPost, error) {
	return scanPost(r.pool.QueryRow(ctx,
		`DELETE FROM published_posts WHERE submitter_id=$1
		 RETURNING submitter_id, channel_message_id, plan_id, published_at, expires_at;`, submitterID))
}

func (r *postRegistry) Active(ctx context.Context) ([]model.PublishedPost, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT submitter_id, channel_message_id, plan_id, published_at, expires_at
		   FROM published_posts ORDER BY expires_at;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.PublishedPost
	for rows.Next() {
		var p model.PublishedPost
		var planID string
		if err := rows.Scan(&p.SubmitterID, &p.ChannelMessageID, &planID, &p.PublishedAt, &p.ExpiresAt); err != nil {
			return nil, err
		}
		p.PlanID = model.PlanID(planID)
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanPost(row pgx.Row) (*model.PublishedPost, error) {
	var p model.PublishedPost
	var planID string
	err := row.Scan(&p.SubmitterID, &p.ChannelMessageID, &planID, &p.PublishedAt, &p.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.PlanID = model.PlanID(planID)
	return &p, nil
}
