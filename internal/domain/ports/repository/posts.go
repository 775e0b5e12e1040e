package repository

import (
	"context"

	"telegram-trending-ads/internal/domain/model"
)

// PostRegistry tracks the live advertisement per submitter. The expiry task
// checks continued presence here at fire time, so Remove doubles as
// cancellation: removing a registration makes a later firing a no-op.
type PostRegistry interface {
	// Put registers the post, returning the previous registration for the
	// same submitter if one was still live.
	Put(ctx context.Context, post model.PublishedPost) (*model.PublishedPost, error)
	Get(ctx context.Context, submitterID int64) (*model.PublishedPost, error)
	// Remove unregisters and returns the post. Removing an absent
	// registration returns nil, nil; it is never an error.
	Remove(ctx context.Context, submitterID int64) (*model.PublishedPost, error)
	// Active lists all live registrations, used to reschedule expiries after
	// a restart when the registry is durable.
	Active(ctx context.Context) ([]model.PublishedPost, error)
}
