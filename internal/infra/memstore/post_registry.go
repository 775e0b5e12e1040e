package memstore

import (
	"context"
	"sync"

	"telegram-trending-ads/internal/domain/model"
	"telegram-trending-ads/internal/domain/ports/repository"
)

var _ repository.PostRegistry = (*PostRegistry)(nil)

// PostRegistry tracks live channel posts per submitter in process memory.
type PostRegistry struct {
	mu    sync.Mutex
	posts map[int64]model.PublishedPost
}

func NewPostRegistry() *PostRegistry {
	return &PostRegistry{posts: make(map[int64]model.PublishedPost)}
}

func (r *PostRegistry) Put(ctx context.Context, post model.PublishedPost) (*model.PublishedPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var prev *model.PublishedPost
	if p, ok := r.posts[post.SubmitterID]; ok {
		cp := p
		prev = &cp
	}
	r.posts[post.SubmitterID] = post
	return prev, nil
}

func (r *PostRegistry) Get(ctx context.Context, submitterID int64) (*model.PublishedPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[submitterID]
	if !ok {
		return nil, nil
	}
	cp := p
	return &cp, nil
}

func (r *PostRegistry) Remove(ctx context.Context, submitterID int64) (*model.PublishedPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[submitterID]
	if !ok {
		return nil, nil
	}
	delete(r.posts, submitterID)
	cp := p
	return &cp, nil
}

func (r *PostRegistry) Active(ctx context.Context) ([]model.PublishedPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.PublishedPost, 0, len(r.posts))
	for _, p := range r.posts {
		out = append(out, p)
	}
	return out, nil
}
