package sched

import (
	"context"
	"sync"
	"time"

	"telegram-trending-ads/internal/domain/model"
	"telegram-trending-ads/internal/domain/ports/adapter"
	"telegram-trending-ads/internal/domain/ports/repository"
	"telegram-trending-ads/internal/infra/metrics"

	"github.com/rs/zerolog"
)

const fireTimeout = 30 * time.Second

// ExpiryScheduler keeps one one-shot deletion timer per published post,
// keyed by submitter. Firing is idempotent: the timer acts only if the
// registration is still present, so an earlier Remove makes it a no-op.
type ExpiryScheduler struct {
	posts     repository.PostRegistry
	channel   adapter.ChannelGateway
	channelID int64
	log       *zerolog.Logger

	mu     sync.Mutex
	timers map[int64]*time.Timer
}

func NewExpiryScheduler(posts repository.PostRegistry, channel adapter.ChannelGateway, channelID int64, logger *zerolog.Logger) *ExpiryScheduler {
	l := logger.With().Str("component", "ExpiryScheduler").Logger()
	return &ExpiryScheduler{
		posts:     posts,
		channel:   channel,
		channelID: channelID,
		log:       &l,
		timers:    make(map[int64]*time.Timer),
	}
}

// Schedule arms the deletion timer for a post. An existing timer for the
// same submitter is replaced. Never blocks the caller.
func (s *ExpiryScheduler) Schedule(post model.PublishedPost) {
	delay := time.Until(post.ExpiresAt)
	if delay < 0 {
		delay = 0 // overdue after a restart; fire right away
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[post.SubmitterID]; ok {
		t.Stop()
	}
	id := post.SubmitterID
	s.timers[id] = time.AfterFunc(delay, func() { s.fire(id) })
	s.log.Debug().Int64("submitter", id).Dur("in", delay).Msg("expiry scheduled")
}

// Cancel stops the pending timer for a submitter, if any. The post
// registration itself is the caller's concern.
func (s *ExpiryScheduler) Cancel(submitterID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[submitterID]; ok {
		t.Stop()
		delete(s.timers, submitterID)
	}
}

// Stop cancels all pending timers.
func (s *ExpiryScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}

func (s *ExpiryScheduler) fire(submitterID int64) {
	s.mu.Lock()
	delete(s.timers, submitterID)
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), fireTimeout)
	defer cancel()

	post, err := s.posts.Remove(ctx, submitterID)
	if err != nil {
		s.log.Error().Err(err).Int64("submitter", submitterID).Msg("expiry: registry remove failed")
		return
	}
	if post == nil {
		// Cleared before the timer fired.
		return
	}

	if err := s.channel.DeleteMessage(ctx, s.channelID, post.ChannelMessageID); err != nil {
		// Message may already be gone; log and move on, never retry.
		s.log.Warn().Err(err).Int("message_id", post.ChannelMessageID).Msg("expiry: channel delete failed")
	}
	if err := s.channel.SendMessage(ctx, submitterID, "Your post has expired."); err != nil {
		s.log.Warn().Err(err).Int64("submitter", submitterID).Msg("expiry: notify failed")
	}
	metrics.IncPostsExpired()
	metrics.DecPostsActive()
	s.log.Info().Int64("submitter", submitterID).Int("message_id", post.ChannelMessageID).Msg("post expired and removed")
}

// Reschedule re-arms timers for all live registrations, used at startup when
// the registry survives restarts.
func (s *ExpiryScheduler) Reschedule(ctx context.Context) error {
	posts, err := s.posts.Active(ctx)
	if err != nil {
		return err
	}
	for _, p := range posts {
		s.Schedule(p)
	}
	if len(posts) > 0 {
		s.log.Info().Int("count", len(posts)).Msg("rescheduled expiries after restart")
	}
	return nil
}
