package usecase

import (
	"context"
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"telegram-trending-ads/internal/domain/model"
	"telegram-trending-ads/internal/domain/ports/adapter"
	"telegram-trending-ads/internal/domain/ports/repository"
	derror "telegram-trending-ads/internal/error"
	"telegram-trending-ads/internal/infra/metrics"

	"github.com/rs/zerolog"
)

const gmgnSnipeLink = "https://t.me/GMGN_sol04_bot?start"

// ExpiryScheduler is the hand-off point for scheduled post removal.
// Scheduling must not block publication.
type ExpiryScheduler interface {
	Schedule(post model.PublishedPost)
	Cancel(submitterID int64)
}

// PublishUseCase drives the publication pipeline: dequeue the paid
// submission, enrich it with market data, compose the advertisement, post it
// to the channel, and register it for expiry.
type PublishUseCase struct {
	subs      repository.SubmissionRepository
	queue     repository.PendingQueue
	posts     repository.PostRegistry
	meta      adapter.TokenMetadataProvider
	channel   adapter.ChannelGateway
	sched     ExpiryScheduler
	channelID int64
	botLink   string
	log       *zerolog.Logger
}

func NewPublishUseCase(
	subs repository.SubmissionRepository,
	queue repository.PendingQueue,
	posts repository.PostRegistry,
	meta adapter.TokenMetadataProvider,
	channel adapter.ChannelGateway,
	sched ExpiryScheduler,
	channelID int64,
	botLink string,
	logger *zerolog.Logger,
) *PublishUseCase {
	l := logger.With().Str("component", "PublishUC").Logger()
	return &PublishUseCase{
		subs:      subs,
		queue:     queue,
		posts:     posts,
		meta:      meta,
		channel:   channel,
		sched:     sched,
		channelID: channelID,
		botLink:   botLink,
		log:       &l,
	}
}

// Publish consumes the submitter's pending entry and posts the ad. A failure
// after dequeue does not requeue the entry; the caller reports it to the
// submitter. A non-matching head entry is put back so it is not lost.
func (u *PublishUseCase) Publish(ctx context.Context, submitterID int64) (*model.PublishedPost, error) {
	start := time.Now()
	post, err := u.publish(ctx, submitterID)
	metrics.ObservePublishDuration(time.Since(start).Seconds())
	return post, err
}

func (u *PublishUseCase) publish(ctx context.Context, submitterID int64) (*model.PublishedPost, error) {
	entry, ok := u.queue.Dequeue()
	if !ok {
		metrics.IncPublish("not_in_queue")
		return nil, derror.ErrNotInQueue
	}
	if entry.SubmitterID != submitterID {
		u.queue.Requeue(entry)
		metrics.IncPublish("not_in_queue")
		return nil, derror.ErrNotInQueue
	}
	metrics.SetPendingQueueDepth(u.queue.Size())

	planID, err := u.subs.SelectedPlan(ctx, submitterID)
	if err != nil {
		metrics.IncPublish("not_in_queue")
		return nil, err
	}
	plan, err := model.PlanByID(planID)
	if err != nil {
		return nil, err
	}

	info, err := u.meta.Lookup(ctx, entry.Submission.ContractAddress)
	if err != nil {
		metrics.IncPublish("metadata_unavailable")
		return nil, fmt.Errorf("%w: %v", derror.ErrMetadataUnavailable, err)
	}

	caption := u.composeCaption(entry.Submission, info)
	buttons := [][]adapter.InlineButton{{
		{Text: "Dexscreener", URL: info.PairURL},
		{Text: "GMGN", URL: gmgnURL(entry.Submission.ContractAddress)},
	}}

	msgID, err := u.channel.SendPhoto(ctx, u.channelID, info.ImageURL, caption, buttons)
	if err != nil {
		metrics.IncPublish("publish_failed")
		return nil, fmt.Errorf("%w: %v", derror.ErrPublishFailed, err)
	}

	now := time.Now()
	post := model.PublishedPost{
		SubmitterID:      submitterID,
		ChannelMessageID: msgID,
		PlanID:           plan.ID,
		PublishedAt:      now,
		ExpiresAt:        now.Add(plan.TTL),
	}
	prev, err := u.posts.Put(ctx, post)
	if err != nil {
		u.log.Error().Err(err).Int64("submitter", submitterID).Msg("post registration failed")
	}
	if prev != nil {
		// A still-live earlier post is being replaced; stop its timer so the
		// new registration is the only one that can fire.
		u.sched.Cancel(submitterID)
	} else {
		metrics.IncPostsActive()
	}
	if err := u.subs.Remove(ctx, submitterID); err != nil {
		u.log.Error().Err(err).Int64("submitter", submitterID).Msg("submission cleanup failed")
	}
	u.sched.Schedule(post)
	metrics.IncPublish("ok")
	u.log.Info().
		Int64("submitter", submitterID).
		Int("message_id", msgID).
		Str("plan", string(plan.ID)).
		Time("expires_at", post.ExpiresAt).
		Msg("sponsored post published")
	return &post, nil
}

func (u *PublishUseCase) composeCaption(sub model.Submission, info *model.TokenInfo) string {
	symbolLink := fmt.Sprintf("<a href='%s'>%s</a>", html.EscapeString(sub.Link), html.EscapeString(info.Symbol))
	botLink := fmt.Sprintf("<a href='%s'>FOMO Trending</a>", html.EscapeString(u.botLink))
	snipe := fmt.Sprintf("<a href='%s'>GMGN</a>", gmgnSnipeLink)

	var b strings.Builder
	b.WriteString("Sponsored Post\n\n\n")
	b.WriteString(fmt.Sprintf("%s is on %s\n\n", symbolLink, botLink))
	b.WriteString(fmt.Sprintf("CA: <code>%s</code>\n\n", html.EscapeString(sub.ContractAddress)))
	b.WriteString(fmt.Sprintf("Market Cap: $%s\n\n", formatUSD(info.MarketCap)))
	b.WriteString(fmt.Sprintf("Liquidity: $%s\n\n\n", formatUSD(info.LiquidityUSD)))
	b.WriteString(fmt.Sprintf("🔒 Lock in your snipes with %s on Telegram!\n\n", snipe))
	if info.WebsiteURL != "" {
		b.WriteString(fmt.Sprintf("<a href='%s'>Website</a>\n", html.EscapeString(info.WebsiteURL)))
	}
	if info.TwitterURL != "" {
		b.WriteString(fmt.Sprintf("<a href='%s'>Twitter</a>\n", html.EscapeString(info.TwitterURL)))
	}
	if info.TelegramURL != "" {
		b.WriteString(fmt.Sprintf("<a href='%s'>Telegram</a>\n\n", html.EscapeString(info.TelegramURL)))
	}
	if info.Boosted {
		b.WriteString("Dexscreener Paid:✅\n")
	}
	b.WriteString("CTO:✅\n")
	return b.String()
}

func gmgnURL(contractAddress string) string {
	return fmt.Sprintf("https://gmgn.ai/sol/token/%s?chain=sol", contractAddress)
}

// formatUSD renders a dollar value with thousands separators and two
// decimals: 1234567.8 -> "1,234,567.80".
func formatUSD(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	dot := strings.IndexByte(s, '.')
	whole, frac := s[:dot], s[dot:]
	n := len(whole)
	if n > 3 {
		var b strings.Builder
		pre := n % 3
		if pre == 0 {
			pre = 3
		}
		b.WriteString(whole[:pre])
		for i := pre; i < n; i += 3 {
			b.WriteString(",")
			b.WriteString(whole[i : i+3])
		}
		whole = b.String()
	}
	if neg {
		return "-" + whole + frac
	}
	return whole + frac
}
