package application

import (
	"context"
	"fmt"
	"html"
	"strings"

	"telegram-trending-ads/internal/config"
	"telegram-trending-ads/internal/domain/model"
	derror "telegram-trending-ads/internal/error"
	"telegram-trending-ads/internal/usecase"
)

// SubmitLimiter gates the submit action. Implementations: the in-memory
// sliding-window limiter, or the redis-backed one when configured.
type SubmitLimiter interface {
	Allow(ctx context.Context) (bool, error)
}

// BotFacade composes the usecases into the flows the transport adapter
// exposes. It returns data and strings; rendering (buttons, photos) stays in
// the adapter.
type BotFacade struct {
	SubmissionUC *usecase.SubmissionUseCase
	PaymentUC    *usecase.PaymentUseCase
	PublishUC    *usecase.PublishUseCase

	limiter SubmitLimiter
	links   config.LinksConfig
}

func NewBotFacade(
	submissionUC *usecase.SubmissionUseCase,
	paymentUC *usecase.PaymentUseCase,
	publishUC *usecase.PublishUseCase,
	limiter SubmitLimiter,
	links config.LinksConfig,
) *BotFacade {
	return &BotFacade{
		SubmissionUC: submissionUC,
		PaymentUC:    paymentUC,
		PublishUC:    publishUC,
		limiter:      limiter,
		links:        links,
	}
}

// WelcomeCaption builds the /start screen caption. Social links render only
// when configured.
func (b *BotFacade) WelcomeCaption() string {
	var sb strings.Builder
	sb.WriteString("🔮 Welcome to FOMO Trending 🔮\n\n\n")
	sb.WriteString("🚀 Discover trending cryptocurrencies\n")
	sb.WriteString("📈 Analyze token metrics\n")
	sb.WriteString("👥 Join community discussions\n")
	sb.WriteString("🛠️ Customize your dashboard\n\n\n")
	if b.links.Site != "" {
		sb.WriteString(fmt.Sprintf("<a href='%s'> 🌐 Website</a>\n", html.EscapeString(b.links.Site)))
	}
	if b.links.Twitter != "" {
		sb.WriteString(fmt.Sprintf("<a href='%s'>🐦 Twitter</a>\n", html.EscapeString(b.links.Twitter)))
	}
	if b.links.Telegram != "" {
		sb.WriteString(fmt.Sprintf("<a href='%s'> 💬 Telegram</a>\n\n", html.EscapeString(b.links.Telegram)))
	}
	return sb.String()
}

// PromoImage is the photo shown on the welcome screen.
func (b *BotFacade) PromoImage() string { return b.links.PromoImage }

// HandleSubmitPrompt gates and answers the "Submit Coin" action.
func (b *BotFacade) HandleSubmitPrompt(ctx context.Context, chatID int64) error {
	if b.limiter != nil {
		allowed, err := b.limiter.Allow(ctx)
		if err == nil && !allowed {
			return derror.ErrRateLimited
		}
	}
	if b.SubmissionUC.HasActive(ctx, chatID) {
		return derror.ErrDuplicateActiveSubmission
	}
	return nil
}

// HandleSubmission parses and stores the free-text coin details.
func (b *BotFacade) HandleSubmission(ctx context.Context, chatID int64, text string) (*model.Submission, error) {
	return b.SubmissionUC.Submit(ctx, chatID, text)
}

// HandlePlan pairs the chosen plan with the live submission and builds the
// payment request for it.
func (b *BotFacade) HandlePlan(ctx context.Context, chatID int64, planID model.PlanID) (*model.PaymentRequest, error) {
	if _, err := b.SubmissionUC.SelectPlan(ctx, chatID, planID); err != nil {
		return nil, err
	}
	return b.PaymentUC.BuildRequest(planID)
}

// HandleVerify checks the submitted transaction hash against the plan price.
func (b *BotFacade) HandleVerify(ctx context.Context, chatID int64, txID string) error {
	_, plan, err := b.SubmissionUC.Selected(ctx, chatID)
	if err != nil {
		return err
	}
	return b.PaymentUC.Verify(ctx, txID, plan.PriceSOL)
}

// HandlePublish runs the publication pipeline for a submitter whose payment
// just cleared.
func (b *BotFacade) HandlePublish(ctx context.Context, chatID int64) (*model.PublishedPost, error) {
	return b.PublishUC.Publish(ctx, chatID)
}

// HasPlanSelected reports whether the submitter is in the pay-then-verify
// stage, which decides how free text is routed.
func (b *BotFacade) HasPlanSelected(ctx context.Context, chatID int64) bool {
	_, _, err := b.SubmissionUC.Selected(ctx, chatID)
	return err == nil
}

// HasActiveSubmission reports whether a live submission exists.
func (b *BotFacade) HasActiveSubmission(ctx context.Context, chatID int64) bool {
	return b.SubmissionUC.HasActive(ctx, chatID)
}

func (b *BotFacade) PendingCount() int { return b.SubmissionUC.PendingCount() }

func (b *BotFacade) ClearAll() int { return b.SubmissionUC.ClearAll() }

func (b *BotFacade) ClearOne() (model.PendingEntry, bool) { return b.SubmissionUC.ClearOne() }
