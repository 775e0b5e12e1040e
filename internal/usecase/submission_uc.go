package usecase

import (
	"context"

	"telegram-trending-ads/internal/domain/model"
	"telegram-trending-ads/internal/domain/ports/repository"
	"telegram-trending-ads/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// SubmissionUseCase owns the submit flow: free-text parsing, the
// one-live-submission-per-submitter rule, plan selection, and the pending
// queue bookkeeping.
type SubmissionUseCase struct {
	subs  repository.SubmissionRepository
	queue repository.PendingQueue
	log   *zerolog.Logger
}

func NewSubmissionUseCase(subs repository.SubmissionRepository, queue repository.PendingQueue, logger *zerolog.Logger) *SubmissionUseCase {
	l := logger.With().Str("component", "SubmissionUC").Logger()
	return &SubmissionUseCase{subs: subs, queue: queue, log: &l}
}

// Submit parses `Name - Address - Link`, stores the submission, and queues
// it for publication once its payment clears.
func (u *SubmissionUseCase) Submit(ctx context.Context, submitterID int64, text string) (*model.Submission, error) {
	sub, err := model.ParseSubmission(submitterID, text)
	if err != nil {
		return nil, err
	}
	if err := u.subs.Create(ctx, sub); err != nil {
		return nil, err
	}
	u.queue.Enqueue(model.PendingEntry{SubmitterID: submitterID, Submission: *sub})
	metrics.SetPendingQueueDepth(u.queue.Size())
	u.log.Info().Int64("submitter", submitterID).Str("coin", sub.Name).Msg("submission queued")
	return sub, nil
}

// HasActive reports whether the submitter already has a live submission.
func (u *SubmissionUseCase) HasActive(ctx context.Context, submitterID int64) bool {
	_, err := u.subs.Get(ctx, submitterID)
	return err == nil
}

// SelectPlan pairs a plan with the submitter's live submission.
func (u *SubmissionUseCase) SelectPlan(ctx context.Context, submitterID int64, planID model.PlanID) (model.PaymentPlan, error) {
	plan, err := model.PlanByID(planID)
	if err != nil {
		return model.PaymentPlan{}, err
	}
	if err := u.subs.SelectPlan(ctx, submitterID, planID); err != nil {
		return model.PaymentPlan{}, err
	}
	return plan, nil
}

// Selected returns the submitter's submission and chosen plan, the pair the
// verify step needs.
func (u *SubmissionUseCase) Selected(ctx context.Context, submitterID int64) (*model.Submission, model.PaymentPlan, error) {
	sub, err := u.subs.Get(ctx, submitterID)
	if err != nil {
		return nil, model.PaymentPlan{}, err
	}
	planID, err := u.subs.SelectedPlan(ctx, submitterID)
	if err != nil {
		return nil, model.PaymentPlan{}, err
	}
	plan, err := model.PlanByID(planID)
	if err != nil {
		return nil, model.PaymentPlan{}, err
	}
	return sub, plan, nil
}

func (u *SubmissionUseCase) PendingCount() int { return u.queue.Size() }

func (u *SubmissionUseCase) ClearAll() int {
	n := u.queue.ClearAll()
	metrics.SetPendingQueueDepth(0)
	u.log.Info().Int("cleared", n).Msg("pending queue cleared")
	return n
}

func (u *SubmissionUseCase) ClearOne() (model.PendingEntry, bool) {
	entry, ok := u.queue.ClearOne()
	if ok {
		metrics.SetPendingQueueDepth(u.queue.Size())
	}
	return entry, ok
}
