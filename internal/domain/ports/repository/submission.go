package repository

import (
	"context"

	"telegram-trending-ads/internal/domain/model"
)

// SubmissionRepository owns the per-submitter Submission and PlanSelection
// slots. All operations are atomic with respect to concurrent events for the
// same submitter.
type SubmissionRepository interface {
	// Create stores the submission unless the submitter already has a live
	// one, in which case it returns derror.ErrDuplicateActiveSubmission.
	Create(ctx context.Context, sub *model.Submission) error
	Get(ctx context.Context, submitterID int64) (*model.Submission, error)
	// SelectPlan pairs a plan with an existing submission. Returns
	// derror.ErrNoActiveSubmission when there is nothing to pair with.
	SelectPlan(ctx context.Context, submitterID int64, plan model.PlanID) error
	SelectedPlan(ctx context.Context, submitterID int64) (model.PlanID, error)
	// Remove drops both the submission and any plan selection. Removing an
	// absent submitter is a no-op.
	Remove(ctx context.Context, submitterID int64) error
}
