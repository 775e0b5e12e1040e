package memstore

import (
	"context"
	"sync"

	"telegram-trending-ads/internal/domain/model"
	"telegram-trending-ads/internal/domain/ports/repository"
	derror "telegram-trending-ads/internal/error"

	"github.com/google/uuid"
)

var _ repository.SubmissionRepository = (*SubmissionRepo)(nil)

// SubmissionRepo keeps the per-submitter submission and plan selection in
// process memory. Both maps live under one mutex so a submission and its
// plan selection can never be observed half-updated.
type SubmissionRepo struct {
	mu          sync.Mutex
	submissions map[int64]*model.Submission
	plans       map[int64]model.PlanID
}

func NewSubmissionRepo() *SubmissionRepo {
	return &SubmissionRepo{
		submissions: make(map[int64]*model.Submission),
		plans:       make(map[int64]model.PlanID),
	}
}

func (r *SubmissionRepo) Create(ctx context.Context, sub *model.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.submissions[sub.SubmitterID]; ok {
		return derror.ErrDuplicateActiveSubmission
	}
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	cp := *sub
	r.submissions[sub.SubmitterID] = &cp
	return nil
}

func (r *SubmissionRepo) Get(ctx context.Context, submitterID int64) (*model.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sub, ok := r.submissions[submitterID]
	if !ok {
		return nil, derror.ErrNoActiveSubmission
	}
	cp := *sub
	return &cp, nil
}

func (r *SubmissionRepo) SelectPlan(ctx context.Context, submitterID int64, plan model.PlanID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.submissions[submitterID]; !ok {
		return derror.ErrNoActiveSubmission
	}
	r.plans[submitterID] = plan
	return nil
}

func (r *SubmissionRepo) SelectedPlan(ctx context.Context, submitterID int64) (model.PlanID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	plan, ok := r.plans[submitterID]
	if !ok {
		return "", derror.ErrNoActiveSubmission
	}
	return plan, nil
}

func (r *SubmissionRepo) Remove(ctx context.Context, submitterID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.submissions, submitterID)
	delete(r.plans, submitterID)
	return nil
}
