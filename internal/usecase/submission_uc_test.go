//go:build !integration

package usecase_test

import (
	"context"
	"errors"
	"testing"

	"telegram-trending-ads/internal/domain/model"
	derror "telegram-trending-ads/internal/error"
	"telegram-trending-ads/internal/infra/memstore"
	"telegram-trending-ads/internal/usecase"
)

func newSubmissionUC() (*usecase.SubmissionUseCase, *memstore.PendingQueue) {
	queue := memstore.NewPendingQueue()
	uc := usecase.NewSubmissionUseCase(memstore.NewSubmissionRepo(), queue, newTestLogger())
	return uc, queue
}

func TestSubmissionUseCase_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("should store and queue a valid submission", func(t *testing.T) {
		uc, queue := newSubmissionUC()

		sub, err := uc.Submit(ctx, 42, "CoinX - ABC123 - http://x.test")
		if err != nil {
			t.Fatalf("expected success, got: %v", err)
		}
		if sub.ID == "" {
			t.Error("expected an assigned id")
		}
		if !uc.HasActive(ctx, 42) {
			t.Error("expected an active submission")
		}
		if queue.Size() != 1 {
			t.Errorf("expected 1 queued entry, got %d", queue.Size())
		}
	})

	t.Run("should reject malformed text", func(t *testing.T) {
		uc, queue := newSubmissionUC()

		_, err := uc.Submit(ctx, 42, "CoinX ABC123")
		if !errors.Is(err, derror.ErrMalformedSubmissionFormat) {
			t.Fatalf("expected ErrMalformedSubmissionFormat, got %v", err)
		}
		if queue.Size() != 0 {
			t.Error("rejected submission must not be queued")
		}
	})

	t.Run("should reject a second submission from the same chat", func(t *testing.T) {
		uc, queue := newSubmissionUC()

		if _, err := uc.Submit(ctx, 42, "CoinX - ABC123 - http://x.test"); err != nil {
			t.Fatalf("first submit: %v", err)
		}
		_, err := uc.Submit(ctx, 42, "CoinY - DEF456 - http://y.test")
		if !errors.Is(err, derror.ErrDuplicateActiveSubmission) {
			t.Fatalf("expected ErrDuplicateActiveSubmission, got %v", err)
		}
		if queue.Size() != 1 {
			t.Errorf("expected only the first entry queued, got %d", queue.Size())
		}
	})
}

func TestSubmissionUseCase_PlanSelection(t *testing.T) {
	ctx := context.Background()

	t.Run("should pair a plan with the live submission", func(t *testing.T) {
		uc, _ := newSubmissionUC()
		uc.Submit(ctx, 42, "CoinX - ABC123 - http://x.test")

		plan, err := uc.SelectPlan(ctx, 42, model.PlanWeekly)
		if err != nil {
			t.Fatalf("select plan: %v", err)
		}
		if plan.PriceSOL != 3 {
			t.Errorf("expected 3 SOL, got %v", plan.PriceSOL)
		}

		sub, selected, err := uc.Selected(ctx, 42)
		if err != nil {
			t.Fatalf("selected: %v", err)
		}
		if sub.Name != "CoinX" || selected.ID != model.PlanWeekly {
			t.Errorf("unexpected pair: %s / %s", sub.Name, selected.ID)
		}
	})

	t.Run("should reject an unknown plan id", func(t *testing.T) {
		uc, _ := newSubmissionUC()
		uc.Submit(ctx, 42, "CoinX - ABC123 - http://x.test")

		if _, err := uc.SelectPlan(ctx, 42, "hourly"); !errors.Is(err, derror.ErrInvalidPlan) {
			t.Errorf("expected ErrInvalidPlan, got %v", err)
		}
	})

	t.Run("should require a live submission", func(t *testing.T) {
		uc, _ := newSubmissionUC()
		if _, err := uc.SelectPlan(ctx, 42, model.PlanDaily); !errors.Is(err, derror.ErrNoActiveSubmission) {
			t.Errorf("expected ErrNoActiveSubmission, got %v", err)
		}
	})
}

func TestSubmissionUseCase_QueueAdmin(t *testing.T) {
	ctx := context.Background()
	uc, _ := newSubmissionUC()

	uc.Submit(ctx, 1, "A - CA1 - http://a.test")
	uc.Submit(ctx, 2, "B - CA2 - http://b.test")
	uc.Submit(ctx, 3, "C - CA3 - http://c.test")

	if uc.PendingCount() != 3 {
		t.Fatalf("expected 3 pending, got %d", uc.PendingCount())
	}

	removed, ok := uc.ClearOne()
	if !ok || removed.Submission.Name != "A" {
		t.Fatalf("expected oldest entry A cleared, got %+v ok=%v", removed, ok)
	}
	if uc.PendingCount() != 2 {
		t.Errorf("expected 2 pending, got %d", uc.PendingCount())
	}

	if n := uc.ClearAll(); n != 2 {
		t.Errorf("expected 2 cleared, got %d", n)
	}
	if uc.PendingCount() != 0 {
		t.Errorf("expected empty queue, got %d", uc.PendingCount())
	}
}
