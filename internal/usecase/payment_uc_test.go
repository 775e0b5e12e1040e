//go:build !integration

package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"telegram-trending-ads/internal/domain/ports/adapter"
	derror "telegram-trending-ads/internal/error"
	"telegram-trending-ads/internal/infra/memstore"
	"telegram-trending-ads/internal/usecase"
)

const recipient = "RecipientWallet111111111111111111"

func newPaymentUC(lookup adapter.TransferLookup) *usecase.PaymentUseCase {
	return usecase.NewPaymentUseCase(memstore.NewReplayGuard(), lookup, &mockBuilder{}, recipient, newTestLogger())
}

func TestPaymentUseCase_Verify(t *testing.T) {
	ctx := context.Background()

	t.Run("should accept a matching transfer", func(t *testing.T) {
		lookup := singleTransfer(recipient, 700_000_000)
		uc := newPaymentUC(lookup)

		if err := uc.Verify(ctx, "tx-ok", 0.7); err != nil {
			t.Fatalf("expected success, got: %v", err)
		}
	})

	t.Run("should reject a reused transaction without calling the provider", func(t *testing.T) {
		lookup := singleTransfer(recipient, 700_000_000)
		uc := newPaymentUC(lookup)

		if err := uc.Verify(ctx, "tx-1", 0.7); err != nil {
			t.Fatalf("first verify: %v", err)
		}
		err := uc.Verify(ctx, "tx-1", 0.7)
		if !errors.Is(err, derror.ErrAlreadyUsed) {
			t.Fatalf("expected ErrAlreadyUsed, got %v", err)
		}
		if lookup.Calls() != 1 {
			t.Errorf("expected 1 provider call, got %d", lookup.Calls())
		}
	})

	t.Run("should reject an off-by-one lamport amount", func(t *testing.T) {
		lookup := singleTransfer(recipient, 699_999_999)
		uc := newPaymentUC(lookup)

		err := uc.Verify(ctx, "tx-short", 0.7)
		if !errors.Is(err, derror.ErrAmountOrRecipientMismatch) {
			t.Errorf("expected ErrAmountOrRecipientMismatch, got %v", err)
		}
	})

	t.Run("should reject a transfer to another wallet", func(t *testing.T) {
		lookup := singleTransfer("SomeOtherWallet", 700_000_000)
		uc := newPaymentUC(lookup)

		err := uc.Verify(ctx, "tx-elsewhere", 0.7)
		if !errors.Is(err, derror.ErrAmountOrRecipientMismatch) {
			t.Errorf("expected ErrAmountOrRecipientMismatch, got %v", err)
		}
	})

	t.Run("should skip non-transfer and unsuccessful records", func(t *testing.T) {
		lookup := &mockLookup{
			TransfersFunc: func(ctx context.Context, txID string) (*adapter.TransferResult, error) {
				return &adapter.TransferResult{
					Status: "success",
					Transfers: []adapter.Transfer{
						{Action: "createAccount", Status: "Successful", Destination: recipient, Amount: 700_000_000},
						{Action: "transfer", Status: "Failed", Destination: recipient, Amount: 700_000_000},
						{Action: "transfer", Status: "Successful", Destination: recipient, Amount: 700_000_000},
					},
				}, nil
			},
		}
		uc := newPaymentUC(lookup)

		if err := uc.Verify(ctx, "tx-mixed", 0.7); err != nil {
			t.Errorf("expected the matching record to win, got: %v", err)
		}
	})

	t.Run("should surface a pending transaction", func(t *testing.T) {
		lookup := &mockLookup{
			TransfersFunc: func(ctx context.Context, txID string) (*adapter.TransferResult, error) {
				return &adapter.TransferResult{Status: "pending"}, nil
			},
		}
		uc := newPaymentUC(lookup)

		err := uc.Verify(ctx, "tx-pending", 0.7)
		if !errors.Is(err, derror.ErrTransactionNotSuccessful) {
			t.Errorf("expected ErrTransactionNotSuccessful, got %v", err)
		}
	})

	t.Run("should not consume the tx when the provider is down", func(t *testing.T) {
		boom := errors.New("connection refused")
		lookup := &mockLookup{
			TransfersFunc: func(ctx context.Context, txID string) (*adapter.TransferResult, error) {
				return nil, boom
			},
		}
		uc := newPaymentUC(lookup)

		err := uc.Verify(ctx, "tx-down", 0.7)
		if !errors.Is(err, derror.ErrOracleUnavailable) {
			t.Fatalf("expected ErrOracleUnavailable, got %v", err)
		}

		// The same tx must still be verifiable once the provider recovers.
		lookup.TransfersFunc = singleTransfer(recipient, 700_000_000).TransfersFunc
		if err := uc.Verify(ctx, "tx-down", 0.7); err != nil {
			t.Errorf("expected retry to succeed, got: %v", err)
		}
	})

	t.Run("should let exactly one of racing verifies win", func(t *testing.T) {
		lookup := singleTransfer(recipient, 700_000_000)
		uc := newPaymentUC(lookup)

		const n = 16
		var wg sync.WaitGroup
		errs := make([]error, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = uc.Verify(ctx, "tx-race", 0.7)
			}(i)
		}
		wg.Wait()

		wins := 0
		for _, err := range errs {
			switch {
			case err == nil:
				wins++
			case errors.Is(err, derror.ErrAlreadyUsed):
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}
		if wins != 1 {
			t.Errorf("expected exactly 1 winner, got %d", wins)
		}
	})
}

func TestPaymentUseCase_BuildRequest(t *testing.T) {
	uc := newPaymentUC(singleTransfer(recipient, 0))

	req, err := uc.BuildRequest("weekly")
	if err != nil {
		t.Fatalf("expected request, got: %v", err)
	}
	if req.Plan.PriceSOL != 3 {
		t.Errorf("expected weekly price 3 SOL, got %v", req.Plan.PriceSOL)
	}

	if _, err := uc.BuildRequest("forever"); !errors.Is(err, derror.ErrInvalidPlan) {
		t.Errorf("expected ErrInvalidPlan, got %v", err)
	}
}
