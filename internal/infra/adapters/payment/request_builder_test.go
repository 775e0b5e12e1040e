//go:build !integration

package payment_test

import (
	"bytes"
	"errors"
	"testing"

	"telegram-trending-ads/internal/domain/model"
	derror "telegram-trending-ads/internal/error"
	"telegram-trending-ads/internal/infra/adapters/payment"
)

const recipient = "RecipientWallet111111111111111111"

func TestRequestBuilder_Build(t *testing.T) {
	b := payment.NewRequestBuilder(recipient)

	t.Run("should render the pay URI for the daily plan", func(t *testing.T) {
		req, err := b.Build(model.PlanDaily)
		if err != nil {
			t.Fatalf("expected request, got: %v", err)
		}
		want := "solana:" + recipient + "?amount=0.7&label=Payment&message=Pay%200.7%20SOL%20for%20Daily%20Plan"
		if req.URI != want {
			t.Errorf("unexpected URI:\n got %s\nwant %s", req.URI, want)
		}
		if req.Recipient != recipient {
			t.Errorf("expected recipient %s, got %s", recipient, req.Recipient)
		}
		if req.Plan.ID != model.PlanDaily {
			t.Errorf("expected daily plan, got %s", req.Plan.ID)
		}
	})

	t.Run("should render whole-number amounts without a decimal point", func(t *testing.T) {
		req, err := b.Build(model.PlanMonthly)
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		want := "solana:" + recipient + "?amount=10&label=Payment&message=Pay%2010%20SOL%20for%20Monthly%20Plan"
		if req.URI != want {
			t.Errorf("unexpected URI:\n got %s\nwant %s", req.URI, want)
		}
	})

	t.Run("should produce a PNG of the URI", func(t *testing.T) {
		req, err := b.Build(model.PlanWeekly)
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		if len(req.QRPNG) == 0 {
			t.Fatal("expected QR bytes")
		}
		pngMagic := []byte{0x89, 'P', 'N', 'G'}
		if !bytes.HasPrefix(req.QRPNG, pngMagic) {
			t.Error("expected PNG-encoded QR")
		}
	})

	t.Run("should reject an unknown plan", func(t *testing.T) {
		if _, err := b.Build("lifetime"); !errors.Is(err, derror.ErrInvalidPlan) {
			t.Errorf("expected ErrInvalidPlan, got %v", err)
		}
	})
}
