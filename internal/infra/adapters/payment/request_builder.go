package payment

import (
	"fmt"
	"strconv"
	"strings"

	"telegram-trending-ads/internal/domain/model"

	qrcode "github.com/skip2/go-qrcode"
)

// RequestBuilder produces the payment target for a plan: a solana-pay URI
// for the configured recipient plus a QR PNG of that URI, held in memory.
type RequestBuilder struct {
	recipient string
	qrSize    int
}

func NewRequestBuilder(recipient string) *RequestBuilder {
	return &RequestBuilder{recipient: recipient, qrSize: 512}
}

// Build validates the plan id and renders the payment request.
func (b *RequestBuilder) Build(planID model.PlanID) (*model.PaymentRequest, error) {
	plan, err := model.PlanByID(planID)
	if err != nil {
		return nil, err
	}
	uri := b.payURI(plan)
	png, err := qrcode.Encode(uri, qrcode.Medium, b.qrSize)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return &model.PaymentRequest{
		Plan:      plan,
		Recipient: b.recipient,
		URI:       uri,
		QRPNG:     png,
	}, nil
}

func (b *RequestBuilder) payURI(plan model.PaymentPlan) string {
	amount := strconv.FormatFloat(plan.PriceSOL, 'f', -1, 64)
	message := strings.ReplaceAll(
		fmt.Sprintf("Pay %s SOL for %s Plan", amount, plan.Title()), " ", "%20")
	return fmt.Sprintf("solana:%s?amount=%s&label=Payment&message=%s", b.recipient, amount, message)
}
