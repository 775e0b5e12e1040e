package model

// PaymentRequest is what a submitter needs to pay for a plan: the target
// address, the exact amount, a solana-pay URI, and a scannable QR rendering
// of that URI. The QR image is held in memory, never written to disk.
type PaymentRequest struct {
	Plan      PaymentPlan
	Recipient string
	URI       string
	QRPNG     []byte
}
