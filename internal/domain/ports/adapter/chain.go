package adapter

import "context"

// Transfer is one transfer record inside an on-chain transaction, as
// reported by the transaction-lookup provider. Amount is in lamports.
type Transfer struct {
	Action      string
	Status      string
	Source      string
	Destination string
	Amount      int64
}

// TransferResult is the provider's view of a whole transaction.
type TransferResult struct {
	Status    string // overall transaction status, "success" when confirmed
	Transfers []Transfer
}

// TransferLookup answers what a given transaction actually moved.
// Implementations perform a blocking network call.
type TransferLookup interface {
	Transfers(ctx context.Context, txID string) (*TransferResult, error)
}
