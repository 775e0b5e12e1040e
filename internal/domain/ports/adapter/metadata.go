package adapter

import (
	"context"

	"telegram-trending-ads/internal/domain/model"
)

// TokenMetadataProvider enriches a contract address with market data for the
// advertisement. Implementations perform a blocking network call.
type TokenMetadataProvider interface {
	Lookup(ctx context.Context, contractAddress string) (*model.TokenInfo, error)
}
