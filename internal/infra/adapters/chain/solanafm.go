package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"telegram-trending-ads/internal/domain/ports/adapter"
)

var _ adapter.TransferLookup = (*SolanaFMLookup)(nil)

// SolanaFMLookup reads transfer records from the solana.fm transfers API
// (GET /v0/transfers/{tx}).
type SolanaFMLookup struct {
	baseURL string
	client  *http.Client
}

func NewSolanaFMLookup(baseURL string, timeout time.Duration) *SolanaFMLookup {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &SolanaFMLookup{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type transfersResponse struct {
	Status string `json:"status"`
	Result struct {
		Data []struct {
			Action      string `json:"action"`
			Status      string `json:"status"`
			Source      string `json:"source"`
			Destination string `json:"destination"`
			Amount      int64  `json:"amount"`
		} `json:"data"`
	} `json:"result"`
}

func (s *SolanaFMLookup) Transfers(ctx context.Context, txID string) (*adapter.TransferResult, error) {
	endpoint := fmt.Sprintf("%s/v0/transfers/%s", s.baseURL, url.PathEscape(txID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("transfers lookup: unexpected status %d", resp.StatusCode)
	}
	var out transfersResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("transfers lookup: decode: %w", err)
	}
	res := &adapter.TransferResult{Status: out.Status}
	for _, t := range out.Result.Data {
		res.Transfers = append(res.Transfers, adapter.Transfer{
			Action:      t.Action,
			Status:      t.Status,
			Source:      t.Source,
			Destination: t.Destination,
			Amount:      t.Amount,
		})
	}
	return res, nil
}
