package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"telegram-trending-ads/internal/domain/model"
	"telegram-trending-ads/internal/domain/ports/adapter"
)

var _ adapter.TokenMetadataProvider = (*DexscreenerProvider)(nil)

// DexscreenerProvider fetches pair data for a token contract
// (GET /latest/dex/tokens/{address}) and maps the first pair into TokenInfo.
type DexscreenerProvider struct {
	baseURL string
	client  *http.Client
}

func NewDexscreenerProvider(baseURL string, timeout time.Duration) *DexscreenerProvider {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &DexscreenerProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type tokensResponse struct {
	Pairs []struct {
		URL       string `json:"url"`
		MarketCap float64 `json:"marketCap"`
		Liquidity struct {
			USD float64 `json:"usd"`
		} `json:"liquidity"`
		Volume struct {
			H24 float64 `json:"h24"`
		} `json:"volume"`
		BaseToken struct {
			Symbol string `json:"symbol"`
		} `json:"baseToken"`
		Boosts *struct {
			Active int `json:"active"`
		} `json:"boosts"`
		Websites []struct {
			URL string `json:"url"`
		} `json:"websites"`
		Info struct {
			OpenGraph string `json:"openGraph"`
			Socials   []struct {
				Type string `json:"type"`
				URL  string `json:"url"`
			} `json:"socials"`
		} `json:"info"`
	} `json:"pairs"`
}

func (d *DexscreenerProvider) Lookup(ctx context.Context, contractAddress string) (*model.TokenInfo, error) {
	endpoint := fmt.Sprintf("%s/latest/dex/tokens/%s", d.baseURL, url.PathEscape(contractAddress))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token lookup: unexpected status %d", resp.StatusCode)
	}
	var out tokensResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("token lookup: decode: %w", err)
	}
	if len(out.Pairs) == 0 {
		return nil, fmt.Errorf("token lookup: no pairs for %s", contractAddress)
	}

	pair := out.Pairs[0]
	info := &model.TokenInfo{
		Symbol:       pair.BaseToken.Symbol,
		ImageURL:     pair.Info.OpenGraph,
		PairURL:      pair.URL,
		MarketCap:    pair.MarketCap,
		LiquidityUSD: pair.Liquidity.USD,
		VolumeH24:    pair.Volume.H24,
		Boosted:      pair.Boosts != nil,
	}
	if info.Symbol == "" {
		info.Symbol = "N/A"
	}
	if len(pair.Websites) > 0 {
		info.WebsiteURL = pair.Websites[0].URL
	}
	// First social of each type wins.
	for _, s := range pair.Info.Socials {
		switch s.Type {
		case "twitter":
			if info.TwitterURL == "" {
				info.TwitterURL = s.URL
			}
		case "telegram":
			if info.TelegramURL == "" {
				info.TelegramURL = s.URL
			}
		}
	}
	return info, nil
}
