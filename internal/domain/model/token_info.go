package model

// TokenInfo is the subset of token metadata the advertisement renders,
// taken from the first trading pair the metadata provider reports.
type TokenInfo struct {
	Symbol       string
	ImageURL     string // open-graph image of the pair
	PairURL      string // provider's pair page, used for the first deep-link button
	MarketCap    float64
	LiquidityUSD float64
	VolumeH24    float64
	Boosted      bool // provider's paid "boost" flag

	// Optional social links; rendered only when present.
	WebsiteURL  string
	TwitterURL  string
	TelegramURL string
}
