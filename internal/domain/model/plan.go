package model

import (
	"math"
	"strings"
	"time"

	derror "telegram-trending-ads/internal/error"
)

type PlanID string

const (
	PlanDaily   PlanID = "daily"
	PlanWeekly  PlanID = "weekly"
	PlanMonthly PlanID = "monthly"
)

// PaymentPlan is one of the three fixed (price, TTL) tiers a submitter buys.
// Prices are denominated in SOL; the smallest on-chain unit is the lamport
// (1 SOL = 1e9 lamports).
type PaymentPlan struct {
	ID       PlanID
	PriceSOL float64
	TTL      time.Duration
}

var plans = map[PlanID]PaymentPlan{
	PlanDaily:   {ID: PlanDaily, PriceSOL: 0.7, TTL: 24 * time.Hour},
	PlanWeekly:  {ID: PlanWeekly, PriceSOL: 3, TTL: 7 * 24 * time.Hour},
	PlanMonthly: {ID: PlanMonthly, PriceSOL: 10, TTL: 30 * 24 * time.Hour},
}

// PlanByID resolves a plan id against the fixed plan set.
func PlanByID(id PlanID) (PaymentPlan, error) {
	p, ok := plans[id]
	if !ok {
		return PaymentPlan{}, derror.ErrInvalidPlan
	}
	return p, nil
}

// Plans returns the fixed tiers in display order.
func Plans() []PaymentPlan {
	return []PaymentPlan{plans[PlanDaily], plans[PlanWeekly], plans[PlanMonthly]}
}

// Lamports is the exact integer amount a paying transfer must carry.
func (p PaymentPlan) Lamports() int64 {
	return int64(math.Round(p.PriceSOL * 1e9))
}

// Title renders the id capitalized for user-facing text ("Daily", "Weekly").
func (p PaymentPlan) Title() string {
	s := string(p.ID)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
