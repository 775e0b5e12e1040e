package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"telegram-trending-ads/internal/domain/model"
	"telegram-trending-ads/internal/domain/ports/adapter"
	"telegram-trending-ads/internal/domain/ports/repository"
	derror "telegram-trending-ads/internal/error"
	"telegram-trending-ads/internal/infra/logging"
	"telegram-trending-ads/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// PaymentRequestBuilder renders a plan into something the submitter can pay:
// target address, amount, payment URI, and a scannable encoding of it.
type PaymentRequestBuilder interface {
	Build(planID model.PlanID) (*model.PaymentRequest, error)
}

// PaymentUseCase verifies on-chain payments against the configured recipient
// and the plan price, consuming each transaction id at most once.
type PaymentUseCase struct {
	replay    repository.ReplayGuard
	lookup    adapter.TransferLookup
	builder   PaymentRequestBuilder
	recipient string
	log       *zerolog.Logger
}

func NewPaymentUseCase(replay repository.ReplayGuard, lookup adapter.TransferLookup, builder PaymentRequestBuilder, recipient string, logger *zerolog.Logger) *PaymentUseCase {
	l := logger.With().Str("component", "PaymentUC").Logger()
	return &PaymentUseCase{
		replay:    replay,
		lookup:    lookup,
		builder:   builder,
		recipient: recipient,
		log:       &l,
	}
}

// BuildRequest produces the payment request for a plan.
func (u *PaymentUseCase) BuildRequest(planID model.PlanID) (*model.PaymentRequest, error) {
	return u.builder.Build(planID)
}

// Verify checks that txID paid exactly expectedSOL to the configured
// recipient and consumes it. The fast path rejects already-used ids without
// touching the network; the authoritative check-and-insert happens after the
// transfer matches, so two racing calls for the same id cannot both succeed.
func (u *PaymentUseCase) Verify(ctx context.Context, txID string, expectedSOL float64) error {
	start := time.Now()
	err := u.verify(ctx, txID, expectedSOL)
	metrics.ObserveVerifyDuration(time.Since(start).Seconds())
	metrics.IncVerify(verifyResult(err))
	return err
}

func (u *PaymentUseCase) verify(ctx context.Context, txID string, expectedSOL float64) error {
	used, err := u.replay.Used(ctx, txID)
	if err != nil {
		return fmt.Errorf("%w: %v", derror.ErrOracleUnavailable, err)
	}
	if used {
		return derror.ErrAlreadyUsed
	}

	res, err := u.lookup.Transfers(ctx, txID)
	if err != nil {
		u.log.Warn().Err(err).Str("tx", logging.TxPreview(txID)).Msg("transfer lookup failed")
		return fmt.Errorf("%w: %v", derror.ErrOracleUnavailable, err)
	}
	if res.Status != "success" {
		return derror.ErrTransactionNotSuccessful
	}

	want := int64(math.Round(expectedSOL * 1e9))
	for _, t := range res.Transfers {
		if t.Action != "transfer" || t.Status != "Successful" {
			continue
		}
		if t.Destination != u.recipient || t.Amount != want {
			continue
		}
		// First match wins. Record-then-return is the critical section.
		ok, err := u.replay.MarkUsed(ctx, txID)
		if err != nil {
			return fmt.Errorf("%w: %v", derror.ErrOracleUnavailable, err)
		}
		if !ok {
			return derror.ErrAlreadyUsed
		}
		u.log.Info().Str("tx", logging.TxPreview(txID)).Float64("sol", expectedSOL).Msg("payment verified")
		return nil
	}
	return derror.ErrAmountOrRecipientMismatch
}

func verifyResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, derror.ErrAlreadyUsed):
		return "already_used"
	case errors.Is(err, derror.ErrOracleUnavailable):
		return "oracle_unavailable"
	case errors.Is(err, derror.ErrTransactionNotSuccessful):
		return "not_successful"
	case errors.Is(err, derror.ErrAmountOrRecipientMismatch):
		return "mismatch"
	default:
		return "error"
	}
}
